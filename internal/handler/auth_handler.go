package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/middleware"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
	"github.com/noah-isme/portfolio-api/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, uid string) error
}

// AuthHandler exposes session endpoints.
type AuthHandler struct {
	service authService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service authService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login godoc
// @Summary Exchange an identity provider token
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Provider token"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation("idToken is required", appErrors.FieldError{Field: "idToken", Message: "is required"}))
		return
	}
	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp, "Login successful")
}

// Logout godoc
// @Summary Revoke the caller's sessions
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	if id == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "Authorization token missing"))
		return
	}
	if err := h.service.Logout(c.Request.Context(), id.UID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Logged out successfully")
}
