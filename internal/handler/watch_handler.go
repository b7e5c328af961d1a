package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/models"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
	"github.com/noah-isme/portfolio-api/pkg/response"
)

type watchService interface {
	List(ctx context.Context, category string) ([]models.WatchItem, error)
	Create(ctx context.Context, category string, req dto.CreateWatchItemRequest) (string, error)
	Update(ctx context.Context, category, id string, req dto.UpdateWatchItemRequest) (*models.WatchItem, error)
	Delete(ctx context.Context, category, id string) error
}

// WatchHandler manages watch-out-for endpoints.
type WatchHandler struct {
	service watchService
}

// NewWatchHandler constructs the handler.
func NewWatchHandler(service watchService) *WatchHandler {
	return &WatchHandler{service: service}
}

// List godoc
// @Summary List watch-out-for items
// @Tags Watch
// @Produce json
// @Param category path string true "competitions, journals or reads"
// @Success 200 {object} response.Envelope
// @Router /watch/{category} [get]
func (h *WatchHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Param("category"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items, "Items fetched successfully")
}

// Create godoc
// @Summary Add watch-out-for item
// @Tags Watch
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category path string true "Category"
// @Param payload body dto.CreateWatchItemRequest true "Item"
// @Success 201 {object} response.Envelope
// @Router /watch/{category} [post]
func (h *WatchHandler) Create(c *gin.Context) {
	var req dto.CreateWatchItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation("invalid watch item payload"))
		return
	}
	id, err := h.service.Create(c.Request.Context(), c.Param("category"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.CreatedResponse{ID: id}, "Item created successfully")
}

// Update godoc
// @Summary Update watch-out-for item
// @Tags Watch
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category path string true "Category"
// @Param id path string true "Item ID"
// @Param payload body dto.UpdateWatchItemRequest true "Changed fields"
// @Success 200 {object} response.Envelope
// @Router /watch/{category}/{id} [put]
func (h *WatchHandler) Update(c *gin.Context) {
	var req dto.UpdateWatchItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation("invalid watch item payload"))
		return
	}
	item, err := h.service.Update(c.Request.Context(), c.Param("category"), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item, "Item updated successfully")
}

// Delete godoc
// @Summary Delete watch-out-for item
// @Tags Watch
// @Produce json
// @Security BearerAuth
// @Param category path string true "Category"
// @Param id path string true "Item ID"
// @Success 200 {object} response.Envelope
// @Router /watch/{category}/{id} [delete]
func (h *WatchHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("category"), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Item deleted successfully")
}
