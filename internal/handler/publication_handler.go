package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/models"
	"github.com/noah-isme/portfolio-api/internal/service"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
	"github.com/noah-isme/portfolio-api/pkg/response"
)

type publicationService interface {
	List(ctx context.Context, section string) ([]models.Publication, error)
	Create(ctx context.Context, section string, req dto.CreatePublicationRequest) (string, error)
	Update(ctx context.Context, section, id string, req dto.UpdatePublicationRequest) (*models.Publication, error)
	Delete(ctx context.Context, section, id string) error
}

type publicationExporter interface {
	ExportPublications(ctx context.Context, section, format string) (*service.ExportResult, error)
}

// PublicationHandler manages publication endpoints.
type PublicationHandler struct {
	service  publicationService
	exporter publicationExporter
}

// NewPublicationHandler constructs the handler.
func NewPublicationHandler(service publicationService, exporter publicationExporter) *PublicationHandler {
	return &PublicationHandler{service: service, exporter: exporter}
}

// List godoc
// @Summary List publications of a section
// @Tags Publications
// @Produce json
// @Param section path string true "journals, conferences, thesis or patents"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /publications/{section} [get]
func (h *PublicationHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Param("section"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items, "Publications fetched successfully")
}

// Create godoc
// @Summary Add publication
// @Tags Publications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param section path string true "Section"
// @Param payload body dto.CreatePublicationRequest true "Publication"
// @Success 201 {object} response.Envelope
// @Router /publications/{section} [post]
func (h *PublicationHandler) Create(c *gin.Context) {
	var req dto.CreatePublicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation("invalid publication payload"))
		return
	}
	id, err := h.service.Create(c.Request.Context(), c.Param("section"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.CreatedResponse{ID: id}, "Publication created successfully")
}

// Update godoc
// @Summary Update publication
// @Tags Publications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param section path string true "Section"
// @Param id path string true "Publication ID"
// @Param payload body dto.UpdatePublicationRequest true "Changed fields"
// @Success 200 {object} response.Envelope
// @Router /publications/{section}/{id} [put]
func (h *PublicationHandler) Update(c *gin.Context) {
	var req dto.UpdatePublicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation("invalid publication payload"))
		return
	}
	item, err := h.service.Update(c.Request.Context(), c.Param("section"), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item, "Publication updated successfully")
}

// Delete godoc
// @Summary Delete publication
// @Tags Publications
// @Produce json
// @Security BearerAuth
// @Param section path string true "Section"
// @Param id path string true "Publication ID"
// @Success 200 {object} response.Envelope
// @Router /publications/{section}/{id} [delete]
func (h *PublicationHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("section"), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Publication deleted successfully")
}

// Export godoc
// @Summary Download a publication section
// @Tags Publications
// @Produce text/csv
// @Produce application/pdf
// @Param section path string true "Section"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} binary
// @Router /publications/{section}/export [get]
func (h *PublicationHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "export not configured"))
		return
	}
	result, err := h.exporter.ExportPublications(c.Request.Context(), c.Param("section"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
