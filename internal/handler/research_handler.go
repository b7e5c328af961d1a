package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/models"
	"github.com/noah-isme/portfolio-api/internal/service"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
	"github.com/noah-isme/portfolio-api/pkg/response"
)

type researchService interface {
	Interests(ctx context.Context) ([]models.ResearchInterests, error)
	SaveInterests(ctx context.Context, req dto.SaveInterestsRequest) (*models.ResearchInterests, error)
	Projects(ctx context.Context) ([]models.ResearchProject, error)
	CreateProject(ctx context.Context, req dto.CreateProjectRequest, images []service.Upload) (string, error)
	UpdateProject(ctx context.Context, id string, req dto.UpdateProjectRequest, images []service.Upload) (*models.ResearchProject, error)
	DeleteProject(ctx context.Context, id string) error
}

// ResearchHandler manages research interests and project endpoints.
type ResearchHandler struct {
	service researchService
	forms   formParser
}

// NewResearchHandler constructs the handler.
func NewResearchHandler(service researchService, limits UploadLimits) *ResearchHandler {
	return &ResearchHandler{service: service, forms: newFormParser(limits)}
}

// Interests godoc
// @Summary Get research interests
// @Tags Research
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /research/interests [get]
func (h *ResearchHandler) Interests(c *gin.Context) {
	items, err := h.service.Interests(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items, "Research interests fetched successfully")
}

// SaveInterests godoc
// @Summary Replace research interests
// @Tags Research
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SaveInterestsRequest true "Interests"
// @Success 200 {object} response.Envelope
// @Router /research/interests [put]
func (h *ResearchHandler) SaveInterests(c *gin.Context) {
	var req dto.SaveInterestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation("invalid research interests payload"))
		return
	}
	doc, err := h.service.SaveInterests(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, doc, "Research interests saved successfully")
}

// Projects godoc
// @Summary List research projects
// @Tags Research
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /research/projects [get]
func (h *ResearchHandler) Projects(c *gin.Context) {
	items, err := h.service.Projects(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items, "Research projects fetched successfully")
}

// CreateProject godoc
// @Summary Create research project
// @Tags Research
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param heading formData string true "Heading"
// @Param description formData string true "Description"
// @Param images formData file false "Images"
// @Success 201 {object} response.Envelope
// @Router /research/projects [post]
func (h *ResearchHandler) CreateProject(c *gin.Context) {
	form, err := h.forms.parse(c, projectImages)
	if err != nil {
		response.Error(c, err)
		return
	}
	req := dto.CreateProjectRequest{Heading: form.Value("heading"), Description: form.Value("description")}
	id, err := h.service.CreateProject(c.Request.Context(), req, form.Files(projectImages))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.CreatedResponse{ID: id}, "Research project created successfully")
}

// UpdateProject godoc
// @Summary Update research project
// @Tags Research
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param imagesToDelete formData string false "JSON array of image paths to remove"
// @Param images formData file false "Images to append"
// @Success 200 {object} response.Envelope
// @Router /research/projects/{id} [put]
func (h *ResearchHandler) UpdateProject(c *gin.Context) {
	form, err := h.forms.parse(c, projectImages)
	if err != nil {
		response.Error(c, err)
		return
	}
	req := dto.UpdateProjectRequest{Heading: form.String("heading"), Description: form.String("description")}
	if _, err := form.JSON("imagesToDelete", &req.ImagesToDelete); err != nil {
		response.Error(c, err)
		return
	}
	project, err := h.service.UpdateProject(c.Request.Context(), c.Param("id"), req, form.Files(projectImages))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, project, "Research project updated successfully")
}

// DeleteProject godoc
// @Summary Delete research project and its images
// @Tags Research
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} response.Envelope
// @Router /research/projects/{id} [delete]
func (h *ResearchHandler) DeleteProject(c *gin.Context) {
	if err := h.service.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Research project deleted successfully")
}
