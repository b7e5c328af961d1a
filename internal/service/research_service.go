package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/models"
	"github.com/noah-isme/portfolio-api/pkg/docstore"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
)

type interestsRepository interface {
	Get(ctx context.Context) (*models.ResearchInterests, error)
	Save(ctx context.Context, interests *models.ResearchInterests) error
}

type projectRepository interface {
	List(ctx context.Context) ([]models.ResearchProject, error)
	Get(ctx context.Context, id string) (*models.ResearchProject, error)
	Create(ctx context.Context, project *models.ResearchProject) (string, error)
	Update(ctx context.Context, id string, project *models.ResearchProject, fields ...string) error
	Delete(ctx context.Context, id string) error
}

// ResearchService manages the research interests singleton and research projects.
type ResearchService struct {
	interests interestsRepository
	projects  projectRepository
	files     *Attachments
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewResearchService creates a research service.
func NewResearchService(interests interestsRepository, projects projectRepository, files *Attachments, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ResearchService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResearchService{
		interests: interests,
		projects:  projects,
		files:     files,
		cache:     cache,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Interests returns the interests document as a one-element list, or an empty
// list before it has been saved.
func (s *ResearchService) Interests(ctx context.Context) ([]models.ResearchInterests, error) {
	doc, err := s.interests.Get(ctx)
	if errors.Is(err, docstore.ErrNotFound) {
		return []models.ResearchInterests{}, nil
	}
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load research interests")
	}
	if doc.Interests == nil {
		doc.Interests = []models.Interest{}
	}
	return []models.ResearchInterests{*doc}, nil
}

// SaveInterests replaces the interests document. Entries without an id get one.
func (s *ResearchService) SaveInterests(ctx context.Context, req dto.SaveInterestsRequest) (*models.ResearchInterests, error) {
	req.Heading = strings.TrimSpace(req.Heading)
	req.Paragraph = strings.TrimSpace(req.Paragraph)
	for i := range req.Interests {
		req.Interests[i].Heading = strings.TrimSpace(req.Interests[i].Heading)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid research interests payload")
	}

	doc := &models.ResearchInterests{
		Heading:   req.Heading,
		Paragraph: req.Paragraph,
		Interests: make([]models.Interest, len(req.Interests)),
	}
	for i, in := range req.Interests {
		id := strings.TrimSpace(in.ID)
		if id == "" {
			id = uuid.NewString()
		}
		doc.Interests[i] = models.Interest{ID: id, Heading: in.Heading, Description: strings.TrimSpace(in.Description)}
	}
	if err := s.interests.Save(ctx, doc); err != nil {
		return nil, appErrors.Internal(err, "failed to save research interests")
	}
	return doc, nil
}

// Projects lists research projects.
func (s *ResearchService) Projects(ctx context.Context) ([]models.ResearchProject, error) {
	projects, err := cachedList(ctx, s.cache, models.CollectionProjects, s.projects.List)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list research projects")
	}
	for i := range projects {
		if projects[i].Images == nil {
			projects[i].Images = []models.Attachment{}
		}
	}
	return projects, nil
}

// CreateProject uploads the images and stores the project.
func (s *ResearchService) CreateProject(ctx context.Context, req dto.CreateProjectRequest, images []Upload) (string, error) {
	req.Heading = strings.TrimSpace(req.Heading)
	req.Description = strings.TrimSpace(req.Description)
	if err := s.validator.Struct(req); err != nil {
		return "", validationError(err, "invalid research project payload")
	}

	attachments, err := s.files.UploadAll(ctx, PrefixProjects, images)
	if err != nil {
		return "", err
	}
	project := &models.ResearchProject{
		Heading:     req.Heading,
		Description: req.Description,
		Images:      attachments,
		CreatedAt:   s.now().UTC(),
	}
	id, err := s.projects.Create(ctx, project)
	if err != nil {
		s.files.Discard(context.WithoutCancel(ctx), Paths(attachments)...)
		return "", appErrors.Internal(err, "failed to create research project")
	}
	s.cache.Invalidate(ctx, models.CollectionProjects)
	s.logger.Info("research project created", zap.String("id", id), zap.Int("images", len(attachments)))
	return id, nil
}

// UpdateProject edits text fields, drops the images named in ImagesToDelete and
// appends the new uploads. Dropped images are removed from the list even if
// deleting their blob fails.
func (s *ResearchService) UpdateProject(ctx context.Context, id string, req dto.UpdateProjectRequest, images []Upload) (*models.ResearchProject, error) {
	req.Heading, req.Description = trimmed(req.Heading), trimmed(req.Description)
	if req.Heading == nil && req.Description == nil && len(req.ImagesToDelete) == 0 && len(images) == 0 {
		return nil, appErrors.Validation("no fields to update")
	}
	if err := requireNonBlank("heading", req.Heading); err != nil {
		return nil, err
	}
	if err := requireNonBlank("description", req.Description); err != nil {
		return nil, err
	}

	project, err := s.projects.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "research project not found", "failed to load research project")
	}

	fields := make([]string, 0, 3)
	if req.Heading != nil {
		project.Heading = *req.Heading
		fields = append(fields, "heading")
	}
	if req.Description != nil {
		project.Description = *req.Description
		fields = append(fields, "description")
	}

	var removed, added []string
	if len(req.ImagesToDelete) > 0 || len(images) > 0 {
		drop := make(map[string]struct{}, len(req.ImagesToDelete))
		for _, p := range req.ImagesToDelete {
			drop[p] = struct{}{}
		}
		kept := make([]models.Attachment, 0, len(project.Images)+len(images))
		for _, img := range project.Images {
			if _, ok := drop[img.Path]; ok {
				removed = append(removed, img.Path)
				delete(drop, img.Path)
				continue
			}
			kept = append(kept, img)
		}
		for p := range drop {
			s.logger.Warn("ignoring image not attached to project", zap.String("project_id", id), zap.String("path", p))
		}

		uploaded, err := s.files.UploadAll(ctx, PrefixProjects, images)
		if err != nil {
			return nil, err
		}
		project.Images = append(kept, uploaded...)
		added = Paths(uploaded)
		fields = append(fields, "images")
	}

	if err := s.projects.Update(ctx, id, project, fields...); err != nil {
		s.files.Discard(context.WithoutCancel(ctx), added...)
		return nil, storeError(err, "research project not found", "failed to update research project")
	}
	s.files.Discard(ctx, removed...)
	s.cache.Invalidate(ctx, models.CollectionProjects)
	return project, nil
}

// DeleteProject removes every image blob and then the project.
func (s *ResearchService) DeleteProject(ctx context.Context, id string) error {
	project, err := s.projects.Get(ctx, id)
	if err != nil {
		return storeError(err, "research project not found", "failed to load research project")
	}
	s.files.Discard(ctx, Paths(project.Images)...)
	if err := s.projects.Delete(ctx, id); err != nil {
		return storeError(err, "research project not found", "failed to delete research project")
	}
	s.cache.Invalidate(ctx, models.CollectionProjects)
	s.logger.Info("research project deleted", zap.String("id", id))
	return nil
}
