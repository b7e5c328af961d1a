package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/models"
	"github.com/noah-isme/portfolio-api/internal/repository"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
)

type publicationRepository interface {
	Section(section models.PublicationSection) repository.Collection[models.Publication]
}

// PublicationService manages the four publication lists.
type PublicationService struct {
	repo      publicationRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPublicationService creates a publication service.
func NewPublicationService(repo publicationRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *PublicationService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublicationService{repo: repo, cache: cache, validator: validate, logger: logger}
}

func (s *PublicationService) section(raw string) (repository.Collection[models.Publication], error) {
	section := models.PublicationSection(raw)
	if !section.Valid() {
		return repository.Collection[models.Publication]{}, appErrors.Clone(appErrors.ErrNotFound, "publication section not found")
	}
	return s.repo.Section(section), nil
}

// List returns the publications of section.
func (s *PublicationService) List(ctx context.Context, section string) ([]models.Publication, error) {
	items, err := s.section(section)
	if err != nil {
		return nil, err
	}
	list, err := cachedList(ctx, s.cache, items.Path(), items.List)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list publications")
	}
	return list, nil
}

// Create adds a publication to section.
func (s *PublicationService) Create(ctx context.Context, section string, req dto.CreatePublicationRequest) (string, error) {
	items, err := s.section(section)
	if err != nil {
		return "", err
	}
	req.Heading = strings.TrimSpace(req.Heading)
	req.Description = strings.TrimSpace(req.Description)
	if err := s.validator.Struct(req); err != nil {
		return "", validationError(err, "invalid publication payload")
	}
	id, err := items.Create(ctx, &models.Publication{Heading: req.Heading, Description: req.Description, Link: optional(req.Link)})
	if err != nil {
		return "", appErrors.Internal(err, "failed to create publication")
	}
	s.cache.Invalidate(ctx, items.Path())
	s.logger.Info("publication created", zap.String("section", section), zap.String("id", id))
	return id, nil
}

// Update overwrites the supplied fields of a publication.
func (s *PublicationService) Update(ctx context.Context, section, id string, req dto.UpdatePublicationRequest) (*models.Publication, error) {
	items, err := s.section(section)
	if err != nil {
		return nil, err
	}
	req.Heading, req.Description = trimmed(req.Heading), trimmed(req.Description)
	if req.Heading == nil && req.Description == nil && req.Link == nil {
		return nil, appErrors.Validation("no fields to update")
	}
	if err := requireNonBlank("heading", req.Heading); err != nil {
		return nil, err
	}
	if err := requireNonBlank("description", req.Description); err != nil {
		return nil, err
	}

	current, err := items.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "publication not found", "failed to load publication")
	}
	fields := make([]string, 0, 3)
	if req.Heading != nil {
		current.Heading = *req.Heading
		fields = append(fields, "heading")
	}
	if req.Description != nil {
		current.Description = *req.Description
		fields = append(fields, "description")
	}
	if req.Link != nil {
		current.Link = optional(req.Link)
		fields = append(fields, "link")
	}
	if err := items.Update(ctx, id, current, fields...); err != nil {
		return nil, storeError(err, "publication not found", "failed to update publication")
	}
	s.cache.Invalidate(ctx, items.Path())
	return current, nil
}

// Delete removes a publication.
func (s *PublicationService) Delete(ctx context.Context, section, id string) error {
	items, err := s.section(section)
	if err != nil {
		return err
	}
	if err := items.Delete(ctx, id); err != nil {
		return storeError(err, "publication not found", "failed to delete publication")
	}
	s.cache.Invalidate(ctx, items.Path())
	return nil
}
