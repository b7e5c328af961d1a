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

type watchRepository interface {
	Category(category models.WatchCategory) repository.Collection[models.WatchItem]
}

// WatchService manages the watch-out-for lists.
type WatchService struct {
	repo      watchRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewWatchService creates a watch service.
func NewWatchService(repo watchRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *WatchService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WatchService{repo: repo, cache: cache, validator: validate, logger: logger}
}

func (s *WatchService) category(raw string) (repository.Collection[models.WatchItem], error) {
	category := models.WatchCategory(raw)
	if !category.Valid() {
		return repository.Collection[models.WatchItem]{}, appErrors.Clone(appErrors.ErrNotFound, "watch category not found")
	}
	return s.repo.Category(category), nil
}

// List returns the items of category.
func (s *WatchService) List(ctx context.Context, category string) ([]models.WatchItem, error) {
	items, err := s.category(category)
	if err != nil {
		return nil, err
	}
	list, err := cachedList(ctx, s.cache, items.Path(), items.List)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list watch items")
	}
	return list, nil
}

// Create adds an item to category.
func (s *WatchService) Create(ctx context.Context, category string, req dto.CreateWatchItemRequest) (string, error) {
	items, err := s.category(category)
	if err != nil {
		return "", err
	}
	req.Heading = strings.TrimSpace(req.Heading)
	if err := s.validator.Struct(req); err != nil {
		return "", validationError(err, "invalid watch item payload")
	}
	id, err := items.Create(ctx, &models.WatchItem{Heading: req.Heading, Link: optional(req.Link)})
	if err != nil {
		return "", appErrors.Internal(err, "failed to create watch item")
	}
	s.cache.Invalidate(ctx, items.Path())
	return id, nil
}

// Update overwrites the supplied fields of an item.
func (s *WatchService) Update(ctx context.Context, category, id string, req dto.UpdateWatchItemRequest) (*models.WatchItem, error) {
	items, err := s.category(category)
	if err != nil {
		return nil, err
	}
	req.Heading = trimmed(req.Heading)
	if req.Heading == nil && req.Link == nil {
		return nil, appErrors.Validation("no fields to update")
	}
	if err := requireNonBlank("heading", req.Heading); err != nil {
		return nil, err
	}

	current, err := items.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "watch item not found", "failed to load watch item")
	}
	fields := make([]string, 0, 2)
	if req.Heading != nil {
		current.Heading = *req.Heading
		fields = append(fields, "heading")
	}
	if req.Link != nil {
		current.Link = optional(req.Link)
		fields = append(fields, "link")
	}
	if err := items.Update(ctx, id, current, fields...); err != nil {
		return nil, storeError(err, "watch item not found", "failed to update watch item")
	}
	s.cache.Invalidate(ctx, items.Path())
	return current, nil
}

// Delete removes an item.
func (s *WatchService) Delete(ctx context.Context, category, id string) error {
	items, err := s.category(category)
	if err != nil {
		return err
	}
	if err := items.Delete(ctx, id); err != nil {
		return storeError(err, "watch item not found", "failed to delete watch item")
	}
	s.cache.Invalidate(ctx, items.Path())
	return nil
}
