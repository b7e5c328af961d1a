package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/models"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	Get(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) (string, error)
	Update(ctx context.Context, id string, course *models.Course, fields ...string) error
	Delete(ctx context.Context, id string) error
}

// CourseService manages courses and the lectures embedded in them.
type CourseService struct {
	repo      courseRepository
	files     *Attachments
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewCourseService creates a course service.
func NewCourseService(repo courseRepository, files *Attachments, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, files: files, cache: cache, validator: validate, logger: logger, now: time.Now}
}

// List returns every course.
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := cachedList(ctx, s.cache, models.CollectionCourses, s.repo.List)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list courses")
	}
	for i := range courses {
		courses[i].Normalize()
	}
	return courses, nil
}

// Get returns a course by id.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "course not found", "failed to load course")
	}
	course.Normalize()
	return course, nil
}

// Create stores a course. pdfs are matched to req.Lectures by position.
func (s *CourseService) Create(ctx context.Context, req dto.CreateCourseRequest, cover *Upload, pdfs []Upload) (string, error) {
	req.CourseCode = strings.TrimSpace(req.CourseCode)
	req.CourseName = strings.TrimSpace(req.CourseName)
	for i := range req.Lectures {
		req.Lectures[i].Name = strings.TrimSpace(req.Lectures[i].Name)
	}
	if err := s.validator.Struct(req); err != nil {
		return "", validationError(err, "invalid course payload")
	}
	if len(pdfs) > len(req.Lectures) {
		return "", appErrors.Validation("more lecture files than lectures", appErrors.FieldError{Field: "pdf", Message: "each file needs a lecture entry"})
	}

	now := s.now().UTC()
	course := &models.Course{
		CourseCode:    req.CourseCode,
		CourseName:    req.CourseName,
		Description:   strings.TrimSpace(req.Description),
		Venue:         strings.TrimSpace(req.Venue),
		Prerequisites: req.Prerequisites,
		References:    req.References,
		Resources:     req.Resources,
		CreatedAt:     &now,
		UpdatedAt:     &now,
	}

	var uploaded []string
	if cover != nil {
		att, err := s.files.Upload(ctx, PrefixCovers, *cover)
		if err != nil {
			return "", appErrors.Storage(err, "failed to upload cover image")
		}
		course.CoverImage, course.CoverImagePath = &att.URL, &att.Path
		uploaded = append(uploaded, att.Path)
	}

	attachments, err := s.files.UploadAll(ctx, PrefixLectures, pdfs)
	if err != nil {
		s.files.Discard(context.WithoutCancel(ctx), uploaded...)
		return "", err
	}
	uploaded = append(uploaded, Paths(attachments)...)

	course.Lectures = make([]models.Lecture, len(req.Lectures))
	for i, in := range req.Lectures {
		lecture := models.Lecture{ID: uuid.NewString(), Name: in.Name, Video: optional(in.Video), CreatedAt: now}
		if i < len(attachments) {
			att := attachments[i]
			lecture.PDF, lecture.PDFPath = &att.URL, &att.Path
		}
		course.Lectures[i] = lecture
	}
	course.Normalize()

	id, err := s.repo.Create(ctx, course)
	if err != nil {
		s.files.Discard(context.WithoutCancel(ctx), uploaded...)
		return "", appErrors.Internal(err, "failed to create course")
	}
	s.cache.Invalidate(ctx, models.CollectionCourses)
	s.logger.Info("course created", zap.String("course_id", id), zap.Int("lectures", len(course.Lectures)))
	return id, nil
}

// Update changes the supplied scalar and list fields and optionally swaps the cover image.
// The previous cover blob is removed only after the document write succeeds.
func (s *CourseService) Update(ctx context.Context, id string, req dto.UpdateCourseRequest, cover *Upload) (*models.Course, error) {
	req.CourseCode, req.CourseName = trimmed(req.CourseCode), trimmed(req.CourseName)
	req.Description, req.Venue = trimmed(req.Description), trimmed(req.Venue)
	if err := requireNonBlank("course_code", req.CourseCode); err != nil {
		return nil, err
	}
	if err := requireNonBlank("course_name", req.CourseName); err != nil {
		return nil, err
	}

	course, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "course not found", "failed to load course")
	}

	fields := make([]string, 0, 9)
	setString := func(field string, dst *string, src *string) {
		if src != nil {
			*dst = *src
			fields = append(fields, field)
		}
	}
	setList := func(field string, dst *[]string, src *[]string) {
		if src != nil {
			*dst = *src
			if *dst == nil {
				*dst = []string{}
			}
			fields = append(fields, field)
		}
	}
	setString("course_code", &course.CourseCode, req.CourseCode)
	setString("course_name", &course.CourseName, req.CourseName)
	setString("description", &course.Description, req.Description)
	setString("venue", &course.Venue, req.Venue)
	setList("prerequisites", &course.Prerequisites, req.Prerequisites)
	setList("references", &course.References, req.References)
	setList("resources", &course.Resources, req.Resources)

	if len(fields) == 0 && cover == nil {
		return nil, appErrors.Validation("no fields to update")
	}

	var replaced, added []string
	if cover != nil {
		att, err := s.files.Upload(ctx, PrefixCovers, *cover)
		if err != nil {
			return nil, appErrors.Storage(err, "failed to upload cover image")
		}
		if course.CoverImagePath != nil {
			replaced = append(replaced, *course.CoverImagePath)
		}
		added = append(added, att.Path)
		course.CoverImage, course.CoverImagePath = &att.URL, &att.Path
		fields = append(fields, "cover_image", "cover_image_path")
	}

	now := s.now().UTC()
	course.UpdatedAt = &now
	fields = append(fields, "updated_at")

	if err := s.repo.Update(ctx, id, course, fields...); err != nil {
		s.files.Discard(context.WithoutCancel(ctx), added...)
		return nil, storeError(err, "course not found", "failed to update course")
	}
	s.files.Discard(ctx, replaced...)
	s.cache.Invalidate(ctx, models.CollectionCourses)
	course.Normalize()
	return course, nil
}

// Delete removes the course after deleting every blob it references.
// Blob failures are logged and do not block the document removal.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	course, err := s.repo.Get(ctx, id)
	if err != nil {
		return storeError(err, "course not found", "failed to load course")
	}
	s.files.Discard(ctx, course.AttachmentPaths()...)
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "course not found", "failed to delete course")
	}
	s.cache.Invalidate(ctx, models.CollectionCourses)
	s.logger.Info("course deleted", zap.String("course_id", id))
	return nil
}
