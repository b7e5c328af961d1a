package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/models"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
)

// AddLecture appends a lecture, uploading its PDF first when present.
func (s *CourseService) AddLecture(ctx context.Context, courseID string, req dto.CreateLectureRequest, pdf *Upload) (*models.Lecture, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid lecture payload")
	}

	course, err := s.repo.Get(ctx, courseID)
	if err != nil {
		return nil, storeError(err, "course not found", "failed to load course")
	}

	lecture := models.Lecture{ID: uuid.NewString(), Name: req.Name, Video: optional(req.Video), CreatedAt: s.now().UTC()}
	var added []string
	if pdf != nil {
		att, err := s.files.Upload(ctx, PrefixLectures, *pdf)
		if err != nil {
			return nil, appErrors.Storage(err, "failed to upload lecture file")
		}
		lecture.PDF, lecture.PDFPath = &att.URL, &att.Path
		added = append(added, att.Path)
	}

	course.Lectures = append(course.Lectures, lecture)
	if err := s.writeLectures(ctx, courseID, course); err != nil {
		s.files.Discard(context.WithoutCancel(ctx), added...)
		return nil, err
	}
	s.logger.Info("lecture added", zap.String("course_id", courseID), zap.Int("index", len(course.Lectures)-1))
	return &lecture, nil
}

// UpdateLecture edits the lecture at index. A new PDF replaces the old blob,
// which is removed once the course document is written.
func (s *CourseService) UpdateLecture(ctx context.Context, courseID string, index int, req dto.UpdateLectureRequest, pdf *Upload) (*models.Lecture, error) {
	req.Name = trimmed(req.Name)
	if err := requireNonBlank("name", req.Name); err != nil {
		return nil, err
	}
	if req.Name == nil && req.Video == nil && pdf == nil {
		return nil, appErrors.Validation("no fields to update")
	}

	course, err := s.repo.Get(ctx, courseID)
	if err != nil {
		return nil, storeError(err, "course not found", "failed to load course")
	}
	lecture, err := lectureAt(course, index, req.LectureID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		lecture.Name = *req.Name
	}
	if req.Video != nil {
		lecture.Video = optional(req.Video)
	}

	var replaced, added []string
	if pdf != nil {
		att, err := s.files.Upload(ctx, PrefixLectures, *pdf)
		if err != nil {
			return nil, appErrors.Storage(err, "failed to upload lecture file")
		}
		if lecture.PDFPath != nil {
			replaced = append(replaced, *lecture.PDFPath)
		}
		added = append(added, att.Path)
		lecture.PDF, lecture.PDFPath = &att.URL, &att.Path
	}

	if err := s.writeLectures(ctx, courseID, course); err != nil {
		s.files.Discard(context.WithoutCancel(ctx), added...)
		return nil, err
	}
	s.files.Discard(ctx, replaced...)
	updated := *lecture
	return &updated, nil
}

// DeleteLecture removes the lecture at index and its PDF blob.
func (s *CourseService) DeleteLecture(ctx context.Context, courseID string, index int, expectedID *string) error {
	course, err := s.repo.Get(ctx, courseID)
	if err != nil {
		return storeError(err, "course not found", "failed to load course")
	}
	lecture, err := lectureAt(course, index, expectedID)
	if err != nil {
		return err
	}
	if lecture.PDFPath != nil {
		s.files.Discard(ctx, *lecture.PDFPath)
	}

	course.Lectures = append(course.Lectures[:index:index], course.Lectures[index+1:]...)
	if err := s.writeLectures(ctx, courseID, course); err != nil {
		return err
	}
	s.logger.Info("lecture deleted", zap.String("course_id", courseID), zap.Int("index", index))
	return nil
}

func (s *CourseService) writeLectures(ctx context.Context, courseID string, course *models.Course) error {
	now := s.now().UTC()
	course.UpdatedAt = &now
	course.Normalize()
	if err := s.repo.Update(ctx, courseID, course, "lectures", "updated_at"); err != nil {
		return storeError(err, "course not found", "failed to save lectures")
	}
	s.cache.Invalidate(ctx, models.CollectionCourses)
	return nil
}

// lectureAt resolves index, optionally guarding against a concurrent reorder.
func lectureAt(course *models.Course, index int, expectedID *string) (*models.Lecture, error) {
	if index < 0 || index >= len(course.Lectures) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("lecture %d not found", index))
	}
	lecture := &course.Lectures[index]
	if expectedID != nil && *expectedID != "" && *expectedID != lecture.ID {
		return nil, appErrors.Clone(appErrors.ErrConflict, "lecture at index no longer matches lecture_id")
	}
	return lecture, nil
}
