package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/models"
	"github.com/noah-isme/portfolio-api/internal/service"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
	"github.com/noah-isme/portfolio-api/pkg/response"
)

type courseService interface {
	List(ctx context.Context) ([]models.Course, error)
	Create(ctx context.Context, req dto.CreateCourseRequest, cover *service.Upload, pdfs []service.Upload) (string, error)
	Update(ctx context.Context, id string, req dto.UpdateCourseRequest, cover *service.Upload) (*models.Course, error)
	Delete(ctx context.Context, id string) error
	AddLecture(ctx context.Context, courseID string, req dto.CreateLectureRequest, pdf *service.Upload) (*models.Lecture, error)
	UpdateLecture(ctx context.Context, courseID string, index int, req dto.UpdateLectureRequest, pdf *service.Upload) (*models.Lecture, error)
	DeleteLecture(ctx context.Context, courseID string, index int, expectedID *string) error
}

// CourseHandler manages course and lecture endpoints.
type CourseHandler struct {
	service courseService
	forms   formParser
}

// NewCourseHandler constructs the handler.
func NewCourseHandler(service courseService, limits UploadLimits) *CourseHandler {
	return &CourseHandler{service: service, forms: newFormParser(limits)}
}

// List godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, courses, "Courses fetched successfully")
}

// Create godoc
// @Summary Create course
// @Tags Courses
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param course_code formData string true "Course code"
// @Param course_name formData string true "Course name"
// @Param description formData string false "Description"
// @Param venue formData string false "Venue"
// @Param prerequisites formData string false "JSON array of strings"
// @Param references formData string false "JSON array of strings"
// @Param resources formData string false "JSON array of strings"
// @Param lectures formData string false "JSON array of {name, video}"
// @Param cover_image formData file false "Cover image"
// @Param pdf formData file false "Lecture PDFs in lecture order"
// @Success 201 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	form, err := h.forms.parse(c, coverImageField, lecturePDFs)
	if err != nil {
		response.Error(c, err)
		return
	}
	req := dto.CreateCourseRequest{
		CourseCode:  form.Value("course_code"),
		CourseName:  form.Value("course_name"),
		Description: form.Value("description"),
		Venue:       form.Value("venue"),
	}
	for key, dest := range map[string]interface{}{
		"prerequisites": &req.Prerequisites,
		"references":    &req.References,
		"resources":     &req.Resources,
		"lectures":      &req.Lectures,
	} {
		if _, err := form.JSON(key, dest); err != nil {
			response.Error(c, err)
			return
		}
	}

	id, err := h.service.Create(c.Request.Context(), req, form.File(coverImageField), form.Files(lecturePDFs))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.CreatedResponse{ID: id}, "Course created successfully")
}

// Update godoc
// @Summary Update course
// @Tags Courses
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param cover_image formData file false "Replacement cover image"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	form, err := h.forms.parse(c, coverImageField)
	if err != nil {
		response.Error(c, err)
		return
	}
	req := dto.UpdateCourseRequest{
		CourseCode:  form.String("course_code"),
		CourseName:  form.String("course_name"),
		Description: form.String("description"),
		Venue:       form.String("venue"),
	}
	lists := []struct {
		key  string
		dest **[]string
	}{
		{"prerequisites", &req.Prerequisites},
		{"references", &req.References},
		{"resources", &req.Resources},
	}
	for _, list := range lists {
		var values []string
		sent, err := form.JSON(list.key, &values)
		if err != nil {
			response.Error(c, err)
			return
		}
		if sent {
			*list.dest = &values
		}
	}

	course, err := h.service.Update(c.Request.Context(), c.Param("id"), req, form.File(coverImageField))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, course, "Course updated successfully")
}

// Delete godoc
// @Summary Delete course and its attachments
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Course deleted successfully")
}

// AddLecture godoc
// @Summary Append lecture to course
// @Tags Courses
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param name formData string true "Lecture name"
// @Param video formData string false "Video URL"
// @Param pdf formData file false "Lecture PDF"
// @Success 201 {object} response.Envelope
// @Router /courses/{id}/lectures [post]
func (h *CourseHandler) AddLecture(c *gin.Context) {
	form, err := h.forms.parse(c, lecturePDF)
	if err != nil {
		response.Error(c, err)
		return
	}
	req := dto.CreateLectureRequest{Name: form.Value("name"), Video: form.String("video")}
	lecture, err := h.service.AddLecture(c.Request.Context(), c.Param("id"), req, form.File(lecturePDF))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, lecture, "Lecture added successfully")
}

// UpdateLecture godoc
// @Summary Update lecture at index
// @Tags Courses
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param lectureIndex path int true "Lecture index"
// @Param lecture_id formData string false "Expected lecture id at the index"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/lectures/{lectureIndex} [put]
func (h *CourseHandler) UpdateLecture(c *gin.Context) {
	index, err := lectureIndex(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	form, err := h.forms.parse(c, lecturePDF)
	if err != nil {
		response.Error(c, err)
		return
	}
	req := dto.UpdateLectureRequest{Name: form.String("name"), Video: form.String("video"), LectureID: form.String("lecture_id")}
	lecture, err := h.service.UpdateLecture(c.Request.Context(), c.Param("id"), index, req, form.File(lecturePDF))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, lecture, "Lecture updated successfully")
}

// DeleteLecture godoc
// @Summary Delete lecture at index
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param lectureIndex path int true "Lecture index"
// @Param lecture_id query string false "Expected lecture id at the index"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/lectures/{lectureIndex} [delete]
func (h *CourseHandler) DeleteLecture(c *gin.Context) {
	index, err := lectureIndex(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var expected *string
	if id, ok := c.GetQuery("lecture_id"); ok {
		expected = &id
	}
	if err := h.service.DeleteLecture(c.Request.Context(), c.Param("id"), index, expected); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Lecture deleted successfully")
}

func lectureIndex(c *gin.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("lectureIndex"))
	if err != nil {
		return 0, appErrors.Validation("invalid lecture index", appErrors.FieldError{Field: "lectureIndex", Message: "must be an integer"})
	}
	return index, nil
}
