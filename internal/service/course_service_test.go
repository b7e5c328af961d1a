package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/models"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
)

func createCourse(t *testing.T, f *fixture, lectures []dto.LectureInput, cover *Upload, pdfs ...Upload) string {
	t.Helper()
	id, err := f.courses.Create(context.Background(), dto.CreateCourseRequest{
		CourseCode:    "EE101",
		CourseName:    "Circuits",
		Description:   "Intro course",
		Venue:         "Hall A",
		Prerequisites: []string{"Calculus"},
		Lectures:      lectures,
	}, cover, pdfs)
	require.NoError(t, err)
	return id
}

func TestCourseCreateMatchesFilesToLectures(t *testing.T) {
	f := newFixture()
	cover := imageUpload("cover.png")
	id := createCourse(t, f,
		[]dto.LectureInput{{Name: "Ohm"}, {Name: "Kirchhoff", Video: strPtr("https://v")}, {Name: "Reading"}},
		&cover, pdfUpload("ohm.pdf"), pdfUpload("kirchhoff.pdf"))

	course, err := f.courses.Get(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, course.Lectures, 3)

	require.NotNil(t, course.CoverImagePath)
	assert.True(t, strings.HasPrefix(*course.CoverImagePath, "covers/"))
	assert.Equal(t, "https://blobs.test/"+*course.CoverImagePath, *course.CoverImage)

	require.NotNil(t, course.Lectures[0].PDFPath)
	assert.Contains(t, *course.Lectures[0].PDFPath, "ohm.pdf")
	assert.Contains(t, *course.Lectures[1].PDFPath, "kirchhoff.pdf")
	assert.Nil(t, course.Lectures[2].PDF)
	assert.Equal(t, "https://v", *course.Lectures[1].Video)
	for _, lecture := range course.Lectures {
		assert.NotEmpty(t, lecture.ID)
		assert.False(t, lecture.CreatedAt.IsZero())
	}
	assert.Equal(t, []string{}, course.References)
	assert.Len(t, f.blobs.paths(), 3)
}

func TestCourseCreateRequiresCodeAndName(t *testing.T) {
	f := newFixture()
	cover := imageUpload("cover.png")
	_, err := f.courses.Create(context.Background(), dto.CreateCourseRequest{CourseName: "  "}, &cover, nil)
	require.ErrorIs(t, err, appErrors.ErrValidation)

	appErr := appErrors.FromError(err)
	fields := make([]string, 0, len(appErr.Errors))
	for _, fe := range appErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"course_code", "course_name"}, fields)
	assert.Empty(t, f.blobs.paths(), "nothing may be uploaded for an invalid course")
}

func TestCourseCreateRejectsExtraFiles(t *testing.T) {
	f := newFixture()
	_, err := f.courses.Create(context.Background(), dto.CreateCourseRequest{CourseCode: "A", CourseName: "B"}, nil, []Upload{pdfUpload("x.pdf")})
	require.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestCourseCreateCompensatesFailedUpload(t *testing.T) {
	f := newFixture()
	f.blobs.failSaveOn = "broken.pdf"
	cover := imageUpload("cover.png")

	_, err := f.courses.Create(context.Background(), dto.CreateCourseRequest{
		CourseCode: "EE101",
		CourseName: "Circuits",
		Lectures:   []dto.LectureInput{{Name: "a"}, {Name: "b"}, {Name: "c"}},
	}, &cover, []Upload{pdfUpload("fine.pdf"), pdfUpload("broken.pdf"), pdfUpload("also-fine.pdf")})
	require.ErrorIs(t, err, appErrors.ErrStorage)

	assert.Empty(t, f.blobs.paths(), "uploaded blobs must be removed when the request fails")
	courses, err := f.courses.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestCourseUpdateOnlyTouchesSuppliedFields(t *testing.T) {
	f := newFixture()
	id := createCourse(t, f, []dto.LectureInput{{Name: "Ohm"}}, nil)

	updated, err := f.courses.Update(context.Background(), id, dto.UpdateCourseRequest{Venue: strPtr("Hall B")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Hall B", updated.Venue)

	course, err := f.courses.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Hall B", course.Venue)
	assert.Equal(t, "EE101", course.CourseCode)
	assert.Equal(t, "Circuits", course.CourseName)
	assert.Equal(t, "Intro course", course.Description)
	assert.Equal(t, []string{"Calculus"}, course.Prerequisites)
	assert.Len(t, course.Lectures, 1)
}

func TestCourseUpdateReplacesCoverAfterWrite(t *testing.T) {
	f := newFixture()
	oldCover := imageUpload("old.png")
	id := createCourse(t, f, nil, &oldCover)
	before, err := f.courses.Get(context.Background(), id)
	require.NoError(t, err)

	newCover := imageUpload("new.png")
	after, err := f.courses.Update(context.Background(), id, dto.UpdateCourseRequest{}, &newCover)
	require.NoError(t, err)
	assert.NotEqual(t, *before.CoverImagePath, *after.CoverImagePath)
	assert.Equal(t, []string{*before.CoverImagePath}, f.blobs.deletedPaths())
	assert.Equal(t, []string{*after.CoverImagePath}, f.blobs.paths())
}

func TestCourseUpdateErrors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.courses.Update(ctx, "missing", dto.UpdateCourseRequest{Venue: strPtr("x")}, nil)
	require.ErrorIs(t, err, appErrors.ErrNotFound)

	id := createCourse(t, f, nil, nil)
	_, err = f.courses.Update(ctx, id, dto.UpdateCourseRequest{}, nil)
	require.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = f.courses.Update(ctx, id, dto.UpdateCourseRequest{CourseName: strPtr(" ")}, nil)
	require.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestCourseDeleteRemovesBlobsEvenWhenOneFails(t *testing.T) {
	f := newFixture()
	cover := imageUpload("cover.png")
	id := createCourse(t, f, []dto.LectureInput{{Name: "a"}, {Name: "b"}}, &cover, pdfUpload("a.pdf"), pdfUpload("b.pdf"))
	course, err := f.courses.Get(context.Background(), id)
	require.NoError(t, err)
	f.blobs.failDelete[*course.Lectures[0].PDFPath] = true

	require.NoError(t, f.courses.Delete(context.Background(), id))
	assert.ElementsMatch(t, course.AttachmentPaths(), f.blobs.deletedPaths())

	_, err = f.courses.Get(context.Background(), id)
	require.ErrorIs(t, err, appErrors.ErrNotFound)
	require.ErrorIs(t, f.courses.Delete(context.Background(), id), appErrors.ErrNotFound)
}

func TestLectureLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := createCourse(t, f, []dto.LectureInput{{Name: "first"}}, nil)

	pdf := pdfUpload("second.pdf")
	added, err := f.courses.AddLecture(ctx, id, dto.CreateLectureRequest{Name: "second"}, &pdf)
	require.NoError(t, err)
	require.NotNil(t, added.PDFPath)

	course, err := f.courses.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, course.Lectures, 2)
	assert.Equal(t, "second", course.Lectures[1].Name)

	replacement := pdfUpload("second-v2.pdf")
	updated, err := f.courses.UpdateLecture(ctx, id, 1, dto.UpdateLectureRequest{Name: strPtr("second, revised")}, &replacement)
	require.NoError(t, err)
	assert.Equal(t, "second, revised", updated.Name)
	assert.Contains(t, *updated.PDFPath, "second-v2.pdf")
	assert.Equal(t, []string{*added.PDFPath}, f.blobs.deletedPaths())

	require.NoError(t, f.courses.DeleteLecture(ctx, id, 0, nil))
	course, err = f.courses.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, course.Lectures, 1)
	assert.Equal(t, "second, revised", course.Lectures[0].Name)
}

func TestLectureIndexErrors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := createCourse(t, f, []dto.LectureInput{{Name: "only"}}, nil)

	_, err := f.courses.UpdateLecture(ctx, id, 5, dto.UpdateLectureRequest{Name: strPtr("x")}, nil)
	require.ErrorIs(t, err, appErrors.ErrNotFound)
	require.ErrorIs(t, f.courses.DeleteLecture(ctx, id, -1, nil), appErrors.ErrNotFound)
	require.ErrorIs(t, f.courses.DeleteLecture(ctx, id, 0, strPtr("someone-else")), appErrors.ErrConflict)

	_, err = f.courses.UpdateLecture(ctx, id, 0, dto.UpdateLectureRequest{}, nil)
	require.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = f.courses.AddLecture(ctx, "missing", dto.CreateLectureRequest{Name: "x"}, nil)
	require.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = f.courses.AddLecture(ctx, id, dto.CreateLectureRequest{}, nil)
	require.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestCourseListServedFromCacheUntilMutation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	createCourse(t, f, nil, nil)

	first, err := f.courses.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	_, cached := f.cacheRepo.values[ListKey(models.CollectionCourses)]
	require.True(t, cached)

	createCourse(t, f, nil, nil)
	second, err := f.courses.List(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 2)
}
