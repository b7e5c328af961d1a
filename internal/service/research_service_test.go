package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/portfolio-api/internal/dto"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
)

func TestInterestsEmptyBeforeFirstSave(t *testing.T) {
	f := newFixture()
	got, err := f.research.Interests(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSaveInterestsAssignsIDs(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.research.SaveInterests(ctx, dto.SaveInterestsRequest{
		Heading:   "H",
		Paragraph: "P",
		Interests: []dto.InterestInput{{Heading: "A", Description: "B"}, {ID: "kept", Heading: "C"}},
	})
	require.NoError(t, err)

	got, err := f.research.Interests(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "H", got[0].Heading)
	require.Len(t, got[0].Interests, 2)
	assert.NotEmpty(t, got[0].Interests[0].ID)
	assert.Equal(t, "kept", got[0].Interests[1].ID)
}

func TestSaveInterestsValidation(t *testing.T) {
	f := newFixture()
	_, err := f.research.SaveInterests(context.Background(), dto.SaveInterestsRequest{Heading: "H", Paragraph: "P"})
	require.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = f.research.SaveInterests(context.Background(), dto.SaveInterestsRequest{Heading: "H", Paragraph: "P", Interests: []dto.InterestInput{}})
	require.NoError(t, err)
}

func TestProjectCreateAndDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	id, err := f.research.CreateProject(ctx, dto.CreateProjectRequest{Heading: "Robot", Description: "Arm"}, []Upload{imageUpload("a.png"), imageUpload("b.png")})
	require.NoError(t, err)

	projects, err := f.research.Projects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Len(t, projects[0].Images, 2)
	assert.Contains(t, projects[0].Images[0].Path, "a.png")
	assert.Contains(t, projects[0].Images[1].Path, "b.png")
	assert.False(t, projects[0].CreatedAt.IsZero())

	require.NoError(t, f.research.DeleteProject(ctx, id))
	assert.Empty(t, f.blobs.paths())
	require.ErrorIs(t, f.research.DeleteProject(ctx, id), appErrors.ErrNotFound)
}

func TestProjectCreateWithoutImages(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.research.CreateProject(ctx, dto.CreateProjectRequest{Heading: "Robot", Description: "Arm"}, nil)
	require.NoError(t, err)

	projects, err := f.research.Projects(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, len(projects[0].Images))
	assert.NotNil(t, projects[0].Images)

	_, err = f.research.CreateProject(ctx, dto.CreateProjectRequest{Heading: "Robot"}, nil)
	require.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestProjectUpdateDropsImagesEvenWhenBlobDeleteFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id, err := f.research.CreateProject(ctx, dto.CreateProjectRequest{Heading: "Robot", Description: "Arm"}, []Upload{imageUpload("a.png"), imageUpload("b.png")})
	require.NoError(t, err)
	projects, err := f.research.Projects(ctx)
	require.NoError(t, err)
	first := projects[0].Images[0]
	f.blobs.failDelete[first.Path] = true

	updated, err := f.research.UpdateProject(ctx, id, dto.UpdateProjectRequest{
		ImagesToDelete: []string{first.Path, "research/projects/not-mine.png"},
	}, []Upload{imageUpload("c.png")})
	require.NoError(t, err)
	require.Len(t, updated.Images, 2)
	assert.Contains(t, updated.Images[0].Path, "b.png")
	assert.Contains(t, updated.Images[1].Path, "c.png")
	assert.Equal(t, []string{first.Path}, f.blobs.deletedPaths())

	projects, err = f.research.Projects(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated.Images, projects[0].Images)
}

func TestProjectUpdateErrors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.research.UpdateProject(ctx, "missing", dto.UpdateProjectRequest{Heading: strPtr("x")}, nil)
	require.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = f.research.UpdateProject(ctx, "missing", dto.UpdateProjectRequest{}, nil)
	require.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestProjectUpdateFailedUploadKeepsDocument(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id, err := f.research.CreateProject(ctx, dto.CreateProjectRequest{Heading: "Robot", Description: "Arm"}, []Upload{imageUpload("a.png")})
	require.NoError(t, err)
	f.blobs.failSaveOn = "bad.png"

	_, err = f.research.UpdateProject(ctx, id, dto.UpdateProjectRequest{Heading: strPtr("New")}, []Upload{imageUpload("ok.png"), imageUpload("bad.png")})
	require.ErrorIs(t, err, appErrors.ErrStorage)

	projects, err := f.research.Projects(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Robot", projects[0].Heading)
	assert.Len(t, f.blobs.paths(), 1)
}
