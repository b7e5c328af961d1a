package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/models"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
)

func TestPublicationCreateThenList(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	id, err := f.publications.Create(ctx, "journals", dto.CreatePublicationRequest{Heading: "Deep Nets", Description: "Paper", Link: strPtr("https://doi.org/1")})
	require.NoError(t, err)

	items, err := f.publications.List(ctx, "journals")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.Publication{ID: id, Heading: "Deep Nets", Description: "Paper", Link: strPtr("https://doi.org/1")}, items[0])

	others, err := f.publications.List(ctx, "patents")
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestPublicationUnknownSection(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.publications.List(ctx, "letters")
	require.ErrorIs(t, err, appErrors.ErrNotFound)
	_, err = f.publications.Create(ctx, "letters", dto.CreatePublicationRequest{Heading: "x", Description: "y"})
	require.ErrorIs(t, err, appErrors.ErrNotFound)
	require.ErrorIs(t, f.publications.Delete(ctx, "letters", "id"), appErrors.ErrNotFound)
}

func TestPublicationValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.publications.Create(ctx, "thesis", dto.CreatePublicationRequest{Heading: " "})
	require.ErrorIs(t, err, appErrors.ErrValidation)

	id, err := f.publications.Create(ctx, "thesis", dto.CreatePublicationRequest{Heading: "Thesis", Description: "About"})
	require.NoError(t, err)
	_, err = f.publications.Update(ctx, "thesis", id, dto.UpdatePublicationRequest{})
	require.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestPublicationUpdateIsPartial(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id, err := f.publications.Create(ctx, "conferences", dto.CreatePublicationRequest{Heading: "Talk", Description: "Keynote"})
	require.NoError(t, err)

	updated, err := f.publications.Update(ctx, "conferences", id, dto.UpdatePublicationRequest{Link: strPtr("https://conf")})
	require.NoError(t, err)
	assert.Equal(t, "Talk", updated.Heading)
	assert.Equal(t, "Keynote", updated.Description)
	assert.Equal(t, "https://conf", *updated.Link)

	_, err = f.publications.Update(ctx, "conferences", "missing", dto.UpdatePublicationRequest{Heading: strPtr("x")})
	require.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestPublicationDeleteInvalidatesCache(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id, err := f.publications.Create(ctx, "journals", dto.CreatePublicationRequest{Heading: "A", Description: "B"})
	require.NoError(t, err)

	items, err := f.publications.List(ctx, "journals")
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, f.publications.Delete(ctx, "journals", id))
	items, err = f.publications.List(ctx, "journals")
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Contains(t, f.cacheRepo.deleted, ListKey(models.SectionJournals.Collection()))

	require.ErrorIs(t, f.publications.Delete(ctx, "journals", id), appErrors.ErrNotFound)
}
