package adminform

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/portfolio-api/pkg/client"
)

type publicationForm struct {
	Heading     string
	Description string
}

func TestFormSuccessClosesAndRefetches(t *testing.T) {
	var submitted []publicationForm
	refetches := 0
	form := NewForm(func(_ context.Context, id string, v publicationForm) error {
		assert.Empty(t, id)
		submitted = append(submitted, v)
		return nil
	}, func(context.Context) error {
		refetches++
		return nil
	})

	assert.Equal(t, StateIdle, form.State())
	require.NoError(t, form.Open("", publicationForm{}))
	require.NoError(t, form.Edit(func(v *publicationForm) { v.Heading, v.Description = "X", "Y" }))
	require.NoError(t, form.Submit(context.Background()))

	assert.Equal(t, StateIdle, form.State())
	assert.Equal(t, []publicationForm{{Heading: "X", Description: "Y"}}, submitted)
	assert.Equal(t, 1, refetches)
	assert.Equal(t, publicationForm{}, form.Values())
}

func TestFormFailureStaysOpenWithMessage(t *testing.T) {
	refetches := 0
	form := NewForm(func(context.Context, string, publicationForm) error {
		return &client.APIError{Status: http.StatusBadRequest, Message: "heading is required"}
	}, func(context.Context) error {
		refetches++
		return nil
	})

	require.NoError(t, form.Open("p1", publicationForm{Description: "Y"}))
	err := form.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, StateEditing, form.State())
	assert.Equal(t, "heading is required", form.Error())
	assert.Equal(t, "Y", form.Values().Description)
	assert.Zero(t, refetches)
}

func TestFormRejectsConcurrentSubmit(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	form := NewForm(func(context.Context, string, publicationForm) error {
		close(entered)
		<-release
		return nil
	}, nil)
	require.NoError(t, form.Open("", publicationForm{Heading: "X"}))

	done := make(chan error, 1)
	go func() { done <- form.Submit(context.Background()) }()
	<-entered

	assert.Equal(t, StateSubmitting, form.State())
	assert.ErrorIs(t, form.Submit(context.Background()), ErrBusy)
	assert.ErrorIs(t, form.Open("", publicationForm{}), ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StateIdle, form.State())
}

func TestFormSubmitRequiresOpen(t *testing.T) {
	form := NewForm(func(context.Context, string, publicationForm) error { return nil }, nil)
	assert.ErrorIs(t, form.Submit(context.Background()), ErrNotEditing)
	assert.ErrorIs(t, form.Edit(func(*publicationForm) {}), ErrNotEditing)

	require.NoError(t, form.Open("", publicationForm{Heading: "X"}))
	form.Cancel()
	assert.Equal(t, StateIdle, form.State())
}

func TestMessage(t *testing.T) {
	assert.Empty(t, Message(nil))
	assert.Equal(t, "You must be logged in to perform this action.", Message(client.ErrSessionExpired))
	assert.Equal(t, "course not found", Message(&client.APIError{Status: 404, Message: "course not found"}))
	assert.Equal(t, "Request failed, please try again.", Message(errors.New("dial tcp: refused")))
}

func TestDeleteConfirmationFlow(t *testing.T) {
	var deleted []string
	refetches := 0
	fail := true
	d := NewDeleteConfirmation(func(_ context.Context, id string) error {
		if fail {
			return client.ErrSessionExpired
		}
		deleted = append(deleted, id)
		return nil
	}, func(context.Context) error {
		refetches++
		return nil
	})

	assert.ErrorIs(t, d.Confirm(context.Background()), ErrNothingPending)

	require.NoError(t, d.Request("a"))
	d.Cancel()
	assert.Equal(t, StateIdle, d.State())
	assert.Empty(t, d.Pending())

	require.NoError(t, d.Request("b"))
	assert.Equal(t, StateConfirmPending, d.State())
	require.Error(t, d.Confirm(context.Background()))
	assert.Equal(t, StateConfirmPending, d.State())
	assert.Equal(t, "You must be logged in to perform this action.", d.Error())
	assert.Zero(t, refetches)

	fail = false
	require.NoError(t, d.Confirm(context.Background()))
	assert.Equal(t, StateIdle, d.State())
	assert.Equal(t, []string{"b"}, deleted)
	assert.Equal(t, 1, refetches)
}
