// Package adminform holds the state machines behind the admin panel forms:
// an edit form that submits once at a time and a two-step delete.
package adminform

import (
	"context"
	"errors"
	"sync"

	"github.com/noah-isme/portfolio-api/pkg/client"
)

// State is the lifecycle position of a form.
type State int

const (
	StateIdle State = iota
	StateEditing
	StateSubmitting
	StateConfirmPending
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateConfirmPending:
		return "confirm-pending"
	default:
		return "unknown"
	}
}

var (
	// ErrBusy rejects a submit while another one is in flight.
	ErrBusy = errors.New("a submission is already in progress")
	// ErrNotEditing rejects a submit when no form is open.
	ErrNotEditing = errors.New("form is not open")
	// ErrNothingPending rejects a confirm with no delete requested.
	ErrNothingPending = errors.New("no deletion awaiting confirmation")
)

// SubmitFunc persists values. id is empty when creating.
type SubmitFunc[T any] func(ctx context.Context, id string, values T) error

// RefetchFunc reloads the list affected by a mutation.
type RefetchFunc func(ctx context.Context) error

// Message turns err into the text shown next to the form.
func Message(err error) string {
	var apiErr *client.APIError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, client.ErrSessionExpired):
		return "You must be logged in to perform this action."
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	default:
		return "Request failed, please try again."
	}
}

// Form tracks one add/edit form. Nothing is applied locally on success; the
// list is refetched instead.
type Form[T any] struct {
	submit  SubmitFunc[T]
	refetch RefetchFunc

	mu     sync.Mutex
	state  State
	id     string
	values T
	errMsg string
}

// NewForm wires a form to its persistence callbacks. refetch may be nil.
func NewForm[T any](submit SubmitFunc[T], refetch RefetchFunc) *Form[T] {
	return &Form[T]{submit: submit, refetch: refetch}
}

// Open starts editing. Pass an empty id to create a new entity.
func (f *Form[T]) Open(id string, values T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSubmitting {
		return ErrBusy
	}
	f.state, f.id, f.values, f.errMsg = StateEditing, id, values, ""
	return nil
}

// Edit mutates the values being edited.
func (f *Form[T]) Edit(change func(*T)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateEditing {
		return ErrNotEditing
	}
	change(&f.values)
	return nil
}

// Cancel closes the form without submitting.
func (f *Form[T]) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateEditing {
		f.reset()
	}
}

// Submit sends the values. On failure the form stays open with the error
// message; on success it closes and the list is refetched.
func (f *Form[T]) Submit(ctx context.Context) error {
	f.mu.Lock()
	switch f.state {
	case StateSubmitting:
		f.mu.Unlock()
		return ErrBusy
	case StateEditing:
	default:
		f.mu.Unlock()
		return ErrNotEditing
	}
	f.state, f.errMsg = StateSubmitting, ""
	id, values := f.id, f.values
	f.mu.Unlock()

	err := f.submit(ctx, id, values)

	f.mu.Lock()
	if err != nil {
		f.state, f.errMsg = StateEditing, Message(err)
		f.mu.Unlock()
		return err
	}
	f.reset()
	f.mu.Unlock()

	if f.refetch != nil {
		return f.refetch(ctx)
	}
	return nil
}

// State reports the current lifecycle state.
func (f *Form[T]) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Values returns a copy of the values being edited.
func (f *Form[T]) Values() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Error is the message of the last failed submit, empty otherwise.
func (f *Form[T]) Error() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

func (f *Form[T]) reset() {
	var zero T
	f.state, f.id, f.values, f.errMsg = StateIdle, "", zero, ""
}
