package adminform

import (
	"context"
	"sync"
)

// DeleteFunc removes the entity id.
type DeleteFunc func(ctx context.Context, id string) error

// DeleteConfirmation requires an explicit confirm before deleting.
type DeleteConfirmation struct {
	remove  DeleteFunc
	refetch RefetchFunc

	mu      sync.Mutex
	state   State
	pending string
	errMsg  string
}

// NewDeleteConfirmation wires the two-step delete. refetch may be nil.
func NewDeleteConfirmation(remove DeleteFunc, refetch RefetchFunc) *DeleteConfirmation {
	return &DeleteConfirmation{remove: remove, refetch: refetch}
}

// Request asks for confirmation before deleting id.
func (d *DeleteConfirmation) Request(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateSubmitting {
		return ErrBusy
	}
	d.state, d.pending, d.errMsg = StateConfirmPending, id, ""
	return nil
}

// Cancel drops the pending request.
func (d *DeleteConfirmation) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateConfirmPending {
		d.state, d.pending, d.errMsg = StateIdle, "", ""
	}
}

// Confirm deletes the pending id and refetches. A failed delete stays pending
// with the error message so the user can retry or cancel.
func (d *DeleteConfirmation) Confirm(ctx context.Context) error {
	d.mu.Lock()
	switch d.state {
	case StateSubmitting:
		d.mu.Unlock()
		return ErrBusy
	case StateConfirmPending:
	default:
		d.mu.Unlock()
		return ErrNothingPending
	}
	id := d.pending
	d.state = StateSubmitting
	d.mu.Unlock()

	err := d.remove(ctx, id)

	d.mu.Lock()
	if err != nil {
		d.state, d.errMsg = StateConfirmPending, Message(err)
		d.mu.Unlock()
		return err
	}
	d.state, d.pending, d.errMsg = StateIdle, "", ""
	d.mu.Unlock()

	if d.refetch != nil {
		return d.refetch(ctx)
	}
	return nil
}

// State reports the current lifecycle state.
func (d *DeleteConfirmation) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Pending is the id awaiting confirmation.
func (d *DeleteConfirmation) Pending() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Error is the message of the last failed delete.
func (d *DeleteConfirmation) Error() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errMsg
}
