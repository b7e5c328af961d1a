// Package storage persists uploaded attachments and hands out read URLs for them.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrObjectNotExist is returned when the addressed object is absent.
var ErrObjectNotExist = errors.New("storage: object does not exist")

// ReadURLExpiry is the fixed expiry stamped on every generated read URL.
// Stored URLs are embedded in documents and must stay valid indefinitely.
var ReadURLExpiry = time.Date(2491, time.March, 9, 0, 0, 0, 0, time.UTC)

// Store is implemented by every blob backend.
type Store interface {
	Save(ctx context.Context, path string, data []byte, contentType string) error
	URL(ctx context.Context, path string) (string, error)
	Delete(ctx context.Context, path string) error
}
