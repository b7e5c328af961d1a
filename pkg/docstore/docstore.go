// Package docstore abstracts a hierarchical document database addressed by
// slash-separated collection paths such as "publications/journals/items".
package docstore

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("docstore: document not found")

// Document is a stored record. Data holds a JSON-compatible tree.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// Store is implemented by every document backend.
type Store interface {
	// Get returns ErrNotFound when the document is missing.
	Get(ctx context.Context, collection, id string) (*Document, error)
	// List returns every document in the collection in backend order.
	List(ctx context.Context, collection string) ([]Document, error)
	// Create stores data under a generated id and returns it.
	Create(ctx context.Context, collection string, data map[string]interface{}) (string, error)
	// Set creates or fully overwrites the document.
	Set(ctx context.Context, collection, id string, data map[string]interface{}) error
	// Update overwrites the given top-level fields and returns ErrNotFound when missing.
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error
	// Delete removes the document and returns ErrNotFound when missing.
	Delete(ctx context.Context, collection, id string) error
	Ping(ctx context.Context) error
	Close() error
}

// Path joins collection and document segments.
func Path(segments ...string) string {
	return strings.Join(segments, "/")
}
