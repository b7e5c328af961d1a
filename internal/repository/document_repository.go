package repository

import (
	"context"

	"github.com/noah-isme/portfolio-api/pkg/docstore"
)

// Collection is a typed view over one document collection.
type Collection[T any] struct {
	store docstore.Store
	path  string
}

// NewCollection binds T to the collection at path.
func NewCollection[T any](store docstore.Store, path string) Collection[T] {
	return Collection[T]{store: store, path: path}
}

// Path returns the collection path.
func (c Collection[T]) Path() string {
	return c.path
}

// List decodes every document of the collection.
func (c Collection[T]) List(ctx context.Context) ([]T, error) {
	docs, err := c.store.List(ctx, c.path)
	if err != nil {
		return nil, err
	}
	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		item, err := decodeDocument[T](doc)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// Get returns docstore.ErrNotFound when id is absent.
func (c Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	doc, err := c.store.Get(ctx, c.path, id)
	if err != nil {
		return nil, err
	}
	return decodeDocument[T](*doc)
}

// Create stores item under a generated id.
func (c Collection[T]) Create(ctx context.Context, item *T) (string, error) {
	data, err := encodeDocument(item)
	if err != nil {
		return "", err
	}
	return c.store.Create(ctx, c.path, data)
}

// Set replaces the document id with item.
func (c Collection[T]) Set(ctx context.Context, id string, item *T) error {
	data, err := encodeDocument(item)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, c.path, id, data)
}

// Update writes only the named top-level fields of item.
func (c Collection[T]) Update(ctx context.Context, id string, item *T, fields ...string) error {
	data, err := encodeDocument(item)
	if err != nil {
		return err
	}
	changes := make(map[string]interface{}, len(fields))
	for _, field := range fields {
		value, ok := data[field]
		if !ok {
			value = nil
		}
		changes[field] = value
	}
	return c.store.Update(ctx, c.path, id, changes)
}

// Delete returns docstore.ErrNotFound when id is absent.
func (c Collection[T]) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.path, id)
}
