package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gcs "cloud.google.com/go/storage"
)

// GCSStore keeps attachments in a Google Cloud Storage bucket.
type GCSStore struct {
	client *gcs.Client
	bucket string
}

var _ Store = (*GCSStore)(nil)

// NewGCSStore binds an initialised client to a bucket.
func NewGCSStore(client *gcs.Client, bucket string) (*GCSStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket required")
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

func (s *GCSStore) Save(ctx context.Context, path string, data []byte, contentType string) error {
	w := s.client.Bucket(s.bucket).Object(path).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("write object %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close object %s: %w", path, err)
	}
	return nil
}

// URL returns a V2 signed read URL expiring at ReadURLExpiry.
func (s *GCSStore) URL(_ context.Context, path string) (string, error) {
	url, err := s.client.Bucket(s.bucket).SignedURL(path, &gcs.SignedURLOptions{
		Method:  http.MethodGet,
		Expires: ReadURLExpiry,
		Scheme:  gcs.SigningSchemeV2,
	})
	if err != nil {
		return "", fmt.Errorf("sign url for %s: %w", path, err)
	}
	return url, nil
}

func (s *GCSStore) Delete(ctx context.Context, path string) error {
	err := s.client.Bucket(s.bucket).Object(path).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return ErrObjectNotExist
	}
	if err != nil {
		return fmt.Errorf("delete object %s: %w", path, err)
	}
	return nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
