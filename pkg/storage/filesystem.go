package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage persists attachments on disk under a base directory and
// serves them through HMAC-signed URLs rooted at baseURL.
type LocalStorage struct {
	baseDir string
	baseURL string
	signer  *SignedURLSigner
}

var _ Store = (*LocalStorage)(nil)

// NewLocalStorage ensures the base directory exists and returns a handle.
func NewLocalStorage(baseDir, baseURL string, signer *SignedURLSigner) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}
	return &LocalStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
		signer:  signer,
	}, nil
}

// Save writes data to path relative to the base dir.
func (s *LocalStorage) Save(_ context.Context, path string, data []byte, _ string) error {
	target, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("prepare upload directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("write upload file: %w", err)
	}
	return nil
}

// URL returns a signed link of the form {baseURL}/files/{path}?token=...
func (s *LocalStorage) URL(_ context.Context, path string) (string, error) {
	if _, err := s.resolve(path); err != nil {
		return "", err
	}
	token, err := s.signer.Generate(path, ReadURLExpiry)
	if err != nil {
		return "", err
	}
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return fmt.Sprintf("%s/files/%s?token=%s", s.baseURL, strings.Join(segments, "/"), url.QueryEscape(token)), nil
}

// Open validates token against path and returns a read-only handle.
func (s *LocalStorage) Open(path, token string) (*os.File, error) {
	if _, err := s.signer.Parse(token, path); err != nil {
		return nil, err
	}
	target, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(target)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrObjectNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("open upload file: %w", err)
	}
	return file, nil
}

// Delete removes a stored file. A missing file yields ErrObjectNotExist.
func (s *LocalStorage) Delete(_ context.Context, path string) error {
	target, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return ErrObjectNotExist
		}
		return fmt.Errorf("delete upload file: %w", err)
	}
	return nil
}

// resolve maps an object path into the base dir, rejecting escapes.
func (s *LocalStorage) resolve(path string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(path))
	if clean == string(filepath.Separator) {
		return "", fmt.Errorf("invalid object path %q", path)
	}
	return filepath.Join(s.baseDir, clean), nil
}
