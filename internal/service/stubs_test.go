package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/portfolio-api/internal/repository"
	"github.com/noah-isme/portfolio-api/pkg/docstore"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
	"github.com/noah-isme/portfolio-api/pkg/storage"
)

type blobStoreStub struct {
	mu         sync.Mutex
	objects    map[string][]byte
	deleted    []string
	failSaveOn string
	failDelete map[string]bool
}

func newBlobStoreStub() *blobStoreStub {
	return &blobStoreStub{objects: make(map[string][]byte), failDelete: make(map[string]bool)}
}

func (b *blobStoreStub) Save(_ context.Context, path string, data []byte, _ string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failSaveOn != "" && strings.Contains(path, b.failSaveOn) {
		return errors.New("bucket unavailable")
	}
	b.objects[path] = data
	return nil
}

func (b *blobStoreStub) URL(_ context.Context, path string) (string, error) {
	return "https://blobs.test/" + path, nil
}

func (b *blobStoreStub) Delete(_ context.Context, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleted = append(b.deleted, path)
	if b.failDelete[path] {
		return errors.New("permission denied")
	}
	if _, ok := b.objects[path]; !ok {
		return storage.ErrObjectNotExist
	}
	delete(b.objects, path)
	return nil
}

func (b *blobStoreStub) paths() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.objects))
	for p := range b.objects {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (b *blobStoreStub) deletedPaths() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.deleted...)
}

type cacheRepoStub struct {
	mu      sync.Mutex
	values  map[string][]byte
	deleted []string
}

func newCacheRepoStub() *cacheRepoStub {
	return &cacheRepoStub{values: make(map[string][]byte)}
}

func (c *cacheRepoStub) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *cacheRepoStub) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = raw
	return nil
}

func (c *cacheRepoStub) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.values, key)
		c.deleted = append(c.deleted, key)
	}
	return nil
}

// fixture wires every service over an in-memory document store.
type fixture struct {
	store        *docstore.MemoryStore
	blobs        *blobStoreStub
	cacheRepo    *cacheRepoStub
	cache        *CacheService
	files        *Attachments
	courses      *CourseService
	publications *PublicationService
	watch        *WatchService
	research     *ResearchService
}

func newFixture() *fixture {
	store := docstore.NewMemoryStore()
	blobs := newBlobStoreStub()
	cacheRepo := newCacheRepoStub()
	cache := NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	files := NewAttachments(blobs, nil, nil)
	return &fixture{
		store:        store,
		blobs:        blobs,
		cacheRepo:    cacheRepo,
		cache:        cache,
		files:        files,
		courses:      NewCourseService(repository.NewCourseRepository(store), files, cache, nil, nil),
		publications: NewPublicationService(repository.NewPublicationRepository(store), cache, nil, nil),
		watch:        NewWatchService(repository.NewWatchRepository(store), cache, nil, nil),
		research:     NewResearchService(repository.NewInterestsRepository(store), repository.NewProjectRepository(store), files, cache, nil, nil),
	}
}

func pdfUpload(name string) Upload {
	return Upload{Field: "pdf", Filename: name, ContentType: "application/pdf", Data: []byte("%PDF-1.4 " + name)}
}

func imageUpload(name string) Upload {
	return Upload{Field: "images", Filename: name, ContentType: "image/png", Data: []byte("\x89PNG " + name)}
}

func strPtr(s string) *string { return &s }
