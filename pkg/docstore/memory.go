package docstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryEntry struct {
	seq  uint64
	data map[string]interface{}
}

// MemoryStore keeps documents in process memory. It is meant for local development.
type MemoryStore struct {
	mu          sync.RWMutex
	seq         uint64
	collections map[string]map[string]memoryEntry
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]memoryEntry)}
}

func (s *MemoryStore) Get(_ context.Context, collection, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return &Document{ID: id, Data: cloneMap(entry.data)}, nil
}

func (s *MemoryStore) List(_ context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.collections[collection]
	docs := make([]Document, 0, len(entries))
	seqs := make(map[string]uint64, len(entries))
	for id, entry := range entries {
		docs = append(docs, Document{ID: id, Data: cloneMap(entry.data)})
		seqs[id] = entry.seq
	}
	sort.Slice(docs, func(i, j int) bool { return seqs[docs[i].ID] < seqs[docs[j].ID] })
	return docs, nil
}

func (s *MemoryStore) Create(_ context.Context, collection string, data map[string]interface{}) (string, error) {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(collection, id, cloneMap(data))
	return id, nil
}

func (s *MemoryStore) Set(_ context.Context, collection, id string, data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(collection, id, cloneMap(data))
	return nil
}

func (s *MemoryStore) Update(_ context.Context, collection, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	for key, value := range fields {
		entry.data[key] = cloneValue(value)
	}
	s.collections[collection][id] = entry
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[collection][id]; !ok {
		return ErrNotFound
	}
	delete(s.collections[collection], id)
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) put(collection, id string, data map[string]interface{}) {
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]memoryEntry)
		s.collections[collection] = docs
	}
	seq := docs[id].seq
	if seq == 0 {
		s.seq++
		seq = s.seq
	}
	docs[id] = memoryEntry{seq: seq, data: data}
}

func cloneMap(in map[string]interface{}) map[string]interface{} {
	if in == nil {
		return map[string]interface{}{}
	}
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch typed := v.(type) {
	case map[string]interface{}:
		return cloneMap(typed)
	case []interface{}:
		out := make([]interface{}, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return typed
	}
}
