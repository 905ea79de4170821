package docstore

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"sync"

	"garbage-billing-backend/internal/domain"
	"garbage-billing-backend/internal/logger"

	"github.com/google/uuid"
)

// MemoryStore keeps documents in process memory. Query returns documents in
// insertion order.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection

	// FailWith, when set, is returned (wrapped as unavailable) by every call.
	FailWith error
}

type memoryCollection struct {
	order []string
	docs  map[string]map[string]any
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memoryCollection)}
}

func (s *MemoryStore) collection(name string) *memoryCollection {
	c, ok := s.collections[name]
	if !ok {
		c = &memoryCollection{docs: make(map[string]map[string]any)}
		s.collections[name] = c
	}
	return c
}

func (s *MemoryStore) failure(op string) error {
	if s.FailWith == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, s.FailWith)
}

// Put stores data under a caller-chosen id, replacing any existing document.
// Used to seed back-office collections such as invoices and announcements.
func (s *MemoryStore) Put(collection, id string, data map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collection(collection)
	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}
	c.docs[id] = maps.Clone(data)
}

func (s *MemoryStore) Query(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	logger.StoreCall("query", collection, filterArgs(filters)...)
	if err := s.failure("query"); err != nil {
		logResult("query", collection, err)
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Document
	c, ok := s.collections[collection]
	if ok {
		for _, id := range c.order {
			data := c.docs[id]
			if matches(data, filters) {
				out = append(out, Document{ID: id, Data: maps.Clone(data)})
			}
		}
	}
	logResult("query", collection, nil, "count", len(out))
	return out, nil
}

func matches(data map[string]any, filters []Filter) bool {
	for _, f := range filters {
		v, ok := data[f.Field]
		if !ok || !reflect.DeepEqual(v, f.Value) {
			return false
		}
	}
	return true
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (Document, error) {
	logger.StoreCall("get", collection, "id", id)
	if err := s.failure("get"); err != nil {
		logResult("get", collection, err)
		return Document{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collection]
	if !ok {
		logResult("get", collection, domain.ErrNotFound, "id", id)
		return Document{}, domain.ErrNotFound
	}
	data, ok := c.docs[id]
	if !ok {
		logResult("get", collection, domain.ErrNotFound, "id", id)
		return Document{}, domain.ErrNotFound
	}
	logResult("get", collection, nil, "id", id)
	return Document{ID: id, Data: maps.Clone(data)}, nil
}

func (s *MemoryStore) Create(ctx context.Context, collection string, data map[string]any, opts ...CreateOption) (string, error) {
	logger.StoreCall("create", collection)
	if err := s.failure("create"); err != nil {
		logResult("create", collection, err)
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	c := s.collection(collection)
	c.order = append(c.order, id)
	c.docs[id] = withGeneratedID(data, id, opts)
	logResult("create", collection, nil, "id", id)
	return id, nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	logger.StoreCall("update", collection, "id", id)
	if err := s.failure("update"); err != nil {
		logResult("update", collection, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		logResult("update", collection, domain.ErrNotFound, "id", id)
		return domain.ErrNotFound
	}
	data, ok := c.docs[id]
	if !ok {
		logResult("update", collection, domain.ErrNotFound, "id", id)
		return domain.ErrNotFound
	}
	maps.Copy(data, fields)
	logResult("update", collection, nil, "id", id)
	return nil
}

// Len returns the number of documents in collection.
func (s *MemoryStore) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.collections[collection]; ok {
		return len(c.order)
	}
	return 0
}
