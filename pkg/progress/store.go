package progress

import (
	"context"
	"sync"
	"time"

	"github.com/coursepath/coursepath/pkg/errors"
)

// Store persists student records.
type Store interface {
	// Get returns the record with the given ID, or a RECORD_NOT_FOUND error.
	Get(ctx context.Context, id string) (*Record, error)

	// Put inserts or replaces the record. The record's UpdatedAt is set to
	// the current time.
	Put(ctx context.Context, rec *Record) error

	// Delete removes the record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backing resources.
	Close(ctx context.Context) error
}

// MemoryStore is an in-process Store for tests and single-user CLI runs.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeRecordNotFound, "record not found: %s", id)
	}
	cp := *rec
	return &cp, nil
}

func (s *MemoryStore) Put(ctx context.Context, rec *Record) error {
	if rec == nil || rec.ID == "" {
		return errors.New(errors.ErrCodeInvalidRecord, "record must have an id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rec
	cp.UpdatedAt = time.Now().UTC()
	s.records[cp.ID] = &cp
	rec.UpdatedAt = cp.UpdatedAt
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, id)
	return nil
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}
