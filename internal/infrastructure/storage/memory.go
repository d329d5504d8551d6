package storage

import (
	"context"
	"sync"

	domainRepo "mediconnect/internal/domain/repository"
)

type memoryEntry struct {
	value   []byte
	version int64
}

// MemoryBlobStore keeps blobs in process memory. Data is lost on restart.
type MemoryBlobStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryBlobStore) Get(ctx context.Context, key string) ([]byte, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, 0, domainRepo.ErrBlobNotFound
	}
	return append([]byte(nil), entry.value...), entry.version, nil
}

func (s *MemoryBlobStore) CompareAndSwap(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries[key].version != expected {
		return 0, domainRepo.ErrVersionConflict
	}
	next := expected + 1
	s.entries[key] = memoryEntry{value: append([]byte(nil), value...), version: next}
	return next, nil
}

func (s *MemoryBlobStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}
