package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrInjected is returned by FailingBlobStore writes.
var ErrInjected = errors.New("injected storage failure")

// MemoryBlobStore is an in-memory BlobStore that counts writes.
type MemoryBlobStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	Puts   int
	GetErr error
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{data: make(map[string][]byte)}
}

// Get returns ErrMissing wrapped when the key is absent.
func (m *MemoryBlobStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, ErrMissing)
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryBlobStore) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Puts++
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Seed stores value without counting it as a write.
func (m *MemoryBlobStore) Seed(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
}

// PutCount returns the number of Put calls so far.
func (m *MemoryBlobStore) PutCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Puts
}

// ErrMissing stands in for a store's not-found error.
var ErrMissing = errors.New("missing")

// FailingBlobStore reads normally from Inner but fails every write.
type FailingBlobStore struct {
	Inner    *MemoryBlobStore
	mu       sync.Mutex
	attempts int
}

func NewFailingBlobStore() *FailingBlobStore {
	return &FailingBlobStore{Inner: NewMemoryBlobStore()}
}

func (f *FailingBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	return f.Inner.Get(ctx, key)
}

func (f *FailingBlobStore) Put(_ context.Context, key string, _ []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts++
	return fmt.Errorf("writing %q: %w", key, ErrInjected)
}

// Attempts returns the number of rejected writes.
func (f *FailingBlobStore) Attempts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts
}
