package memory

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driven"
)

// Ensure ObjectStore implements the interface.
var (
	_ driven.ObjectStore        = (*ObjectStore)(nil)
	_ driven.ObjectStoreFactory = (*ObjectStoreFactory)(nil)
)

// ObjectStore is an in-memory implementation of driven.ObjectStore for testing.
// Uploaded files are read from disk so missing assets fail like the real store.
type ObjectStore struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// UploadErr, when set, is returned by every Upload.
	UploadErr error

	// ExistsErr, when set, is returned by every Exists.
	ExistsErr error
}

// NewObjectStore creates a new in-memory object store.
func NewObjectStore() *ObjectStore {
	return &ObjectStore{
		objects: make(map[string][]byte),
	}
}

// Put stores an object directly.
func (s *ObjectStore) Put(bucket, key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[bucket+"/"+key] = data
}

// Exists reports whether key is present in bucket.
func (s *ObjectStore) Exists(_ context.Context, bucket, key string) (bool, error) {
	if s.ExistsErr != nil {
		return false, s.ExistsErr
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[bucket+"/"+key]
	return ok, nil
}

// Upload copies the local file into the store.
func (s *ObjectStore) Upload(_ context.Context, localPath, bucket, key string) error {
	if s.UploadErr != nil {
		return s.UploadErr
	}
	data, err := os.ReadFile(localPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", localPath, err)
	}
	s.Put(bucket, key, data)
	return nil
}

// Len returns the number of stored objects.
func (s *ObjectStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// ObjectStoreFactory returns the same memory store for every settings value
// and counts how many handles were requested.
type ObjectStoreFactory struct {
	Store   *ObjectStore
	Created int
}

// Create returns the shared store.
func (f *ObjectStoreFactory) Create(_ context.Context, _ domain.StorageSettings) (driven.ObjectStore, error) {
	f.Created++
	return f.Store, nil
}
