package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driven"
)

// Ensure TagStore implements the interface.
var _ driven.TagRepository = (*TagStore)(nil)

// TagStore is an in-memory implementation of driven.TagRepository for testing.
type TagStore struct {
	mu   sync.RWMutex
	tags []domain.Tag
}

// NewTagStore creates a new in-memory tag store.
func NewTagStore() *TagStore {
	return &TagStore{}
}

// Load returns a copy of the stored tags.
func (s *TagStore) Load(_ context.Context) ([]domain.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Tag, len(s.tags))
	copy(out, s.tags)
	return out, nil
}

// Save replaces the stored tags.
func (s *TagStore) Save(_ context.Context, tags []domain.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags = make([]domain.Tag, len(tags))
	copy(s.tags, tags)
	return nil
}
