package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driven"
)

// Ensure PostStore implements the interface.
var _ driven.PostRepository = (*PostStore)(nil)

// PostStore is an in-memory implementation of driven.PostRepository for testing.
type PostStore struct {
	mu    sync.RWMutex
	posts map[domain.CollectionKind][]domain.Post
	saves int
}

// NewPostStore creates a new in-memory post store.
func NewPostStore() *PostStore {
	return &PostStore{
		posts: make(map[domain.CollectionKind][]domain.Post),
	}
}

// Load returns a copy of the stored collection. Missing collections are empty.
func (s *PostStore) Load(_ context.Context, kind domain.CollectionKind) ([]domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Post, len(s.posts[kind]))
	copy(out, s.posts[kind])
	return out, nil
}

// Save replaces the stored collection with a copy of posts.
func (s *PostStore) Save(_ context.Context, kind domain.CollectionKind, posts []domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]domain.Post, len(posts))
	copy(stored, posts)
	s.posts[kind] = stored
	s.saves++
	return nil
}

// Saves returns how many times Save has been called.
func (s *PostStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
