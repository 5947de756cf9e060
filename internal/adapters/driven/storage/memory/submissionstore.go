package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driven"
)

// Ensure SubmissionStore implements the interface.
var _ driven.SubmissionStore = (*SubmissionStore)(nil)

// SubmissionStore is an in-memory implementation of driven.SubmissionStore for testing.
type SubmissionStore struct {
	mu          sync.RWMutex
	submissions map[string]domain.Submission
}

// NewSubmissionStore creates a new in-memory submission store.
func NewSubmissionStore() *SubmissionStore {
	return &SubmissionStore{
		submissions: make(map[string]domain.Submission),
	}
}

// Save stores a submission.
func (s *SubmissionStore) Save(_ context.Context, sub domain.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions[sub.ID] = sub
	return nil
}

// Get retrieves a submission by ID.
func (s *SubmissionStore) Get(_ context.Context, id string) (*domain.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.submissions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sub, nil
}

// List returns the most recent submissions, newest first.
func (s *SubmissionStore) List(_ context.Context, limit int) ([]domain.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Submission, 0, len(s.submissions))
	for _, sub := range s.submissions {
		result = append(result, sub)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Close is a no-op for the memory store.
func (s *SubmissionStore) Close() error {
	return nil
}
