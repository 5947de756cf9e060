package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driven"
	"github.com/custodia-labs/curata/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// defaultHistoryLimit caps List when no limit is given.
const defaultHistoryLimit = 20

// HistoryService exposes past submissions and the prompt log.
type HistoryService struct {
	submissions driven.SubmissionStore
	promptLog   driven.PromptLog
}

// NewHistoryService creates a new history service.
func NewHistoryService(submissions driven.SubmissionStore, promptLog driven.PromptLog) *HistoryService {
	return &HistoryService{
		submissions: submissions,
		promptLog:   promptLog,
	}
}

// List returns recent submissions, newest first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.Submission, error) {
	if s.submissions == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	subs, err := s.submissions.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}

// Get returns one submission.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.Submission, error) {
	if s.submissions == nil {
		return nil, fmt.Errorf("%w: submission %q", domain.ErrNotFound, id)
	}
	return s.submissions.Get(ctx, id)
}

// PromptLog returns every logged prompt line.
func (s *HistoryService) PromptLog(ctx context.Context) ([]string, error) {
	if s.promptLog == nil {
		return nil, nil
	}
	lines, err := s.promptLog.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read prompt log: %w", err)
	}
	return lines, nil
}
