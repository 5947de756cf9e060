package driving

import (
	"context"

	"github.com/custodia-labs/curata/internal/core/domain"
)

// HistoryService exposes past submissions and the prompt log.
type HistoryService interface {
	// List returns recent submissions, newest first.
	List(ctx context.Context, limit int) ([]domain.Submission, error)

	// Get returns one submission.
	Get(ctx context.Context, id string) (*domain.Submission, error)

	// PromptLog returns every logged prompt line.
	PromptLog(ctx context.Context) ([]string, error)
}
