package driven

import (
	"context"

	"github.com/custodia-labs/curata/internal/core/domain"
)

// SubmissionStore records model submissions for operator review.
type SubmissionStore interface {
	// Save stores a submission.
	Save(ctx context.Context, sub domain.Submission) error

	// Get retrieves a submission by ID.
	Get(ctx context.Context, id string) (*domain.Submission, error)

	// List returns the most recent submissions, newest first.
	List(ctx context.Context, limit int) ([]domain.Submission, error)

	// Close releases resources.
	Close() error
}
