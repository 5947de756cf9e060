package driving

import (
	"context"

	"github.com/custodia-labs/curata/internal/core/domain"
)

// IngestService turns model output into unpublished posts.
type IngestService interface {
	// Submit builds the named catalogue prompt, sends it to the model and
	// ingests the response.
	Submit(ctx context.Context, promptName string) (*IngestResult, error)

	// SubmitText sends free prompt text to the model and ingests the response.
	SubmitText(ctx context.Context, prompt string) (*IngestResult, error)

	// Import ingests response text obtained out of band.
	Import(ctx context.Context, raw string) (*IngestResult, error)
}

// IngestResult summarises one ingestion.
type IngestResult struct {
	// SubmissionID identifies the history record.
	SubmissionID string

	// Prompt is the text sent to the model, empty for imports.
	Prompt string

	// Raw is the unmodified model output.
	Raw string

	// Posts are the posts appended to the unpublished collection.
	Posts []domain.Post

	// Rejections are entries skipped by the parser.
	Rejections []domain.Rejection
}
