package driven

import (
	"context"

	"github.com/custodia-labs/curata/internal/core/domain"
)

// ExportWriter writes export files.
type ExportWriter interface {
	// AppendReady appends rows to the ready-posts export, writing a header
	// only when the file is new. Returns the file path.
	AppendReady(ctx context.Context, rows []domain.ExportRow) (string, error)

	// WritePublished overwrites the published-posts export. Returns the file path.
	WritePublished(ctx context.Context, posts []domain.Post) (string, error)
}
