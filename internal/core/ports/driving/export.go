package driving

import (
	"context"

	"github.com/custodia-labs/curata/internal/core/domain"
)

// ExportService selects publish-ready posts and writes export files.
type ExportService interface {
	// SelectReady projects the publish-ready unpublished posts without writing.
	SelectReady(ctx context.Context) ([]domain.ExportRow, error)

	// ExportReady appends the publish-ready unpublished posts to the ready export.
	ExportReady(ctx context.Context) (*ExportResult, error)

	// ExportPublished overwrites the published export with every published post.
	ExportPublished(ctx context.Context) (*ExportResult, error)
}

// ExportResult describes a written export.
type ExportResult struct {
	Path  string
	Count int
}
