package driven

import (
	"context"

	"github.com/custodia-labs/curata/internal/core/domain"
)

// TagRepository persists the tag registry.
type TagRepository interface {
	// Load returns all tags in insertion order. Missing storage yields an empty slice.
	Load(ctx context.Context) ([]domain.Tag, error)

	// Save replaces the stored tags.
	Save(ctx context.Context, tags []domain.Tag) error
}
