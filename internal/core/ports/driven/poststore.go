package driven

import (
	"context"

	"github.com/custodia-labs/curata/internal/core/domain"
)

// PostRepository persists the lifecycle collections.
// A full rewrite of one collection is the only write primitive.
type PostRepository interface {
	// Load returns the collection in insertion order.
	// A missing backing file yields an empty slice, not an error.
	Load(ctx context.Context, kind domain.CollectionKind) ([]domain.Post, error)

	// Save replaces the stored collection with posts.
	Save(ctx context.Context, kind domain.CollectionKind, posts []domain.Post) error
}
