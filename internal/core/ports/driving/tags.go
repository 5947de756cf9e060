package driving

import (
	"context"

	"github.com/custodia-labs/curata/internal/core/domain"
)

// TagService manages the tag registry.
// Changes never cascade to posts already carrying a tag name.
type TagService interface {
	// Add registers a tag. Fails with domain.ErrAlreadyExists on an exact duplicate.
	Add(ctx context.Context, name string) error

	// Remove deletes every tag with this name. Absent names are a no-op.
	Remove(ctx context.Context, name string) error

	// List returns tags in insertion order.
	List(ctx context.Context) ([]domain.Tag, error)

	// Exists reports whether a tag with this exact name is registered.
	Exists(ctx context.Context, name string) (bool, error)
}
