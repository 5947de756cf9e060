package driving

import (
	"context"

	"github.com/custodia-labs/curata/internal/core/domain"
)

// LifecycleService manages the unpublished and published collections.
// Mutations to a collection are serialised and each completes its
// persistence write before the next begins. When a write fails the
// in-memory change is kept and domain.ErrPersistence is returned.
type LifecycleService interface {
	// List returns a collection's posts in insertion order.
	List(ctx context.Context, kind domain.CollectionKind) ([]domain.Post, error)

	// Get returns the post at index.
	Get(ctx context.Context, kind domain.CollectionKind, index int) (*domain.Post, error)

	// Current returns the cursor position and the post under it.
	Current(ctx context.Context, kind domain.CollectionKind) (*CursorView, error)

	// Create appends a post to the unpublished collection.
	Create(ctx context.Context, post domain.Post) error

	// Update replaces the unpublished post at index.
	Update(ctx context.Context, index int, post domain.Post) error

	// Save updates the unpublished post at index when index is in range,
	// otherwise appends it. Thin wrapper over Update and Create.
	Save(ctx context.Context, index int, post domain.Post) (SaveOutcome, error)

	// Delete removes the post at index and resets the cursor to 0.
	Delete(ctx context.Context, kind domain.CollectionKind, index int) error

	// Next advances the cursor. At the end it reports NoticeEndOfList.
	Next(ctx context.Context, kind domain.CollectionKind) (*CursorView, error)

	// Previous moves the cursor back. At the start it reports NoticeStartOfList.
	Previous(ctx context.Context, kind domain.CollectionKind) (*CursorView, error)

	// Seek moves the cursor to index.
	Seek(ctx context.Context, kind domain.CollectionKind, index int) (*CursorView, error)

	// Publish moves the first unpublished post titled title to published.
	Publish(ctx context.Context, title string) (*PublishResult, error)

	// SetTag sets the tag of the post at index. Blank tags become the sentinel.
	SetTag(ctx context.Context, kind domain.CollectionKind, index int, tag string) error

	// SetReady sets the ready-to-publish flag of the unpublished post at index.
	SetReady(ctx context.Context, index int, ready bool) error

	// Reload re-reads a collection from storage and resets its cursor.
	Reload(ctx context.Context, kind domain.CollectionKind) error
}

// SaveOutcome reports which branch Save took.
type SaveOutcome int

// Save outcomes.
const (
	SaveUpdated SaveOutcome = iota
	SaveCreated
)

// String returns the outcome name.
func (o SaveOutcome) String() string {
	if o == SaveCreated {
		return "created"
	}
	return "updated"
}

// CursorView is a snapshot of a collection's cursor.
type CursorView struct {
	// Kind is the collection.
	Kind domain.CollectionKind

	// Index is the cursor position.
	Index int

	// Total is the collection length.
	Total int

	// Post is the post under the cursor, nil when the collection is empty.
	Post *domain.Post

	// Moved is false when navigation hit a boundary.
	Moved bool

	// Notice is set when navigation hit a boundary.
	Notice string
}

// PublishResult describes a publish transition.
type PublishResult struct {
	// Post is the post as appended to published.
	Post domain.Post

	// Index was the post's position in unpublished.
	Index int

	// Matches is the number of unpublished posts sharing the title.
	// Greater than 1 means the title was ambiguous and the first was used.
	Matches int
}

// Ambiguous returns true if more than one post shared the title.
func (r *PublishResult) Ambiguous() bool {
	return r.Matches > 1
}
