package driven

import "github.com/custodia-labs/curata/internal/core/domain"

// ChangeWatcher reports external edits to collection files.
type ChangeWatcher interface {
	// Changes delivers the collection whose backing file changed.
	Changes() <-chan domain.CollectionKind

	// Errors delivers watcher failures.
	Errors() <-chan error

	// Close stops watching.
	Close() error
}
