// Package tui provides an interactive terminal user interface for curating posts.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/curata/internal/core/ports/driven"
	"github.com/custodia-labs/curata/internal/core/ports/driving"
)

// Ports aggregates the services the TUI drives.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Lifecycle manages the draft and published collections.
	Lifecycle driving.LifecycleService

	// Tags manages the tag registry.
	Tags driving.TagService

	// Export writes export files. Optional.
	Export driving.ExportService

	// Media checks bound media. Optional.
	Media driving.MediaService

	// Watcher reports external edits to collection files. Optional.
	Watcher driven.ChangeWatcher
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Lifecycle == nil {
		return ErrMissingLifecycleService
	}
	if p.Tags == nil {
		return ErrMissingTagService
	}
	return nil
}
