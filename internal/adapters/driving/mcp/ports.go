package mcp

import (
	"github.com/custodia-labs/curata/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Lifecycle manages the unpublished and published collections.
	Lifecycle driving.LifecycleService

	// Ingest turns model output into posts. Optional.
	Ingest driving.IngestService

	// Tags manages the tag registry. Optional.
	Tags driving.TagService

	// Export writes CSV exports. Optional.
	Export driving.ExportService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Lifecycle == nil {
		return ErrMissingLifecycleService
	}
	return nil
}
