package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driven"
	"github.com/custodia-labs/curata/internal/core/ports/driving"
	"github.com/custodia-labs/curata/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// ExportService writes export files from the in-memory collections.
type ExportService struct {
	lifecycle driving.LifecycleService
	writer    driven.ExportWriter
}

// NewExportService creates a new export service.
func NewExportService(lifecycle driving.LifecycleService, writer driven.ExportWriter) *ExportService {
	return &ExportService{
		lifecycle: lifecycle,
		writer:    writer,
	}
}

// SelectReady projects the publish-ready unpublished posts without writing.
func (s *ExportService) SelectReady(ctx context.Context) ([]domain.ExportRow, error) {
	posts, err := s.lifecycle.List(ctx, domain.CollectionUnpublished)
	if err != nil {
		return nil, err
	}
	return domain.SelectReady(posts), nil
}

// ExportReady appends the publish-ready unpublished posts to the ready export.
// Returns domain.ErrNotFound when no post is ready.
func (s *ExportService) ExportReady(ctx context.Context) (*driving.ExportResult, error) {
	rows, err := s.SelectReady(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no posts are ready to publish", domain.ErrNotFound)
	}

	path, err := s.writer.AppendReady(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("%w: export ready posts: %w", domain.ErrPersistence, err)
	}
	logger.Info("exported %d ready posts to %s", len(rows), path)
	return &driving.ExportResult{Path: path, Count: len(rows)}, nil
}

// ExportPublished overwrites the published export with every published post.
// Returns domain.ErrNotFound when nothing has been published.
func (s *ExportService) ExportPublished(ctx context.Context) (*driving.ExportResult, error) {
	posts, err := s.lifecycle.List(ctx, domain.CollectionPublished)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, fmt.Errorf("%w: no published posts to export", domain.ErrNotFound)
	}

	path, err := s.writer.WritePublished(ctx, posts)
	if err != nil {
		return nil, fmt.Errorf("%w: export published posts: %w", domain.ErrPersistence, err)
	}
	logger.Info("exported %d published posts to %s", len(posts), path)
	return &driving.ExportResult{Path: path, Count: len(posts)}, nil
}
