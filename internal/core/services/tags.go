package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driven"
	"github.com/custodia-labs/curata/internal/core/ports/driving"
)

// Ensure TagService implements the interface.
var _ driving.TagService = (*TagService)(nil)

// TagService manages the tag registry.
type TagService struct {
	repo driven.TagRepository
	mu   sync.Mutex
}

// NewTagService creates a new tag service.
func NewTagService(repo driven.TagRepository) *TagService {
	return &TagService{repo: repo}
}

// Add registers a tag. Names are trimmed and compared case-sensitively.
func (s *TagService) Add(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: tag name is required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tags, err := s.load(ctx)
	if err != nil {
		return err
	}
	for _, t := range tags {
		if t.Name == name {
			return fmt.Errorf("%w: tag %q", domain.ErrAlreadyExists, name)
		}
	}
	return s.save(ctx, append(tags, domain.Tag{Name: name}))
}

// Remove deletes every tag with this name. Posts carrying the name keep it.
func (s *TagService) Remove(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	tags, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := tags[:0]
	for _, t := range tags {
		if t.Name != name {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tags) {
		return nil
	}
	return s.save(ctx, kept)
}

// List returns tags in insertion order.
func (s *TagService) List(ctx context.Context) ([]domain.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Exists reports whether a tag with this exact name is registered.
func (s *TagService) Exists(ctx context.Context, name string) (bool, error) {
	tags, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	for _, t := range tags {
		if t.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *TagService) load(ctx context.Context) ([]domain.Tag, error) {
	tags, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load tags: %w", domain.ErrPersistence, err)
	}
	return tags, nil
}

func (s *TagService) save(ctx context.Context, tags []domain.Tag) error {
	if err := s.repo.Save(ctx, tags); err != nil {
		return fmt.Errorf("%w: save tags: %w", domain.ErrPersistence, err)
	}
	return nil
}
