package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driven"
	"github.com/custodia-labs/curata/internal/core/ports/driving"
	"github.com/custodia-labs/curata/internal/logger"
)

// Ensure LifecycleService implements the interface.
var _ driving.LifecycleService = (*LifecycleService)(nil)

// LifecycleService holds the unpublished and published collections in memory
// and rewrites the backing file after every mutation.
type LifecycleService struct {
	repo driven.PostRepository

	mu          sync.Mutex
	collections map[domain.CollectionKind]*domain.Collection
}

// NewLifecycleService creates a new lifecycle service.
// Collections are loaded lazily on first access.
func NewLifecycleService(repo driven.PostRepository) *LifecycleService {
	return &LifecycleService{
		repo:        repo,
		collections: make(map[domain.CollectionKind]*domain.Collection),
	}
}

// List returns a collection's posts in insertion order.
func (s *LifecycleService) List(ctx context.Context, kind domain.CollectionKind) ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.collection(ctx, kind)
	if err != nil {
		return nil, err
	}
	return c.Posts(), nil
}

// Get returns the post at index.
func (s *LifecycleService) Get(ctx context.Context, kind domain.CollectionKind, index int) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.collection(ctx, kind)
	if err != nil {
		return nil, err
	}
	post, err := c.At(index)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Current returns the cursor position and the post under it.
func (s *LifecycleService) Current(ctx context.Context, kind domain.CollectionKind) (*driving.CursorView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.collection(ctx, kind)
	if err != nil {
		return nil, err
	}
	return view(c, true, ""), nil
}

// Create appends a post to the unpublished collection. The cursor is unchanged.
func (s *LifecycleService) Create(ctx context.Context, post domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.create(ctx, post)
}

// Update replaces the unpublished post at index.
func (s *LifecycleService) Update(ctx context.Context, index int, post domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(ctx, index, post)
}

// Save updates in place when index is in range, otherwise appends.
func (s *LifecycleService) Save(ctx context.Context, index int, post domain.Post) (driving.SaveOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.collection(ctx, domain.CollectionUnpublished)
	if err != nil {
		return driving.SaveUpdated, err
	}
	if c.InBounds(index) {
		return driving.SaveUpdated, s.update(ctx, index, post)
	}
	return driving.SaveCreated, s.create(ctx, post)
}

func (s *LifecycleService) create(ctx context.Context, post domain.Post) error {
	c, err := s.collection(ctx, domain.CollectionUnpublished)
	if err != nil {
		return err
	}
	c.Append(post.Normalised())
	return s.persist(ctx, c)
}

func (s *LifecycleService) update(ctx context.Context, index int, post domain.Post) error {
	c, err := s.collection(ctx, domain.CollectionUnpublished)
	if err != nil {
		return err
	}
	if err := c.Replace(index, post.Normalised()); err != nil {
		return err
	}
	return s.persist(ctx, c)
}

// Delete removes the post at index and resets the cursor to 0.
// An out-of-range index leaves the collection and cursor untouched.
func (s *LifecycleService) Delete(ctx context.Context, kind domain.CollectionKind, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.collection(ctx, kind)
	if err != nil {
		return err
	}
	removed, err := c.Remove(index)
	if err != nil {
		return err
	}
	logger.Debug("deleted %q from %s at %d", removed.Title, kind, index)
	return s.persist(ctx, c)
}

// Next advances the cursor, reporting NoticeEndOfList at the last post.
func (s *LifecycleService) Next(ctx context.Context, kind domain.CollectionKind) (*driving.CursorView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.collection(ctx, kind)
	if err != nil {
		return nil, err
	}
	if c.Next() {
		return view(c, true, ""), nil
	}
	return view(c, false, domain.NoticeEndOfList), nil
}

// Previous moves the cursor back, reporting NoticeStartOfList at the first post.
func (s *LifecycleService) Previous(ctx context.Context, kind domain.CollectionKind) (*driving.CursorView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.collection(ctx, kind)
	if err != nil {
		return nil, err
	}
	if c.Previous() {
		return view(c, true, ""), nil
	}
	return view(c, false, domain.NoticeStartOfList), nil
}

// Seek moves the cursor to index.
func (s *LifecycleService) Seek(ctx context.Context, kind domain.CollectionKind, index int) (*driving.CursorView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.collection(ctx, kind)
	if err != nil {
		return nil, err
	}
	if err := c.Seek(index); err != nil {
		return nil, err
	}
	return view(c, true, ""), nil
}

// Publish moves the first unpublished post titled title to published.
// Both collections are written even if the first write fails.
func (s *LifecycleService) Publish(ctx context.Context, title string) (*driving.PublishResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	unpublished, err := s.collection(ctx, domain.CollectionUnpublished)
	if err != nil {
		return nil, err
	}
	published, err := s.collection(ctx, domain.CollectionPublished)
	if err != nil {
		return nil, err
	}

	index, matches := unpublished.FindTitle(title)
	if index < 0 {
		return nil, fmt.Errorf("%w: no unpublished post titled %q", domain.ErrNotFound, title)
	}
	if matches > 1 {
		logger.Warn("%d unpublished posts titled %q, publishing the first at index %d", matches, title, index)
	}

	post, err := unpublished.Remove(index)
	if err != nil {
		return nil, err
	}
	published.Append(post)

	result := &driving.PublishResult{Post: post, Index: index, Matches: matches}
	// Published is written first. If it fails the unpublished file is left
	// alone so the post stays on disk in exactly one collection.
	if err := s.persist(ctx, published); err != nil {
		return result, err
	}
	return result, s.persist(ctx, unpublished)
}

// SetTag sets the tag of the post at index.
func (s *LifecycleService) SetTag(ctx context.Context, kind domain.CollectionKind, index int, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.collection(ctx, kind)
	if err != nil {
		return err
	}
	post, err := c.At(index)
	if err != nil {
		return err
	}
	post.Tag = domain.NormaliseTag(tag)
	if err := c.Replace(index, post); err != nil {
		return err
	}
	return s.persist(ctx, c)
}

// SetReady sets the ready-to-publish flag of the unpublished post at index.
func (s *LifecycleService) SetReady(ctx context.Context, index int, ready bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.collection(ctx, domain.CollectionUnpublished)
	if err != nil {
		return err
	}
	post, err := c.At(index)
	if err != nil {
		return err
	}
	post.ReadyToPublish = ready
	if err := c.Replace(index, post); err != nil {
		return err
	}
	return s.persist(ctx, c)
}

// Reload re-reads a collection from storage and resets its cursor.
func (s *LifecycleService) Reload(ctx context.Context, kind domain.CollectionKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !kind.IsValid() {
		return fmt.Errorf("%w: unknown collection %q", domain.ErrInvalidInput, kind)
	}
	delete(s.collections, kind)
	_, err := s.collection(ctx, kind)
	return err
}

// collection returns the in-memory collection, loading it on first use.
// Callers must hold s.mu.
func (s *LifecycleService) collection(ctx context.Context, kind domain.CollectionKind) (*domain.Collection, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown collection %q", domain.ErrInvalidInput, kind)
	}
	if c, ok := s.collections[kind]; ok {
		return c, nil
	}

	posts, err := s.repo.Load(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("%w: load %s: %w", domain.ErrPersistence, kind, err)
	}
	for i := range posts {
		posts[i] = posts[i].Normalised()
	}
	c := domain.NewCollection(kind, posts)
	s.collections[kind] = c
	logger.Debug("loaded %d %s posts", c.Len(), kind)
	return c, nil
}

// persist rewrites the backing file. The in-memory collection is kept on failure.
func (s *LifecycleService) persist(ctx context.Context, c *domain.Collection) error {
	if err := s.repo.Save(ctx, c.Kind, c.Posts()); err != nil {
		logger.Error("save %s collection: %v", c.Kind, err)
		return fmt.Errorf("%w: save %s: %w", domain.ErrPersistence, c.Kind, err)
	}
	return nil
}

func view(c *domain.Collection, moved bool, notice string) *driving.CursorView {
	v := &driving.CursorView{
		Kind:   c.Kind,
		Index:  c.Cursor(),
		Total:  c.Len(),
		Moved:  moved,
		Notice: notice,
	}
	if post, ok := c.Current(); ok {
		v.Post = &post
	}
	return v
}
