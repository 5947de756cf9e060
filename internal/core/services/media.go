package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driven"
	"github.com/custodia-labs/curata/internal/core/ports/driving"
	"github.com/custodia-labs/curata/internal/logger"
)

// Ensure MediaService implements the interface.
var _ driving.MediaService = (*MediaService)(nil)

// MediaService uploads assets under unique keys and records their locators on posts.
type MediaService struct {
	lifecycle driving.LifecycleService
	settings  driving.SettingsService
	factory   driven.ObjectStoreFactory
	now       func() time.Time

	mu       sync.Mutex
	store    driven.ObjectStore
	storeFor domain.StorageSettings
}

// NewMediaService creates a new media service.
// The factory may be nil, in which case every operation fails with
// domain.ErrStorageUnavailable.
func NewMediaService(
	lifecycle driving.LifecycleService,
	settings driving.SettingsService,
	factory driven.ObjectStoreFactory,
) *MediaService {
	return &MediaService{
		lifecycle: lifecycle,
		settings:  settings,
		factory:   factory,
		now:       time.Now,
	}
}

// Bind uploads the asset and returns a copy of post with its media fields set.
// An existing object at folder/basename fails with domain.ErrDuplicateAsset
// before anything is written.
func (s *MediaService) Bind(ctx context.Context, post domain.Post, req driving.BindRequest) (*domain.Post, error) {
	if strings.TrimSpace(req.AssetPath) == "" {
		return nil, fmt.Errorf("%w: asset path is required", domain.ErrInvalidInput)
	}
	if _, err := os.Stat(req.AssetPath); err != nil {
		return nil, fmt.Errorf("%w: asset %s: %w", domain.ErrInvalidInput, req.AssetPath, err)
	}

	store, storage, err := s.objectStore(ctx)
	if err != nil {
		return nil, err
	}
	bucket := firstNonBlank(req.Bucket, storage.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("%w: bucket is required", domain.ErrInvalidInput)
	}
	folder := firstNonBlank(req.Folder, storage.Folder)

	key := domain.DestinationKey(folder, req.AssetPath)
	exists, err := store.Exists(ctx, bucket, key)
	if err != nil {
		return nil, fmt.Errorf("%w: check %s/%s: %w", domain.ErrStorageUnavailable, bucket, key, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrDuplicateAsset, bucket, key)
	}

	unique := domain.UniqueKey(key, s.now())
	logger.Debug("uploading %s to %s/%s", req.AssetPath, bucket, unique)
	if err := store.Upload(ctx, req.AssetPath, bucket, unique); err != nil {
		logger.Error("upload %s: %v", req.AssetPath, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrUploadFailed, err)
	}

	bound := post
	bound.BucketRef = bucket
	bound.FolderRef = folder
	bound.MediaLocator = domain.MediaLocator(bucket, unique)
	return &bound, nil
}

// Attach binds an asset to the unpublished post at index and saves it.
func (s *MediaService) Attach(ctx context.Context, index int, req driving.BindRequest) (*domain.Post, error) {
	post, err := s.lifecycle.Get(ctx, domain.CollectionUnpublished, index)
	if err != nil {
		return nil, err
	}
	bound, err := s.Bind(ctx, *post, req)
	if err != nil {
		return nil, err
	}
	if err := s.lifecycle.Update(ctx, index, *bound); err != nil {
		return bound, err
	}
	return bound, nil
}

// CheckExists reports whether key exists in bucket.
func (s *MediaService) CheckExists(ctx context.Context, bucket, key string) (bool, error) {
	store, _, err := s.objectStore(ctx)
	if err != nil {
		return false, err
	}
	exists, err := store.Exists(ctx, bucket, key)
	if err != nil {
		return false, fmt.Errorf("%w: check %s/%s: %w", domain.ErrStorageUnavailable, bucket, key, err)
	}
	return exists, nil
}

// Validate checks that the locator recorded on the post at index still resolves.
// A missing object is reported in the result, never corrected.
func (s *MediaService) Validate(ctx context.Context, kind domain.CollectionKind, index int) (*driving.Validation, error) {
	post, err := s.lifecycle.Get(ctx, kind, index)
	if err != nil {
		return nil, err
	}
	if !post.HasMedia() {
		return nil, fmt.Errorf("%w: post %q has no media bound", domain.ErrInvalidInput, post.Title)
	}
	bucket, key, err := domain.ParseMediaLocator(post.MediaLocator)
	if err != nil {
		return nil, err
	}

	exists, err := s.CheckExists(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		logger.Warn("media for %q is missing: %s", post.Title, post.MediaLocator)
	}
	return &driving.Validation{
		Bucket:  bucket,
		Key:     key,
		Locator: post.MediaLocator,
		Exists:  exists,
	}, nil
}

// objectStore returns a handle for the current storage settings,
// creating a new one whenever the settings change.
func (s *MediaService) objectStore(ctx context.Context) (driven.ObjectStore, domain.StorageSettings, error) {
	if s.factory == nil || s.settings == nil {
		return nil, domain.StorageSettings{}, fmt.Errorf("%w: object storage not configured", domain.ErrStorageUnavailable)
	}
	settings, err := s.settings.Get()
	if err != nil {
		return nil, domain.StorageSettings{}, fmt.Errorf("load storage settings: %w", err)
	}
	storage := settings.Storage
	if !storage.IsConfigured() {
		return nil, storage, fmt.Errorf("%w: storage credentials not configured", domain.ErrStorageUnavailable)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store != nil && s.storeFor == storage {
		return s.store, storage, nil
	}
	store, err := s.factory.Create(ctx, storage)
	if err != nil {
		return nil, storage, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	s.store = store
	s.storeFor = storage
	return store, storage, nil
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
