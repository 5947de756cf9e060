package driving

import (
	"context"

	"github.com/custodia-labs/curata/internal/core/domain"
)

// MediaService binds uploaded assets to posts.
type MediaService interface {
	// Bind uploads the asset under a unique key and returns the post with
	// its media locator set. The post passed in is not modified.
	Bind(ctx context.Context, post domain.Post, req BindRequest) (*domain.Post, error)

	// Attach binds an asset to the unpublished post at index and saves it.
	Attach(ctx context.Context, index int, req BindRequest) (*domain.Post, error)

	// CheckExists reports whether key exists in bucket.
	CheckExists(ctx context.Context, bucket, key string) (bool, error)

	// Validate checks that the recorded locator of the post at index is still live.
	Validate(ctx context.Context, kind domain.CollectionKind, index int) (*Validation, error)
}

// BindRequest describes an asset upload.
type BindRequest struct {
	// AssetPath is the local file to upload.
	AssetPath string

	// Bucket is the destination bucket.
	Bucket string

	// Folder is the destination folder within Bucket.
	Folder string
}

// Validation is the result of a locator check.
type Validation struct {
	Bucket  string
	Key     string
	Locator string
	Exists  bool
}
