package driven

import (
	"context"

	"github.com/custodia-labs/curata/internal/core/domain"
)

// ObjectStore is the object-storage collaborator used for media binding.
type ObjectStore interface {
	// Exists reports whether key is present in bucket.
	// A missing object is (false, nil); errors are transport or auth failures.
	Exists(ctx context.Context, bucket, key string) (bool, error)

	// Upload copies the local file at localPath to bucket/key.
	Upload(ctx context.Context, localPath, bucket, key string) error
}

// ObjectStoreFactory creates object store handles.
// One handle exists per set of credentials; a credential change produces a new handle.
type ObjectStoreFactory interface {
	Create(ctx context.Context, settings domain.StorageSettings) (ObjectStore, error)
}
