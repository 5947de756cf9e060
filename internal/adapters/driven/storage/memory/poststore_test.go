package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/curata/internal/core/domain"
)

func TestPostStore_Load_MissingIsEmpty(t *testing.T) {
	store := NewPostStore()

	posts, err := store.Load(context.Background(), domain.CollectionPublished)

	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostStore_SaveLoad_KeepsCollectionsApart(t *testing.T) {
	store := NewPostStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.CollectionUnpublished, []domain.Post{{Title: "draft"}}))
	require.NoError(t, store.Save(ctx, domain.CollectionPublished, []domain.Post{{Title: "live"}}))

	unpublished, err := store.Load(ctx, domain.CollectionUnpublished)
	require.NoError(t, err)
	published, err := store.Load(ctx, domain.CollectionPublished)
	require.NoError(t, err)

	assert.Equal(t, "draft", unpublished[0].Title)
	assert.Equal(t, "live", published[0].Title)
	assert.Equal(t, 2, store.Saves())
}

func TestPostStore_Load_ReturnsCopy(t *testing.T) {
	store := NewPostStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.CollectionUnpublished, []domain.Post{{Title: "a"}}))

	posts, err := store.Load(ctx, domain.CollectionUnpublished)
	require.NoError(t, err)
	posts[0].Title = "mutated"

	again, err := store.Load(ctx, domain.CollectionUnpublished)
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].Title)
}
