package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driving"
)

func TestServer_handleListPosts(t *testing.T) {
	ctx := context.Background()
	ports := newTestPorts(t,
		domain.Post{Title: "A", Caption: "a", Tag: "Launch", ReadyToPublish: true},
		domain.Post{Title: "B", Caption: "b"},
	)
	server := newTestServer(t, ports)

	t.Run("defaults to unpublished", func(t *testing.T) {
		_, output, err := server.handleListPosts(ctx, nil, ListPostsInput{})

		require.NoError(t, err)
		assert.Equal(t, "unpublished", output.Collection)
		require.Equal(t, 2, output.Count)
		assert.Equal(t, "Launch", output.Posts[0].Tag)
		assert.Equal(t, domain.UncategorisedTag, output.Posts[1].Tag)
		assert.Equal(t, 1, output.Posts[1].Index)
	})

	t.Run("ready only keeps original index", func(t *testing.T) {
		_, output, err := server.handleListPosts(ctx, nil, ListPostsInput{ReadyOnly: true})

		require.NoError(t, err)
		require.Equal(t, 1, output.Count)
		assert.Equal(t, 0, output.Posts[0].Index)
	})

	t.Run("published is empty", func(t *testing.T) {
		_, output, err := server.handleListPosts(ctx, nil, ListPostsInput{Collection: "published"})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.NotNil(t, output.Posts)
	})

	t.Run("unknown collection", func(t *testing.T) {
		_, _, err := server.handleListPosts(ctx, nil, ListPostsInput{Collection: "archive"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handlePublish(t *testing.T) {
	ctx := context.Background()

	t.Run("moves the post", func(t *testing.T) {
		ports := newTestPorts(t, domain.Post{Title: "A"}, domain.Post{Title: "B"})
		server := newTestServer(t, ports)

		_, output, err := server.handlePublish(ctx, nil, PublishInput{Title: "B"})

		require.NoError(t, err)
		assert.Equal(t, "B", output.Title)
		assert.Equal(t, 1, output.Index)
		assert.Empty(t, output.Warning)

		published, err := ports.Lifecycle.List(ctx, domain.CollectionPublished)
		require.NoError(t, err)
		assert.Len(t, published, 1)
	})

	t.Run("warns on shared title", func(t *testing.T) {
		ports := newTestPorts(t, domain.Post{Title: "Same"}, domain.Post{Title: "Same"})
		server := newTestServer(t, ports)

		_, output, err := server.handlePublish(ctx, nil, PublishInput{Title: "Same"})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Matches)
		assert.Contains(t, output.Warning, "2 unpublished posts share this title")
	})

	t.Run("unknown title", func(t *testing.T) {
		server := newTestServer(t, newTestPorts(t))

		_, _, err := server.handlePublish(ctx, nil, PublishInput{Title: "Missing"})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestServer_handleTagPost(t *testing.T) {
	ctx := context.Background()
	ports := newTestPorts(t, domain.Post{Title: "A"})
	require.NoError(t, ports.Tags.Add(ctx, "Launch"))
	server := newTestServer(t, ports)

	tests := []struct {
		name       string
		tag        string
		want       string
		registered bool
	}{
		{"registered tag", "Launch", "Launch", true},
		{"unregistered tag", "Other", "Other", false},
		{"blank tag", "  ", domain.UncategorisedTag, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleTagPost(ctx, nil, TagPostInput{Index: 0, Tag: tt.tag})

			require.NoError(t, err)
			assert.Equal(t, tt.want, output.Tag)
			assert.Equal(t, tt.registered, output.Registered)

			post, err := ports.Lifecycle.Get(ctx, domain.CollectionUnpublished, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, post.Tag)
		})
	}

	t.Run("out of range", func(t *testing.T) {
		_, _, err := server.handleTagPost(ctx, nil, TagPostInput{Index: 4, Tag: "Launch"})

		assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	})
}

func TestServer_handleSetReady(t *testing.T) {
	ctx := context.Background()
	ports := newTestPorts(t, domain.Post{Title: "A"})
	server := newTestServer(t, ports)

	_, output, err := server.handleSetReady(ctx, nil, SetReadyInput{Index: 0, Ready: true})

	require.NoError(t, err)
	assert.True(t, output.Ready)
	post, err := ports.Lifecycle.Get(ctx, domain.CollectionUnpublished, 0)
	require.NoError(t, err)
	assert.True(t, post.ReadyToPublish)
}

func TestServer_IngestTools(t *testing.T) {
	ctx := context.Background()
	ingest := &mockIngestService{result: &driving.IngestResult{
		SubmissionID: "sub-1",
		Posts:        []domain.Post{{Caption: "Hello"}},
		Rejections:   []domain.Rejection{{Index: 1, Reason: `missing "content" field`}},
	}}
	ports := newTestPorts(t)
	ports.Ingest = ingest
	server := newTestServer(t, ports)

	t.Run("import", func(t *testing.T) {
		_, output, err := server.handleImport(ctx, nil, ImportInput{Response: "[]"})

		require.NoError(t, err)
		assert.Equal(t, "sub-1", output.SubmissionID)
		assert.Equal(t, []string{"Hello"}, output.Added)
		assert.Equal(t, []RejectionOutput{{Index: 1, Reason: `missing "content" field`}}, output.Rejected)
		assert.Equal(t, []string{"[]"}, ingest.imported)
	})

	t.Run("generate prefers prompt name", func(t *testing.T) {
		ingest.prompts = nil
		_, _, err := server.handleGenerate(ctx, nil, GenerateInput{PromptName: "launch", Text: "ignored"})

		require.NoError(t, err)
		assert.Equal(t, []string{"name:launch"}, ingest.prompts)
	})

	t.Run("generate from text", func(t *testing.T) {
		ingest.prompts = nil
		_, _, err := server.handleGenerate(ctx, nil, GenerateInput{Text: "write one"})

		require.NoError(t, err)
		assert.Equal(t, []string{"text:write one"}, ingest.prompts)
	})

	t.Run("generate needs input", func(t *testing.T) {
		_, _, err := server.handleGenerate(ctx, nil, GenerateInput{})

		assert.Error(t, err)
	})

	t.Run("errors are returned", func(t *testing.T) {
		failing := &mockIngestService{err: domain.ErrMalformedResponse}
		ports := newTestPorts(t)
		ports.Ingest = failing
		server := newTestServer(t, ports)

		_, _, err := server.handleImport(ctx, nil, ImportInput{Response: "nope"})

		assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	})
}

func TestServer_handleExportReady(t *testing.T) {
	ctx := context.Background()

	t.Run("dry run returns rows", func(t *testing.T) {
		ports := newTestPorts(t)
		ports.Export = &mockExportService{rows: []domain.ExportRow{{Caption: "c", MediaLocator: "https://b.s3.amazonaws.com/k"}}}
		server := newTestServer(t, ports)

		_, output, err := server.handleExportReady(ctx, nil, ExportInput{DryRun: true})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		assert.Empty(t, output.Path)
		assert.Equal(t, "https://b.s3.amazonaws.com/k", output.Rows[0].URL)
	})

	t.Run("writes export", func(t *testing.T) {
		ports := newTestPorts(t)
		ports.Export = &mockExportService{result: &driving.ExportResult{Path: "/tmp/unpublished_posts.csv", Count: 2}}
		server := newTestServer(t, ports)

		_, output, err := server.handleExportReady(ctx, nil, ExportInput{})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, "/tmp/unpublished_posts.csv", output.Path)
	})

	t.Run("export failure", func(t *testing.T) {
		ports := newTestPorts(t)
		ports.Export = &mockExportService{err: errors.New("disk full")}
		server := newTestServer(t, ports)

		_, _, err := server.handleExportReady(ctx, nil, ExportInput{})

		assert.EqualError(t, err, "disk full")
	})
}
