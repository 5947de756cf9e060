package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driving"
)

// ListPostsInput is the input schema for the list_posts tool.
type ListPostsInput struct {
	Collection string `json:"collection,omitempty" jsonschema:"unpublished (default) or published"`
	ReadyOnly  bool   `json:"ready_only,omitempty" jsonschema:"only return posts marked ready to publish"`
}

// PostOutput is a post with its position in the collection.
type PostOutput struct {
	Index        int    `json:"index"`
	Title        string `json:"title"`
	Type         string `json:"type"`
	Caption      string `json:"caption"`
	Description  string `json:"description,omitempty"`
	Tag          string `json:"tag"`
	MediaLocator string `json:"media_locator,omitempty"`
	Ready        bool   `json:"ready_to_publish"`
}

// ListPostsOutput is the output schema for the list_posts tool.
type ListPostsOutput struct {
	Collection string       `json:"collection"`
	Posts      []PostOutput `json:"posts"`
	Count      int          `json:"count"`
}

// PublishInput is the input schema for the publish_post tool.
type PublishInput struct {
	Title string `json:"title" jsonschema:"exact title of the unpublished post to publish"`
}

// PublishOutput is the output schema for the publish_post tool.
type PublishOutput struct {
	Title   string `json:"title"`
	Index   int    `json:"index"`
	Matches int    `json:"matches"`
	Warning string `json:"warning,omitempty"`
}

// TagPostInput is the input schema for the tag_post tool.
type TagPostInput struct {
	Collection string `json:"collection,omitempty" jsonschema:"unpublished (default) or published"`
	Index      int    `json:"index" jsonschema:"zero-based position of the post"`
	Tag        string `json:"tag" jsonschema:"tag name; empty stores Uncategorised"`
}

// TagPostOutput is the output schema for the tag_post tool.
type TagPostOutput struct {
	Tag        string `json:"tag"`
	Registered bool   `json:"registered"`
}

// SetReadyInput is the input schema for the set_ready tool.
type SetReadyInput struct {
	Index int  `json:"index" jsonschema:"zero-based position of the unpublished post"`
	Ready bool `json:"ready" jsonschema:"whether the post is ready to publish"`
}

// SetReadyOutput is the output schema for the set_ready tool.
type SetReadyOutput struct {
	Index int  `json:"index"`
	Ready bool `json:"ready_to_publish"`
}

// ImportInput is the input schema for the import_posts tool.
type ImportInput struct {
	Response string `json:"response" jsonschema:"model output containing a JSON array of posts"`
}

// GenerateInput is the input schema for the generate_posts tool.
type GenerateInput struct {
	PromptName string `json:"prompt_name,omitempty" jsonschema:"name of a catalogue prompt"`
	Text       string `json:"text,omitempty" jsonschema:"free prompt text, used when prompt_name is empty"`
}

// RejectionOutput describes a skipped response entry.
type RejectionOutput struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// IngestOutput is the output schema for the import_posts and generate_posts tools.
type IngestOutput struct {
	SubmissionID string            `json:"submission_id,omitempty"`
	Added        []string          `json:"added"`
	Rejected     []RejectionOutput `json:"rejected,omitempty"`
}

// ExportInput is the input schema for the export_ready tool.
type ExportInput struct {
	DryRun bool `json:"dry_run,omitempty" jsonschema:"return the rows without writing the file"`
}

// ExportRowOutput is one row of the ready export.
type ExportRowOutput struct {
	Caption string `json:"caption"`
	URL     string `json:"url"`
}

// ExportOutput is the output schema for the export_ready tool.
type ExportOutput struct {
	Path  string            `json:"path,omitempty"`
	Count int               `json:"count"`
	Rows  []ExportRowOutput `json:"rows,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_posts",
		Description: "List posts in the unpublished or published collection",
	}, s.handleListPosts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "publish_post",
		Description: "Move the first unpublished post with the given title to published",
	}, s.handlePublish)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "tag_post",
		Description: "Set the tag of a post",
	}, s.handleTagPost)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_ready",
		Description: "Mark an unpublished post ready or not ready to publish",
	}, s.handleSetReady)

	if s.ports.Ingest != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "import_posts",
			Description: "Parse model output and append the accepted posts to unpublished",
		}, s.handleImport)

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "generate_posts",
			Description: "Ask the configured model for posts and append them to unpublished",
		}, s.handleGenerate)
	}

	if s.ports.Export != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "export_ready",
			Description: "Append ready posts with caption and media to the CSV export",
		}, s.handleExportReady)
	}
}

func (s *Server) handleListPosts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListPostsInput,
) (*mcp.CallToolResult, ListPostsOutput, error) {
	kind, err := collectionOrDefault(input.Collection)
	if err != nil {
		return nil, ListPostsOutput{}, err
	}

	posts, err := s.ports.Lifecycle.List(ctx, kind)
	if err != nil {
		return nil, ListPostsOutput{}, err
	}

	output := ListPostsOutput{
		Collection: kind.String(),
		Posts:      make([]PostOutput, 0, len(posts)),
	}
	for i := range posts {
		if input.ReadyOnly && !posts[i].ReadyToPublish {
			continue
		}
		output.Posts = append(output.Posts, toPostOutput(i, posts[i]))
	}
	output.Count = len(output.Posts)

	return nil, output, nil
}

func (s *Server) handlePublish(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PublishInput,
) (*mcp.CallToolResult, PublishOutput, error) {
	result, err := s.ports.Lifecycle.Publish(ctx, input.Title)
	if err != nil {
		return nil, PublishOutput{}, err
	}

	output := PublishOutput{
		Title:   result.Post.Title,
		Index:   result.Index,
		Matches: result.Matches,
	}
	if result.Ambiguous() {
		output.Warning = fmt.Sprintf("%d unpublished posts share this title; the first was published", result.Matches)
	}
	return nil, output, nil
}

func (s *Server) handleTagPost(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TagPostInput,
) (*mcp.CallToolResult, TagPostOutput, error) {
	kind, err := collectionOrDefault(input.Collection)
	if err != nil {
		return nil, TagPostOutput{}, err
	}
	if err := s.ports.Lifecycle.SetTag(ctx, kind, input.Index, input.Tag); err != nil {
		return nil, TagPostOutput{}, err
	}

	tag := domain.NormaliseTag(input.Tag)
	output := TagPostOutput{Tag: tag, Registered: tag == domain.UncategorisedTag}
	if s.ports.Tags != nil && !output.Registered {
		exists, err := s.ports.Tags.Exists(ctx, tag)
		if err != nil {
			return nil, TagPostOutput{}, err
		}
		output.Registered = exists
	}
	return nil, output, nil
}

func (s *Server) handleSetReady(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SetReadyInput,
) (*mcp.CallToolResult, SetReadyOutput, error) {
	if err := s.ports.Lifecycle.SetReady(ctx, input.Index, input.Ready); err != nil {
		return nil, SetReadyOutput{}, err
	}
	return nil, SetReadyOutput(input), nil
}

func (s *Server) handleImport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ImportInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	result, err := s.ports.Ingest.Import(ctx, input.Response)
	if err != nil {
		return nil, IngestOutput{}, err
	}
	return nil, toIngestOutput(result), nil
}

func (s *Server) handleGenerate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	var (
		result *driving.IngestResult
		err    error
	)
	switch {
	case input.PromptName != "":
		result, err = s.ports.Ingest.Submit(ctx, input.PromptName)
	case input.Text != "":
		result, err = s.ports.Ingest.SubmitText(ctx, input.Text)
	default:
		return nil, IngestOutput{}, errors.New("either prompt_name or text is required")
	}
	if err != nil {
		return nil, IngestOutput{}, err
	}
	return nil, toIngestOutput(result), nil
}

func (s *Server) handleExportReady(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExportInput,
) (*mcp.CallToolResult, ExportOutput, error) {
	if input.DryRun {
		rows, err := s.ports.Export.SelectReady(ctx)
		if err != nil {
			return nil, ExportOutput{}, err
		}
		output := ExportOutput{Count: len(rows), Rows: make([]ExportRowOutput, len(rows))}
		for i, r := range rows {
			output.Rows[i] = ExportRowOutput{Caption: r.Caption, URL: r.MediaLocator}
		}
		return nil, output, nil
	}

	result, err := s.ports.Export.ExportReady(ctx)
	if err != nil {
		return nil, ExportOutput{}, err
	}
	return nil, ExportOutput{Path: result.Path, Count: result.Count}, nil
}

// collectionOrDefault parses a collection name; empty means unpublished.
func collectionOrDefault(name string) (domain.CollectionKind, error) {
	if name == "" {
		return domain.CollectionUnpublished, nil
	}
	return domain.ParseCollectionKind(name)
}

func toPostOutput(index int, p domain.Post) PostOutput {
	return PostOutput{
		Index:        index,
		Title:        p.Title,
		Type:         p.Type,
		Caption:      p.Caption,
		Description:  p.Description,
		Tag:          p.DisplayTag(),
		MediaLocator: p.MediaLocator,
		Ready:        p.ReadyToPublish,
	}
}

func toIngestOutput(result *driving.IngestResult) IngestOutput {
	output := IngestOutput{
		SubmissionID: result.SubmissionID,
		Added:        make([]string, len(result.Posts)),
	}
	for i := range result.Posts {
		output.Added[i] = result.Posts[i].Caption
	}
	for _, r := range result.Rejections {
		output.Rejected = append(output.Rejected, RejectionOutput{Index: r.Index, Reason: r.Reason})
	}
	return output
}
