package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/curata/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Curata resources.
	uriScheme = "curata://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	for _, kind := range domain.AllCollectionKinds() {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "posts/" + kind.String(),
			Name:        kind.String() + "-posts",
			Description: "All posts in the " + kind.String() + " collection",
			MIMEType:    "application/json",
		}, s.handleCollectionResource)
	}

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "posts/{collection}/{index}",
		Name:        "post",
		Description: "A single post by collection and position",
		MIMEType:    "application/json",
	}, s.handlePostResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "tags",
		Name:        "tags",
		Description: "Registered tag names",
		MIMEType:    "application/json",
	}, s.handleTagsResource)
}

// handleCollectionResource returns every post in a collection.
func (s *Server) handleCollectionResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	kind, _, ok := parsePostURI(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	posts, err := s.ports.Lifecycle.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("listing %s posts: %w", kind, err)
	}

	out := make([]PostOutput, len(posts))
	for i := range posts {
		out[i] = toPostOutput(i, posts[i])
	}
	return jsonResult(req.Params.URI, out)
}

// handlePostResource returns one post.
func (s *Server) handlePostResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	kind, index, ok := parsePostURI(req.Params.URI)
	if !ok || index < 0 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	post, err := s.ports.Lifecycle.Get(ctx, kind, index)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResult(req.Params.URI, toPostOutput(index, *post))
}

// handleTagsResource returns the tag names, or an empty list without a tag service.
func (s *Server) handleTagsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	names := []string{}
	if s.ports.Tags != nil {
		tags, err := s.ports.Tags.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing tags: %w", err)
		}
		for _, t := range tags {
			names = append(names, t.Name)
		}
	}
	return jsonResult(req.Params.URI, names)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// parsePostURI splits curata://posts/{collection}[/{index}].
// index is -1 when the URI names a whole collection.
func parsePostURI(uri string) (kind domain.CollectionKind, index int, ok bool) {
	const prefix = uriScheme + "posts/"

	rest, found := strings.CutPrefix(uri, prefix)
	if !found {
		return "", 0, false
	}

	name, indexPart, hasIndex := strings.Cut(rest, "/")
	kind, err := domain.ParseCollectionKind(name)
	if err != nil {
		return "", 0, false
	}
	if !hasIndex {
		return kind, -1, true
	}

	index, err = strconv.Atoi(indexPart)
	if err != nil {
		return "", 0, false
	}
	return kind, index, true
}
