// Package mcp provides an MCP (Model Context Protocol) server adapter for Curata.
// It lets AI assistants list, import, tag, publish and export posts.
package mcp

import "errors"

// ErrMissingLifecycleService is returned when the lifecycle service is not provided.
var ErrMissingLifecycleService = errors.New("mcp: lifecycle service is required")
