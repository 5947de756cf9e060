// Package driving defines the interfaces the CLI, TUI and MCP server use
// to reach the core. These are the "driving" ports in hexagonal
// architecture terminology.
//
// Implementations live in internal/core/services.
package driving
