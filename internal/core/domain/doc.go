// Package domain defines the core business entities for Curata.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Post: A content item produced from a model response
//   - Collection: An ordered set of posts with a navigation cursor
//   - Tag: A named label referenced by posts
//   - Prompt, Customer: Inputs used to build a model submission
//   - Submission: A record of one model round trip
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
