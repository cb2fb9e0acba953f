// Package domain defines the core business entities for manuals.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Record: One addressable unit of extracted text (a page or a section)
//   - ChapterRange: A contiguous run of records sharing a chapter label
//   - Query / SearchResult: Ranked full-text retrieval
//   - Snapshot: The persisted form of a corpus
//   - RawDocument: Opaque bytes discovered in the documentation directory
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
