// Package extractors provides the ExtractorRegistry and the format
// extractors that turn raw documentation files into sections.
//
// Extractors are registered with the Registry at startup. The registry
// picks the highest-priority extractor whose MIME types match a document.
package extractors
