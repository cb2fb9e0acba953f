// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentSource: Discovers raw documents in the documentation directory
//   - Extractor: Turns one raw document into sections
//   - ExtractorRegistry: Selects the extractor for a MIME type
//   - RecordPipeline: Normalises extracted records
//   - SnapshotStore: Persists and loads the corpus
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - PromptStore: User-editable prompt templates. Embedded defaults are used without it.
//   - ResourceCatalogue: Static reference resources. Only dynamic resources are served without it.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, extractor, or connector package
package driven
