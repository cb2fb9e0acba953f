package domain

// RawDocument represents opaque bytes discovered in the documentation directory.
// It is the input to extraction.
type RawDocument struct {
	// SourceID names the source this document belongs to.
	// A PDF is its own source; every file in an HTML directory shares one.
	SourceID string

	// URI is the original location (file path).
	URI string

	// MIMEType is the content type (e.g., "application/pdf").
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains connector-specific key-value pairs.
	Metadata map[string]any
}

// Well-known MIME types handled by the extractors.
const (
	MIMETypePDF       = "application/pdf"
	MIMETypeHTML      = "text/html"
	MIMETypeMarkdown  = "text/markdown"
	MIMETypePlainText = "text/plain"
)
