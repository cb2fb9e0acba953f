package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested source, chapter or record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates no extractor handles a MIME type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrCorpusUnavailable indicates no corpus has been loaded yet.
	// Callers must distinguish it from ErrNotFound.
	ErrCorpusUnavailable = errors.New("corpus unavailable")

	// ErrCorruptSnapshot indicates a persisted snapshot could not be decoded
	// or violates record invariants.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")

	// ErrSourceUnreadable indicates a source container could not be opened.
	ErrSourceUnreadable = errors.New("source unreadable")
)
