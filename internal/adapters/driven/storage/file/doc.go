// Package file provides a single-file SnapshotStore.
//
// The snapshot is encoded as CBOR using Core Deterministic Encoding and
// compressed with zstd. Saves write a temporary file in the same
// directory and rename it over the previous snapshot, so readers never
// observe a partial file. The same corpus always produces the same bytes.
package file
