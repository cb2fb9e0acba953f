package file

import (
	"bytes"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/custodia-labs/manuals/internal/core/domain"
)

// formatVersion is bumped whenever the encoded layout changes.
const formatVersion = 1

// magic prefixes every snapshot file ahead of the zstd frame.
var magic = []byte("MANUALS\x00")

var (
	encMode cbor.EncMode
	decMode cbor.DecMode

	encoder *zstd.Encoder
	decoder *zstd.Decoder
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("file: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("file: CBOR decoder initialization failed: " + err.Error())
	}

	encoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("file: zstd encoder initialization failed: " + err.Error())
	}
	decoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("file: zstd decoder initialization failed: " + err.Error())
	}
}

type encodedSnapshot struct {
	Version int             `cbor:"version"`
	Meta    encodedMeta     `cbor:"meta"`
	Records []encodedRecord `cbor:"records"`
}

type encodedMeta struct {
	ID          string   `cbor:"id"`
	CreatedAt   int64    `cbor:"created_at"`
	Fingerprint string   `cbor:"fingerprint"`
	Sources     []string `cbor:"sources"`
}

type encodedRecord struct {
	SourceID string `cbor:"source"`
	Ordinal  int    `cbor:"ordinal"`
	Label    string `cbor:"label,omitempty"`
	Body     string `cbor:"body"`
}

// encode serialises and compresses a snapshot.
func encode(snap *domain.Snapshot) ([]byte, error) {
	enc := encodedSnapshot{
		Version: formatVersion,
		Meta: encodedMeta{
			ID:          snap.Meta.ID,
			CreatedAt:   snap.Meta.CreatedAt.UnixNano(),
			Fingerprint: snap.Meta.Fingerprint,
			Sources:     snap.Meta.Sources,
		},
		Records: make([]encodedRecord, len(snap.Records)),
	}
	for i, r := range snap.Records {
		enc.Records[i] = encodedRecord{SourceID: r.SourceID, Ordinal: r.Ordinal, Label: r.Label, Body: r.Body}
	}

	raw, err := encMode.Marshal(enc)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	out := append([]byte{}, magic...)
	return encoder.EncodeAll(raw, out), nil
}

// decode reverses encode. Every failure wraps ErrCorruptSnapshot.
func decode(data []byte) (*domain.Snapshot, error) {
	if !bytes.HasPrefix(data, magic) {
		return nil, fmt.Errorf("not a snapshot file: %w", domain.ErrCorruptSnapshot)
	}
	raw, err := decoder.DecodeAll(data[len(magic):], nil)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w: %w", domain.ErrCorruptSnapshot, err)
	}

	var enc encodedSnapshot
	if err := decMode.Unmarshal(raw, &enc); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w: %w", domain.ErrCorruptSnapshot, err)
	}
	if enc.Version != formatVersion {
		return nil, fmt.Errorf("snapshot format version %d, want %d: %w", enc.Version, formatVersion, domain.ErrCorruptSnapshot)
	}

	snap := &domain.Snapshot{
		Meta: domain.SnapshotMeta{
			ID:          enc.Meta.ID,
			CreatedAt:   time.Unix(0, enc.Meta.CreatedAt).UTC(),
			Fingerprint: enc.Meta.Fingerprint,
			Sources:     enc.Meta.Sources,
		},
		Records: make([]domain.Record, len(enc.Records)),
	}
	for i, r := range enc.Records {
		if r.Ordinal < 1 {
			return nil, fmt.Errorf("record %s#%d: %w", r.SourceID, r.Ordinal, domain.ErrCorruptSnapshot)
		}
		snap.Records[i] = domain.Record{SourceID: r.SourceID, Ordinal: r.Ordinal, Label: r.Label, Body: r.Body}
	}
	return snap, nil
}
