package services

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/custodia-labs/manuals/internal/core/domain"
)

// Fingerprint hashes every raw document's identity and content in order.
// Two runs over unchanged inputs produce the same fingerprint.
func Fingerprint(docs []domain.RawDocument) string {
	h := blake3.New()
	var n [8]byte
	field := func(b []byte) {
		binary.LittleEndian.PutUint64(n[:], uint64(len(b)))
		_, _ = h.Write(n[:])
		_, _ = h.Write(b)
	}
	for _, d := range docs {
		field([]byte(d.SourceID))
		field([]byte(d.URI))
		field([]byte(d.MIMEType))
		field(d.Content)
	}
	return hex.EncodeToString(h.Sum(nil))
}
