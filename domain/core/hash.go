package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// DeriveSeed mixes a base seed with stream labels into a new seed.
// The same labels and base always give the same seed; empty labels are skipped.
func DeriveSeed(base int64, labels ...string) int64 {
	var data strings.Builder
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(base))
	data.Write(buf[:])
	for _, label := range labels {
		if label == "" {
			continue
		}
		data.WriteByte(0)
		data.WriteString(label)
	}
	sum := sha256.Sum256([]byte(data.String()))
	return int64(binary.BigEndian.Uint64(sum[:8]) & (1<<63 - 1))
}
