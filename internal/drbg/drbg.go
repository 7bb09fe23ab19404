// Package drbg derives deterministic pseudorandom generators from a domain string, a seed, and a stream index.
package drbg

import (
	"crypto/sha3"
	"encoding/binary"
	"math/rand/v2"
)

// New returns a ChaCha8-backed generator keyed with SHAKE128(domain || seed || index). Distinct indexes give
// independent streams for the same seed, so parallel workers can each draw from their own generator and still produce
// reproducible results.
func New(domain string, seed []byte, index uint64) *rand.Rand {
	h := sha3.NewSHAKE128()
	_, _ = h.Write(binary.LittleEndian.AppendUint64(nil, uint64(len(domain))))
	_, _ = h.Write([]byte(domain))
	_, _ = h.Write(binary.LittleEndian.AppendUint64(nil, uint64(len(seed))))
	_, _ = h.Write(seed)
	_, _ = h.Write(binary.LittleEndian.AppendUint64(nil, index))

	var key [32]byte
	_, _ = h.Read(key[:])
	return rand.New(rand.NewChaCha8(key)) //nolint:gosec // not used for secrets
}
