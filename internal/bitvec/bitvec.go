// Package bitvec implements the bit-vector plumbing shared by the cipher layers and the differential search. A vector
// stores one bit per byte, least significant bit first within each group.
package bitvec

import (
	"crypto/subtle"
	"slices"
)

// XOR XORs a and b into dst. Uses subtle.XORBytes for vectors longer than 16 bits and a scalar loop for short ones.
func XOR(dst, a, b []byte) {
	if len(dst) > 16 {
		subtle.XORBytes(dst, a, b)
	} else {
		for i := range dst {
			dst[i] = a[i] ^ b[i]
		}
	}
}

// IsBinary reports whether every element of v is 0 or 1.
func IsBinary(v []byte) bool {
	for _, b := range v {
		if b > 1 {
			return false
		}
	}
	return true
}

// Uint returns the integer whose bit i is v[i]. Only the first 64 elements of v are used.
func Uint(v []byte) uint64 {
	var x uint64
	for i, b := range v[:min(len(v), 64)] {
		x |= uint64(b&1) << i
	}
	return x
}

// AppendUint appends the n low bits of x to dst, least significant bit first, and returns the resulting slice.
func AppendUint(dst []byte, x uint64, n int) []byte {
	head := slices.Grow(dst, n)
	for i := range n {
		head = append(head, byte((x>>uint(i))&1)) //nolint:gosec // i is always >= 0
	}
	return head
}

// Groups splits v into consecutive k-bit groups and returns the integer value of each group. len(v) must be a multiple
// of k.
func Groups(v []byte, k int) []int {
	groups := make([]int, len(v)/k)
	for i := range groups {
		groups[i] = int(Uint(v[i*k : (i+1)*k])) //nolint:gosec // k is at most 16 bits
	}
	return groups
}

// FromGroups is the inverse of Groups: it concatenates the k low bits of each group into a single vector.
func FromGroups(groups []int, k int) []byte {
	v := make([]byte, 0, len(groups)*k)
	for _, g := range groups {
		v = AppendUint(v, uint64(g), k) //nolint:gosec // groups are non-negative
	}
	return v
}
