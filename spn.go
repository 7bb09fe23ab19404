// Package spn implements a small Substitution-Permutation Network (SPN) block cipher built from interchangeable layers.
//
// A cipher is an ordered sequence of layers over a fixed-width bit vector: substitution layers built from bijective
// S-boxes, bit permutation layers, and key-whitening steps which XOR a round key derived from the master key into the
// state. The standard construction (see NewStandard) repeats {whitening, substitution, permutation} for all but the last
// round, which is {whitening, substitution, whitening}.
//
// This is a teaching cipher with 4-bit S-boxes and a toy key schedule. It is not secure and is not intended to be. The
// companion package differential analyzes it.
package spn

import "errors"

// ErrValidation is returned (wrapped) when a cipher component or one of its inputs violates a precondition: bit vectors
// of the wrong length, non-bijective S-box tables or permutations, mismatched layer lengths, or short master keys.
var ErrValidation = errors.New("spn: validation failed")
