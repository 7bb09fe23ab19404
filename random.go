package spn

import (
	"fmt"
	"math/rand/v2"
)

// RandomSBox returns a uniformly random bits-wide S-box drawn from rng.
func RandomSBox(bits int, rng *rand.Rand) (*SBox, error) {
	if bits < 1 || bits > MaxSBoxBits {
		return nil, fmt.Errorf("spn: S-box width %d is out of range [1, %d]: %w", bits, MaxSBoxBits, ErrValidation)
	}
	return NewSBox(rng.Perm(1<<bits), bits)
}

// RandomPermutation returns a uniformly random permutation of length bits drawn from rng.
func RandomPermutation(length int, rng *rand.Rand) Permutation {
	return rng.Perm(length)
}
