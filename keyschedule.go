package spn

import "fmt"

// A KeySchedule derives the round key for the given 1-based round from the master key. It must be deterministic and
// return exactly size bits.
type KeySchedule func(master State, round, size int) (State, error)

// SlidingWindow is a KeySchedule which takes the size bits of the master key starting at bit 4*round-4. A 4-round
// standard cipher with a 16-bit block uses five round keys and so needs a 32-bit master key.
func SlidingWindow(master State, round, size int) (State, error) {
	if round < 1 {
		return nil, fmt.Errorf("spn: round %d is not positive: %w", round, ErrValidation)
	}

	start := 4*round - 4
	end := start + size
	if end > len(master) {
		return nil, fmt.Errorf("spn: round %d needs master key bits [%d, %d), have %d: %w",
			round, start, end, len(master), ErrValidation)
	}

	key := make(State, size)
	copy(key, master[start:end])
	return key, nil
}

var _ KeySchedule = SlidingWindow
