package spn

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/codahale/spn/internal/bitvec"
)

// State is a bit vector holding one bit (0 or 1) per element. Bit i of a k-bit group contributes 1<<i to the group's
// integer value.
type State []byte

// ParseState parses a string of '0' and '1' characters into a State. Spaces and underscores are ignored, so the output
// of State.String parses back to the same value.
func ParseState(s string) (State, error) {
	state := make(State, 0, len(s))
	for i, r := range s {
		switch r {
		case '0':
			state = append(state, 0)
		case '1':
			state = append(state, 1)
		case ' ', '_':
		default:
			return nil, fmt.Errorf("spn: invalid bit %q at offset %d: %w", r, i, ErrValidation)
		}
	}
	return state, nil
}

// StateFromUint returns the n-bit State whose bit i is bit i of v.
func StateFromUint(v uint64, n int) State {
	return bitvec.AppendUint(nil, v, n)
}

// Uint returns the integer value of the first 64 bits of the state.
func (s State) Uint() uint64 {
	return bitvec.Uint(s)
}

// Equal reports whether s and other hold the same bits.
func (s State) Equal(other State) bool {
	return bytes.Equal(s, other)
}

// String returns the bits of the state in index order, grouped into nibbles.
func (s State) String() string {
	var b strings.Builder
	for i, bit := range s {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('0' + bit)
	}
	return b.String()
}

// check returns an error unless the state is exactly n bits long and holds only 0s and 1s.
func (s State) check(what string, n int) error {
	if len(s) != n {
		return fmt.Errorf("spn: %s has %d bits, want %d: %w", what, len(s), n, ErrValidation)
	}
	if !bitvec.IsBinary(s) {
		return fmt.Errorf("spn: %s holds non-binary values: %w", what, ErrValidation)
	}
	return nil
}
