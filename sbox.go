package spn

import (
	"fmt"
	"slices"

	"github.com/codahale/spn/internal/bitvec"
)

// MaxSBoxBits is the widest S-box NewSBox accepts.
const MaxSBoxBits = 16

//nolint:gochecknoglobals // this is a constant
var defaultTable = []int{
	0xC, 0x5, 0x6, 0xB, 0x9, 0x0, 0xA, 0xD,
	0x3, 0xE, 0xF, 0x8, 0x4, 0x7, 0x1, 0x2,
}

// An SBox is a bijective lookup table over the k-bit integers, along with its inverse. SBox values are immutable and
// safe for concurrent use.
type SBox struct {
	bits    int
	table   []int
	inverse []int
}

// NewSBox validates the given table as a bijection over [0, 2**bits) and returns an SBox for it. It returns an error
// wrapping ErrValidation if the table has the wrong number of entries, has an entry out of range, or repeats a value.
func NewSBox(table []int, bits int) (*SBox, error) {
	if bits < 1 || bits > MaxSBoxBits {
		return nil, fmt.Errorf("spn: S-box width %d is out of range [1, %d]: %w", bits, MaxSBoxBits, ErrValidation)
	}

	size := 1 << bits
	if len(table) != size {
		return nil, fmt.Errorf("spn: S-box table has %d entries, want %d: %w", len(table), size, ErrValidation)
	}

	inverse := make([]int, size)
	seen := make([]bool, size)
	for x, y := range table {
		if y < 0 || y >= size {
			return nil, fmt.Errorf("spn: S-box maps %d to %d, outside [0, %d): %w", x, y, size, ErrValidation)
		}
		if seen[y] {
			return nil, fmt.Errorf("spn: S-box maps more than one input to %d: %w", y, ErrValidation)
		}
		seen[y] = true
		inverse[y] = x
	}

	return &SBox{bits: bits, table: slices.Clone(table), inverse: inverse}, nil
}

// DefaultSBox returns the 4-bit S-box {C, 5, 6, B, 9, 0, A, D, 3, E, F, 8, 4, 7, 1, 2}.
func DefaultSBox() *SBox {
	s, err := NewSBox(defaultTable, 4)
	if err != nil {
		panic(err)
	}
	return s
}

// Bits returns the width of the S-box's inputs and outputs.
func (s *SBox) Bits() int {
	return s.bits
}

// Size returns the number of entries in the S-box, 2**Bits.
func (s *SBox) Size() int {
	return len(s.table)
}

// Table returns a copy of the forward lookup table.
func (s *SBox) Table() []int {
	return slices.Clone(s.table)
}

// Lookup returns S(x). It panics if x is outside [0, Size).
func (s *SBox) Lookup(x int) int {
	return s.table[x]
}

// Invert returns the inverse S-box applied to y. It panics if y is outside [0, Size).
func (s *SBox) Invert(y int) int {
	return s.inverse[y]
}

// Encrypt substitutes a Bits-wide chunk through the forward table.
func (s *SBox) Encrypt(chunk State) (State, error) {
	return s.apply(chunk, s.table)
}

// Decrypt substitutes a Bits-wide chunk through the inverse table.
func (s *SBox) Decrypt(chunk State) (State, error) {
	return s.apply(chunk, s.inverse)
}

func (s *SBox) apply(chunk State, table []int) (State, error) {
	if err := chunk.check("S-box input", s.bits); err != nil {
		return nil, err
	}
	return s.appendLookup(nil, chunk, table), nil
}

// appendLookup appends table[chunk] to dst as a Bits-wide vector. The chunk must already be validated.
func (s *SBox) appendLookup(dst, chunk State, table []int) State {
	return bitvec.AppendUint(dst, uint64(table[chunk.Uint()]), s.bits) //nolint:gosec // entries are non-negative
}
