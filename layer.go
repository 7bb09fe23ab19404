package spn

import (
	"fmt"
	"slices"

	"github.com/codahale/spn/internal/bitvec"
)

// A Layer is one step of a cipher. The set of layers is closed: a Layer is always a *SubstitutionLayer, a
// *PermutationLayer, or a KeyWhitening step, and ciphers dispatch on the concrete type.
type Layer interface {
	isLayer()
}

// A SubstitutionLayer splits the state into consecutive S-box-wide chunks and substitutes chunk i through S-box i.
type SubstitutionLayer struct {
	sboxes []*SBox
	bits   int
	length int
}

// NewSubstitutionLayer returns a substitution layer over a length-bit state. All S-boxes must have the same width, and
// their combined width must equal length.
func NewSubstitutionLayer(sboxes []*SBox, length int) (*SubstitutionLayer, error) {
	if len(sboxes) == 0 {
		return nil, fmt.Errorf("spn: substitution layer has no S-boxes: %w", ErrValidation)
	}

	bits := sboxes[0].Bits()
	for i, s := range sboxes {
		if s == nil {
			return nil, fmt.Errorf("spn: S-box %d is nil: %w", i, ErrValidation)
		}
		if s.Bits() != bits {
			return nil, fmt.Errorf("spn: S-box %d is %d bits wide, want %d: %w", i, s.Bits(), bits, ErrValidation)
		}
	}

	if got := bits * len(sboxes); got != length {
		return nil, fmt.Errorf("spn: %d S-boxes cover %d bits, want %d: %w", len(sboxes), got, length, ErrValidation)
	}

	return &SubstitutionLayer{sboxes: slices.Clone(sboxes), bits: bits, length: length}, nil
}

// Len returns the width of the layer in bits.
func (l *SubstitutionLayer) Len() int {
	return l.length
}

// Bits returns the width of each of the layer's S-boxes.
func (l *SubstitutionLayer) Bits() int {
	return l.bits
}

// Encrypt applies each S-box's forward table to its chunk of the state.
func (l *SubstitutionLayer) Encrypt(state State) (State, error) {
	return l.apply(state, func(s *SBox) []int { return s.table })
}

// Decrypt applies each S-box's inverse table to its chunk of the state.
func (l *SubstitutionLayer) Decrypt(state State) (State, error) {
	return l.apply(state, func(s *SBox) []int { return s.inverse })
}

func (l *SubstitutionLayer) apply(state State, table func(*SBox) []int) (State, error) {
	if err := state.check("substitution layer input", l.length); err != nil {
		return nil, err
	}

	out := make(State, 0, l.length)
	for i, s := range l.sboxes {
		out = s.appendLookup(out, state[i*l.bits:(i+1)*l.bits], table(s))
	}
	return out, nil
}

func (*SubstitutionLayer) isLayer() {}

// A Permutation maps each source bit index to a destination bit index: bit i of the input becomes bit p[i] of the
// output. A valid Permutation of length n is a bijection over [0, n).
type Permutation []int

// TransposePermutation returns the 16-bit permutation which sends bit j of nibble i to bit i of nibble j, treating the
// state as a 4x4 bit matrix.
func TransposePermutation() Permutation {
	p := make(Permutation, 16)
	for src := range p {
		p[src] = (src%4)*4 + src/4
	}
	return p
}

// Validate returns an error wrapping ErrValidation unless p is a non-empty bijection over [0, len(p)).
func (p Permutation) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("spn: permutation is empty: %w", ErrValidation)
	}

	seen := make([]bool, len(p))
	for src, dst := range p {
		if dst < 0 || dst >= len(p) {
			return fmt.Errorf("spn: permutation maps %d to %d, outside [0, %d): %w", src, dst, len(p), ErrValidation)
		}
		if seen[dst] {
			return fmt.Errorf("spn: permutation maps more than one bit to %d: %w", dst, ErrValidation)
		}
		seen[dst] = true
	}
	return nil
}

// Inverse returns the permutation which undoes p. p must be valid.
func (p Permutation) Inverse() Permutation {
	inv := make(Permutation, len(p))
	for src, dst := range p {
		inv[dst] = src
	}
	return inv
}

// A PermutationLayer moves each bit of the state to the position its Permutation assigns to it.
type PermutationLayer struct {
	perm Permutation
}

// NewPermutationLayer returns a layer applying p. It returns an error wrapping ErrValidation if p is not a bijection.
func NewPermutationLayer(p Permutation) (*PermutationLayer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &PermutationLayer{perm: slices.Clone(p)}, nil
}

// Len returns the width of the layer in bits.
func (l *PermutationLayer) Len() int {
	return len(l.perm)
}

// Permutation returns a copy of the layer's source-to-destination map.
func (l *PermutationLayer) Permutation() Permutation {
	return slices.Clone(l.perm)
}

// Encrypt sets output[p[i]] = input[i] for every bit i.
func (l *PermutationLayer) Encrypt(state State) (State, error) {
	if err := state.check("permutation layer input", len(l.perm)); err != nil {
		return nil, err
	}

	out := make(State, len(state))
	for src, dst := range l.perm {
		out[dst] = state[src]
	}
	return out, nil
}

// Decrypt sets output[i] = input[p[i]] for every bit i, undoing Encrypt.
func (l *PermutationLayer) Decrypt(state State) (State, error) {
	if err := state.check("permutation layer input", len(l.perm)); err != nil {
		return nil, err
	}

	out := make(State, len(state))
	for src, dst := range l.perm {
		out[src] = state[dst]
	}
	return out, nil
}

func (*PermutationLayer) isLayer() {}

// KeyWhitening marks the point in a cipher where a round key is XORed into the state. The round key is derived from
// the master key when the cipher runs; XOR is an involution, so the same step serves both directions.
type KeyWhitening struct{}

// Apply returns state XOR key.
func (KeyWhitening) Apply(state, key State) (State, error) {
	if len(key) != len(state) {
		return nil, fmt.Errorf("spn: round key has %d bits, want %d: %w", len(key), len(state), ErrValidation)
	}

	out := make(State, len(state))
	bitvec.XOR(out, state, key)
	return out, nil
}

func (KeyWhitening) isLayer() {}

var (
	_ Layer = (*SubstitutionLayer)(nil)
	_ Layer = (*PermutationLayer)(nil)
	_ Layer = KeyWhitening{}
)
