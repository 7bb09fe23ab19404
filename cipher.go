package spn

import (
	"fmt"
	"slices"
)

// A Builder assembles the layers of a Cipher in order.
type Builder struct {
	length int
	layers []Layer
	rounds int
}

// NewBuilder returns a Builder for a cipher with a length-bit block.
func NewBuilder(length int) *Builder {
	return &Builder{length: length}
}

// Add appends a layer to the cipher. Substitution and permutation layers must be exactly as wide as the block; each
// KeyWhitening step adds a round.
func (b *Builder) Add(layer Layer) error {
	switch l := layer.(type) {
	case *SubstitutionLayer:
		if l == nil {
			return fmt.Errorf("spn: substitution layer is nil: %w", ErrValidation)
		}
		if err := b.checkLength("substitution", l.Len()); err != nil {
			return err
		}
	case *PermutationLayer:
		if l == nil {
			return fmt.Errorf("spn: permutation layer is nil: %w", ErrValidation)
		}
		if err := b.checkLength("permutation", l.Len()); err != nil {
			return err
		}
	case KeyWhitening:
		b.rounds++
	default:
		return fmt.Errorf("spn: unknown layer type %T: %w", layer, ErrValidation)
	}

	b.layers = append(b.layers, layer)
	return nil
}

func (b *Builder) checkLength(kind string, n int) error {
	if n != b.length {
		return fmt.Errorf("spn: %s layer is %d bits wide, want %d: %w", kind, n, b.length, ErrValidation)
	}
	return nil
}

// Build returns a Cipher running the added layers in order, deriving round keys with the given schedule.
func (b *Builder) Build(schedule KeySchedule) (*Cipher, error) {
	if schedule == nil {
		return nil, fmt.Errorf("spn: key schedule is nil: %w", ErrValidation)
	}
	if b.length < 1 {
		return nil, fmt.Errorf("spn: block length %d is not positive: %w", b.length, ErrValidation)
	}

	return &Cipher{
		length:   b.length,
		layers:   slices.Clone(b.layers),
		rounds:   b.rounds,
		schedule: schedule,
	}, nil
}

// A Cipher is an SPN block cipher: an ordered sequence of layers over a fixed-width block plus a key schedule. Cipher
// values are immutable and safe for concurrent use.
type Cipher struct {
	length   int
	layers   []Layer
	rounds   int
	schedule KeySchedule
}

// NewStandard builds the standard SPN over a len(perm)-bit block: rounds-1 repetitions of {whitening, substitution,
// permutation} followed by {whitening, substitution, whitening}. Every substitution layer uses sbox for each chunk.
func NewStandard(sbox *SBox, perm Permutation, schedule KeySchedule, rounds int) (*Cipher, error) {
	if rounds < 1 {
		return nil, fmt.Errorf("spn: %d rounds is not positive: %w", rounds, ErrValidation)
	}
	if sbox == nil {
		return nil, fmt.Errorf("spn: S-box is nil: %w", ErrValidation)
	}

	length := len(perm)
	if length%sbox.Bits() != 0 {
		return nil, fmt.Errorf("spn: %d-bit block is not a multiple of the %d-bit S-box: %w",
			length, sbox.Bits(), ErrValidation)
	}

	sub, err := NewSubstitutionLayer(slices.Repeat([]*SBox{sbox}, length/sbox.Bits()), length)
	if err != nil {
		return nil, err
	}

	permLayer, err := NewPermutationLayer(perm)
	if err != nil {
		return nil, err
	}

	b := NewBuilder(length)
	for range rounds - 1 {
		for _, l := range []Layer{KeyWhitening{}, sub, permLayer} {
			if err := b.Add(l); err != nil {
				return nil, err
			}
		}
	}
	for _, l := range []Layer{KeyWhitening{}, sub, KeyWhitening{}} {
		if err := b.Add(l); err != nil {
			return nil, err
		}
	}

	return b.Build(schedule)
}

// Len returns the block length in bits.
func (c *Cipher) Len() int {
	return c.length
}

// Rounds returns the number of key-whitening steps, which is the number of round keys the cipher derives.
func (c *Cipher) Rounds() int {
	return c.rounds
}

// Layers returns a copy of the cipher's layers in encryption order.
func (c *Cipher) Layers() []Layer {
	return slices.Clone(c.layers)
}

// Encrypt runs the state through every layer in order. The Nth key-whitening step XORs in the round key the schedule
// derives for round N. The master key must be at least as long as the block.
func (c *Cipher) Encrypt(state, master State) (State, error) {
	if err := c.checkInputs(state, master); err != nil {
		return nil, err
	}

	var err error
	round := 1
	for _, layer := range c.layers {
		switch l := layer.(type) {
		case *SubstitutionLayer:
			state, err = l.Encrypt(state)
		case *PermutationLayer:
			state, err = l.Encrypt(state)
		case KeyWhitening:
			state, err = c.whiten(l, state, master, round)
			round++
		}
		if err != nil {
			return nil, err
		}
	}
	return state, nil
}

// Decrypt inverts Encrypt: it runs the layers in reverse order, applying each layer's inverse and deriving round keys
// from the last round down to the first.
func (c *Cipher) Decrypt(state, master State) (State, error) {
	if err := c.checkInputs(state, master); err != nil {
		return nil, err
	}

	var err error
	round := c.rounds
	for _, layer := range slices.Backward(c.layers) {
		switch l := layer.(type) {
		case *SubstitutionLayer:
			state, err = l.Decrypt(state)
		case *PermutationLayer:
			state, err = l.Decrypt(state)
		case KeyWhitening:
			state, err = c.whiten(l, state, master, round)
			round--
		}
		if err != nil {
			return nil, err
		}
	}
	return state, nil
}

func (c *Cipher) whiten(w KeyWhitening, state, master State, round int) (State, error) {
	key, err := c.schedule(master, round, c.length)
	if err != nil {
		return nil, err
	}
	return w.Apply(state, key)
}

func (c *Cipher) checkInputs(state, master State) error {
	if err := state.check("state", c.length); err != nil {
		return err
	}
	if len(master) < c.length {
		return fmt.Errorf("spn: master key has %d bits, want at least %d: %w", len(master), c.length, ErrValidation)
	}
	return master.check("master key", len(master))
}
