// Package cli parses the cipher definitions shared by the spn_* commands.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/codahale/spn"
	"github.com/codahale/spn/internal/drbg"
)

// DefaultSBox is the -sbox flag default: the default S-box table in hex.
const DefaultSBox = "c,5,6,b,9,0,a,d,3,e,f,8,4,7,1,2"

// DefaultPermutation is the -perm flag default: the 16-bit transpose permutation.
const DefaultPermutation = "0,4,8,12,1,5,9,13,2,6,10,14,3,7,11,15"

// DefaultMasterKey is the -key flag default, long enough for a 4-round cipher over a 16-bit block.
const DefaultMasterKey = "0110 1010 1100 0101 1001 0110 1010 1100"

// ParseInts parses a comma-separated list of integers in the given base.
func ParseInts(s string, base int) ([]int, error) {
	fields := strings.Split(s, ",")
	ints := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.ParseInt(strings.TrimSpace(f), base, 32)
		if err != nil {
			return nil, fmt.Errorf("cli: entry %d of %q: %w", i, s, err)
		}
		ints[i] = int(n)
	}
	return ints, nil
}

// Components returns the S-box and permutation for a cipher. If seed is non-empty, both are drawn at random from a
// generator derived from it, with the S-box as wide as the given table and the permutation as long as the given one;
// otherwise the tables are parsed as given.
func Components(sboxHex, permDec, seed string) (*spn.SBox, spn.Permutation, error) {
	table, err := ParseInts(sboxHex, 16)
	if err != nil {
		return nil, nil, err
	}

	perm, err := ParseInts(permDec, 10)
	if err != nil {
		return nil, nil, err
	}

	bits := 0
	for 1<<bits < len(table) {
		bits++
	}

	if seed != "" {
		rng := drbg.New("spn.cli.components", []byte(seed), 0)
		sbox, err := spn.RandomSBox(bits, rng)
		if err != nil {
			return nil, nil, err
		}
		return sbox, spn.RandomPermutation(len(perm), rng), nil
	}

	sbox, err := spn.NewSBox(table, bits)
	if err != nil {
		return nil, nil, err
	}
	return sbox, perm, spn.Permutation(perm).Validate()
}
