// Package differential implements differential cryptanalysis of SPN ciphers: difference-distribution tables (DDTs) for
// S-boxes, a greedy search for high-probability multi-round differential trails, and an empirical estimator which
// checks a differential against a keyed cipher.
//
// The trail search is a heuristic. At each active S-box it keeps only the single most likely output difference, and it
// only seeds trails from one active S-box. It finds good trails quickly but does not guarantee the best one.
package differential

import (
	"fmt"
	"slices"

	"github.com/codahale/spn"
)

// A DDT is the difference-distribution table of an S-box: Count(in, out) is the number of inputs x for which
// S(x) XOR S(x XOR in) == out. Every row sums to Size, and Count(0, 0) == Size. DDT values are immutable and safe for
// concurrent use.
type DDT struct {
	bits   int
	counts [][]int
}

// NewDDT exhaustively computes the difference-distribution table of s.
func NewDDT(s *spn.SBox) *DDT {
	size := s.Size()
	counts := make([][]int, size)
	for in := range counts {
		row := make([]int, size)
		for a := range size {
			row[s.Lookup(a)^s.Lookup(a^in)]++
		}
		counts[in] = row
	}
	return &DDT{bits: s.Bits(), counts: counts}
}

// Bits returns the width of the S-box the table was built from.
func (d *DDT) Bits() int {
	return d.bits
}

// Size returns the number of input (and output) differences, 2**Bits.
func (d *DDT) Size() int {
	return len(d.counts)
}

// Count returns the number of inputs for which the input difference in produces the output difference out. It panics
// if either difference is outside [0, Size).
func (d *DDT) Count(in, out int) int {
	return d.counts[in][out]
}

// Row returns a copy of the output-difference counts for the input difference in.
func (d *DDT) Row(in int) []int {
	return slices.Clone(d.counts[in])
}

// Probability returns Count(in, out) / Size.
func (d *DDT) Probability(in, out int) float64 {
	return float64(d.counts[in][out]) / float64(len(d.counts))
}

// Best returns the most likely output difference for the input difference in and its count. Ties go to the lowest
// output difference.
func (d *DDT) Best(in int) (out, count int) {
	for o, c := range d.counts[in] {
		if c > count {
			out, count = o, c
		}
	}
	return out, count
}

// MaxNonTrivial returns the largest count in the table outside the trivial zero input difference.
func (d *DDT) MaxNonTrivial() int {
	var m int
	for _, row := range d.counts[1:] {
		m = max(m, slices.Max(row))
	}
	return m
}

// RankInputDifferences returns the n non-zero input differences whose best single output difference is most likely,
// in descending order of that count. Ties keep ascending input-difference order.
func (d *DDT) RankInputDifferences(n int) []int {
	ranked := make([]int, 0, len(d.counts)-1)
	for in := 1; in < len(d.counts); in++ {
		ranked = append(ranked, in)
	}

	slices.SortStableFunc(ranked, func(a, b int) int {
		_, ca := d.Best(a)
		_, cb := d.Best(b)
		return cb - ca
	})

	return ranked[:min(max(n, 0), len(ranked))]
}

func (d *DDT) checkDifference(what string, diff int) error {
	if diff < 0 || diff >= len(d.counts) {
		return fmt.Errorf("differential: %s %d is outside [0, %d): %w", what, diff, len(d.counts), spn.ErrValidation)
	}
	return nil
}
