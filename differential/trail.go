package differential

import (
	"cmp"
	"fmt"
	"runtime"
	"slices"

	"github.com/codahale/spn"
	"github.com/codahale/spn/internal/bitvec"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/cpu"
)

// DefaultCandidates is the number of input differences FindBestTrail seeds at each S-box position.
const DefaultCandidates = 5

// A Trail is a differential trail through an SPN: the difference at every S-box position before the first round, after
// each round's permutation, and after the final round's S-boxes.
type Trail struct {
	// Bits is the S-box width, i.e. the width of each entry in Differences.
	Bits int

	// Differences holds rounds+1 vectors of per-S-box differences. Differences[0] is the injected difference.
	Differences [][]int

	// Probability is the product of the DDT probabilities of every S-box transition on the trail, assuming
	// independent rounds.
	Probability float64

	// ActiveSBoxes is the number of distinct S-box positions which carried a non-zero difference in any round.
	ActiveSBoxes int
}

// Input returns the injected difference as a block-wide bit vector.
func (t Trail) Input() spn.State {
	return bitvec.FromGroups(t.Differences[0], t.Bits)
}

// Output returns the difference after the final round as a block-wide bit vector. Key whitening does not change
// differences, so this is also the predicted ciphertext difference.
func (t Trail) Output() spn.State {
	return bitvec.FromGroups(t.Differences[len(t.Differences)-1], t.Bits)
}

// TraceTrail follows the initial per-S-box difference through the given number of rounds. In every round each active
// S-box takes its most likely output difference (ties to the lowest), and the result is permuted bit by bit with perm.
// The final round has no permutation, matching the standard cipher construction.
//
// The returned probability is a greedy estimate along a single path; other paths to the same output difference are
// not counted.
func TraceTrail(ddt *DDT, perm spn.Permutation, initial []int, rounds int) (Trail, error) {
	layer, err := checkParams(ddt, perm, rounds)
	if err != nil {
		return Trail{}, err
	}

	if want := len(perm) / ddt.Bits(); len(initial) != want {
		return Trail{}, fmt.Errorf("differential: initial difference covers %d S-boxes, want %d: %w",
			len(initial), want, spn.ErrValidation)
	}
	for _, diff := range initial {
		if err := ddt.checkDifference("initial difference", diff); err != nil {
			return Trail{}, err
		}
	}

	state := slices.Clone(initial)
	trail := Trail{
		Bits:        ddt.Bits(),
		Differences: [][]int{slices.Clone(initial)},
		Probability: 1,
	}
	active := make([]bool, len(state))

	for round := range rounds {
		next := make([]int, len(state))
		for i, in := range state {
			if in == 0 {
				continue
			}
			out, _ := ddt.Best(in)
			trail.Probability *= ddt.Probability(in, out)
			next[i] = out
			active[i] = true
		}

		if round < rounds-1 {
			permuted, err := layer.Encrypt(bitvec.FromGroups(next, ddt.Bits()))
			if err != nil {
				return Trail{}, err
			}
			next = bitvec.Groups(permuted, ddt.Bits())
		}

		trail.Differences = append(trail.Differences, next)
		state = next
	}

	for _, a := range active {
		if a {
			trail.ActiveSBoxes++
		}
	}
	return trail, nil
}

// FindBestTrail runs a Search with the default parameters.
func FindBestTrail(ddt *DDT, perm spn.Permutation, rounds int) (Trail, error) {
	return Search{}.Best(ddt, perm, rounds)
}

// A Search finds a high-probability trail by tracing, for every S-box position, a trail seeded with each of the
// top-ranked input differences (see DDT.RankInputDifferences) active at that position alone.
type Search struct {
	// Candidates is the number of input differences seeded at each position. Zero means DefaultCandidates.
	Candidates int

	// Workers limits the number of trails traced concurrently. Zero means GOMAXPROCS.
	Workers int
}

// slot holds one candidate's result. Workers write to adjacent slots, so they are padded to separate cache lines.
type slot struct {
	trail Trail
	_     cpu.CacheLinePad
}

// Best traces every candidate trail and returns the one with the highest probability. Ties go to the candidate at the
// lowest position, then the highest-ranked input difference, regardless of the number of workers.
func (s Search) Best(ddt *DDT, perm spn.Permutation, rounds int) (Trail, error) {
	if s.Candidates < 0 || s.Workers < 0 {
		return Trail{}, fmt.Errorf("differential: negative search parameters: %w", spn.ErrValidation)
	}

	if _, err := checkParams(ddt, perm, rounds); err != nil {
		return Trail{}, err
	}

	positions := len(perm) / ddt.Bits()
	diffs := ddt.RankInputDifferences(cmp.Or(s.Candidates, DefaultCandidates))
	slots := make([]slot, positions*len(diffs))

	var g errgroup.Group
	g.SetLimit(cmp.Or(s.Workers, runtime.GOMAXPROCS(0)))
	for pos := range positions {
		for j, diff := range diffs {
			g.Go(func() error {
				initial := make([]int, positions)
				initial[pos] = diff

				t, err := TraceTrail(ddt, perm, initial, rounds)
				if err != nil {
					return err
				}
				slots[pos*len(diffs)+j].trail = t
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Trail{}, err
	}

	best := 0
	for i := range slots {
		if slots[i].trail.Probability > slots[best].trail.Probability {
			best = i
		}
	}
	return slots[best].trail, nil
}

// checkParams validates the shared inputs of a trail search and returns the permutation layer to propagate with.
func checkParams(ddt *DDT, perm spn.Permutation, rounds int) (*spn.PermutationLayer, error) {
	if ddt == nil {
		return nil, fmt.Errorf("differential: DDT is nil: %w", spn.ErrValidation)
	}
	if rounds < 1 {
		return nil, fmt.Errorf("differential: %d rounds is not positive: %w", rounds, spn.ErrValidation)
	}
	if len(perm)%ddt.Bits() != 0 {
		return nil, fmt.Errorf("differential: %d-bit permutation is not a multiple of the %d-bit S-box: %w",
			len(perm), ddt.Bits(), spn.ErrValidation)
	}
	return spn.NewPermutationLayer(perm)
}
