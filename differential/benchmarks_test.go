package differential_test

import (
	"testing"

	"github.com/codahale/spn"
	"github.com/codahale/spn/differential"
)

func BenchmarkNewDDT(b *testing.B) {
	sbox := spn.DefaultSBox()

	b.ReportAllocs()
	for b.Loop() {
		differential.NewDDT(sbox)
	}
}

func BenchmarkFindBestTrail(b *testing.B) {
	ddt := differential.NewDDT(spn.DefaultSBox())
	perm := spn.TransposePermutation()

	for _, workers := range []struct {
		name string
		n    int
	}{
		{"sequential", 1},
		{"parallel", 0},
	} {
		b.Run(workers.name, func(b *testing.B) {
			search := differential.Search{Workers: workers.n}
			b.ReportAllocs()
			for b.Loop() {
				_, _ = search.Best(ddt, perm, 4)
			}
		})
	}
}

func BenchmarkEstimate(b *testing.B) {
	c, master := newCipher(b, 4)
	in := spn.StateFromUint(0x000b, 16)
	out := spn.StateFromUint(0x4004, 16)

	b.ReportAllocs()
	for b.Loop() {
		_, _ = differential.Estimate(b.Context(), c, master, in, out, 10_000, nil)
	}
}
