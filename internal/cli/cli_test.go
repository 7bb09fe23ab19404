package cli_test

import (
	"testing"

	"github.com/codahale/spn"
	"github.com/codahale/spn/internal/cli"
	"github.com/go-quicktest/qt"
)

func TestParseInts(t *testing.T) {
	got, err := cli.ParseInts("c, 5,6 ,b", 16)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(got, []int{12, 5, 6, 11}))

	_, err = cli.ParseInts("1,x", 10)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestComponents(t *testing.T) {
	sbox, perm, err := cli.Components(cli.DefaultSBox, cli.DefaultPermutation, "")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(sbox.Table(), spn.DefaultSBox().Table()))
	qt.Assert(t, qt.DeepEquals(perm, spn.TransposePermutation()))

	t.Run("seeded", func(t *testing.T) {
		a, pa, err := cli.Components(cli.DefaultSBox, cli.DefaultPermutation, "seed")
		qt.Assert(t, qt.IsNil(err))
		b, pb, err := cli.Components(cli.DefaultSBox, cli.DefaultPermutation, "seed")
		qt.Assert(t, qt.IsNil(err))

		qt.Assert(t, qt.Equals(a.Bits(), 4))
		qt.Assert(t, qt.DeepEquals(a.Table(), b.Table()))
		qt.Assert(t, qt.DeepEquals(pa, pb))
		qt.Assert(t, qt.IsNil(pa.Validate()))
	})

	t.Run("invalid S-box", func(t *testing.T) {
		_, _, err := cli.Components("0,0", cli.DefaultPermutation, "")
		qt.Assert(t, qt.ErrorIs(err, spn.ErrValidation))
	})

	t.Run("invalid permutation", func(t *testing.T) {
		_, _, err := cli.Components(cli.DefaultSBox, "0,0,1", "")
		qt.Assert(t, qt.ErrorIs(err, spn.ErrValidation))
	})
}
