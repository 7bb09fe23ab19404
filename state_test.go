package spn_test

import (
	"testing"

	"github.com/codahale/spn"
	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"
)

func TestParseState(t *testing.T) {
	got, err := spn.ParseState("0110 1010_1100")
	qt.Assert(t, qt.IsNil(err))
	if diff := cmp.Diff(spn.State{0, 1, 1, 0, 1, 0, 1, 0, 1, 1, 0, 0}, got); diff != "" {
		t.Errorf("ParseState mismatch (-want +got):\n%s", diff)
	}

	t.Run("invalid bit", func(t *testing.T) {
		_, err := spn.ParseState("0120")
		qt.Assert(t, qt.ErrorIs(err, spn.ErrValidation))
	})
}

func TestStateString(t *testing.T) {
	s := spn.State{1, 0, 1, 0, 1, 1, 0, 0, 1, 1}
	if got, want := s.String(), "1010 1100 11"; got != want {
		t.Errorf("String() = %q, want = %q", got, want)
	}

	parsed, err := spn.ParseState(s.String())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(parsed.Equal(s)))
}

func TestStateUint(t *testing.T) {
	s := spn.StateFromUint(0xC, 4)
	if diff := cmp.Diff(spn.State{0, 0, 1, 1}, s); diff != "" {
		t.Errorf("StateFromUint(0xC, 4) mismatch (-want +got):\n%s", diff)
	}

	if got, want := s.Uint(), uint64(0xC); got != want {
		t.Errorf("Uint() = %#x, want = %#x", got, want)
	}
}
