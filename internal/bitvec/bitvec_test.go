package bitvec_test

import (
	"testing"

	"github.com/codahale/spn/internal/bitvec"
	"github.com/google/go-cmp/cmp"
)

func TestXOR(t *testing.T) {
	for _, n := range []int{4, 16, 17, 64} {
		a := make([]byte, n)
		b := make([]byte, n)
		want := make([]byte, n)
		for i := range n {
			a[i] = byte(i % 2)
			b[i] = byte((i / 3) % 2)
			want[i] = a[i] ^ b[i]
		}

		got := make([]byte, n)
		bitvec.XOR(got, a, b)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("XOR(%d bits) mismatch (-want +got):\n%s", n, diff)
		}
	}
}

func TestUint(t *testing.T) {
	if got, want := bitvec.Uint([]byte{1, 0, 1, 0}), uint64(5); got != want {
		t.Errorf("Uint([1 0 1 0]) = %d, want = %d", got, want)
	}

	if got, want := bitvec.Uint([]byte{0, 1, 0, 1}), uint64(10); got != want {
		t.Errorf("Uint([0 1 0 1]) = %d, want = %d", got, want)
	}
}

func TestAppendUint(t *testing.T) {
	got := bitvec.AppendUint([]byte{1}, 0xC, 4)
	if diff := cmp.Diff([]byte{1, 0, 0, 1, 1}, got); diff != "" {
		t.Errorf("AppendUint mismatch (-want +got):\n%s", diff)
	}
}

func TestGroups(t *testing.T) {
	groups := []int{0xB, 0x0, 0x3, 0xF}
	v := bitvec.FromGroups(groups, 4)
	if got, want := len(v), 16; got != want {
		t.Fatalf("len(FromGroups) = %d, want = %d", got, want)
	}

	if diff := cmp.Diff(groups, bitvec.Groups(v, 4)); diff != "" {
		t.Errorf("Groups(FromGroups(x)) mismatch (-want +got):\n%s", diff)
	}
}

func TestIsBinary(t *testing.T) {
	if !bitvec.IsBinary([]byte{0, 1, 1, 0}) {
		t.Error("IsBinary([0 1 1 0]) = false, want = true")
	}

	if bitvec.IsBinary([]byte{0, 2}) {
		t.Error("IsBinary([0 2]) = true, want = false")
	}
}
