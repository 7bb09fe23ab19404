package spn_test

import (
	"crypto/sha3"
	"math/rand/v2"
	"testing"

	"github.com/codahale/spn"
	fuzz "github.com/trailofbits/go-fuzz-utils"
)

// FuzzCipherRoundTrip builds a standard cipher from a random S-box, permutation, and round count, and checks that
// decryption inverts encryption for the fuzzed state and key.
func FuzzCipherRoundTrip(f *testing.F) {
	drbg := sha3.NewSHAKE128()
	_, _ = drbg.Write([]byte("spn round trip"))

	for range 10 {
		seed := make([]byte, 64)
		_, _ = drbg.Read(seed)
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		tp, err := fuzz.NewTypeProvider(data)
		if err != nil {
			t.Skip(err)
		}

		seed, err := tp.GetUint64()
		if err != nil {
			t.Skip(err)
		}

		roundsRaw, err := tp.GetByte()
		if err != nil {
			t.Skip(err)
		}

		stateRaw, err := tp.GetUint16()
		if err != nil {
			t.Skip(err)
		}

		keyRaw, err := tp.GetUint64()
		if err != nil {
			t.Skip(err)
		}

		rng := rand.New(rand.NewPCG(seed, 0))
		sbox, err := spn.RandomSBox(4, rng)
		if err != nil {
			t.Fatal(err)
		}

		rounds := 1 + int(roundsRaw%8)
		c, err := spn.NewStandard(sbox, spn.RandomPermutation(16, rng), spn.SlidingWindow, rounds)
		if err != nil {
			t.Fatal(err)
		}

		state := spn.StateFromUint(uint64(stateRaw), 16)
		master := spn.StateFromUint(keyRaw, 16+4*rounds)

		ciphertext, err := c.Encrypt(state, master)
		if err != nil {
			t.Fatal(err)
		}

		plaintext, err := c.Decrypt(ciphertext, master)
		if err != nil {
			t.Fatal(err)
		}

		if !plaintext.Equal(state) {
			t.Errorf("Decrypt(Encrypt(%v)) = %v, want = %v", state, plaintext, state)
		}
	})
}

func FuzzSBox(f *testing.F) {
	f.Add(uint64(0), byte(0))
	f.Add(uint64(0xdeadbeef), byte(0xff))

	f.Fuzz(func(t *testing.T, seed uint64, x byte) {
		sbox, err := spn.RandomSBox(8, rand.New(rand.NewPCG(seed, 1)))
		if err != nil {
			t.Fatal(err)
		}

		in := spn.StateFromUint(uint64(x), 8)
		out, err := sbox.Encrypt(in)
		if err != nil {
			t.Fatal(err)
		}

		if got, want := out.Uint(), uint64(sbox.Lookup(int(x))); got != want { //nolint:gosec // table entries are bytes
			t.Errorf("Encrypt(%d) = %d, want = %d", x, got, want)
		}

		back, err := sbox.Decrypt(out)
		if err != nil {
			t.Fatal(err)
		}

		if !back.Equal(in) {
			t.Errorf("Decrypt(Encrypt(%d)) = %v, want = %v", x, back, in)
		}
	})
}
