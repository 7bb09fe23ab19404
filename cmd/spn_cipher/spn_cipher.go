// Command spn_cipher builds a standard SPN cipher and encrypts (or decrypts) a single block with it, checking that the
// result inverts back to the input.
package main

import (
	"flag"
	"log/slog"

	"github.com/codahale/spn"
	"github.com/codahale/spn/internal/cli"
)

func main() {
	var (
		sboxFlag = flag.String("sbox", cli.DefaultSBox, "the S-box table, as comma-separated hex")
		permFlag = flag.String("perm", cli.DefaultPermutation, "the bit permutation, as comma-separated destinations")
		seed     = flag.String("seed", "", "if set, use a random S-box and permutation derived from this seed")
		rounds   = flag.Int("rounds", 4, "the number of rounds")
		keyFlag  = flag.String("key", cli.DefaultMasterKey, "the master key, as bits")
		input    = flag.String("in", "1010 1100 1100 1010", "the input block, as bits")
		decrypt  = flag.Bool("decrypt", false, "decrypt the input instead of encrypting it")
	)
	flag.Parse()

	log := slog.New(slog.Default().Handler())

	sbox, perm, err := cli.Components(*sboxFlag, *permFlag, *seed)
	if err != nil {
		panic(err)
	}

	c, err := spn.NewStandard(sbox, perm, spn.SlidingWindow, *rounds)
	if err != nil {
		panic(err)
	}
	log.Info("built cipher", "block", c.Len(), "rounds", *rounds, "round_keys", c.Rounds(), "sbox", sbox.Table())

	master, err := spn.ParseState(*keyFlag)
	if err != nil {
		panic(err)
	}

	in, err := spn.ParseState(*input)
	if err != nil {
		panic(err)
	}

	forward, inverse := c.Encrypt, c.Decrypt
	if *decrypt {
		forward, inverse = c.Decrypt, c.Encrypt
	}

	out, err := forward(in, master)
	if err != nil {
		log.Error("failed to process block", "err", err)
		return
	}
	log.Info("processed block", "decrypt", *decrypt, "in", in, "out", out)

	back, err := inverse(out, master)
	if err != nil {
		log.Error("failed to invert block", "err", err)
		return
	}
	if !back.Equal(in) {
		log.Error("round trip failed", "in", in, "back", back)
		return
	}
	log.Info("round trip verified")
}
