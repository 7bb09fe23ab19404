// Command spn_trail builds the difference-distribution table of an S-box, searches for a high-probability differential
// trail through the standard SPN, and optionally measures the trail's differential against a keyed cipher.
package main

import (
	"context"
	"flag"
	"log/slog"

	"github.com/codahale/spn"
	"github.com/codahale/spn/differential"
	"github.com/codahale/spn/internal/cli"
)

func main() {
	var (
		sboxFlag   = flag.String("sbox", cli.DefaultSBox, "the S-box table, as comma-separated hex")
		permFlag   = flag.String("perm", cli.DefaultPermutation, "the bit permutation, as comma-separated destinations")
		seed       = flag.String("seed", "", "if set, use a random S-box and permutation derived from this seed")
		rounds     = flag.Int("rounds", 4, "the number of rounds")
		candidates = flag.Int("candidates", differential.DefaultCandidates, "input differences seeded per S-box")
		workers    = flag.Int("workers", 0, "the number of concurrent trail searches (0 for GOMAXPROCS)")
		samples    = flag.Int("samples", 0, "if positive, the number of plaintext pairs used to verify the trail")
		keyFlag    = flag.String("key", cli.DefaultMasterKey, "the master key used for verification, as bits")
	)
	flag.Parse()

	log := slog.New(slog.Default().Handler())

	sbox, perm, err := cli.Components(*sboxFlag, *permFlag, *seed)
	if err != nil {
		panic(err)
	}

	ddt := differential.NewDDT(sbox)
	log.Info("built DDT", "sbox", sbox.Table(), "max", ddt.MaxNonTrivial(),
		"ranked", ddt.RankInputDifferences(*candidates))

	search := differential.Search{Candidates: *candidates, Workers: *workers}
	trail, err := search.Best(ddt, perm, *rounds)
	if err != nil {
		panic(err)
	}

	for round, diff := range trail.Differences {
		log.Info("trail", "round", round, "differences", diff)
	}
	log.Info("best trail", "probability", trail.Probability, "active_sboxes", trail.ActiveSBoxes,
		"in", trail.Input(), "out", trail.Output())

	if *samples <= 0 {
		return
	}

	c, err := spn.NewStandard(sbox, perm, spn.SlidingWindow, *rounds)
	if err != nil {
		panic(err)
	}

	master, err := spn.ParseState(*keyFlag)
	if err != nil {
		panic(err)
	}

	p, err := differential.Estimate(context.Background(), c, master, trail.Input(), trail.Output(), *samples,
		[]byte(*seed))
	if err != nil {
		log.Error("failed to verify trail", "err", err)
		return
	}
	log.Info("verified trail", "samples", *samples, "measured", p, "predicted", trail.Probability)
}
