package differential

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"

	"github.com/codahale/spn"
	"github.com/codahale/spn/internal/bitvec"
	"github.com/codahale/spn/internal/drbg"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/cpu"
)

// shardSize is the number of plaintext pairs each Estimate worker draws from a single generator stream.
const shardSize = 4096

type counter struct {
	hits int
	_    cpu.CacheLinePad
}

// Estimate encrypts random plaintext pairs differing by in under the given master key and returns the fraction whose
// ciphertexts differ by out. Plaintexts are drawn from generators derived from seed, so the result depends only on the
// arguments and not on scheduling. Encryption runs in parallel; a canceled context stops it early with the context's
// error.
func Estimate(ctx context.Context, c *spn.Cipher, master, in, out spn.State, samples int, seed []byte) (float64, error) {
	if c == nil {
		return 0, fmt.Errorf("differential: cipher is nil: %w", spn.ErrValidation)
	}
	if samples < 1 {
		return 0, fmt.Errorf("differential: %d samples is not positive: %w", samples, spn.ErrValidation)
	}
	if len(in) != c.Len() || len(out) != c.Len() {
		return 0, fmt.Errorf("differential: differences have %d and %d bits, want %d: %w",
			len(in), len(out), c.Len(), spn.ErrValidation)
	}

	shards := make([]counter, (samples+shardSize-1)/shardSize)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range shards {
		n := min(shardSize, samples-i*shardSize)
		g.Go(func() error {
			hits, err := countHits(ctx, c, master, in, out, n, drbg.New("spn.differential.estimate", seed, uint64(i)))
			shards[i].hits = hits
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var hits int
	for i := range shards {
		hits += shards[i].hits
	}
	return float64(hits) / float64(samples), nil
}

func countHits(ctx context.Context, c *spn.Cipher, master, in, out spn.State, n int, rng *rand.Rand) (int, error) {
	var hits int
	p1 := make(spn.State, c.Len())
	p2 := make(spn.State, c.Len())
	diff := make(spn.State, c.Len())

	for i := range n {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}

		p1 = p1[:0]
		for len(p1) < c.Len() {
			p1 = bitvec.AppendUint(p1, rng.Uint64(), min(64, c.Len()-len(p1)))
		}
		bitvec.XOR(p2, p1, in)

		c1, err := c.Encrypt(p1, master)
		if err != nil {
			return 0, err
		}
		c2, err := c.Encrypt(p2, master)
		if err != nil {
			return 0, err
		}

		bitvec.XOR(diff, c1, c2)
		if diff.Equal(out) {
			hits++
		}
	}
	return hits, nil
}
