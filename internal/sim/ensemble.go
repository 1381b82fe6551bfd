package sim

import (
	"context"
	"math/rand"

	"github.com/san-kum/mdsim/internal/dynamo"
	"golang.org/x/sync/errgroup"
)

// Ensemble runs independent copies of one parameter set that differ only
// in their thermalization seed. Each member is single-threaded; members
// run concurrently.
type Ensemble struct {
	params    Params
	numRuns   int
	seedStart int64
	opts      []Option
}

func NewEnsemble(p Params, numRuns int, seedStart int64, opts ...Option) *Ensemble {
	return &Ensemble{params: p, numRuns: numRuns, seedStart: seedStart, opts: opts}
}

// Run returns one summary per member, ordered by seed. The first failing
// member cancels the others.
func (e *Ensemble) Run(ctx context.Context, batches, batchSize int) ([]*Summary, error) {
	if e.numRuns < 1 {
		return nil, dynamo.InvalidParam("runs", e.numRuns)
	}
	results := make([]*Summary, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.numRuns; i++ {
		g.Go(func() error {
			s, err := Initialize(e.params, e.opts...)
			if err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(e.seedStart + int64(i)))
			if err := s.Thermalize(e.params.KBT(), rng); err != nil {
				return err
			}
			results[i], err = s.Run(ctx, batches, batchSize, nil)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
