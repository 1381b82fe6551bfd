package physics

import (
	"github.com/san-kum/mdsim/internal/dynamo"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r2"
)

// minRowsPerWorker keeps goroutine overhead below the pair work it buys.
const minRowsPerWorker = 16

// Forces sums a pair potential over every unordered particle pair with no
// cutoff. With workers > 1 the rows of the pair triangle are split into
// fixed chunks accumulated into private buffers and reduced in chunk
// order, so repeated runs with the same worker count are bit-identical.
type Forces struct {
	pot     dynamo.PairPotential
	workers int
	bufs    [][]r2.Vec
}

func NewForces(pot dynamo.PairPotential, workers int) *Forces {
	if workers < 1 {
		workers = 1
	}
	return &Forces{pot: pot, workers: workers}
}

func (f *Forces) Workers() int { return f.workers }

func (f *Forces) Evaluate(s *dynamo.State) (float64, error) {
	for i := range s.Force {
		s.Force[i] = r2.Vec{}
	}

	n := s.Len()
	if f.workers == 1 || n < 2*minRowsPerWorker {
		return f.accumulate(s, dynamo.Chunk{Start: 0, End: n}, s.Force)
	}
	return f.evaluateParallel(s)
}

func (f *Forces) evaluateParallel(s *dynamo.State) (float64, error) {
	n := s.Len()
	chunks := dynamo.Chunks(n, f.workers, minRowsPerWorker)
	f.ensureBuffers(len(chunks), n)

	epots := make([]float64, len(chunks))
	errs := make([]error, len(chunks))

	var g errgroup.Group
	for w, c := range chunks {
		g.Go(func() error {
			buf := f.bufs[w]
			for i := range buf {
				buf[i] = r2.Vec{}
			}
			epots[w], errs[w] = f.accumulate(s, c, buf)
			return errs[w]
		})
	}

	if g.Wait() != nil {
		for _, err := range errs {
			if err != nil {
				return 0, err
			}
		}
	}

	epot := 0.0
	for w := range chunks {
		epot += epots[w]
		buf := f.bufs[w]
		for i := range s.Force {
			s.Force[i] = r2.Add(s.Force[i], buf[i])
		}
	}
	return epot, nil
}

// accumulate adds the forces of all pairs (i, j), i in rows, j > i, into
// force and returns their potential energy.
func (f *Forces) accumulate(s *dynamo.State, rows dynamo.Chunk, force []r2.Vec) (float64, error) {
	n := s.Len()
	epot := 0.0

	for i := rows.Start; i < rows.End; i++ {
		pi := s.Pos[i]

		for j := i + 1; j < n; j++ {
			d, r := s.Box.MinImage(pi, s.Pos[j])
			if !(r > 0) {
				return epot, &dynamo.PairError{I: i, J: j, Step: s.Step}
			}

			epot += f.pot.Energy(r)
			fij := f.pot.Force(r)

			fx := fij * d.X / r
			fy := fij * d.Y / r
			force[i].X += fx
			force[i].Y += fy
			force[j].X -= fx
			force[j].Y -= fy
		}
	}

	return epot, nil
}

func (f *Forces) ensureBuffers(chunks, n int) {
	if len(f.bufs) == chunks && (chunks == 0 || len(f.bufs[0]) == n) {
		return
	}
	f.bufs = make([][]r2.Vec, chunks)
	for w := range f.bufs {
		f.bufs[w] = make([]r2.Vec, n)
	}
}
