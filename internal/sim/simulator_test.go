package sim_test

import (
	"bytes"
	"context"
	"math"
	"math/rand"
	"strings"

	"github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/mdsim/internal/dynamo"
	"github.com/san-kum/mdsim/internal/metrics"
	"github.com/san-kum/mdsim/internal/sim"
)

func newThermalized(p sim.Params, seed int64, opts ...sim.Option) *sim.Simulation {
	s, err := sim.Initialize(p, opts...)
	Expect(err).NotTo(HaveOccurred())
	Expect(s.Thermalize(p.KBT(), rand.New(rand.NewSource(seed)))).To(Succeed())
	return s
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

var _ = Describe("Simulation", func() {
	Describe("Initialize", func() {
		It("places the default system inside the box at rest", func() {
			s, err := sim.Initialize(sim.DefaultParams())
			Expect(err).NotTo(HaveOccurred())

			snap := s.Snapshot()
			Expect(snap.Len()).To(Equal(24))
			Expect(snap.Box.Lx).To(BeNumerically("~", 6.72, 1e-12))
			Expect(snap.Box.Ly).To(BeNumerically("~", 6.72, 1e-12))
			Expect(s.StepCount()).To(Equal(0))
			for i, p := range snap.Pos {
				Expect(snap.Box.Contains(p)).To(BeTrue(), "particle %d", i)
				Expect(snap.Vel[i]).To(Equal(r2.Vec{}))
			}
		})

		DescribeTable("rejects invalid configuration",
			func(mutate func(*sim.Params)) {
				p := sim.DefaultParams()
				mutate(&p)
				_, err := sim.Initialize(p)
				Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
			},
			Entry("zero particles", func(p *sim.Params) { p.Particles = 0 }),
			Entry("negative particles", func(p *sim.Params) { p.Particles = -1 }),
			Entry("zero per row", func(p *sim.Params) { p.PerRow = 0 }),
			Entry("zero dt", func(p *sim.Params) { p.Dt = 0 }),
			Entry("negative dt", func(p *sim.Params) { p.Dt = -0.01 }),
			Entry("zero box", func(p *sim.Params) { p.Box.Lx = 0 }),
			Entry("negative box", func(p *sim.Params) { p.Box.Ly = -6.72 }),
			Entry("zero mass", func(p *sim.Params) { p.Mass = 0 }),
			Entry("negative temperature", func(p *sim.Params) { p.Temperature = -1 }),
			Entry("negative drift tolerance", func(p *sim.Params) { p.DriftTolerance = -1 }),
		)

		It("rejects overlapping placements", func() {
			p := sim.DefaultParams()
			p.Particles = 5
			p.PerRow = 2
			lx := 2.0
			a := lx * dynamo.LatticeFill / 2
			p.Box = dynamo.Box{Lx: lx, Ly: a * dynamo.RowPitch * 2}

			_, err := sim.Initialize(p)
			Expect(err).To(MatchError(dynamo.ErrDegenerateSeparation))
		})
	})

	Describe("Thermalize", func() {
		It("rejects a negative temperature", func() {
			s, err := sim.Initialize(sim.DefaultParams())
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Thermalize(-1, rand.New(rand.NewSource(1)))).To(MatchError(dynamo.ErrInvalidConfig))
		})

		It("keeps the drawn net momentum unless drift removal is enabled", func() {
			plain := newThermalized(sim.DefaultParams(), 9)
			Expect(r2.Norm(plain.Momentum())).To(BeNumerically(">", 1e-6))

			p := sim.DefaultParams()
			p.RemoveDrift = true
			zeroed := newThermalized(p, 9)
			Expect(r2.Norm(zeroed.Momentum())).To(BeNumerically("<", 1e-12))
		})
	})

	Describe("Step", func() {
		It("conserves total momentum between consecutive steps", func() {
			s := newThermalized(sim.DefaultParams(), 3)
			p0 := s.Momentum()
			for i := 0; i < 2000; i++ {
				before := s.Momentum()
				_, err := s.Step()
				Expect(err).NotTo(HaveOccurred())
				Expect(r2.Norm(r2.Sub(s.Momentum(), before))).To(BeNumerically("<", 1e-10), "step %d", i)
			}
			Expect(r2.Norm(r2.Sub(s.Momentum(), p0))).To(BeNumerically("<", 1e-9))
		})

		It("keeps every particle inside the box", func() {
			s := newThermalized(sim.DefaultParams(), 4)
			box := sim.DefaultParams().Box
			for i := 0; i < 500; i++ {
				_, err := s.Step()
				Expect(err).NotTo(HaveOccurred())
				for _, p := range s.Positions() {
					Expect(box.Contains(p)).To(BeTrue())
				}
			}
		})

		It("bounds the total energy drift for a small time step", func() {
			p := sim.DefaultParams()
			p.Dt = 0.005
			s := newThermalized(p, 5)

			e0, err := s.Step()
			Expect(err).NotTo(HaveOccurred())
			for i := 1; i < 4000; i++ {
				e, err := s.Step()
				Expect(err).NotTo(HaveOccurred())
				Expect(e.Total()).To(BeNumerically("~", e0.Total(), 0.5), "step %d", i)
			}
		})

		It("is reproducible for a fixed seed", func() {
			a := newThermalized(sim.DefaultParams(), 17)
			b := newThermalized(sim.DefaultParams(), 17)
			for i := 0; i < 500; i++ {
				ea, err := a.Step()
				Expect(err).NotTo(HaveOccurred())
				eb, err := b.Step()
				Expect(err).NotTo(HaveOccurred())
				Expect(ea).To(Equal(eb))
			}
			sa, sb := a.Snapshot(), b.Snapshot()
			Expect(sa.Pos).To(Equal(sb.Pos))
			Expect(sa.Vel).To(Equal(sb.Vel))

			c := newThermalized(sim.DefaultParams(), 18)
			_, err := c.RunBatch(500)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Snapshot().Pos).NotTo(Equal(sa.Pos))
		})
	})

	Describe("RunBatch", func() {
		It("returns the record of the final step", func() {
			s := newThermalized(sim.DefaultParams(), 1)
			rec, err := s.RunBatch(100)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Step).To(Equal(100))
			Expect(rec.Time).To(BeNumerically("~", 2.4, 1e-9))
			Expect(rec.Total).To(BeNumerically("~", rec.Kinetic+rec.Potential, 1e-12))

			last, ok := s.Last()
			Expect(ok).To(BeTrue())
			Expect(last).To(Equal(rec))
		})

		It("rejects a non-positive batch size", func() {
			s := newThermalized(sim.DefaultParams(), 1)
			_, err := s.RunBatch(0)
			Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
		})
	})

	Describe("Run", func() {
		It("runs the 24-particle scenario for 30000 steps without diverging", func() {
			p := sim.DefaultParams()
			p.RecordEvery = 100
			s := newThermalized(p, 2024)

			var frames []metrics.Record
			sum, err := s.Run(context.Background(), 300, 100, func(f sim.Frame) bool {
				frames = append(frames, f.Record)
				Expect(f.Positions).To(HaveLen(24))
				return true
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(sum.Steps).To(Equal(30000))
			Expect(frames).To(HaveLen(300))
			Expect(frames[0].Time).To(BeNumerically("~", 2.4, 1e-9))
			Expect(s.Series()).To(HaveLen(300))
			for _, rec := range frames {
				Expect(finite(rec.Kinetic)).To(BeTrue())
				Expect(finite(rec.Potential)).To(BeTrue())
				Expect(rec.Kinetic).To(BeNumerically(">=", 0))
				Expect(rec.Kinetic).To(BeNumerically("<", 24*50))
			}
			Expect(sum.CvSamples).To(BeNumerically(">", 0))
			Expect(finite(sum.Cv)).To(BeTrue())
		})

		It("hands renderers copies they cannot use to mutate the state", func() {
			s := newThermalized(sim.DefaultParams(), 6)
			_, err := s.Run(context.Background(), 1, 10, func(f sim.Frame) bool {
				for i := range f.Positions {
					f.Positions[i] = r2.Vec{X: -100, Y: -100}
				}
				return true
			})
			Expect(err).NotTo(HaveOccurred())
			for _, p := range s.Positions() {
				Expect(p.X).To(BeNumerically(">=", 0))
			}
		})

		It("stops when the frame callback declines", func() {
			s := newThermalized(sim.DefaultParams(), 7)
			n := 0
			sum, err := s.Run(context.Background(), 100, 10, func(sim.Frame) bool {
				n++
				return n < 3
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(sum.Steps).To(Equal(30))
		})

		It("honours context cancellation between batches", func() {
			s := newThermalized(sim.DefaultParams(), 8)
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			sum, err := s.Run(ctx, 10, 10, nil)
			Expect(err).To(MatchError(dynamo.ErrContextCanceled))
			Expect(err).To(MatchError(context.Canceled))
			Expect(sum.Steps).To(Equal(0))
		})

		It("reports numerical drift as an advisory warning", func() {
			var buf bytes.Buffer
			p := sim.DefaultParams()
			p.DriftTolerance = 1e-12
			s := newThermalized(p, 10, sim.WithLogger(log.New(&buf)))

			sum, err := s.Run(context.Background(), 5, 20, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(sum.Steps).To(Equal(100))
			Expect(sum.Drifted).To(BeTrue())
			Expect(s.DriftCheck()).To(MatchError(dynamo.ErrNumericalDrift))
			Expect(strings.Count(buf.String(), "WARN")).To(Equal(1))
		})
	})

	Describe("Coupler hook", func() {
		It("is called once per particle per step", func() {
			calls := 0
			coupler := dynamo.CouplerFunc(func(int, *r2.Vec, *dynamo.State) { calls++ })
			s := newThermalized(sim.DefaultParams(), 12, sim.WithCoupler(coupler))
			_, err := s.RunBatch(10)
			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(Equal(240))
		})
	})

	Describe("Ensemble", func() {
		It("runs one member per seed", func() {
			e := sim.NewEnsemble(sim.DefaultParams(), 3, 100)
			results, err := e.Run(context.Background(), 2, 50)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(3))
			for _, r := range results {
				Expect(r.Steps).To(Equal(100))
			}
			Expect(results[0].Last).NotTo(Equal(results[1].Last))

			single := newThermalized(sim.DefaultParams(), 101)
			rec, err := single.RunBatch(100)
			Expect(err).NotTo(HaveOccurred())
			Expect(results[1].Last).To(Equal(rec))
		})

		It("fails when the parameters are invalid", func() {
			p := sim.DefaultParams()
			p.Dt = 0
			_, err := sim.NewEnsemble(p, 2, 1).Run(context.Background(), 1, 1)
			Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
		})

		DescribeTable("rejects a member count below one",
			func(runs int) {
				results, err := sim.NewEnsemble(sim.DefaultParams(), runs, 1).Run(context.Background(), 1, 1)
				Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
				Expect(results).To(BeNil())
			},
			Entry("zero runs", 0),
			Entry("negative runs", -1),
		)
	})
})
