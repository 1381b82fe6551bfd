package sim

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/mdsim/internal/dynamo"
	"github.com/san-kum/mdsim/internal/integrators"
	"github.com/san-kum/mdsim/internal/metrics"
	"github.com/san-kum/mdsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// Simulation owns one particle State and everything that advances or
// observes it. It is not safe for concurrent use.
type Simulation struct {
	params   Params
	state    *dynamo.State
	integ    *integrators.VelocityVerlet
	recorder *metrics.Recorder
	heat     *metrics.HeatCapacity
	drift    *metrics.Drift
	metrics  []metrics.Metric
	logger   *log.Logger
	warned   bool
}

type Option func(*Simulation)

func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) { s.logger = l }
}

// WithCoupler installs a temperature-coupling hook on the integrator.
func WithCoupler(c dynamo.Coupler) Option {
	return func(s *Simulation) { s.integ.SetCoupler(c) }
}

// WithMetric adds an observer called after every step.
func WithMetric(m metrics.Metric) Option {
	return func(s *Simulation) { s.metrics = append(s.metrics, m) }
}

// Frame is what a renderer receives once per batch.
type Frame struct {
	Record    metrics.Record
	Positions []r2.Vec
	Box       dynamo.Box
}

// Summary describes a finished or interrupted run.
type Summary struct {
	Steps         int
	Last          metrics.Record
	Cv            float64
	CvSamples     int
	EnergyDrift   float64
	MomentumDrift float64
	Drifted       bool
	Momentum      r2.Vec
	Elapsed       time.Duration
}

// Initialize validates p and places the particles on the starting lattice
// with zero velocity and force.
func Initialize(p Params, opts ...Option) (*Simulation, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	st, err := dynamo.NewLattice(p.Particles, p.PerRow, p.Box, p.Mass, p.Dt)
	if err != nil {
		return nil, err
	}

	forces := physics.NewForces(physics.LennardJones{}, p.Workers)
	s := &Simulation{
		params:   p,
		state:    st,
		integ:    integrators.NewVelocityVerlet(forces),
		recorder: metrics.NewRecorder(p.RecordEvery),
		heat:     metrics.NewHeatCapacity(p.KB, p.Temperature, p.AverageFrom, p.Dt),
		drift:    metrics.NewDrift(p.DriftTolerance),
		logger:   log.New(io.Discard),
	}
	s.metrics = []metrics.Metric{s.recorder, s.heat, s.drift}

	for _, opt := range opts {
		opt(s)
	}

	s.logger.Info("initialized",
		"particles", p.Particles,
		"box", fmt.Sprintf("%.3gx%.3g", p.Box.Lx, p.Box.Ly),
		"density", float64(p.Particles)/p.Box.Area(),
		"dt", p.Dt,
		"workers", forces.Workers())

	return s, nil
}

// Thermalize draws every velocity from a Gaussian of width kBT.
func (s *Simulation) Thermalize(kBT float64, rng *rand.Rand) error {
	if err := physics.Thermalize(s.state, kBT, rng); err != nil {
		return err
	}
	if s.params.RemoveDrift {
		physics.RemoveDrift(s.state)
	}
	p := s.state.Momentum()
	s.logger.Debug("thermalized", "kBT", kBT, "ekin", s.state.KineticEnergy(), "px", p.X, "py", p.Y)
	return nil
}

// RemoveDrift zeroes the net momentum of the current velocities.
func (s *Simulation) RemoveDrift() {
	physics.RemoveDrift(s.state)
}

// Step performs one velocity-Verlet transition and feeds the observers.
func (s *Simulation) Step() (dynamo.StepEnergy, error) {
	e, err := s.integ.Step(s.state)
	if err != nil {
		return e, err
	}

	for _, m := range s.metrics {
		m.Observe(s.state, e)
	}

	if !s.warned {
		if err := s.drift.Check(); err != nil {
			s.warned = true
			s.logger.Warn("numerical drift", "step", s.state.Step, "tolerance", s.drift.Tolerance(), "err", err)
		}
	}

	return e, nil
}

// RunBatch performs n steps and returns the record of the last one.
func (s *Simulation) RunBatch(n int) (metrics.Record, error) {
	if n <= 0 {
		return metrics.Record{}, dynamo.InvalidParam("steps_per_batch", n)
	}
	for i := 0; i < n; i++ {
		if _, err := s.Step(); err != nil {
			return metrics.Record{}, err
		}
	}
	rec, _ := s.recorder.Last()
	return rec, nil
}

// Run executes batches of batchSize steps, handing a Frame to frame after
// each batch. It stops early when frame returns false or ctx is done.
func (s *Simulation) Run(ctx context.Context, batches, batchSize int, frame func(Frame) bool) (*Summary, error) {
	if batches < 0 {
		return nil, dynamo.InvalidParam("batches", batches)
	}
	if batchSize <= 0 {
		return nil, dynamo.InvalidParam("steps_per_batch", batchSize)
	}

	start := time.Now()
	for b := 0; b < batches; b++ {
		select {
		case <-ctx.Done():
			return s.summary(start), fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		rec, err := s.RunBatch(batchSize)
		if err != nil {
			return s.summary(start), err
		}

		s.logger.Debug("batch", "step", rec.Step, "t", rec.Time, "ekin", rec.Kinetic, "epot", rec.Potential)

		if frame != nil && !frame(s.Frame()) {
			break
		}
	}

	sum := s.summary(start)
	s.logger.Info("run complete",
		"steps", sum.Steps,
		"etot", sum.Last.Total,
		"energy_drift", sum.EnergyDrift,
		"elapsed", sum.Elapsed.Round(time.Millisecond))
	return sum, nil
}

// Frame returns a copy of the current positions with the latest record.
func (s *Simulation) Frame() Frame {
	rec, _ := s.recorder.Last()
	return Frame{Record: rec, Positions: s.state.Positions(), Box: s.state.Box}
}

func (s *Simulation) Positions() []r2.Vec { return s.state.Positions() }

// Snapshot returns a deep copy of the current state.
func (s *Simulation) Snapshot() *dynamo.State { return s.state.Clone() }

func (s *Simulation) Params() Params { return s.params }

func (s *Simulation) StepCount() int { return s.state.Step }

func (s *Simulation) Series() []metrics.Record { return s.recorder.Series() }

func (s *Simulation) Last() (metrics.Record, bool) { return s.recorder.Last() }

func (s *Simulation) Momentum() r2.Vec { return s.state.Momentum() }

func (s *Simulation) HeatCapacity() (float64, bool) { return s.heat.Estimate() }

// DriftCheck reports ErrNumericalDrift once the tolerance has been
// exceeded; the run itself is unaffected.
func (s *Simulation) DriftCheck() error { return s.drift.Check() }

func (s *Simulation) summary(start time.Time) *Summary {
	rec, _ := s.recorder.Last()
	cv, _ := s.heat.Estimate()
	return &Summary{
		Steps:         s.state.Step,
		Last:          rec,
		Cv:            cv,
		CvSamples:     s.heat.Samples(),
		EnergyDrift:   s.drift.MaxEnergy(),
		MomentumDrift: s.drift.MaxMomentum(),
		Drifted:       s.drift.Exceeded(),
		Momentum:      s.state.Momentum(),
		Elapsed:       time.Since(start),
	}
}
