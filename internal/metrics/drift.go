package metrics

import (
	"fmt"
	"math"

	"github.com/san-kum/mdsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// Drift tracks how far total energy and momentum move from their values
// at the first observed step. It is advisory: exceeding the tolerance is
// reported by Check, never by stopping the run.
type Drift struct {
	tolerance   float64
	samples     int
	energy0     float64
	momentum0   r2.Vec
	maxEnergy   float64
	maxMomentum float64
}

// NewDrift reports drift beyond tol; tol <= 0 disables the check.
func NewDrift(tol float64) *Drift {
	return &Drift{tolerance: tol}
}

func (d *Drift) Name() string { return "energy_drift" }

func (d *Drift) Observe(s *dynamo.State, e dynamo.StepEnergy) {
	p := s.Momentum()
	if d.samples == 0 {
		d.energy0 = e.Total()
		d.momentum0 = p
	}
	d.samples++

	d.maxEnergy = math.Max(d.maxEnergy, math.Abs(e.Total()-d.energy0))
	d.maxMomentum = math.Max(d.maxMomentum, r2.Norm(r2.Sub(p, d.momentum0)))
}

// Value is the largest absolute total-energy deviation seen so far.
func (d *Drift) Value() float64 { return d.maxEnergy }

func (d *Drift) MaxEnergy() float64   { return d.maxEnergy }
func (d *Drift) MaxMomentum() float64 { return d.maxMomentum }
func (d *Drift) Tolerance() float64   { return d.tolerance }

func (d *Drift) Exceeded() bool {
	return d.tolerance > 0 && (d.maxEnergy > d.tolerance || d.maxMomentum > d.tolerance)
}

// Check returns ErrNumericalDrift when either deviation exceeds the
// tolerance.
func (d *Drift) Check() error {
	if !d.Exceeded() {
		return nil
	}
	return fmt.Errorf("%w: energy %.3g, momentum %.3g (tolerance %.3g)",
		dynamo.ErrNumericalDrift, d.maxEnergy, d.maxMomentum, d.tolerance)
}

func (d *Drift) Reset() {
	*d = Drift{tolerance: d.tolerance}
}
