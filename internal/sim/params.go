package sim

import (
	"math"

	"github.com/san-kum/mdsim/internal/dynamo"
)

// LatticeSpacing is the box length per lattice column, close to the
// Lennard-Jones minimum 2^(1/6).
const LatticeSpacing = 1.12

// Params are the physical and bookkeeping parameters of one run.
type Params struct {
	Particles      int
	PerRow         int
	Box            dynamo.Box
	Mass           float64
	Dt             float64
	Temperature    float64
	KB             float64
	AverageFrom    float64 // time after which Epot feeds the heat capacity
	RecordEvery    int     // steps between stored series records
	Workers        int     // force-loop workers, 1 is serial
	RemoveDrift    bool    // zero net momentum after thermalizing
	DriftTolerance float64 // advisory bound on energy/momentum drift, 0 disables
}

// SquareBox returns the perRow*spacing square cell.
func SquareBox(perRow int, spacing float64) dynamo.Box {
	l := float64(perRow) * spacing
	return dynamo.Box{Lx: l, Ly: l}
}

// DefaultParams is a 24-particle liquid at kBT = 1 in a 6.72 x 6.72 cell.
func DefaultParams() Params {
	return Params{
		Particles:   24,
		PerRow:      6,
		Box:         SquareBox(6, LatticeSpacing),
		Mass:        1.0,
		Dt:          0.024,
		Temperature: 1.0,
		KB:          1.0,
		AverageFrom: 100,
		RecordEvery: 1,
		Workers:     1,
	}
}

// KBT is the thermal energy used to thermalize the initial velocities.
func (p Params) KBT() float64 { return p.KB * p.Temperature }

func (p Params) Validate() error {
	if p.Particles <= 0 {
		return dynamo.InvalidParam("particles", p.Particles)
	}
	if p.PerRow <= 0 {
		return dynamo.InvalidParam("per_row", p.PerRow)
	}
	if err := p.Box.Validate(); err != nil {
		return err
	}
	if !(p.Mass > 0) || math.IsInf(p.Mass, 0) {
		return dynamo.InvalidParam("mass", p.Mass)
	}
	if !(p.Dt > 0) || math.IsInf(p.Dt, 0) {
		return dynamo.InvalidParam("dt", p.Dt)
	}
	if !(p.Temperature >= 0) || math.IsInf(p.Temperature, 0) {
		return dynamo.InvalidParam("temperature", p.Temperature)
	}
	if !(p.KB > 0) {
		return dynamo.InvalidParam("kb", p.KB)
	}
	if p.AverageFrom < 0 {
		return dynamo.InvalidParam("average_from", p.AverageFrom)
	}
	if p.RecordEvery < 0 {
		return dynamo.InvalidParam("record_every", p.RecordEvery)
	}
	if p.DriftTolerance < 0 {
		return dynamo.InvalidParam("drift_tolerance", p.DriftTolerance)
	}
	return nil
}
