package dynamo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// State is the mutable simulation state. Index identity is stable for the
// whole run: pair (i, j) always refers to the same two particles.
type State struct {
	Pos   []r2.Vec
	Vel   []r2.Vec
	Force []r2.Vec
	Mass  float64
	Box   Box
	Step  int
	Dt    float64
}

// NewState allocates n particles at the origin with zero velocity and force.
func NewState(n int, box Box, mass, dt float64) (*State, error) {
	if n <= 0 {
		return nil, InvalidParam("particles", n)
	}
	if err := box.Validate(); err != nil {
		return nil, err
	}
	if !(mass > 0) {
		return nil, InvalidParam("mass", mass)
	}
	if !(dt > 0) {
		return nil, InvalidParam("dt", dt)
	}
	return &State{
		Pos:   make([]r2.Vec, n),
		Vel:   make([]r2.Vec, n),
		Force: make([]r2.Vec, n),
		Mass:  mass,
		Box:   box,
		Dt:    dt,
	}, nil
}

func (s *State) Len() int { return len(s.Pos) }

// Time is the simulated time reached after Step completed steps.
func (s *State) Time() float64 { return float64(s.Step) * s.Dt }

func (s *State) Clone() *State {
	c := *s
	c.Pos = append([]r2.Vec(nil), s.Pos...)
	c.Vel = append([]r2.Vec(nil), s.Vel...)
	c.Force = append([]r2.Vec(nil), s.Force...)
	return &c
}

// Positions returns a copy of the particle positions for renderers.
func (s *State) Positions() []r2.Vec {
	return append([]r2.Vec(nil), s.Pos...)
}

func (s *State) IsValid() bool {
	for i := range s.Pos {
		if !finite(s.Pos[i]) || !finite(s.Vel[i]) {
			return false
		}
	}
	return true
}

func (s *State) Momentum() r2.Vec {
	var p r2.Vec
	for _, v := range s.Vel {
		p.X += s.Mass * v.X
		p.Y += s.Mass * v.Y
	}
	return p
}

func (s *State) KineticEnergy() float64 {
	ke := 0.0
	for _, v := range s.Vel {
		ke += 0.5 * s.Mass * (v.X*v.X + v.Y*v.Y)
	}
	return ke
}

// NetForce is the sum of all particle forces; zero up to rounding after a
// force pass that respects Newton's third law.
func (s *State) NetForce() r2.Vec {
	var f r2.Vec
	for _, fi := range s.Force {
		f = r2.Add(f, fi)
	}
	return f
}

func finite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// StepEnergy holds the instantaneous energies of one integration step.
type StepEnergy struct {
	Kinetic   float64
	Potential float64
}

func (e StepEnergy) Total() float64 { return e.Kinetic + e.Potential }

// PairPotential is a radial pair law. Both methods are undefined for r <= 0.
type PairPotential interface {
	Energy(r float64) float64
	// Force is the radial force magnitude, positive when repulsive.
	Force(r float64) float64
}

// ForceEvaluator zeroes and refills s.Force from s.Pos and returns the
// total potential energy.
type ForceEvaluator interface {
	Evaluate(s *State) (float64, error)
}

// Coupler is a temperature-coupling hook. It is called once per particle
// per step with the half-kicked velocity, before kinetic energy is summed.
type Coupler interface {
	Couple(i int, v *r2.Vec, s *State)
}

// CouplerFunc adapts a function to Coupler.
type CouplerFunc func(i int, v *r2.Vec, s *State)

func (f CouplerFunc) Couple(i int, v *r2.Vec, s *State) { f(i, v, s) }

// Integrator advances a State by one time step.
type Integrator interface {
	Step(s *State) (StepEnergy, error)
}
