// Package dynamo provides the core state and geometry of a 2D periodic
// particle simulation.
//
// The package defines the fundamental types shared by the engine:
//
//   - [State]: positions, velocities and forces of all particles
//   - [Box]: the rectangular periodic cell and its minimum-image geometry
//   - [PairPotential]: a radial pair law (energy and force magnitude)
//   - [ForceEvaluator]: fills State.Force and returns the potential energy
//   - [Coupler]: optional temperature-coupling hook used by integrators
//
// # Example
//
//	st, _ := dynamo.NewLattice(24, 6, dynamo.Box{Lx: 6.72, Ly: 6.72}, 1, 0.024)
//	eval := physics.NewForces(physics.LennardJones{}, 1)
//	vv := integrators.NewVelocityVerlet(eval)
//	e, _ := vv.Step(st)
//
// # Thread Safety
//
// A State is mutated in place by the integrator and must not be shared
// between goroutines while a run is in progress. Hand renderers a copy
// from [State.Positions].
package dynamo
