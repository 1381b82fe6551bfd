// Package physics implements the pair interaction and the particle-level
// operations of a 2D Lennard-Jones fluid in reduced units.
//
//   - [LennardJones]: 4(r^-12 - r^-6) potential and its radial force
//   - [Forces]: all-pairs force evaluator under the minimum-image convention
//   - [Thermalize]: Gaussian velocity draw with the Marsaglia polar method
//
// # Parallel evaluation
//
// [NewForces] with more than one worker splits the pair loop into fixed
// row chunks. Each chunk accumulates into its own buffer and the buffers
// are summed in chunk order, so the result does not depend on scheduling:
//
//	f := physics.NewForces(physics.LennardJones{}, runtime.NumCPU())
//	epot, err := f.Evaluate(state)
package physics
