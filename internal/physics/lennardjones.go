package physics

// RMin is the Lennard-Jones minimum, 2^(1/6) in reduced units.
const RMin = 1.122462048309373

// LennardJones is the 12-6 pair law in reduced units (epsilon = sigma = 1).
type LennardJones struct{}

func (LennardJones) Energy(r float64) float64 { return LJEnergy(r) }
func (LennardJones) Force(r float64) float64  { return LJForce(r) }

// LJEnergy returns 4(r^-12 - r^-6). r must be positive.
func LJEnergy(r float64) float64 {
	r2 := r * r
	ir6 := 1 / (r2 * r2 * r2)
	return 4 * ir6 * (ir6 - 1)
}

// LJForce returns the radial force 48 r^-13 - 24 r^-7, positive when
// repulsive. r must be positive.
func LJForce(r float64) float64 {
	r2 := r * r
	ir6 := 1 / (r2 * r2 * r2)
	return 24 * ir6 * (2*ir6 - 1) / r
}
