package physics

import (
	"math"
	"math/rand"

	"github.com/san-kum/mdsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// GaussianPair draws two independent zero-mean normal variates with
// standard deviation sigma using the Marsaglia polar method.
func GaussianPair(rng *rand.Rand, sigma float64) (float64, float64) {
	for {
		u := 2*rng.Float64() - 1
		v := 2*rng.Float64() - 1
		w := u*u + v*v
		if w > 0 && w < 1 {
			w = math.Sqrt(-2 * math.Log(w) / w)
			return sigma * u * w, sigma * v * w
		}
	}
}

// Thermalize overwrites every velocity with one Gaussian pair of standard
// deviation kBT. Net momentum is left as drawn; see RemoveDrift.
func Thermalize(s *dynamo.State, kBT float64, rng *rand.Rand) error {
	if !(kBT >= 0) || math.IsInf(kBT, 0) {
		return dynamo.InvalidParam("temperature", kBT)
	}
	for i := range s.Vel {
		vx, vy := GaussianPair(rng, kBT)
		s.Vel[i] = r2.Vec{X: vx, Y: vy}
	}
	return nil
}

// RemoveDrift subtracts the mean velocity so total momentum is zero.
func RemoveDrift(s *dynamo.State) {
	n := float64(s.Len())
	if n == 0 {
		return
	}
	var mean r2.Vec
	for _, v := range s.Vel {
		mean = r2.Add(mean, v)
	}
	mean = r2.Scale(1/n, mean)
	for i := range s.Vel {
		s.Vel[i] = r2.Sub(s.Vel[i], mean)
	}
}
