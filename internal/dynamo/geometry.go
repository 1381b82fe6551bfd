package dynamo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Box is a rectangular periodic cell [0, Lx) x [0, Ly).
type Box struct {
	Lx float64 `json:"lx" yaml:"lx"`
	Ly float64 `json:"ly" yaml:"ly"`
}

func (b Box) Validate() error {
	if !(b.Lx > 0) || math.IsInf(b.Lx, 0) {
		return InvalidParam("box.lx", b.Lx)
	}
	if !(b.Ly > 0) || math.IsInf(b.Ly, 0) {
		return InvalidParam("box.ly", b.Ly)
	}
	return nil
}

func (b Box) Area() float64 { return b.Lx * b.Ly }

// MinImage returns the displacement a-b reduced to its shortest periodic
// image, each component in [-L/2, L/2], and its length.
func (b Box) MinImage(a, c r2.Vec) (r2.Vec, float64) {
	d := r2.Vec{
		X: minImage1(a.X-c.X, b.Lx),
		Y: minImage1(a.Y-c.Y, b.Ly),
	}
	return d, math.Sqrt(d.X*d.X + d.Y*d.Y)
}

// Wrap maps p into [0, Lx) x [0, Ly).
func (b Box) Wrap(p r2.Vec) r2.Vec {
	return r2.Vec{X: wrap1(p.X, b.Lx), Y: wrap1(p.Y, b.Ly)}
}

func (b Box) Contains(p r2.Vec) bool {
	return p.X >= 0 && p.X < b.Lx && p.Y >= 0 && p.Y < b.Ly
}

func minImage1(d, l float64) float64 {
	return d - l*math.Round(d/l)
}

func wrap1(x, l float64) float64 {
	m := math.Mod(x, l)
	if m < 0 {
		m += l
	}
	// -tiny + l rounds to l
	if m >= l {
		m = 0
	}
	return m
}
