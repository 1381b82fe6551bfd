package dynamo

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		pos   r2.Vec
		vel   r2.Vec
		valid bool
	}{
		{"normal", r2.Vec{X: 1, Y: 2}, r2.Vec{X: 3, Y: 4}, true},
		{"zeros", r2.Vec{}, r2.Vec{}, true},
		{"NaN position", r2.Vec{X: math.NaN()}, r2.Vec{}, false},
		{"+Inf velocity", r2.Vec{}, r2.Vec{Y: math.Inf(1)}, false},
		{"-Inf velocity", r2.Vec{}, r2.Vec{X: math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewState(1, Box{Lx: 1, Ly: 1}, 1, 0.1)
			if err != nil {
				t.Fatal(err)
			}
			s.Pos[0], s.Vel[0] = tt.pos, tt.vel
			if got := s.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Observables(t *testing.T) {
	s, err := NewState(2, Box{Lx: 5, Ly: 5}, 2.0, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	s.Vel[0] = r2.Vec{X: 1, Y: 0}
	s.Vel[1] = r2.Vec{X: -3, Y: 2}
	s.Force[0] = r2.Vec{X: 0.5, Y: -1}
	s.Force[1] = r2.Vec{X: -0.5, Y: 1}

	p := s.Momentum()
	if p.X != -4 || p.Y != 4 {
		t.Errorf("Momentum() = %v, want (-4, 4)", p)
	}
	if ke := s.KineticEnergy(); math.Abs(ke-14) > 1e-12 {
		t.Errorf("KineticEnergy() = %v, want 14", ke)
	}
	if f := s.NetForce(); f.X != 0 || f.Y != 0 {
		t.Errorf("NetForce() = %v, want zero", f)
	}

	s.Step = 10
	if math.Abs(s.Time()-1.0) > 1e-12 {
		t.Errorf("Time() = %v, want 1", s.Time())
	}
}

func TestState_CloneAndPositions(t *testing.T) {
	s, err := NewState(3, Box{Lx: 5, Ly: 5}, 1, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	s.Pos[0] = r2.Vec{X: 1, Y: 2}

	c := s.Clone()
	c.Pos[0].X = 99
	if s.Pos[0].X == 99 {
		t.Error("Clone shares position storage")
	}

	snap := s.Positions()
	snap[0].Y = 42
	if s.Pos[0].Y == 42 {
		t.Error("Positions returned a view instead of a copy")
	}
}

func TestErrorsUnwrap(t *testing.T) {
	pe := &PairError{I: 2, J: 5, Step: 7}
	want := "step 7: particles 2 and 5: dynamo: degenerate pair separation (r <= 0)"
	if pe.Error() != want {
		t.Errorf("PairError.Error() = %q, want %q", pe.Error(), want)
	}

	se := &SimulationError{Step: 150, Time: 1.5, Wrapped: ErrUnstable}
	want = "step 150 (t=1.5000): dynamo: simulation unstable (state diverged)"
	if se.Error() != want {
		t.Errorf("SimulationError.Error() = %q, want %q", se.Error(), want)
	}
}
