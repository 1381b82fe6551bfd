package dynamo

import (
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// LatticeFill is the fraction of the row width covered by one row.
	LatticeFill = 0.95
	// RowPitch is the row spacing relative to the in-row spacing; close to
	// sqrt(3)/2 for a hexagonal packing.
	RowPitch = 0.87
)

// NewLattice places n particles on a near-hexagonal grid with perRow
// particles per row. Odd rows are shifted by half a spacing; positions
// that fall outside the cell are wrapped back in. Velocities and forces
// start at zero.
func NewLattice(n, perRow int, box Box, mass, dt float64) (*State, error) {
	if perRow <= 0 {
		return nil, InvalidParam("per_row", perRow)
	}
	s, err := NewState(n, box, mass, dt)
	if err != nil {
		return nil, err
	}

	a := box.Lx * LatticeFill / float64(perRow)
	for i := range s.Pos {
		row := i / perRow
		col := i % perRow
		s.Pos[i] = box.Wrap(r2.Vec{
			X: a * (float64(col) + 0.5*float64(row)),
			Y: a * RowPitch * float64(row),
		})
	}

	if err := CheckOverlap(s); err != nil {
		return nil, err
	}
	return s, nil
}

// CheckOverlap reports the first pair with zero minimum-image separation.
func CheckOverlap(s *State) error {
	for i := 0; i < len(s.Pos); i++ {
		for j := i + 1; j < len(s.Pos); j++ {
			if _, r := s.Box.MinImage(s.Pos[i], s.Pos[j]); !(r > 0) {
				return &PairError{I: i, J: j, Step: s.Step}
			}
		}
	}
	return nil
}
