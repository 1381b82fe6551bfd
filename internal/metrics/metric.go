package metrics

import "github.com/san-kum/mdsim/internal/dynamo"

// Metric observes the state after every completed integration step. It
// must not modify the state.
type Metric interface {
	Name() string
	Observe(s *dynamo.State, e dynamo.StepEnergy)
	Value() float64
	Reset()
}
