package metrics

import (
	"github.com/san-kum/mdsim/internal/dynamo"
)

// HeatCapacity accumulates Epot and Epot^2 once the step counter passes
// startStep and estimates Cv = (<Epot^2> - <Epot>^2) / (kB T^2).
type HeatCapacity struct {
	kB        float64
	temp      float64
	startStep float64
	samples   int
	sum       float64
	sum2      float64
}

// NewHeatCapacity starts averaging after averageFrom time units.
func NewHeatCapacity(kB, temp, averageFrom, dt float64) *HeatCapacity {
	return &HeatCapacity{
		kB:        kB,
		temp:      temp,
		startStep: averageFrom / dt,
	}
}

func (h *HeatCapacity) Name() string { return "cv" }

func (h *HeatCapacity) Observe(s *dynamo.State, e dynamo.StepEnergy) {
	// s.Step already counts the step that produced e
	if float64(s.Step-1) <= h.startStep {
		return
	}
	h.samples++
	h.sum += e.Potential
	h.sum2 += e.Potential * e.Potential
}

// Estimate returns Cv and whether any sample has been collected.
func (h *HeatCapacity) Estimate() (float64, bool) {
	if h.samples == 0 || !(h.kB*h.temp > 0) {
		return 0, false
	}
	n := float64(h.samples)
	mean := h.sum / n
	mean2 := h.sum2 / n
	return (mean2 - mean*mean) / (h.kB * h.temp * h.temp), true
}

func (h *HeatCapacity) Value() float64 {
	cv, _ := h.Estimate()
	return cv
}

func (h *HeatCapacity) Samples() int { return h.samples }

func (h *HeatCapacity) Reset() {
	h.samples = 0
	h.sum = 0
	h.sum2 = 0
}
