package analysis

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summarize describes data; the standard deviation is the unbiased
// sample estimate.
func Summarize(data []float64) Summary {
	if len(data) == 0 {
		return Summary{}
	}
	s := Summary{
		N:   len(data),
		Min: floats.Min(data),
		Max: floats.Max(data),
	}
	if len(data) == 1 {
		s.Mean = data[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(data, nil)
	return s
}

// Tail drops the leading fraction of data, typically the equilibration
// transient.
func Tail(data []float64, skip float64) []float64 {
	if skip <= 0 {
		return data
	}
	if skip >= 1 {
		return nil
	}
	return data[int(skip*float64(len(data))):]
}
