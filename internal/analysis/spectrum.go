package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns |X_k| for k = 0..n/2 of the series with its mean
// removed. Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	return spectrum(data, false)
}

// PowerSpectrumHann is PowerSpectrum with a Hann window applied first,
// which reduces leakage for series that do not hold whole periods.
func PowerSpectrumHann(data []float64) []float64 {
	return spectrum(data, true)
}

func spectrum(data []float64, hann bool) []float64 {
	n := len(data)
	if n == 0 {
		return nil
	}

	x := make([]float64, n)
	copy(x, data)
	floats.AddConst(-stat.Mean(x, nil), x)
	if hann && n > 1 {
		window.Apply(x, window.Hann)
	}

	coeffs := fft.FFTReal(x)
	ps := make([]float64, n/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// DominantFrequency is the frequency of the largest non-zero bin of the
// spectrum for samples spaced dt apart. ok is false when the series is too
// short or flat.
func DominantFrequency(data []float64, dt float64) (freq float64, ok bool) {
	if len(data) < 4 || dt <= 0 {
		return 0, false
	}

	ps := PowerSpectrum(data)
	k := floats.MaxIdx(ps[1:]) + 1
	if ps[k] == 0 {
		return 0, false
	}
	return float64(k) / (float64(len(data)) * dt), true
}
