// Package analysis post-processes recorded observable series.
//
//   - [PowerSpectrum]: magnitude spectrum of a mean-removed series
//   - [DominantFrequency]: strongest non-zero frequency of a series
//   - [Summarize]: mean, standard deviation and range of a series
//
// A typical use is looking for the characteristic oscillation of the
// kinetic energy after equilibration:
//
//	ekin := metrics.Column(sim.Series(), metrics.KineticOf)
//	f, ok := analysis.DominantFrequency(ekin, dt*float64(every))
package analysis
