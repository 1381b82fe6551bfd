package viz

import (
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/mdsim/internal/metrics"
)

// EnergyPlot draws the kinetic and potential energy of records against the
// record index. It returns "" when there is nothing to draw.
func EnergyPlot(records []metrics.Record, width, height int) string {
	if len(records) == 0 {
		return ""
	}
	ekin := metrics.Column(records, metrics.KineticOf)
	epot := metrics.Column(records, metrics.PotentialOf)

	return asciigraph.PlotMany([][]float64{ekin, epot},
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green),
		asciigraph.Caption("Ekin (red) / Epot (green)"))
}

// SeriesPlot draws a single series with a caption.
func SeriesPlot(data []float64, caption string, width, height int) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption))
}
