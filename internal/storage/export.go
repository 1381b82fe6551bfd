package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/mdsim/internal/metrics"
	"gonum.org/v1/gonum/spatial/r2"
)

type ExportData struct {
	Run       RunMetadata      `json:"run"`
	Records   int              `json:"records"`
	Series    []metrics.Record `json:"series"`
	Positions [][2]float64     `json:"positions"`
}

// ExportJSON writes the metadata, series and positions of a run as one
// indented JSON document.
func ExportJSON(w io.Writer, meta RunMetadata, series []metrics.Record, positions []r2.Vec) error {
	data := ExportData{
		Run:       meta,
		Records:   len(series),
		Series:    series,
		Positions: make([][2]float64, len(positions)),
	}
	if data.Series == nil {
		data.Series = []metrics.Record{}
	}
	for i, p := range positions {
		data.Positions[i] = [2]float64{p.X, p.Y}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func WriteSeriesCSV(w io.Writer, series []metrics.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(seriesHeader); err != nil {
		return err
	}
	for _, rec := range series {
		row := []string{
			strconv.Itoa(rec.Step),
			formatFloat(rec.Time),
			formatFloat(rec.Kinetic),
			formatFloat(rec.Potential),
			formatFloat(rec.Total),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WritePositionsCSV(w io.Writer, positions []r2.Vec) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"i", "x", "y"}); err != nil {
		return err
	}
	for i, p := range positions {
		if err := cw.Write([]string{strconv.Itoa(i), formatFloat(p.X), formatFloat(p.Y)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
