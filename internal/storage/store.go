package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/mdsim/internal/dynamo"
	"github.com/san-kum/mdsim/internal/metrics"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	metadataFile  = "metadata.json"
	seriesFile    = "series.csv"
	positionsFile = "positions.csv"
)

var seriesHeader = []string{"step", "time", "ekin", "epot", "etot"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Preset      string             `json:"preset,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Particles   int                `json:"particles"`
	PerRow      int                `json:"per_row"`
	Box         dynamo.Box         `json:"box"`
	Mass        float64            `json:"mass"`
	Temperature float64            `json:"temperature"`
	KB          float64            `json:"kb"`
	Dt          float64            `json:"dt"`
	Steps       int                `json:"steps"`
	BatchSize   int                `json:"batch_size"`
	RecordEvery int                `json:"record_every"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes one run directory holding the metadata, the energy series
// and the final positions. An empty meta.ID is filled from the clock.
func (s *Store) Save(meta RunMetadata, series []metrics.Record, positions []r2.Vec) (string, error) {
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("lj_%d", time.Now().UnixNano())
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	err := writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return "", err
	}

	err = writeFile(filepath.Join(runDir, seriesFile), func(w io.Writer) error {
		return WriteSeriesCSV(w, series)
	})
	if err != nil {
		return "", err
	}

	err = writeFile(filepath.Join(runDir, positionsFile), func(w io.Writer) error {
		return WritePositionsCSV(w, positions)
	})
	if err != nil {
		return "", err
	}

	return meta.ID, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSeries(runID string) ([]metrics.Record, error) {
	rows, err := readCSV(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, err
	}

	series := make([]metrics.Record, 0, len(rows))
	for _, row := range rows {
		if len(row) < len(seriesHeader) {
			continue
		}
		step, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		vals, ok := parseFloats(row[1:5])
		if !ok {
			continue
		}
		series = append(series, metrics.Record{
			Step:      step,
			Time:      vals[0],
			Kinetic:   vals[1],
			Potential: vals[2],
			Total:     vals[3],
		})
	}
	return series, nil
}

func (s *Store) LoadPositions(runID string) ([]r2.Vec, error) {
	rows, err := readCSV(filepath.Join(s.baseDir, runID, positionsFile))
	if err != nil {
		return nil, err
	}

	pos := make([]r2.Vec, 0, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		vals, ok := parseFloats(row[1:3])
		if !ok {
			continue
		}
		pos = append(pos, r2.Vec{X: vals[0], Y: vals[1]})
	}
	return pos, nil
}

// readCSV returns the data rows of a file, header dropped.
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}
	return records[1:], nil
}

func parseFloats(fields []string) ([]float64, bool) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
