package metrics

import (
	"github.com/san-kum/mdsim/internal/dynamo"
)

// Record is one sample of the energy time series.
type Record struct {
	Step      int     `json:"step"`
	Time      float64 `json:"time"`
	Kinetic   float64 `json:"ekin"`
	Potential float64 `json:"epot"`
	Total     float64 `json:"etot"`
}

// Recorder keeps an append-only energy series, one record every Every
// steps. The most recent step is always available from Last.
type Recorder struct {
	every  int
	series []Record
	last   Record
	seen   bool
}

func NewRecorder(every int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{every: every}
}

func (r *Recorder) Name() string { return "etot" }

func (r *Recorder) Observe(s *dynamo.State, e dynamo.StepEnergy) {
	r.last = Record{
		Step:      s.Step,
		Time:      s.Time(),
		Kinetic:   e.Kinetic,
		Potential: e.Potential,
		Total:     e.Total(),
	}
	r.seen = true
	if s.Step%r.every == 0 {
		r.series = append(r.series, r.last)
	}
}

// Value is the total energy of the most recent step.
func (r *Recorder) Value() float64 { return r.last.Total }

func (r *Recorder) Reset() {
	r.series = nil
	r.last = Record{}
	r.seen = false
}

func (r *Recorder) Every() int { return r.every }

func (r *Recorder) Last() (Record, bool) { return r.last, r.seen }

func (r *Recorder) Len() int { return len(r.series) }

// Series returns a copy of the recorded samples.
func (r *Recorder) Series() []Record {
	return append([]Record(nil), r.series...)
}

// Column extracts one field of every record, for plotting and analysis.
func Column(series []Record, field func(Record) float64) []float64 {
	out := make([]float64, len(series))
	for i, rec := range series {
		out[i] = field(rec)
	}
	return out
}

func KineticOf(r Record) float64   { return r.Kinetic }
func PotentialOf(r Record) float64 { return r.Potential }
func TotalOf(r Record) float64     { return r.Total }
func TimeOf(r Record) float64      { return r.Time }
