package automation

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/charmbracelet/log"
	"github.com/san-kum/mdsim/internal/analysis"
	"github.com/san-kum/mdsim/internal/config"
	"github.com/san-kum/mdsim/internal/dynamo"
	"github.com/san-kum/mdsim/internal/metrics"
	"github.com/san-kum/mdsim/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted thermal protocol, such as melt then quench, run
// on one evolving system.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Config      *config.Config `yaml:"config"`
	Stages      []Stage        `yaml:"stages"`
}

// Stage runs Steps steps. A set Temperature redraws all velocities at that
// temperature before the stage starts.
type Stage struct {
	Name        string   `yaml:"name"`
	Temperature *float64 `yaml:"temperature"`
	Steps       int      `yaml:"steps"`
	RemoveDrift bool     `yaml:"remove_drift"`
}

type StageResult struct {
	Name    string
	Steps   int
	Last    metrics.Record
	Kinetic analysis.Summary
	Total   analysis.Summary
	// KT is the mean kinetic energy per particle over the stage.
	KT float64
}

// LoadScenario reads a scenario; a missing config section means the
// default configuration.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	scenario := Scenario{Config: config.DefaultConfig()}
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	// An empty or null config key decodes to nil.
	if scenario.Config == nil {
		scenario.Config = config.DefaultConfig()
	}

	return &scenario, scenario.Validate()
}

func (sc *Scenario) Validate() error {
	if len(sc.Stages) == 0 {
		return dynamo.InvalidParam("stages", 0)
	}
	for i, st := range sc.Stages {
		if st.Steps <= 0 {
			return fmt.Errorf("stage %d: %w", i+1, dynamo.InvalidParam("steps", st.Steps))
		}
		if st.Temperature != nil && *st.Temperature < 0 {
			return fmt.Errorf("stage %d: %w", i+1, dynamo.InvalidParam("temperature", *st.Temperature))
		}
	}
	if sc.Config == nil {
		return nil
	}
	return sc.Config.Validate()
}

// RunScenario executes all stages in order on s, drawing velocities from
// rng, and returns one result per completed stage. When the first stage
// sets no temperature, velocities are first drawn at the temperature of
// s's parameters.
func RunScenario(ctx context.Context, sc *Scenario, s *sim.Simulation, rng *rand.Rand, batch int, logger *log.Logger) ([]StageResult, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if batch < 1 {
		return nil, dynamo.InvalidParam("batch", batch)
	}

	p := s.Params()
	results := make([]StageResult, 0, len(sc.Stages))

	if len(sc.Stages) > 0 && sc.Stages[0].Temperature == nil {
		if err := s.Thermalize(p.KBT(), rng); err != nil {
			return results, err
		}
	}

	for i, stage := range sc.Stages {
		name := stage.Name
		if name == "" {
			name = fmt.Sprintf("stage-%d", i+1)
		}
		logger.Info("stage", "n", fmt.Sprintf("%d/%d", i+1, len(sc.Stages)), "name", name, "steps", stage.Steps)

		if stage.Temperature != nil {
			if err := s.Thermalize(p.KB * *stage.Temperature, rng); err != nil {
				return results, fmt.Errorf("stage %d: %w", i+1, err)
			}
		}
		if stage.RemoveDrift {
			s.RemoveDrift()
		}

		var records []metrics.Record
		collect := func(f sim.Frame) bool {
			records = append(records, f.Record)
			return true
		}

		if _, err := s.Run(ctx, stage.Steps/batch, batch, collect); err != nil {
			return results, fmt.Errorf("stage %d: %w", i+1, err)
		}
		if rem := stage.Steps % batch; rem > 0 {
			if err := ctx.Err(); err != nil {
				return results, fmt.Errorf("stage %d: %w: %w", i+1, dynamo.ErrContextCanceled, err)
			}
			rec, err := s.RunBatch(rem)
			if err != nil {
				return results, fmt.Errorf("stage %d: %w", i+1, err)
			}
			records = append(records, rec)
		}

		res := StageResult{
			Name:    name,
			Steps:   stage.Steps,
			Last:    records[len(records)-1],
			Kinetic: analysis.Summarize(metrics.Column(records, metrics.KineticOf)),
			Total:   analysis.Summarize(metrics.Column(records, metrics.TotalOf)),
		}
		res.KT = res.Kinetic.Mean / float64(p.Particles)
		results = append(results, res)
	}

	return results, nil
}
