package config

import (
	"math/rand"
	"os"
	"time"

	"github.com/san-kum/mdsim/internal/dynamo"
	"github.com/san-kum/mdsim/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultParticles   = 24
	DefaultPerRow      = 6
	DefaultSpacing     = sim.LatticeSpacing
	DefaultMass        = 1.0
	DefaultTemperature = 1.0
	DefaultKB          = 1.0
	DefaultDt          = 0.024
	DefaultSteps       = 30000
	DefaultBatch       = 100
	DefaultAverageFrom = 100.0
)

type Config struct {
	Particles      int       `yaml:"particles"`
	PerRow         int       `yaml:"per_row"`
	Spacing        float64   `yaml:"spacing"`
	Box            BoxConfig `yaml:"box"`
	Mass           float64   `yaml:"mass"`
	Temperature    float64   `yaml:"temperature"`
	KB             float64   `yaml:"kb"`
	Dt             float64   `yaml:"dt"`
	Steps          int       `yaml:"steps"`
	BatchSize      int       `yaml:"batch_size"`
	AverageFrom    float64   `yaml:"average_from"`
	RecordEvery    int       `yaml:"record_every"`
	Workers        int       `yaml:"workers"`
	Seed           int64     `yaml:"seed"`
	RemoveDrift    bool      `yaml:"remove_drift"`
	DriftTolerance float64   `yaml:"drift_tolerance"`
}

// BoxConfig overrides the square per_row*spacing cell when set.
type BoxConfig struct {
	Lx float64 `yaml:"lx"`
	Ly float64 `yaml:"ly"`
}

func DefaultConfig() *Config {
	return &Config{
		Particles:   DefaultParticles,
		PerRow:      DefaultPerRow,
		Spacing:     DefaultSpacing,
		Mass:        DefaultMass,
		Temperature: DefaultTemperature,
		KB:          DefaultKB,
		Dt:          DefaultDt,
		Steps:       DefaultSteps,
		BatchSize:   DefaultBatch,
		AverageFrom: DefaultAverageFrom,
		RecordEvery: 1,
		Workers:     1,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SimBox is the explicit box when either side is set, otherwise the square
// cell of PerRow columns at Spacing.
func (c *Config) SimBox() dynamo.Box {
	if c.Box.Lx != 0 || c.Box.Ly != 0 {
		return dynamo.Box{Lx: c.Box.Lx, Ly: c.Box.Ly}
	}
	return sim.SquareBox(c.PerRow, c.Spacing)
}

func (c *Config) Params() sim.Params {
	return sim.Params{
		Particles:      c.Particles,
		PerRow:         c.PerRow,
		Box:            c.SimBox(),
		Mass:           c.Mass,
		Dt:             c.Dt,
		Temperature:    c.Temperature,
		KB:             c.KB,
		AverageFrom:    c.AverageFrom,
		RecordEvery:    c.RecordEvery,
		Workers:        c.Workers,
		RemoveDrift:    c.RemoveDrift,
		DriftTolerance: c.DriftTolerance,
	}
}

// Batches is the number of whole batches that fit in Steps.
func (c *Config) Batches() int {
	if c.BatchSize <= 0 {
		return 0
	}
	return c.Steps / c.BatchSize
}

// Validate checks the run-level settings and then the physical parameters.
func (c *Config) Validate() error {
	if c.Box.Lx == 0 && c.Box.Ly == 0 && !(c.Spacing > 0) {
		return dynamo.InvalidParam("spacing", c.Spacing)
	}
	if c.Steps < 0 {
		return dynamo.InvalidParam("steps", c.Steps)
	}
	if c.BatchSize <= 0 {
		return dynamo.InvalidParam("batch_size", c.BatchSize)
	}
	if c.Workers < 0 {
		return dynamo.InvalidParam("workers", c.Workers)
	}
	return c.Params().Validate()
}

// Rand returns the thermalization source; seed 0 picks one from the clock.
func (c *Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
