package automation

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/mdsim/internal/dynamo"
	"github.com/san-kum/mdsim/internal/sim"
)

const annealYAML = `
name: anneal
description: melt, then quench
config:
  temperature: 2.0
  seed: 11
stages:
  - name: melt
    temperature: 2.0
    steps: 250
  - name: hold
    steps: 120
  - name: quench
    temperature: 0
    steps: 100
    remove_drift: true
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, annealYAML))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "anneal" || len(sc.Stages) != 3 {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	if sc.Config.Temperature != 2 || sc.Config.Particles != 24 {
		t.Errorf("config not layered on defaults: %+v", sc.Config)
	}
	if sc.Stages[1].Temperature != nil {
		t.Error("hold stage should keep velocities")
	}
	if sc.Stages[2].Temperature == nil || *sc.Stages[2].Temperature != 0 {
		t.Error("quench temperature not parsed")
	}
}

func TestLoadScenarioInvalid(t *testing.T) {
	tests := map[string]string{
		"no stages":     "name: empty\n",
		"zero steps":    "stages:\n  - steps: 0\n",
		"negative temp": "stages:\n  - steps: 10\n    temperature: -1\n",
		"bad config":    "config:\n  dt: -1\nstages:\n  - steps: 10\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, body))
			if !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, annealYAML))
	if err != nil {
		t.Fatal(err)
	}
	s, err := sim.Initialize(sc.Config.Params())
	if err != nil {
		t.Fatal(err)
	}

	results, err := RunScenario(context.Background(), sc, s, rand.New(rand.NewSource(sc.Config.Seed)), 100, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 stage results, got %d", len(results))
	}
	if s.StepCount() != 470 {
		t.Errorf("expected 470 steps, got %d", s.StepCount())
	}
	if results[0].Last.Step != 250 || results[1].Last.Step != 370 {
		t.Errorf("unexpected stage ends %d, %d", results[0].Last.Step, results[1].Last.Step)
	}
	if results[0].Kinetic.N != 3 || results[1].Kinetic.N != 2 {
		t.Errorf("unexpected record counts %d, %d", results[0].Kinetic.N, results[1].Kinetic.N)
	}
	if results[2].KT >= results[0].KT {
		t.Errorf("quench did not cool: melt kT %.3f, quench kT %.3f", results[0].KT, results[2].KT)
	}
	for _, r := range results {
		if math.IsNaN(r.KT) || math.IsInf(r.KT, 0) {
			t.Errorf("stage %s: non-finite kT", r.Name)
		}
	}
}

func TestRunScenarioCanceled(t *testing.T) {
	temp := 1.0
	sc := &Scenario{Stages: []Stage{{Temperature: &temp, Steps: 500}}}
	s, err := sim.Initialize(sim.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = RunScenario(ctx, sc, s, rand.New(rand.NewSource(1)), 100, nil)
	if !errors.Is(err, dynamo.ErrContextCanceled) {
		t.Errorf("expected cancellation, got %v", err)
	}
}

func TestLoadScenarioEmptyConfig(t *testing.T) {
	for name, body := range map[string]string{
		"empty": "name: x\nconfig:\nstages:\n  - steps: 10\n",
		"null":  "name: x\nconfig: null\nstages:\n  - steps: 10\n",
	} {
		t.Run(name, func(t *testing.T) {
			sc, err := LoadScenario(writeScenario(t, body))
			if err != nil {
				t.Fatal(err)
			}
			if sc.Config == nil {
				t.Fatal("config left nil")
			}
			if sc.Config.Particles != 24 || sc.Config.BatchSize != 100 {
				t.Errorf("expected default config, got %+v", sc.Config)
			}
		})
	}
}

func TestRunScenarioShortStage(t *testing.T) {
	sc := &Scenario{Stages: []Stage{{Name: "short", Steps: 30}}}
	s, err := sim.Initialize(sim.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}

	results, err := RunScenario(context.Background(), sc, s, rand.New(rand.NewSource(3)), 100, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Kinetic.N != 1 {
		t.Fatalf("unexpected results %+v", results)
	}
	if s.StepCount() != 30 || results[0].Last.Step != 30 {
		t.Errorf("expected 30 steps, got %d (last record %d)", s.StepCount(), results[0].Last.Step)
	}
	// no stage temperature: velocities come from the configured one
	if results[0].KT <= 0 {
		t.Errorf("system was left at rest, kT = %v", results[0].KT)
	}
}

func TestRunScenarioShortStageCanceled(t *testing.T) {
	sc := &Scenario{Stages: []Stage{{Steps: 30}}}
	s, err := sim.Initialize(sim.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = RunScenario(ctx, sc, s, rand.New(rand.NewSource(1)), 100, nil)
	if !errors.Is(err, dynamo.ErrContextCanceled) {
		t.Errorf("expected cancellation, got %v", err)
	}
	if s.StepCount() != 0 {
		t.Errorf("canceled short stage ran %d steps", s.StepCount())
	}
}
