package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/san-kum/mdsim/internal/dynamo"
	"github.com/spf13/cobra"
)

func newTestCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	preset, configFile = "", ""
	cmd := &cobra.Command{Use: "run"}
	addSimFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func TestResolveConfigDefaults(t *testing.T) {
	cfg, err := resolveConfig(newTestCmd(t))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Particles != 24 || cfg.Dt != 0.024 || cfg.Batches() != 300 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Seed == 0 {
		t.Error("seed 0 was not replaced")
	}
}

func TestResolveConfigLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("temperature: 0.5\ndt: 0.01\nseed: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolveConfig(newTestCmd(t, "--config", path, "--dt", "0.002", "-n", "12"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Temperature != 0.5 {
		t.Errorf("file temperature not applied: %f", cfg.Temperature)
	}
	if cfg.Dt != 0.002 {
		t.Errorf("flag did not override file: dt %f", cfg.Dt)
	}
	if cfg.Particles != 12 || cfg.Seed != 3 {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestResolveConfigPreset(t *testing.T) {
	cfg, err := resolveConfig(newTestCmd(t, "--preset", "gas"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Temperature != 3 {
		t.Errorf("expected gas temperature 3, got %f", cfg.Temperature)
	}

	if _, err := resolveConfig(newTestCmd(t, "--preset", "plasma")); err == nil {
		t.Error("expected unknown preset error")
	}
}

func TestResolveConfigInvalid(t *testing.T) {
	_, err := resolveConfig(newTestCmd(t, "--dt", "-1"))
	if !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger("debug")
	if err != nil {
		t.Fatal(err)
	}
	if l.GetLevel() != log.DebugLevel {
		t.Errorf("expected debug level, got %v", l.GetLevel())
	}
	if _, err := newLogger("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
