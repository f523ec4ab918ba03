package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/laplab/internal/grid"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Size != DefaultSize {
		t.Errorf("expected size %d, got %d", DefaultSize, cfg.Size)
	}
	if cfg.Tolerance != DefaultTolerance {
		t.Errorf("expected tolerance %g, got %g", DefaultTolerance, cfg.Tolerance)
	}
	if cfg.Workers < 1 {
		t.Errorf("expected at least one worker, got %d", cfg.Workers)
	}
	if cfg.Boundary.Top != DefaultHotEdge {
		t.Errorf("expected hot top edge, got %f", cfg.Boundary.Top)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")

	cfg := &Config{
		Size:          48,
		Workers:       3,
		Tolerance:     1e-5,
		MaxIterations: 750,
		Boundary:      grid.Boundary{Top: 50, Bottom: -10},
	}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if *loaded != *cfg {
		t.Errorf("round trip mismatch: %+v != %+v", loaded, cfg)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")

	if err := os.WriteFile(path, []byte("size: 20\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Size != 20 {
		t.Errorf("expected size 20, got %d", cfg.Size)
	}
	if cfg.Tolerance != DefaultTolerance {
		t.Errorf("expected default tolerance, got %g", cfg.Tolerance)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/run.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name          string
		size, workers int
		wantMax       int
	}{
		{"clamped to interior", 6, 32, 4},
		{"kept when valid", 64, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Size: tt.size, Workers: tt.workers}
			cfg.Normalize()
			if cfg.Workers > tt.wantMax {
				t.Errorf("expected at most %d workers, got %d", tt.wantMax, cfg.Workers)
			}
			if cfg.Workers < 1 {
				t.Errorf("expected at least one worker, got %d", cfg.Workers)
			}
		})
	}

	unset := &Config{Size: 64}
	unset.Normalize()
	if unset.Workers < 1 {
		t.Errorf("expected workers filled in, got %d", unset.Workers)
	}
}

func TestPresetsBuild(t *testing.T) {
	for name, cfg := range Presets {
		t.Run(name, func(t *testing.T) {
			c := *cfg
			c.Normalize()
			m, err := c.BuildMatrix()
			if err != nil {
				t.Fatalf("preset %q does not build: %v", name, err)
			}
			if m.N != c.Size {
				t.Errorf("expected size %d, got %d", c.Size, m.N)
			}
		})
	}
}
