package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/laplab/internal/config"
	"github.com/san-kum/laplab/internal/grid"
	"github.com/san-kum/laplab/internal/solver"
)

func testRun(t *testing.T) (*config.Config, *solver.Result, *grid.Matrix) {
	t.Helper()
	cfg := &config.Config{
		Size: 6, Workers: 2, Tolerance: 1e-4, MaxIterations: 100,
		Boundary: grid.Boundary{Top: 100},
	}
	m, err := cfg.BuildMatrix()
	if err != nil {
		t.Fatal(err)
	}
	res := &solver.Result{
		Engine:     solver.NameParallel,
		Converged:  true,
		Iterations: 3,
		FinalError: 5e-5,
		Elapsed:    2 * time.Millisecond,
		Residuals:  []float64{1.5, 0.3, 5e-5},
	}
	return cfg, res, m
}

func TestSaveAndLoad(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, res, m := testRun(t)
	runID, err := store.Save(cfg, res, m)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := store.LoadMetadata(runID)
	if err != nil {
		t.Fatalf("load metadata failed: %v", err)
	}
	if !meta.Converged || meta.Iterations != 3 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Engine != solver.NameParallel {
		t.Errorf("expected engine %q, got %q", solver.NameParallel, meta.Engine)
	}

	residuals, err := store.LoadResiduals(runID)
	if err != nil {
		t.Fatalf("load residuals failed: %v", err)
	}
	if len(residuals) != 3 || residuals[0] != 1.5 {
		t.Errorf("residuals mismatch: %v", residuals)
	}

	if _, err := os.Stat(filepath.Join(store.Dir(runID), "matrix.csv")); err != nil {
		t.Errorf("matrix dump missing: %v", err)
	}
}

func TestSaveWithoutMatrix(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	cfg, res, _ := testRun(t)
	runID, err := store.Save(cfg, res, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(store.Dir(runID), "matrix.csv")); !os.IsNotExist(err) {
		t.Error("expected no matrix dump")
	}
}

func TestListEmptyAndMissing(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "never-created"))
	runs, err := store.List()
	if err != nil {
		t.Fatalf("list on missing dir: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestListOrdering(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	cfg, res, _ := testRun(t)
	if _, err := store.Save(cfg, res, nil); err != nil {
		t.Fatal(err)
	}

	seq := *res
	seq.Engine = solver.NameSequential
	if _, err := store.Save(cfg, &seq, nil); err != nil {
		t.Fatal(err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Timestamp.Before(runs[1].Timestamp) {
		t.Error("runs not sorted newest first")
	}
}
