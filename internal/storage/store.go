// Package storage persists relaxation runs under a base directory: one
// subdirectory per run holding metadata JSON, the residual series as CSV
// and optionally the final matrix as CSV.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/laplab/internal/config"
	"github.com/san-kum/laplab/internal/grid"
	"github.com/san-kum/laplab/internal/solver"
)

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
	ID            string        `json:"id"`
	Timestamp     time.Time     `json:"timestamp"`
	Engine        string        `json:"engine"`
	Size          int           `json:"size"`
	Workers       int           `json:"workers"`
	Tolerance     float64       `json:"tolerance"`
	MaxIterations int           `json:"max_iterations"`
	Boundary      grid.Boundary `json:"boundary"`
	Converged     bool          `json:"converged"`
	Iterations    int           `json:"iterations"`
	FinalError    float64       `json:"final_error"`
	ElapsedMS     float64       `json:"elapsed_ms"`
}

// Save writes one run. The matrix may be nil to skip the (large) final
// grid dump.
func (s *Store) Save(cfg *config.Config, res *solver.Result, m *grid.Matrix) (string, error) {
	runID := fmt.Sprintf("%s_%d", res.Engine, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Timestamp:     time.Now(),
		Engine:        res.Engine,
		Size:          cfg.Size,
		Workers:       cfg.Workers,
		Tolerance:     cfg.Tolerance,
		MaxIterations: cfg.MaxIterations,
		Boundary:      cfg.Boundary,
		Converged:     res.Converged,
		Iterations:    res.Iterations,
		FinalError:    res.FinalError,
		ElapsedMS:     float64(res.Elapsed.Microseconds()) / 1000,
	}

	if err := s.writeMetadata(runDir, meta); err != nil {
		return "", err
	}
	if err := s.writeResiduals(runDir, res.Residuals); err != nil {
		return "", err
	}
	if m != nil {
		if err := s.writeMatrix(runDir, m); err != nil {
			return "", err
		}
	}
	return runID, nil
}

func (s *Store) writeMetadata(runDir string, meta RunMetadata) error {
	f, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func (s *Store) writeResiduals(runDir string, residuals []float64) error {
	f, err := os.Create(filepath.Join(runDir, "residuals.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"iteration", "residual"}); err != nil {
		return err
	}
	for i, r := range residuals {
		record := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(r, 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeMatrix(runDir string, m *grid.Matrix) error {
	f, err := os.Create(filepath.Join(runDir, "matrix.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	record := make([]string, m.N)
	for row := 0; row < m.N; row++ {
		for col := 0; col < m.N; col++ {
			record[col] = strconv.FormatFloat(m.At(row, col), 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// List returns the metadata of every stored run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.LoadMetadata(e.Name())
		if err != nil {
			continue // skip runs with damaged metadata
		}
		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) LoadMetadata(runID string) (RunMetadata, error) {
	var meta RunMetadata
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, err
	}
	return meta, nil
}

// LoadResiduals reads back the residual series of a stored run.
func (s *Store) LoadResiduals(runID string) ([]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "residuals.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	var residuals []float64
	for i, rec := range records {
		if i == 0 || len(rec) < 2 {
			continue // header
		}
		v, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: run %s, line %d: %w", runID, i+1, err)
		}
		residuals = append(residuals, v)
	}
	return residuals, nil
}

// Dir returns the directory of a stored run.
func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}
