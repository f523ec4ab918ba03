package solver

import (
	"math"
	"time"

	"github.com/san-kum/laplab/internal/grid"
)

// SolveSequential relaxes the matrix with a plain single-threaded
// Gauss-Seidel sweep. It is the reference the parallel engine is checked
// against and the baseline for speedup reporting; Options.Workers is
// ignored.
func SolveSequential(m *grid.Matrix, opts Options) (*Result, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	n := m.N
	res := &Result{Engine: NameSequential, FinalError: opts.Tolerance + 1}

	for iter := 0; iter < opts.MaxIterations; iter++ {
		sweepErr := 0.0
		for row := 1; row < n-1; row++ {
			base := row * n
			for col := 1; col < n-1; col++ {
				i := base + col
				next := 0.25 * (m.Cells[i+n] + m.Cells[i-n] + m.Cells[i+1] + m.Cells[i-1])
				sweepErr += math.Abs(m.Cells[i] - next)
				m.Cells[i] = next
			}
		}

		res.Iterations = iter + 1
		res.FinalError = sweepErr
		res.Residuals = append(res.Residuals, sweepErr)
		if sweepErr <= opts.Tolerance {
			res.Converged = true
			break
		}
	}

	res.Elapsed = time.Since(start)
	return res, nil
}
