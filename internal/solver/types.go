package solver

import "time"

// Engine names reported in results so callers can tell which
// implementation produced them.
const (
	NameParallel   = "parallel"
	NameSequential = "sequential"
)

// Options configures a relaxation run.
type Options struct {
	// Workers is the number of column partitions and goroutines.
	Workers int
	// Tolerance is the residual at or below which the run converges.
	// Zero is valid and effectively runs to the iteration cap.
	Tolerance float64
	// MaxIterations caps the run. Zero means no sweep is performed and
	// the run reports not-converged.
	MaxIterations int
}

// Validate reports the first configuration problem, if any. Worker-count
// bounds are checked against the grid size at construction time.
func (o Options) Validate() error {
	if o.Tolerance < 0 {
		return ErrNegativeTolerance
	}
	if o.MaxIterations < 0 {
		return ErrNegativeIterations
	}
	return nil
}

// Result is the outcome of one relaxation run.
type Result struct {
	Engine string
	// Converged is true when the residual reached the tolerance before
	// the iteration cap.
	Converged bool
	// Iterations is the number of sweeps performed. When Converged it is
	// the iteration at which the tolerance was first satisfied.
	Iterations int
	// FinalError is the residual after the last completed iteration.
	FinalError float64
	Elapsed    time.Duration
	// Residuals holds the global residual after each iteration.
	Residuals []float64
}

// Probe observes the global residual once per iteration. Observe is
// called by a single goroutine between barrier phases, so implementations
// need no locking of their own.
type Probe interface {
	Observe(iteration int, globalError float64)
}
