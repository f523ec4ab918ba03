package solver

import (
	"context"
	"sync"
	"time"

	"github.com/san-kum/laplab/internal/grid"
)

// Solver drives the pipelined parallel engine over one shared matrix.
type Solver struct {
	m      *grid.Matrix
	opts   Options
	spans  []grid.Span
	states []workerState
	bar    *barrier
	probes []Probe

	// Written only by worker 0 during the aggregation phase; read by the
	// other workers only after the barrier that follows it.
	globalError float64
	converged   bool
	iterations  int
	residuals   []float64
	stopCause   error
}

// New validates the configuration, computes the column partition and
// allocates all per-worker state. The matrix is referenced, not copied:
// Solve mutates it in place.
func New(m *grid.Matrix, opts Options) (*Solver, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	spans, err := grid.Partition(m.N, opts.Workers)
	if err != nil {
		return nil, err
	}
	return &Solver{
		m:      m,
		opts:   opts,
		spans:  spans,
		states: make([]workerState, opts.Workers),
		bar:    newBarrier(opts.Workers),
	}, nil
}

// AddProbe registers a per-iteration observer. Must not be called while
// Solve is running.
func (s *Solver) AddProbe(p Probe) { s.probes = append(s.probes, p) }

// Solve runs workers over the matrix until the residual reaches the
// tolerance, the iteration cap is hit, or ctx is cancelled. Cancellation
// is observed between iterations, never inside a row wait, so the matrix
// is always left in a consistent post-iteration state. On cancellation
// the partial result is returned together with the context error.
func (s *Solver) Solve(ctx context.Context) (*Result, error) {
	start := time.Now()

	// Make Solve callable again on the same matrix.
	s.globalError = s.opts.Tolerance + 1
	s.converged = false
	s.iterations = 0
	s.residuals = nil
	s.stopCause = nil
	for t := range s.states {
		s.states[t].reset()
	}

	var wg sync.WaitGroup
	for t := 0; t < s.opts.Workers; t++ {
		wg.Add(1)
		go func(tid int) {
			defer wg.Done()
			s.worker(ctx, tid)
		}(t)
	}
	wg.Wait()

	res := &Result{
		Engine:     NameParallel,
		Converged:  s.converged,
		Iterations: s.iterations,
		FinalError: s.globalError,
		Elapsed:    time.Since(start),
		Residuals:  s.residuals,
	}
	if s.stopCause != nil {
		return res, s.stopCause
	}
	return res, nil
}

// worker runs the per-iteration state machine:
// reset -> barrier -> sweep -> barrier -> aggregate (worker 0) -> barrier.
// Every worker evaluates the same loop predicate on state that only
// changes during the aggregation phase, so all workers take the same exit
// decision every round.
func (s *Solver) worker(ctx context.Context, tid int) {
	for iter := 0; ; iter++ {
		if iter >= s.opts.MaxIterations || s.converged || s.stopCause != nil {
			return
		}

		s.states[tid].reset()
		s.bar.wait()

		s.states[tid].err = s.sweep(tid)
		s.bar.wait()

		if tid == 0 {
			s.aggregate(ctx, iter)
		}
		s.bar.wait()
	}
}

// aggregate folds the per-worker errors into the global residual and
// evaluates the exit conditions. Runs on worker 0 only, between the
// post-sweep and pre-predicate barriers, which is the single window in
// which the shared fields may be written.
func (s *Solver) aggregate(ctx context.Context, iter int) {
	total := 0.0
	for t := range s.states {
		total += s.states[t].err
	}
	s.globalError = total
	s.iterations = iter + 1
	s.residuals = append(s.residuals, total)
	if total <= s.opts.Tolerance {
		s.converged = true
	}

	for _, p := range s.probes {
		p.Observe(iter, total)
	}

	if err := ctx.Err(); err != nil {
		s.stopCause = err
	}
}
