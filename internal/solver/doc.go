// Package solver implements Gauss-Seidel relaxation of the interior of a
// shared [grid.Matrix], both as a pipelined parallel engine and as a
// single-threaded reference.
//
// The parallel engine assigns each worker a fixed column span and runs all
// workers over the same rows top to bottom. Gauss-Seidel order requires
// that the cell left of a span is already updated when the span's first
// cell is computed, so each worker waits, per row, until its left
// neighbor has published completion of that row. The result is a
// wavefront: worker 0 leads, each other worker trails its left neighbor
// by at least one row, and no cell is ever written by two workers.
//
// Within one iteration the only cross-worker synchronization is that
// per-row spin wait. Iterations themselves are separated by three barrier
// rendezvous: one after per-worker state is reset, one after all sweeps
// finish, and one after worker 0 has folded the per-worker errors into
// the global residual and evaluated convergence.
//
//	s, err := solver.New(m, solver.Options{Workers: 4, Tolerance: 1e-4, MaxIterations: 1000})
//	res, err := s.Solve(ctx)
//
// A Solver is bound to one matrix and one configuration. Solve may be
// called again to continue relaxing the same matrix, but a Solver must
// not be shared between concurrent Solve calls.
package solver
