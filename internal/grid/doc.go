// Package grid provides the shared N×N matrix and the column partition
// used by the relaxation engines.
//
// A [Matrix] stores its cells in a single row-major slice so that a row
// sweep touches contiguous memory. Boundary cells (row/column 0 and N-1)
// are set once via [Matrix.ApplyBoundary] and treated as read-only by the
// solvers; only the interior is relaxed.
//
// [Partition] splits the interior columns into contiguous spans, one per
// worker. The split is deterministic for a given size and worker count,
// which is what makes parallel runs reproducible.
package grid
