package grid

import "errors"

// Domain errors for grid construction and partitioning.
var (
	// ErrSizeTooSmall indicates a grid with no interior to relax.
	ErrSizeTooSmall = errors.New("grid: size must be at least 3")

	// ErrNoWorkers indicates a non-positive worker count.
	ErrNoWorkers = errors.New("grid: worker count must be positive")

	// ErrTooManyWorkers indicates more workers than interior columns.
	ErrTooManyWorkers = errors.New("grid: more workers than interior columns")
)
