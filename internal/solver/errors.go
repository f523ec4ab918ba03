package solver

import "errors"

// Domain errors for solver configuration.
var (
	// ErrNilMatrix indicates a solver constructed without a matrix.
	ErrNilMatrix = errors.New("solver: matrix must not be nil")

	// ErrNegativeTolerance indicates a tolerance below zero.
	ErrNegativeTolerance = errors.New("solver: tolerance must not be negative")

	// ErrNegativeIterations indicates a negative iteration cap.
	ErrNegativeIterations = errors.New("solver: max iterations must not be negative")
)
