package grid

import "math"

// Matrix is a square grid of cells stored row-major in one allocation.
type Matrix struct {
	N     int
	Cells []float64
}

// NewMatrix allocates an N×N matrix with all cells zero.
func NewMatrix(n int) (*Matrix, error) {
	if n < 3 {
		return nil, ErrSizeTooSmall
	}
	return &Matrix{N: n, Cells: make([]float64, n*n)}, nil
}

// Index maps (row, col) to the flat cell offset.
func (m *Matrix) Index(row, col int) int { return row*m.N + col }

// At returns the cell value at (row, col).
func (m *Matrix) At(row, col int) float64 { return m.Cells[row*m.N+col] }

// Set writes the cell value at (row, col).
func (m *Matrix) Set(row, col int, v float64) { m.Cells[row*m.N+col] = v }

// Clone returns a deep copy sharing no storage with the receiver.
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{N: m.N, Cells: make([]float64, len(m.Cells))}
	copy(c.Cells, m.Cells)
	return c
}

// Boundary holds the fixed edge values of the problem. Corners take the
// value of the horizontal edge they belong to.
type Boundary struct {
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
}

// ApplyBoundary writes the edge values onto the outermost rows and
// columns. The interior is left untouched.
func (m *Matrix) ApplyBoundary(b Boundary) {
	n := m.N
	for col := 0; col < n; col++ {
		m.Set(0, col, b.Top)
		m.Set(n-1, col, b.Bottom)
	}
	for row := 1; row < n-1; row++ {
		m.Set(row, 0, b.Left)
		m.Set(row, n-1, b.Right)
	}
}

// MaxInteriorDiff returns the largest absolute cell difference over the
// interior of two same-sized matrices.
func MaxInteriorDiff(a, b *Matrix) float64 {
	max := 0.0
	for row := 1; row < a.N-1; row++ {
		for col := 1; col < a.N-1; col++ {
			d := math.Abs(a.At(row, col) - b.At(row, col))
			if d > max {
				max = d
			}
		}
	}
	return max
}

// InteriorEqual reports whether two matrices agree on every interior cell
// within tol.
func InteriorEqual(a, b *Matrix, tol float64) bool {
	if a.N != b.N {
		return false
	}
	return MaxInteriorDiff(a, b) <= tol
}
