package grid

import (
	"math"
	"testing"
)

func TestNewMatrix(t *testing.T) {
	m, err := NewMatrix(4)
	if err != nil {
		t.Fatalf("new matrix: %v", err)
	}
	if len(m.Cells) != 16 {
		t.Errorf("expected 16 cells, got %d", len(m.Cells))
	}

	if _, err := NewMatrix(2); err != ErrSizeTooSmall {
		t.Errorf("expected ErrSizeTooSmall, got %v", err)
	}
}

func TestMatrixIndexing(t *testing.T) {
	m, _ := NewMatrix(5)
	m.Set(2, 3, 7.5)

	if got := m.At(2, 3); got != 7.5 {
		t.Errorf("expected 7.5, got %f", got)
	}
	if got := m.Cells[m.Index(2, 3)]; got != 7.5 {
		t.Errorf("flat index disagrees with At: %f", got)
	}
}

func TestApplyBoundary(t *testing.T) {
	m, _ := NewMatrix(6)
	m.ApplyBoundary(Boundary{Top: 100, Bottom: 1, Left: 2, Right: 3})

	tests := []struct {
		name     string
		row, col int
		want     float64
	}{
		{"top edge", 0, 3, 100},
		{"top corner", 0, 0, 100},
		{"bottom edge", 5, 2, 1},
		{"left edge", 3, 0, 2},
		{"right edge", 2, 5, 3},
		{"interior untouched", 2, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.At(tt.row, tt.col); got != tt.want {
				t.Errorf("at (%d,%d): expected %f, got %f", tt.row, tt.col, tt.want, got)
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m, _ := NewMatrix(4)
	m.Set(1, 1, 5)

	c := m.Clone()
	c.Set(1, 1, 9)

	if m.At(1, 1) != 5 {
		t.Error("clone write leaked into original")
	}
	if c.At(1, 1) != 9 {
		t.Error("clone write lost")
	}
}

func TestInteriorEqual(t *testing.T) {
	a, _ := NewMatrix(5)
	b := a.Clone()
	b.Set(2, 2, 1e-7)

	if !InteriorEqual(a, b, 1e-6) {
		t.Error("expected equal within tolerance")
	}
	if InteriorEqual(a, b, 1e-9) {
		t.Error("expected unequal below tolerance")
	}

	// Boundary differences are ignored.
	b.Set(2, 2, 0)
	b.Set(0, 0, 42)
	if !InteriorEqual(a, b, 0) {
		t.Error("boundary cells should not affect interior comparison")
	}

	if got := MaxInteriorDiff(a, b); math.Abs(got) != 0 {
		t.Errorf("expected zero interior diff, got %g", got)
	}
}
