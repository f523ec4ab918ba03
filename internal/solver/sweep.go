package solver

import "math"

// sweep relaxes this worker's column span over every interior row and
// returns the accumulated absolute change. Rows run top to bottom;
// columns run left to right, so within the span each cell already sees
// its updated left and upper neighbors. Across the span edge the updated
// left value comes from the left worker, gated by its progress counter.
// The right edge reads the right worker's not-yet-updated value, which is
// exactly what Gauss-Seidel order prescribes: the right worker cannot
// have written that row yet because it is gated on this worker.
func (s *Solver) sweep(tid int) float64 {
	m := s.m
	n := m.N
	span := s.spans[tid]

	var left *workerState
	if tid > 0 {
		left = &s.states[tid-1]
	}
	self := &s.states[tid]

	localErr := 0.0
	for row := 1; row < n-1; row++ {
		if left != nil {
			left.waitFor(row)
		}

		base := row * n
		for col := span.Lo; col < span.Hi; col++ {
			i := base + col
			next := 0.25 * (m.Cells[i+n] + m.Cells[i-n] + m.Cells[i+1] + m.Cells[i-1])
			localErr += math.Abs(m.Cells[i] - next)
			m.Cells[i] = next
		}

		self.advance(row)
	}
	return localErr
}
