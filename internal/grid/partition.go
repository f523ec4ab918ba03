package grid

// Span is a half-open column range [Lo, Hi) owned by one worker.
type Span struct {
	Lo, Hi int
}

// Width returns the number of columns in the span.
func (s Span) Width() int { return s.Hi - s.Lo }

// Partition splits the interior columns [1, n-1) into one contiguous span
// per worker, ordered by worker id. Spans are balanced so their widths
// differ by at most one, and no span is empty as long as workers <= n-2.
func Partition(n, workers int) ([]Span, error) {
	if n < 3 {
		return nil, ErrSizeTooSmall
	}
	if workers < 1 {
		return nil, ErrNoWorkers
	}
	interior := n - 2
	if workers > interior {
		return nil, ErrTooManyWorkers
	}

	spans := make([]Span, workers)
	for w := 0; w < workers; w++ {
		spans[w] = Span{
			Lo: 1 + interior*w/workers,
			Hi: 1 + interior*(w+1)/workers,
		}
	}
	return spans, nil
}
