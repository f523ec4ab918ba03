package metrics

import "time"

// IterationTiming measures wall time between successive iterations and
// reports the mean iteration duration in seconds.
type IterationTiming struct {
	name    string
	last    time.Time
	total   time.Duration
	samples int
}

func NewIterationTiming() *IterationTiming {
	return &IterationTiming{name: "iteration_time"}
}

func (t *IterationTiming) Name() string { return t.name }

func (t *IterationTiming) Observe(iter int, globalError float64) {
	now := time.Now()
	if !t.last.IsZero() {
		t.total += now.Sub(t.last)
		t.samples++
	}
	t.last = now
}

func (t *IterationTiming) Value() float64 {
	if t.samples == 0 {
		return 0
	}
	return (t.total / time.Duration(t.samples)).Seconds()
}

func (t *IterationTiming) Reset() {
	t.last = time.Time{}
	t.total = 0
	t.samples = 0
}
