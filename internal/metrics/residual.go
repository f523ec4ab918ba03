// Package metrics provides solver probes that summarize a run: residual
// history, convergence rate and per-iteration timing. All probes are
// driven by the solver's aggregation phase and need no locking.
package metrics

import "math"

// ResidualHistory records the global residual of every iteration.
type ResidualHistory struct {
	name   string
	values []float64
}

func NewResidualHistory() *ResidualHistory {
	return &ResidualHistory{name: "residual"}
}

func (r *ResidualHistory) Name() string { return r.name }

func (r *ResidualHistory) Observe(iter int, globalError float64) {
	r.values = append(r.values, globalError)
}

// Value returns the most recent residual.
func (r *ResidualHistory) Value() float64 {
	if len(r.values) == 0 {
		return 0
	}
	return r.values[len(r.values)-1]
}

// Values returns the full per-iteration series.
func (r *ResidualHistory) Values() []float64 { return r.values }

func (r *ResidualHistory) Reset() { r.values = nil }

// ConvergenceRate estimates the per-iteration residual reduction factor
// as the geometric mean of successive ratios. Values below 1 mean the
// run is contracting.
type ConvergenceRate struct {
	name     string
	previous float64
	logSum   float64
	samples  int
}

func NewConvergenceRate() *ConvergenceRate {
	return &ConvergenceRate{name: "convergence_rate"}
}

func (c *ConvergenceRate) Name() string { return c.name }

func (c *ConvergenceRate) Observe(iter int, globalError float64) {
	if c.samples > 0 && c.previous > 0 && globalError > 0 {
		c.logSum += math.Log(globalError / c.previous)
	}
	c.previous = globalError
	c.samples++
}

func (c *ConvergenceRate) Value() float64 {
	if c.samples < 2 {
		return 0
	}
	return math.Exp(c.logSum / float64(c.samples-1))
}

func (c *ConvergenceRate) Reset() {
	c.previous = 0
	c.logSum = 0
	c.samples = 0
}
