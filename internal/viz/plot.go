// Package viz renders run results for the terminal: a residual-history
// plot, a styled run report and a heatmap of the relaxed grid.
package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/laplab/internal/grid"
	"github.com/san-kum/laplab/internal/solver"
)

const (
	plotWidth  = 70
	plotHeight = 14
)

var (
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	convergedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

// ResidualPlot renders the per-iteration residuals on a log10 scale, the
// only scale on which a geometric decay is readable.
func ResidualPlot(residuals []float64) string {
	if len(residuals) < 2 {
		return "not enough iterations to plot"
	}

	series := make([]float64, len(residuals))
	for i, r := range residuals {
		if r <= 0 {
			r = math.SmallestNonzeroFloat64
		}
		series[i] = math.Log10(r)
	}

	return asciigraph.Plot(series,
		asciigraph.Width(plotWidth),
		asciigraph.Height(plotHeight),
		asciigraph.Caption("log10(residual) per iteration"),
	)
}

// Report renders a styled summary of one run.
func Report(res *solver.Result) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("relaxation run") + "\n\n")

	status := failedStyle.Render("did not converge (iteration cap reached)")
	if res.Converged {
		status = convergedStyle.Render(fmt.Sprintf("converged after %d iterations", res.Iterations))
	}

	rows := []struct{ label, value string }{
		{"engine", res.Engine},
		{"status", status},
		{"iterations", fmt.Sprintf("%d", res.Iterations)},
		{"final error", fmt.Sprintf("%.6g", res.FinalError)},
		{"elapsed", res.Elapsed.String()},
	}
	for _, r := range rows {
		b.WriteString(labelStyle.Render(r.label) + valueStyle.Render(r.value) + "\n")
	}
	return b.String()
}

// heatRamp maps a normalized value to a 256-color terminal ramp from
// cold blue to hot red.
var heatRamp = []string{"17", "19", "26", "38", "44", "49", "84", "154", "220", "208", "196"}

// Heatmap renders the matrix as colored cells, downsampling to at most
// maxCells columns so large grids still fit a terminal.
func Heatmap(m *grid.Matrix, maxCells int) string {
	if maxCells < 2 {
		maxCells = 2
	}
	step := 1
	if m.N > maxCells {
		step = (m.N + maxCells - 1) / maxCells
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range m.Cells {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	for row := 0; row < m.N; row += step {
		for col := 0; col < m.N; col += step {
			t := (m.At(row, col) - lo) / span
			idx := int(t * float64(len(heatRamp)-1))
			if idx < 0 {
				idx = 0
			}
			if idx >= len(heatRamp) {
				idx = len(heatRamp) - 1
			}
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(heatRamp[idx])).
				Render("██"))
		}
		b.WriteByte('\n')
	}
	b.WriteString(fmt.Sprintf("range [%.3g, %.3g]\n", lo, hi))
	return b.String()
}
