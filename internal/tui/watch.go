// Package tui shows a running solve live in the terminal: the residual
// curve growing iteration by iteration, current stats, and the final
// report when the run ends.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/laplab/internal/solver"
	"github.com/san-kum/laplab/internal/viz"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	statStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type progressMsg struct {
	iteration int
	residual  float64
}

type doneMsg struct {
	res *solver.Result
	err error
}

// probe forwards each iteration's residual into the program. Send blocks
// only on the UI event queue, never on a neighbor worker.
type probe struct {
	p *tea.Program
}

func (pr *probe) Observe(iter int, globalError float64) {
	pr.p.Send(progressMsg{iteration: iter, residual: globalError})
}

type model struct {
	cancel    context.CancelFunc
	tolerance float64

	iteration int
	residuals []float64
	result    *solver.Result
	err       error
	done      bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.done {
				return m, tea.Quit
			}
			m.cancel() // stop the solver; doneMsg follows
		}
	case progressMsg:
		m.iteration = msg.iteration
		m.residuals = append(m.residuals, msg.residual)
	case doneMsg:
		m.result = msg.res
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("laplab watch") + "\n\n")
	b.WriteString(viz.ResidualPlot(m.residuals) + "\n\n")

	last := 0.0
	if len(m.residuals) > 0 {
		last = m.residuals[len(m.residuals)-1]
	}
	b.WriteString(statStyle.Render(fmt.Sprintf(
		"iteration %d   residual %.6g   tolerance %.6g", m.iteration+1, last, m.tolerance)) + "\n")

	if m.done && m.result != nil {
		b.WriteString("\n" + viz.Report(m.result))
	} else {
		b.WriteString(dimStyle.Render("q to stop") + "\n")
	}
	return b.String()
}

// Watch runs the solver while rendering its progress, and returns the
// run's result once the program exits.
func Watch(ctx context.Context, s *solver.Solver, tolerance float64) (*solver.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := model{cancel: cancel, tolerance: tolerance}
	p := tea.NewProgram(m)

	s.AddProbe(&probe{p: p})
	go func() {
		res, err := s.Solve(ctx)
		p.Send(doneMsg{res: res, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, err
	}

	fm := final.(model)
	if fm.err != nil && !errors.Is(fm.err, context.Canceled) {
		return fm.result, fm.err
	}
	return fm.result, nil
}
