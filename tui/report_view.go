// ABOUTME: Interactive report viewer using bubbletea
// ABOUTME: Scrollable report with period switching and live regeneration
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/dealscope/intel"
	"github.com/harperreed/dealscope/viz"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)

// Model is the bubbletea model for the report viewer.
type Model struct {
	engine *intel.Engine
	kind   intel.ReportKind
	period intel.Period
	scope  intel.Scope

	viewport viewport.Model
	ready    bool
	err      error
}

// NewModel creates a report viewer for the given engine and report kind.
func NewModel(engine *intel.Engine, kind intel.ReportKind, period intel.Period, scope intel.Scope) Model {
	return Model{
		engine: engine,
		kind:   kind,
		period: period,
		scope:  scope,
	}
}

type reportMsg struct {
	report *intel.Report
	err    error
}

func (m Model) Init() tea.Cmd {
	return m.generate()
}

func (m Model) generate() tea.Cmd {
	return func() tea.Msg {
		report, err := m.engine.GenerateReport(context.Background(), m.kind, m.period, m.scope)
		return reportMsg{report: report, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.generate()
		case "w":
			m.period = intel.PeriodWeek
			return m, m.generate()
		case "m":
			m.period = intel.PeriodMonth
			return m, m.generate()
		case "u":
			m.period = intel.PeriodQuarter
			return m, m.generate()
		case "y":
			m.period = intel.PeriodYear
			return m, m.generate()
		}

	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(m.headerView())
		footerHeight := lipgloss.Height(m.footerView())
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		return m, nil

	case reportMsg:
		m.err = msg.err
		if msg.err == nil && m.ready {
			m.viewport.SetContent(viz.RenderReport(msg.report))
			m.viewport.GotoTop()
		} else if msg.err == nil {
			// Window size not seen yet; size the viewport with defaults.
			m.viewport = viewport.New(80, 24)
			m.viewport.SetContent(viz.RenderReport(msg.report))
			m.ready = true
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" + m.footerView()
	}
	if !m.ready {
		return statusStyle.Render("Generating report...")
	}
	return m.headerView() + "\n" + m.viewport.View() + "\n" + m.footerView()
}

func (m Model) headerView() string {
	return headerStyle.Render(fmt.Sprintf("dealscope · %s report · %s", m.kind, m.period))
}

func (m Model) footerView() string {
	return statusStyle.Render("w/m/u/y: period · r: refresh · q: quit")
}

// Run starts the report viewer in the alternate screen.
func Run(engine *intel.Engine, kind intel.ReportKind, period intel.Period, scope intel.Scope) error {
	p := tea.NewProgram(NewModel(engine, kind, period, scope), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
