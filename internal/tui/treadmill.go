package tui

import (
	"fmt"

	"cardio-efficiency/internal/report"
	"cardio-efficiency/internal/service"
	"cardio-efficiency/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TreadmillModel is the treadmill summary screen model
type TreadmillModel struct {
	units    Units
	rows     []store.TreadmillSummary
	excluded int
	pager    pager
	width    int
}

// NewTreadmillModel creates a new treadmill model
func NewTreadmillModel(units Units) TreadmillModel {
	return TreadmillModel{units: units, pager: newPager(12)}
}

// SetReport replaces the rows shown on the screen
func (m TreadmillModel) SetReport(r *service.Report) TreadmillModel {
	m.rows = nil
	m.excluded = 0
	if r != nil {
		m.rows = r.Treadmill
		m.excluded = r.ExcludedTreadmill
	}
	m.pager.reset(len(m.rows))
	return m
}

// Init initializes the treadmill screen
func (m TreadmillModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m TreadmillModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		m.pager.handleKey(msg.String())
	}
	return m, nil
}

// View renders the treadmill screen
func (m TreadmillModel) View() string {
	if len(m.rows) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			cardTitleStyle.Render("Treadmill Efficiency"),
			"  No treadmill summaries. Import a file with graded treadmill bouts.")
	}

	start, end := m.pager.window()
	title := cardTitleStyle.Render(fmt.Sprintf("Treadmill Efficiency - %d-%d of %d", start+1, end, m.pager.total))

	var lines []string
	lines = append(lines, title)
	lines = append(lines, tableHeaderStyle.Render(fmt.Sprintf("   %-10s  %8s  %4s  %12s  %10s",
		"Speed", "Grade %", "n", "Measured", "Theory")))

	for i := start; i < end; i++ {
		r := m.rows[i]
		line := fmt.Sprintf("%-10s  %8.1f  %4d  %12s  %10s",
			m.units.FormatSpeed(r.SpeedMPH), r.GradePct, r.N, formatEff(r.EffMeasured), formatEff(r.EffTheory))
		if i == m.pager.selected() {
			lines = append(lines, tableSelectedStyle.Render("> "+line))
		} else {
			lines = append(lines, tableRowStyle.Render("  "+line))
		}
	}

	if m.excluded > 0 {
		lines = append(lines, warningStyle.Render(fmt.Sprintf("\n  %d treadmill records had no usable speed, grade or efficiency", m.excluded)))
	}

	sections := []string{lipgloss.JoinVertical(lipgloss.Left, lines...)}
	sections = append(sections, m.renderSelected())
	if chart := report.TreadmillTerminalChart(m.rows, chartWidth(m.width)); chart != "" {
		sections = append(sections, cardStyle.Render(chart))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m TreadmillModel) renderSelected() string {
	r := m.rows[m.pager.selected()]
	gap := "-"
	if r.EffMeasured != nil && r.EffTheory != nil {
		gap = fmt.Sprintf("%+.3f", *r.EffMeasured-*r.EffTheory)
	}
	lines := []string{
		cardTitleStyle.Render(fmt.Sprintf("%s at %.1f%% grade", m.units.FormatSpeed(r.SpeedMPH), r.GradePct)),
		RenderMetric("Bouts", fmt.Sprintf("%d", r.N), ""),
		RenderMetric("Measured eff", formatEff(r.EffMeasured), ""),
		RenderMetric("ACSM theory eff", formatEff(r.EffTheory), ""),
		RenderMetric("Measured - theory", gap, ""),
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func formatEff(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.3f", *v)
}

func formatKcal(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

func chartWidth(windowWidth int) int {
	w := windowWidth - 20
	if w < 30 {
		return 60
	}
	if w > 100 {
		return 100
	}
	return w
}
