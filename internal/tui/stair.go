package tui

import (
	"fmt"

	"cardio-efficiency/internal/report"
	"cardio-efficiency/internal/service"
	"cardio-efficiency/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StairModel is the stair summary screen model
type StairModel struct {
	rows     []store.StairSummary
	excluded int
	pager    pager
	width    int
}

// NewStairModel creates a new stair model
func NewStairModel() StairModel {
	return StairModel{pager: newPager(12)}
}

// SetReport replaces the rows shown on the screen
func (m StairModel) SetReport(r *service.Report) StairModel {
	m.rows = nil
	m.excluded = 0
	if r != nil {
		m.rows = r.Stair
		m.excluded = r.ExcludedStair
	}
	m.pager.reset(len(m.rows))
	return m
}

// Init initializes the stair screen
func (m StairModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m StairModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		m.pager.handleKey(msg.String())
	}
	return m, nil
}

// View renders the stair screen
func (m StairModel) View() string {
	if len(m.rows) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			cardTitleStyle.Render("Stair: Apple Watch vs ACSM"),
			"  No stair summaries. Import a file with stair bouts.")
	}

	isCount := false
	for _, r := range m.rows {
		isCount = isCount || r.EfficiencyIsCount
	}
	lastHeader := "Theory eff"
	if isCount {
		lastHeader = "Count"
	}

	start, end := m.pager.window()
	title := cardTitleStyle.Render(fmt.Sprintf("Stair: Apple Watch vs ACSM - %d-%d of %d", start+1, end, m.pager.total))

	var lines []string
	lines = append(lines, title)
	lines = append(lines, tableHeaderStyle.Render(fmt.Sprintf("   %6s  %4s  %9s  %9s  %10s",
		"SPM", "n", "AW kcal", "ACSM net", lastHeader)))

	for i := start; i < end; i++ {
		r := m.rows[i]
		last := formatEff(r.EfficiencyTheory)
		if r.EfficiencyIsCount && r.EfficiencyTheory != nil {
			last = fmt.Sprintf("%.0f", *r.EfficiencyTheory)
		}
		line := fmt.Sprintf("%6.0f  %4d  %9s  %9s  %10s",
			r.SPM, r.N, formatKcal(r.AWKcalPerMin), formatKcal(r.NetKcalPerMin), last)
		if i == m.pager.selected() {
			lines = append(lines, tableSelectedStyle.Render("> "+line))
		} else {
			lines = append(lines, tableRowStyle.Render("  "+line))
		}
	}

	if m.excluded > 0 {
		lines = append(lines, warningStyle.Render(fmt.Sprintf("\n  %d stair records had no usable steps per minute", m.excluded)))
	}

	sections := []string{lipgloss.JoinVertical(lipgloss.Left, lines...)}
	sections = append(sections, m.renderSelected())
	if chart := report.StairTerminalChart(m.rows, chartWidth(m.width)); chart != "" {
		sections = append(sections, cardStyle.Render(chart))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m StairModel) renderSelected() string {
	r := m.rows[m.pager.selected()]
	ratio := "-"
	if r.AWKcalPerMin != nil && r.NetKcalPerMin != nil && *r.NetKcalPerMin != 0 {
		ratio = fmt.Sprintf("%.0f%%", *r.AWKcalPerMin / *r.NetKcalPerMin * 100)
	}
	lines := []string{
		cardTitleStyle.Render(fmt.Sprintf("%.0f steps per minute", r.SPM)),
		RenderMetric("Bouts", fmt.Sprintf("%d", r.N), ""),
		RenderMetric("AW active kcal/min", formatKcal(r.AWKcalPerMin), ""),
		RenderMetric("ACSM net kcal/min", formatKcal(r.NetKcalPerMin), ""),
		RenderMetric("AW / ACSM", ratio, ""),
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
