package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cardio-efficiency/internal/store"
)

var (
	mutedColor   = lipgloss.Color("#6B7280")
	primaryColor = lipgloss.Color("#7C3AED")

	captionStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	headerCellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Align(lipgloss.Left).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Align(lipgloss.Left).
			Padding(0, 1)

	ruleStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

// FormatCell renders a table value. Floats get two decimals and nil
// pointers render as "-".
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case float64:
		return fmt.Sprintf("%.2f", x)
	case *float64:
		if x == nil {
			return "-"
		}
		return fmt.Sprintf("%.2f", *x)
	case float32:
		return fmt.Sprintf("%.2f", x)
	case int:
		return fmt.Sprintf("%d", x)
	case bool:
		if x {
			return "yes"
		}
		return "no"
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// StyleTable renders rows under a bold caption with left-aligned bold
// headers. With no rows only the caption is returned.
func StyleTable(caption string, headers []string, rows [][]any) string {
	if len(rows) == 0 {
		return captionStyle.Render(caption)
	}

	cells := make([][]string, len(rows))
	ncols := len(headers)
	for i, row := range rows {
		cells[i] = make([]string, len(row))
		for j, v := range row {
			cells[i][j] = FormatCell(v)
		}
		if len(row) > ncols {
			ncols = len(row)
		}
	}

	widths := make([]int, ncols)
	for j, h := range headers {
		widths[j] = lipgloss.Width(h)
	}
	for _, row := range cells {
		for j, c := range row {
			if w := lipgloss.Width(c); w > widths[j] {
				widths[j] = w
			}
		}
	}

	var lines []string
	if caption != "" {
		lines = append(lines, captionStyle.Render(caption))
	}

	if len(headers) > 0 {
		hdr := make([]string, ncols)
		total := 0
		for j := range hdr {
			h := ""
			if j < len(headers) {
				h = headers[j]
			}
			hdr[j] = headerCellStyle.Width(widths[j] + 2).Render(h)
			total += widths[j] + 2
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, hdr...))
		lines = append(lines, ruleStyle.Render(strings.Repeat("─", total)))
	}

	for _, row := range cells {
		out := make([]string, ncols)
		for j := range out {
			c := ""
			if j < len(row) {
				c = row[j]
			}
			out[j] = cellStyle.Width(widths[j] + 2).Render(c)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, out...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// TreadmillTable renders treadmill summaries, one row per (speed, grade)
func TreadmillTable(rows []store.TreadmillSummary) string {
	data := make([][]any, len(rows))
	for i, r := range rows {
		data[i] = []any{r.SpeedMPH, r.GradePct, r.N, r.EffMeasured, r.EffTheory}
	}
	return StyleTable("Treadmill: efficiency by speed and grade",
		[]string{"Speed (mph)", "Grade (%)", "n", "Eff measured", "Eff theory"}, data)
}

// StairTable renders stair summaries. When the theory column holds group
// counts it is labelled as such.
func StairTable(rows []store.StairSummary) string {
	theoryHeader := "Eff theory"
	data := make([][]any, len(rows))
	for i, r := range rows {
		var theory any = r.EfficiencyTheory
		if r.EfficiencyIsCount {
			theoryHeader = "Count"
			if r.EfficiencyTheory != nil {
				theory = int(*r.EfficiencyTheory)
			}
		}
		data[i] = []any{r.SPM, r.N, r.AWKcalPerMin, r.NetKcalPerMin, theory}
	}
	return StyleTable("Stair: Apple Watch vs ACSM net by SPM",
		[]string{"SPM", "n", "AW kcal/min", "ACSM net kcal/min", theoryHeader}, data)
}
