package tui

import (
	"fmt"
	"path/filepath"

	"cardio-efficiency/internal/service"
	"cardio-efficiency/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// ImportsModel lists stored imports and lets the user pick one
type ImportsModel struct {
	service  *service.AnalysisService
	imports  []store.Import
	activeID string
	loading  bool
	err      error
	pager    pager
}

// NewImportsModel creates a new imports model
func NewImportsModel(svc *service.AnalysisService) ImportsModel {
	return ImportsModel{service: svc, loading: true, pager: newPager(15)}
}

// Init initializes the imports screen
func (m ImportsModel) Init() tea.Cmd {
	return m.loadImports
}

type importsLoadedMsg struct {
	imports []store.Import
	err     error
}

// ImportSelectedMsg is sent when the user picks an import to view
type ImportSelectedMsg struct {
	ID string
}

func (m ImportsModel) loadImports() tea.Msg {
	imports, err := m.service.ListImports(100)
	return importsLoadedMsg{imports: imports, err: err}
}

// Update handles messages
func (m ImportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case importsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.imports = msg.imports
		m.pager.reset(len(m.imports))

	case ImportSelectedMsg:
		m.activeID = msg.ID

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadImports
		case "enter":
			if len(m.imports) == 0 {
				return m, nil
			}
			id := m.imports[m.pager.selected()].ID
			return m, func() tea.Msg { return ImportSelectedMsg{ID: id} }
		default:
			m.pager.handleKey(msg.String())
		}
	}
	return m, nil
}

// View renders the imports screen
func (m ImportsModel) View() string {
	if m.loading {
		return "\n  Loading imports..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}
	if len(m.imports) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			cardTitleStyle.Render("Imports"),
			"  Nothing imported yet. Run cardio with a CSV or FIT file.")
	}

	start, end := m.pager.window()
	title := cardTitleStyle.Render(fmt.Sprintf("Imports - %d-%d of %d", start+1, end, m.pager.total))

	var lines []string
	lines = append(lines, title)
	lines = append(lines, tableHeaderStyle.Render(fmt.Sprintf("   %-28s  %-6s  %8s  %-16s", "Source", "Format", "Rows", "Imported")))

	for i := start; i < end; i++ {
		imp := m.imports[i]
		marker := " "
		if imp.ID == m.activeID {
			marker = "*"
		}
		line := fmt.Sprintf("%s %-28s  %-6s  %8s  %-16s",
			marker,
			truncate(filepath.Base(imp.Source), 28),
			imp.Format,
			humanize.Comma(int64(imp.RowCount)),
			humanize.Time(imp.ImportedAt),
		)
		if i == m.pager.selected() {
			lines = append(lines, tableSelectedStyle.Render(">"+line))
		} else {
			lines = append(lines, tableRowStyle.Render(" "+line))
		}
	}

	lines = append(lines, statusStyle.Render("enter: view summaries  r: refresh"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
