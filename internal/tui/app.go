package tui

import (
	"errors"
	"fmt"
	"path/filepath"

	"cardio-efficiency/internal/service"
	"cardio-efficiency/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Screen identifiers
type Screen int

const (
	ScreenTreadmill Screen = iota
	ScreenStair
	ScreenImports
	ScreenHelp
)

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	treadmill TreadmillModel
	stair     StairModel
	imports   ImportsModel
	help      HelpModel

	service  *service.AnalysisService
	importID string
	report   *service.Report
	loading  bool
	err      error

	// Window dimensions
	width  int
	height int

	// Status message
	status string
}

// NewApp creates a new App. An empty importID shows the newest import.
func NewApp(svc *service.AnalysisService, units Units, importID string) *App {
	return &App{
		screen:    ScreenTreadmill,
		service:   svc,
		importID:  importID,
		loading:   true,
		treadmill: NewTreadmillModel(units),
		stair:     NewStairModel(),
		imports:   NewImportsModel(svc),
		help:      NewHelpModel(),
	}
}

type reportLoadedMsg struct {
	report *service.Report
	err    error
}

func (a *App) loadReport() tea.Msg {
	var (
		r   *service.Report
		err error
	)
	if a.importID == "" {
		r, err = a.service.LatestReport()
	} else {
		r, err = a.service.GetReport(a.importID)
	}
	if errors.Is(err, store.ErrImportNotFound) {
		return reportLoadedMsg{}
	}
	return reportLoadedMsg{report: r, err: err}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.loadReport
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "1":
			a.screen = ScreenTreadmill
			return a, nil
		case "2":
			a.screen = ScreenStair
			return a, nil
		case "3":
			a.screen = ScreenImports
			return a, a.imports.Init()
		case "?":
			a.prevScreen = a.screen
			a.screen = ScreenHelp
			return a, nil
		case "esc":
			if a.screen == ScreenHelp {
				a.screen = a.prevScreen
				return a, nil
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		var m tea.Model
		m, _ = a.treadmill.Update(msg)
		a.treadmill = m.(TreadmillModel)
		m, _ = a.stair.Update(msg)
		a.stair = m.(StairModel)
		return a, nil

	case reportLoadedMsg:
		a.loading = false
		a.err = msg.err
		a.report = msg.report
		a.treadmill = a.treadmill.SetReport(msg.report)
		a.stair = a.stair.SetReport(msg.report)
		a.status = a.reportStatus()
		if msg.report != nil {
			var m tea.Model
			m, _ = a.imports.Update(ImportSelectedMsg{ID: msg.report.Import.ID})
			a.imports = m.(ImportsModel)
		}
		return a, nil

	case ImportSelectedMsg:
		a.importID = msg.ID
		a.loading = true
		a.screen = ScreenTreadmill
		return a, a.loadReport
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenTreadmill:
		var m tea.Model
		m, cmd = a.treadmill.Update(msg)
		a.treadmill = m.(TreadmillModel)
	case ScreenStair:
		var m tea.Model
		m, cmd = a.stair.Update(msg)
		a.stair = m.(StairModel)
	case ScreenImports:
		var m tea.Model
		m, cmd = a.imports.Update(msg)
		a.imports = m.(ImportsModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// View renders the app
func (a *App) View() string {
	header := a.renderHeader()
	nav := a.renderNav()

	var content string
	switch {
	case a.screen == ScreenHelp:
		content = a.help.View()
	case a.screen == ScreenImports:
		content = a.imports.View()
	case a.loading:
		content = "\n  Loading summaries..."
	case a.err != nil:
		content = errorStyle.Render(fmt.Sprintf("\n  Error: %v", a.err))
	case a.screen == ScreenTreadmill:
		content = a.treadmill.View()
	case a.screen == ScreenStair:
		content = a.stair.View()
	}

	footer := a.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content, footer)
}

func (a *App) renderHeader() string {
	return headerStyle.Render("Cardio Efficiency: ACSM vs Measured")
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Treadmill", ScreenTreadmill},
		{"2", "Stair", ScreenStair},
		{"3", "Imports", ScreenImports},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}

func (a *App) renderFooter() string {
	if a.status != "" {
		return statusStyle.Render(a.status)
	}
	return ""
}

func (a *App) reportStatus() string {
	if a.report == nil {
		return "No imports yet"
	}
	imp := a.report.Import
	return fmt.Sprintf("%s (%s rows, imported %s)",
		filepath.Base(imp.Source), humanize.Comma(int64(imp.RowCount)), humanize.Time(imp.ImportedAt))
}
