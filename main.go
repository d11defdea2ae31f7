package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmittmann/tint"

	"cardio-efficiency/internal/analysis"
	"cardio-efficiency/internal/config"
	"cardio-efficiency/internal/ingest"
	"cardio-efficiency/internal/report"
	"cardio-efficiency/internal/service"
	"cardio-efficiency/internal/store"
	"cardio-efficiency/internal/tui"
)

type options struct {
	configPath string
	dbPath     string
	tolerance  float64
	figureDir  string
	parquetDir string
	metricsOut string
	modality   string
	launchTUI  bool
	verbose    bool
	files      []string
	set        map[string]bool
}

func main() {
	if err := run(parseFlags()); err != nil {
		log.Fatal(err)
	}
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", "", "config file (JSON or YAML); default ~/.cardio/config.json")
	flag.StringVar(&o.dbPath, "db", "", "SQLite database path; default from config or ~/.cardio/data.db")
	flag.Float64Var(&o.tolerance, "tolerance", 0, "treadmill |grade| at or below this percent counts as flat")
	flag.StringVar(&o.figureDir, "figures", "", "directory for PNG plots; default from config")
	flag.StringVar(&o.parquetDir, "parquet", "", "also write summaries as parquet files into this directory")
	flag.StringVar(&o.metricsOut, "metrics", "", "write pipeline metrics in Prometheus text format to this file")
	flag.StringVar(&o.modality, "modality", "", "modality for files without a modality column (treadmill|stair)")
	flag.BoolVar(&o.launchTUI, "tui", false, "browse summaries in an interactive terminal UI")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [file.csv|file.tsv|file.fit ...]\n\n", filepath.Base(os.Args[0]))
		fmt.Fprintln(flag.CommandLine.Output(), "Imports each file, drops flat treadmill bouts, and compares measured")
		fmt.Fprintln(flag.CommandLine.Output(), "efficiency with ACSM estimates. With no files the latest import is shown.")
		fmt.Fprintln(flag.CommandLine.Output())
		flag.PrintDefaults()
	}
	flag.Parse()

	o.files = flag.Args()
	o.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

func run(o options) error {
	logger := newLogger(o.verbose)
	slog.SetDefault(logger)

	cfg, err := loadConfig(o.configPath, logger)
	if err != nil {
		return err
	}

	// Flags override the config file
	if o.set["tolerance"] {
		cfg.Cleaning.TolerancePct = o.tolerance
	}
	if o.figureDir != "" {
		cfg.Paths.FigureDir = o.figureDir
	}
	if o.dbPath != "" {
		cfg.Paths.Database = o.dbPath
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	db, err := store.Open(cfg.Paths.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	svc := service.NewAnalysisService(db, service.Params{
		TolerancePct: cfg.Cleaning.TolerancePct,
		Theory: analysis.TheoryParams{
			MassKG:      cfg.Athlete.MassKG,
			StepHeightM: cfg.Stair.StepHeightM,
			Gravity:     cfg.Physics.Gravity,
		},
		Ingest: ingest.Options{
			Aliases:         ingest.MergeAliases(cfg.Columns),
			DefaultModality: o.modality,
		},
	}, logger)

	var last *service.Report
	for _, path := range o.files {
		r, err := svc.ImportAndAnalyze(path)
		if err != nil {
			return err
		}
		if err := present(r, cfg, o); err != nil {
			return err
		}
		last = r
	}

	if len(o.files) == 0 && !o.launchTUI {
		r, err := svc.LatestReport()
		if errors.Is(err, store.ErrImportNotFound) {
			flag.Usage()
			return nil
		}
		if err != nil {
			return err
		}
		if err := present(r, cfg, o); err != nil {
			return err
		}
	}

	if o.metricsOut != "" {
		if err := service.WriteMetrics(o.metricsOut); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
		logger.Info("wrote metrics", "path", o.metricsOut)
	}

	if o.launchTUI {
		importID := ""
		if last != nil {
			importID = last.Import.ID
		}
		app := tui.NewApp(svc, tui.NewUnits(cfg.Display), importID)
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running TUI: %w", err)
		}
	}

	return nil
}

func loadConfig(path string, logger *slog.Logger) (*config.Config, error) {
	if path != "" {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		if err := config.CreateExample(); err != nil {
			return nil, fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		logger.Info("no config file found, created one with defaults", "path", filepath.Join(configDir, "config.json"))
		defaults := config.DefaultConfig()
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// present prints the summary tables and terminal charts, then writes plots
// and optional parquet files.
func present(r *service.Report, cfg *config.Config, o options) error {
	fmt.Println()
	fmt.Println(report.TreadmillTable(r.Treadmill))
	if chart := report.TreadmillTerminalChart(r.Treadmill, 60); chart != "" {
		fmt.Println()
		fmt.Println(chart)
	}
	fmt.Println()
	fmt.Println(report.StairTable(r.Stair))
	if chart := report.StairTerminalChart(r.Stair, 60); chart != "" {
		fmt.Println()
		fmt.Println(chart)
	}
	fmt.Println()

	treadmillPath := filepath.Join(cfg.Paths.FigureDir, filepath.Base(report.DefaultTreadmillPlotPath))
	if _, err := report.TreadmillEfficiencyPlot(r.Treadmill, treadmillPath); err != nil {
		return fmt.Errorf("treadmill plot: %w", err)
	}
	stairPath := filepath.Join(cfg.Paths.FigureDir, filepath.Base(report.DefaultStairPlotPath))
	if _, err := report.StairEfficiencyPlot(r.Stair, stairPath); err != nil {
		return fmt.Errorf("stair plot: %w", err)
	}
	slog.Info("wrote plots", "treadmill", treadmillPath, "stair", stairPath)

	if o.parquetDir != "" {
		if err := report.WriteParquet(o.parquetDir, r.Import.ID, r.Treadmill, r.Stair); err != nil {
			return err
		}
		slog.Info("wrote parquet", "dir", o.parquetDir)
	}
	return nil
}
