package service

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"cardio-efficiency/internal/analysis"
	"cardio-efficiency/internal/ingest"
	"cardio-efficiency/internal/store"
)

// Params configures an AnalysisService
type Params struct {
	TolerancePct float64
	Theory       analysis.TheoryParams
	Ingest       ingest.Options
}

// AnalysisService runs import, cleaning, derivation and aggregation
type AnalysisService struct {
	store  *store.Store
	params Params
	logger *slog.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(st *store.Store, params Params, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	if params.Theory.Gravity == 0 {
		params.Theory.Gravity = analysis.StandardGravity
	}
	return &AnalysisService{store: st, params: params, logger: logger}
}

// Report is the result of analysing one import
type Report struct {
	Import    store.Import
	Clean     analysis.CleanStats
	Treadmill []store.TreadmillSummary
	Stair     []store.StairSummary

	// Records that survived cleaning but fell into no summary group,
	// e.g. for a missing or negative grouping key.
	ExcludedTreadmill int
	ExcludedStair     int
}

// Import reads a CSV or FIT file and stores its records
func (s *AnalysisService) Import(path string) (*store.Import, error) {
	format, err := ingest.Format(path)
	if err != nil {
		return nil, err
	}

	records, err := ingest.ReadFile(path, s.params.Ingest)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	imp, err := s.store.CreateImport(path, format, records)
	if err != nil {
		return nil, fmt.Errorf("storing import: %w", err)
	}

	recordIngested(format, len(records))
	s.logger.Info("imported records", "source", path, "format", format, "rows", len(records), "import_id", imp.ID)
	return imp, nil
}

// Analyze cleans an import's records, fills in theoretical values,
// aggregates them and stores the summaries.
func (s *AnalysisService) Analyze(importID string) (*Report, error) {
	imp, err := s.store.GetImport(importID)
	if err != nil {
		return nil, err
	}
	records, err := s.store.GetRecords(importID)
	if err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}

	report := s.analyze(records)
	report.Import = *imp

	if err := s.store.ReplaceSummaries(importID, report.Treadmill, report.Stair); err != nil {
		return nil, fmt.Errorf("storing summaries: %w", err)
	}

	recordCleaned(report.Clean)
	recordSummary(report)

	s.logger.Info("analysis complete",
		"import_id", importID,
		"kept", report.Clean.Kept,
		"dropped", report.Clean.Dropped,
		"treadmill_rows", len(report.Treadmill),
		"stair_rows", len(report.Stair),
	)
	if report.ExcludedTreadmill > 0 || report.ExcludedStair > 0 {
		s.logger.Warn("records excluded from summaries",
			"treadmill", report.ExcludedTreadmill,
			"stair", report.ExcludedStair,
		)
	}
	return report, nil
}

// ImportAndAnalyze runs Import then Analyze on the new import
func (s *AnalysisService) ImportAndAnalyze(path string) (*Report, error) {
	imp, err := s.Import(path)
	if err != nil {
		return nil, err
	}
	return s.Analyze(imp.ID)
}

// Summarize runs the in-memory pipeline without touching the store
func (s *AnalysisService) Summarize(records []store.ActivityRecord) *Report {
	return s.analyze(records)
}

func (s *AnalysisService) analyze(records []store.ActivityRecord) *Report {
	cleaned, stats := analysis.RemoveFlatTreadmillStats(records, s.params.TolerancePct)
	derived := analysis.DeriveTheory(cleaned, s.params.Theory)

	report := &Report{
		Clean:     stats,
		Treadmill: analysis.SummarizeTreadmill(derived),
		Stair:     analysis.SummarizeStair(derived),
	}

	treadmillIn, stairIn := countModalities(derived)
	report.ExcludedTreadmill = treadmillIn - totalTreadmillN(report.Treadmill)
	report.ExcludedStair = stairIn - totalStairN(report.Stair)

	s.logger.Debug("pipeline stages",
		"input", stats.Input,
		"kept", stats.Kept,
		"treadmill_records", treadmillIn,
		"stair_records", stairIn,
	)
	return report
}

// GetReport loads the stored summaries of an import without recomputing them
func (s *AnalysisService) GetReport(importID string) (*Report, error) {
	imp, err := s.store.GetImport(importID)
	if err != nil {
		return nil, err
	}
	treadmill, err := s.store.GetTreadmillSummaries(importID)
	if err != nil {
		return nil, fmt.Errorf("loading treadmill summaries: %w", err)
	}
	stair, err := s.store.GetStairSummaries(importID)
	if err != nil {
		return nil, fmt.Errorf("loading stair summaries: %w", err)
	}
	return &Report{Import: *imp, Treadmill: treadmill, Stair: stair}, nil
}

// LatestReport returns the stored report of the newest import.
// Returns store.ErrImportNotFound when nothing has been imported yet.
func (s *AnalysisService) LatestReport() (*Report, error) {
	imp, err := s.store.LatestImport()
	if errors.Is(err, store.ErrImportNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("finding latest import: %w", err)
	}
	return s.GetReport(imp.ID)
}

// ListImports returns recent imports, newest first
func (s *AnalysisService) ListImports(limit int) ([]store.Import, error) {
	return s.store.ListImports(limit)
}

func countModalities(records []store.ActivityRecord) (treadmill, stair int) {
	for _, r := range records {
		switch r.NormalizedModality() {
		case store.ModalityTreadmill:
			treadmill++
		case store.ModalityStair:
			stair++
		}
	}
	return treadmill, stair
}

func totalTreadmillN(rows []store.TreadmillSummary) int {
	n := 0
	for _, r := range rows {
		n += r.N
	}
	return n
}

func totalStairN(rows []store.StairSummary) int {
	n := 0
	for _, r := range rows {
		n += r.N
	}
	return n
}
