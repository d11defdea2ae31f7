package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cardio-efficiency/internal/store"
)

// ErrMissingColumn is returned when neither a modality column nor a default modality is available
var ErrMissingColumn = errors.New("missing required column")

// ErrUnsupportedFormat is returned for files that are neither CSV nor FIT
var ErrUnsupportedFormat = errors.New("unsupported input format")

// Options controls how a source file becomes ActivityRecords
type Options struct {
	// Aliases maps canonical columns to accepted header spellings.
	// Nil means DefaultAliases.
	Aliases map[string][]string

	// DefaultModality is used for rows when the file has no modality column
	// or the cell is blank.
	DefaultModality string
}

// Format returns "csv" or "fit" for a path, based on its extension
func Format(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return "csv", nil
	case ".fit":
		return "fit", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
}

// ReadFile reads records from a CSV or FIT file
func ReadFile(path string, opts Options) ([]store.ActivityRecord, error) {
	format, err := Format(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if format == "fit" {
		return ReadFIT(f, opts)
	}

	comma := ','
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		comma = '\t'
	}
	return readCSV(f, opts, comma)
}

// ReadCSV reads comma-separated records with a header row.
// Cells that fail numeric parsing become nil rather than errors.
func ReadCSV(r io.Reader, opts Options) ([]store.ActivityRecord, error) {
	return readCSV(r, opts, ',')
}

func readCSV(r io.Reader, opts Options, comma rune) ([]store.ActivityRecord, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []store.ActivityRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	aliases := opts.Aliases
	if aliases == nil {
		aliases = DefaultAliases
	}
	cols := ResolveColumns(header, aliases)
	if !cols.Has(ColModality) && strings.TrimSpace(opts.DefaultModality) == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColModality)
	}

	records := []store.ActivityRecord{}
	for rowIdx := 0; ; rowIdx++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", rowIdx+1, err)
		}
		if blankRow(row) {
			continue
		}

		modality := strings.TrimSpace(cols.Get(row, ColModality))
		if modality == "" {
			modality = opts.DefaultModality
		}

		records = append(records, store.ActivityRecord{
			Row:                   rowIdx,
			Modality:              modality,
			SpeedMPH:              cols.Number(row, ColSpeedMPH),
			GradePct:              cols.Number(row, ColGradePct),
			SPM:                   cols.Number(row, ColSPM),
			StepHeightM:           cols.Number(row, ColStepHeightM),
			MassKG:                cols.Number(row, ColMassKG),
			MeasuredEfficiency:    cols.Number(row, ColMeasuredEfficiency),
			TheoreticalEfficiency: cols.Number(row, ColTheoreticalEfficiency),
			MeasuredKcalPerMin:    cols.Number(row, ColMeasuredKcalPerMin),
			TheoryNetKcalPerMin:   cols.Number(row, ColTheoryNetKcalPerMin),
		})
	}

	return records, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
