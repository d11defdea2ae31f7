package store

import (
	"strings"
	"time"
)

// Modality values recognised after normalisation
const (
	ModalityTreadmill = "treadmill"
	ModalityStair     = "stair"
)

// NormalizeModality trims and lower-cases a raw modality label.
// "stairs", "stairmaster" and "stair climbing" collapse to "stair".
func NormalizeModality(raw string) string {
	m := strings.ToLower(strings.TrimSpace(raw))
	switch m {
	case "stairs", "stairmaster", "stair climbing", "stairclimbing", "stepper":
		return ModalityStair
	}
	return m
}

// Import represents one ingested source file
type Import struct {
	ID         string    `db:"id"` // uuid
	Source     string    `db:"source"`
	Format     string    `db:"format"` // "csv" or "fit"
	RowCount   int       `db:"row_count"`
	ImportedAt time.Time `db:"imported_at"`
}

// ActivityRecord is one observation row.
// Every numeric attribute is nullable; nil means missing or unparsable.
type ActivityRecord struct {
	ID       int64  `db:"id"`
	ImportID string `db:"import_id"`
	Row      int    `db:"row_index"`
	Modality string `db:"modality"` // raw label as ingested

	SpeedMPH    *float64 `db:"speed_mph"`     // treadmill only
	GradePct    *float64 `db:"grade_pct"`     // treadmill only, percent
	SPM         *float64 `db:"spm"`           // stair only, steps/min
	StepHeightM *float64 `db:"step_height_m"` // stair only
	MassKG      *float64 `db:"mass_kg"`

	MeasuredEfficiency    *float64 `db:"measured_efficiency"`
	TheoreticalEfficiency *float64 `db:"theoretical_efficiency"`
	MeasuredKcalPerMin    *float64 `db:"measured_kcal_per_min"`  // e.g. Apple Watch active kcal/min
	TheoryNetKcalPerMin   *float64 `db:"theory_net_kcal_per_min"` // ACSM net kcal/min
}

// NormalizedModality returns the record's modality after trimming and lower-casing
func (r ActivityRecord) NormalizedModality() string {
	return NormalizeModality(r.Modality)
}

// TreadmillSummary aggregates treadmill records sharing a (speed, grade) pair
type TreadmillSummary struct {
	SpeedMPH    float64  `db:"speed_mph"`
	GradePct    float64  `db:"grade_pct"`
	N           int      `db:"n"`
	EffMeasured *float64 `db:"eff_meas"`   // nil when no measured column
	EffTheory   *float64 `db:"eff_theory"` // nil when no theory column
}

// StairSummary aggregates stair records sharing a steps-per-minute value
type StairSummary struct {
	SPM           float64  `db:"spm"`
	N             int      `db:"n"`
	AWKcalPerMin  *float64 `db:"aw"`
	NetKcalPerMin *float64 `db:"net"`

	// EfficiencyTheory holds the mean theoretical efficiency, or the group's row
	// count when the input carried no theoretical efficiency at all.
	EfficiencyTheory  *float64 `db:"efficiency_theory"`
	EfficiencyIsCount bool     `db:"efficiency_is_count"`
}
