package ingest

import (
	"strings"
)

// Canonical column names
const (
	ColModality              = "modality"
	ColSpeedMPH              = "speed_mph"
	ColGradePct              = "grade_pct"
	ColSPM                   = "spm"
	ColStepHeightM           = "step_height_m"
	ColMassKG                = "mass_kg"
	ColMeasuredEfficiency    = "eff_measured"
	ColTheoreticalEfficiency = "eff_theory_net"
	ColMeasuredKcalPerMin    = "aw_active_kcal_min"
	ColTheoryNetKcalPerMin   = "theory_net_kcal_min"
)

// DefaultAliases maps each canonical column to the header spellings accepted for it.
// Matching is case-insensitive and ignores surrounding whitespace.
var DefaultAliases = map[string][]string{
	ColModality:              {"modality", "activity", "machine"},
	ColSpeedMPH:              {"speed_mph", "speed"},
	ColGradePct:              {"grade_pct", "grade", "incline_pct"},
	ColSPM:                   {"spm", "steps_per_min"},
	ColStepHeightM:           {"step_height_m", "step_h_m"},
	ColMassKG:                {"mass_kg", "weight_kg"},
	ColMeasuredEfficiency:    {"eff_measured", "efficiency_measured"},
	ColTheoreticalEfficiency: {"eff_theory_net", "efficiency_theory_net"},
	ColMeasuredKcalPerMin:    {"aw_active_kcal_min", "measured_kcal_per_min", "active_kcal_min"},
	ColTheoryNetKcalPerMin:   {"theory_net_kcal_min", "net_kcal_min"},
}

// Columns is an alias table resolved against one header row
type Columns struct {
	index map[string]int
}

// MergeAliases returns DefaultAliases with the given overrides prepended, so
// configured spellings win over built-in ones.
func MergeAliases(overrides map[string][]string) map[string][]string {
	merged := make(map[string][]string, len(DefaultAliases))
	for k, v := range DefaultAliases {
		merged[k] = append([]string(nil), v...)
	}
	for k, v := range overrides {
		merged[k] = append(append([]string(nil), v...), merged[k]...)
	}
	return merged
}

// ResolveColumns picks, for every canonical column, the first alias present in header.
// Columns outside the table are ignored. Canonical columns with no matching
// header are absent from the result.
func ResolveColumns(header []string, aliases map[string][]string) Columns {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := positions[key]; !dup {
			positions[key] = i
		}
	}

	cols := Columns{index: make(map[string]int)}
	for canonical, names := range aliases {
		for _, name := range names {
			if i, ok := positions[strings.ToLower(name)]; ok {
				cols.index[canonical] = i
				break
			}
		}
	}
	return cols
}

// Has reports whether the canonical column was found in the header
func (c Columns) Has(canonical string) bool {
	_, ok := c.index[canonical]
	return ok
}

// Get returns the raw cell for a canonical column, or "" when the column is
// absent or the row is short.
func (c Columns) Get(row []string, canonical string) string {
	i, ok := c.index[canonical]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// Number returns the cell parsed with ParseNumericOrNull
func (c Columns) Number(row []string, canonical string) *float64 {
	return ParseNumericOrNull(c.Get(row, canonical))
}
