package analysis

import (
	"math"

	"cardio-efficiency/internal/store"
)

// CleanStats reports how many records the cleaner kept and dropped
type CleanStats struct {
	Input   int
	Kept    int
	Dropped int
	Stair   int // stair records seen (never dropped)
}

// RemoveFlatTreadmill drops treadmill records whose |grade| is within
// tolerancePct of zero. Stair records, steeper treadmill bouts and records
// with a missing grade are kept in their original order.
func RemoveFlatTreadmill(records []store.ActivityRecord, tolerancePct float64) []store.ActivityRecord {
	out, _ := RemoveFlatTreadmillStats(records, tolerancePct)
	return out
}

// RemoveFlatTreadmillStats is RemoveFlatTreadmill plus kept/dropped counts
func RemoveFlatTreadmillStats(records []store.ActivityRecord, tolerancePct float64) ([]store.ActivityRecord, CleanStats) {
	stats := CleanStats{Input: len(records)}
	if len(records) == 0 {
		return records, stats
	}

	out := make([]store.ActivityRecord, 0, len(records))
	for _, r := range records {
		modality := r.NormalizedModality()
		if modality == store.ModalityStair {
			stats.Stair++
		}
		if isFlatTreadmill(r, modality, tolerancePct) {
			stats.Dropped++
			continue
		}
		out = append(out, r)
	}
	stats.Kept = len(out)
	return out, stats
}

func isFlatTreadmill(r store.ActivityRecord, modality string, tolerancePct float64) bool {
	if modality != store.ModalityTreadmill {
		return false
	}
	// Missing grade fails open
	if r.GradePct == nil || !isFinite(*r.GradePct) {
		return false
	}
	return math.Abs(*r.GradePct) <= tolerancePct
}
