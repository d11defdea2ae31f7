package analysis

import (
	"sort"

	"github.com/montanaflynn/stats"

	"cardio-efficiency/internal/store"
)

type treadmillKey struct {
	speed float64
	grade float64
}

// SummarizeTreadmill groups treadmill records by exact (speed, grade) pair.
// Records with a missing, non-finite or negative key are excluded. When any
// input record carries a measured efficiency, records without one are excluded
// too. Rows are sorted by speed then grade.
func SummarizeTreadmill(records []store.ActivityRecord) []store.TreadmillSummary {
	measuredPresent, theoryPresent := false, false
	for _, r := range records {
		if r.NormalizedModality() != store.ModalityTreadmill {
			continue
		}
		measuredPresent = measuredPresent || r.MeasuredEfficiency != nil
		theoryPresent = theoryPresent || r.TheoreticalEfficiency != nil
	}

	type group struct {
		n        int
		measured []float64
		theory   []float64
	}
	groups := make(map[treadmillKey]*group)

	for _, r := range records {
		if r.NormalizedModality() != store.ModalityTreadmill {
			continue
		}
		speed, ok := validKey(r.SpeedMPH)
		if !ok {
			continue
		}
		grade, ok := validKey(r.GradePct)
		if !ok {
			continue
		}
		if measuredPresent && !hasValue(r.MeasuredEfficiency) {
			continue
		}

		k := treadmillKey{speed: speed, grade: grade}
		g, exists := groups[k]
		if !exists {
			g = &group{}
			groups[k] = g
		}
		g.n++
		if hasValue(r.MeasuredEfficiency) {
			g.measured = append(g.measured, *r.MeasuredEfficiency)
		}
		if hasValue(r.TheoreticalEfficiency) {
			g.theory = append(g.theory, *r.TheoreticalEfficiency)
		}
	}

	out := make([]store.TreadmillSummary, 0, len(groups))
	for k, g := range groups {
		row := store.TreadmillSummary{
			SpeedMPH: k.speed,
			GradePct: k.grade,
			N:        g.n,
		}
		if measuredPresent {
			row.EffMeasured = mean(g.measured)
		}
		if theoryPresent {
			row.EffTheory = mean(g.theory)
		}
		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].SpeedMPH != out[j].SpeedMPH {
			return out[i].SpeedMPH < out[j].SpeedMPH
		}
		return out[i].GradePct < out[j].GradePct
	})
	return out
}

// SummarizeStair groups stair records by exact steps-per-minute value.
// When no record carries a theoretical efficiency, EfficiencyTheory holds the
// group's row count instead and EfficiencyIsCount is set.
func SummarizeStair(records []store.ActivityRecord) []store.StairSummary {
	theoryPresent := false
	for _, r := range records {
		if r.NormalizedModality() == store.ModalityStair && r.TheoreticalEfficiency != nil {
			theoryPresent = true
			break
		}
	}

	type group struct {
		n      int
		aw     []float64
		net    []float64
		theory []float64
	}
	groups := make(map[float64]*group)

	for _, r := range records {
		if r.NormalizedModality() != store.ModalityStair {
			continue
		}
		spm, ok := validKey(r.SPM)
		if !ok {
			continue
		}
		g, exists := groups[spm]
		if !exists {
			g = &group{}
			groups[spm] = g
		}
		g.n++
		if hasValue(r.MeasuredKcalPerMin) {
			g.aw = append(g.aw, *r.MeasuredKcalPerMin)
		}
		if hasValue(r.TheoryNetKcalPerMin) {
			g.net = append(g.net, *r.TheoryNetKcalPerMin)
		}
		if hasValue(r.TheoreticalEfficiency) {
			g.theory = append(g.theory, *r.TheoreticalEfficiency)
		}
	}

	out := make([]store.StairSummary, 0, len(groups))
	for spm, g := range groups {
		row := store.StairSummary{
			SPM:           spm,
			N:             g.n,
			AWKcalPerMin:  mean(g.aw),
			NetKcalPerMin: mean(g.net),
		}
		if theoryPresent {
			row.EfficiencyTheory = mean(g.theory)
		} else {
			count := float64(g.n)
			row.EfficiencyTheory = &count
			row.EfficiencyIsCount = true
		}
		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].SPM < out[j].SPM })
	return out
}

// validKey reports whether a grouping key is present, finite and non-negative
func validKey(v *float64) (float64, bool) {
	if v == nil || !isFinite(*v) || *v < 0 {
		return 0, false
	}
	return *v, true
}

func hasValue(v *float64) bool {
	return v != nil && isFinite(*v)
}

// mean returns nil for an empty set
func mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	m, err := stats.Mean(values)
	if err != nil {
		return nil
	}
	return &m
}
