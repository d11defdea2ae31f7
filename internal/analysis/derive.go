package analysis

import "cardio-efficiency/internal/store"

// TheoryParams holds the fallbacks used when a record lacks mass or step height
type TheoryParams struct {
	MassKG      float64 // used when a record has no mass
	StepHeightM float64 // used when a stair record has no step height
	Gravity     float64
}

// DeriveTheory returns a copy of records with ACSM-derived values filled in
// where the input left them empty:
//   - TheoryNetKcalPerMin from the ACSM gross VO2 minus rest
//   - TheoreticalEfficiency as mechanical power over net metabolic power
//   - MeasuredEfficiency from MeasuredKcalPerMin when present
//
// Values already present are never overwritten.
func DeriveTheory(records []store.ActivityRecord, p TheoryParams) []store.ActivityRecord {
	if len(records) == 0 {
		return records
	}
	if p.Gravity == 0 {
		p.Gravity = StandardGravity
	}

	out := make([]store.ActivityRecord, len(records))
	for i, r := range records {
		switch r.NormalizedModality() {
		case store.ModalityTreadmill:
			out[i] = deriveTreadmill(r, p)
		case store.ModalityStair:
			out[i] = deriveStair(r, p)
		default:
			out[i] = r
		}
	}
	return out
}

func deriveTreadmill(r store.ActivityRecord, p TheoryParams) store.ActivityRecord {
	mass, ok := massOf(r, p)
	if !ok || !hasValue(r.SpeedMPH) || !hasValue(r.GradePct) {
		return r
	}
	speed, grade := *r.SpeedMPH, *r.GradePct

	vo2 := VO2TreadmillGross(speed, grade)
	net := NetKcalPerMin(vo2, mass)
	mech := MechPowerTreadmill(mass, speed, grade, p.Gravity)

	return fill(r, net, mech)
}

func deriveStair(r store.ActivityRecord, p TheoryParams) store.ActivityRecord {
	mass, ok := massOf(r, p)
	if !ok || !hasValue(r.SPM) {
		return r
	}
	height := p.StepHeightM
	if hasValue(r.StepHeightM) {
		height = *r.StepHeightM
	}
	if height <= 0 {
		return r
	}
	spm := *r.SPM

	vo2 := VO2StairGross(spm, height)
	net := NetKcalPerMin(vo2, mass)
	mech := MechPowerStair(mass, spm, height, p.Gravity)

	return fill(r, net, mech)
}

func fill(r store.ActivityRecord, netKcal, mechW float64) store.ActivityRecord {
	if r.TheoryNetKcalPerMin == nil {
		r.TheoryNetKcalPerMin = &netKcal
	}
	if r.TheoreticalEfficiency == nil {
		r.TheoreticalEfficiency = Efficiency(mechW, MetPower(netKcal))
	}
	if r.MeasuredEfficiency == nil && hasValue(r.MeasuredKcalPerMin) {
		r.MeasuredEfficiency = Efficiency(mechW, MetPower(*r.MeasuredKcalPerMin))
	}
	return r
}

func massOf(r store.ActivityRecord, p TheoryParams) (float64, bool) {
	if hasValue(r.MassKG) && *r.MassKG > 0 {
		return *r.MassKG, true
	}
	if p.MassKG > 0 {
		return p.MassKG, true
	}
	return 0, false
}
