package analysis

import "math"

const (
	// RestingVO2 is 1 MET in mL O2 per kg per minute
	RestingVO2 = 3.5

	// StandardGravity in m/s²
	StandardGravity = 9.80665

	// Unit conversions
	MPHToMetersPerMin = 26.8224
	MPHToMetersPerSec = 0.44704
	KcalPerLiterO2    = 5.0
	WattsPerKcalMin   = 69.78
)

// VO2TreadmillGross returns ACSM walking gross VO2 (mL/kg/min).
// Negative grades are declines and are not clamped.
func VO2TreadmillGross(speedMPH, gradePct float64) float64 {
	s := speedMPH * MPHToMetersPerMin
	g := gradePct / 100.0
	return RestingVO2 + 0.1*s + 1.8*s*g
}

// VO2StairGross returns ACSM stepping gross VO2 (mL/kg/min)
func VO2StairGross(spm, stepHeightM float64) float64 {
	return RestingVO2 + 0.2*spm + 2.4*spm*stepHeightM
}

// KcalPerMin converts VO2 (mL/kg/min) to kcal/min for the given body mass
func KcalPerMin(vo2, massKG float64) float64 {
	litersPerMin := vo2 * massKG / 1000.0
	return litersPerMin * KcalPerLiterO2
}

// NetKcalPerMin subtracts resting VO2 before converting.
// The result is negative when gross VO2 is below rest.
func NetKcalPerMin(vo2Gross, massKG float64) float64 {
	return KcalPerMin(vo2Gross-RestingVO2, massKG)
}

// MechPowerTreadmill returns vertical mechanical power in watts: m*g*v*grade
func MechPowerTreadmill(massKG, speedMPH, gradePct, g float64) float64 {
	v := speedMPH * MPHToMetersPerSec
	return massKG * g * v * (gradePct / 100.0)
}

// MechPowerStair returns stepping mechanical power in watts: m*g*h*(spm/60)
func MechPowerStair(massKG, spm, stepHeightM, g float64) float64 {
	return massKG * g * stepHeightM * (spm / 60.0)
}

// MetPower converts kcal/min to watts
func MetPower(kcalPerMin float64) float64 {
	return kcalPerMin * WattsPerKcalMin
}

// Efficiency returns mechW/metW, or nil when metabolic power is not positive
// or the ratio is not finite.
func Efficiency(mechW, metW float64) *float64 {
	if !(metW > 0) {
		return nil
	}
	eta := mechW / metW
	if !isFinite(eta) {
		return nil
	}
	return &eta
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
