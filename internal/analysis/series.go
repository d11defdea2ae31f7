package analysis

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned when element-wise inputs have incompatible lengths
var ErrShapeMismatch = errors.New("shape mismatch")

// Element-wise variants of the ACSM formulas. A slice of length 1 is applied
// to every element (scalar broadcast); all other slices must share a length.

// VO2TreadmillGrossSeries applies VO2TreadmillGross element-wise
func VO2TreadmillGrossSeries(speedMPH, gradePct []float64) ([]float64, error) {
	return apply2(speedMPH, gradePct, VO2TreadmillGross)
}

// VO2StairGrossSeries applies VO2StairGross element-wise
func VO2StairGrossSeries(spm, stepHeightM []float64) ([]float64, error) {
	return apply2(spm, stepHeightM, VO2StairGross)
}

// KcalPerMinSeries applies KcalPerMin element-wise
func KcalPerMinSeries(vo2, massKG []float64) ([]float64, error) {
	return apply2(vo2, massKG, KcalPerMin)
}

// NetKcalPerMinSeries applies NetKcalPerMin element-wise
func NetKcalPerMinSeries(vo2Gross, massKG []float64) ([]float64, error) {
	return apply2(vo2Gross, massKG, NetKcalPerMin)
}

// MechPowerTreadmillSeries applies MechPowerTreadmill element-wise with a fixed g
func MechPowerTreadmillSeries(massKG, speedMPH, gradePct []float64, g float64) ([]float64, error) {
	n, err := broadcastLen(massKG, speedMPH, gradePct)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = MechPowerTreadmill(at(massKG, i), at(speedMPH, i), at(gradePct, i), g)
	}
	return out, nil
}

// MechPowerStairSeries applies MechPowerStair element-wise with a fixed g
func MechPowerStairSeries(massKG, spm, stepHeightM []float64, g float64) ([]float64, error) {
	n, err := broadcastLen(massKG, spm, stepHeightM)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = MechPowerStair(at(massKG, i), at(spm, i), at(stepHeightM, i), g)
	}
	return out, nil
}

// MetPowerSeries applies MetPower element-wise
func MetPowerSeries(kcalPerMin []float64) []float64 {
	out := make([]float64, len(kcalPerMin))
	for i, k := range kcalPerMin {
		out[i] = MetPower(k)
	}
	return out
}

// EfficiencySeries applies Efficiency element-wise. Undefined elements are nil.
func EfficiencySeries(mechW, metW []float64) ([]*float64, error) {
	n, err := broadcastLen(mechW, metW)
	if err != nil {
		return nil, err
	}
	out := make([]*float64, n)
	for i := range out {
		out[i] = Efficiency(at(mechW, i), at(metW, i))
	}
	return out, nil
}

func apply2(a, b []float64, fn func(x, y float64) float64) ([]float64, error) {
	n, err := broadcastLen(a, b)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = fn(at(a, i), at(b, i))
	}
	return out, nil
}

// broadcastLen returns the common output length of the given inputs
func broadcastLen(args ...[]float64) (int, error) {
	n := -1
	for _, a := range args {
		if len(a) == 1 {
			continue
		}
		if n == -1 {
			n = len(a)
			continue
		}
		if len(a) != n {
			return 0, fmt.Errorf("%w: lengths %d and %d", ErrShapeMismatch, n, len(a))
		}
	}
	if n == -1 {
		return 1, nil
	}
	return n, nil
}

func at(xs []float64, i int) float64 {
	if len(xs) == 1 {
		return xs[0]
	}
	return xs[i]
}
