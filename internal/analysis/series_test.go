package analysis

import (
	"errors"
	"math"
	"testing"
)

func TestSeriesMatchesScalar(t *testing.T) {
	speeds := []float64{0, 2.5, 3, 4}
	grades := []float64{0, 5, 10, -2}

	got, err := VO2TreadmillGrossSeries(speeds, grades)
	if err != nil {
		t.Fatalf("VO2TreadmillGrossSeries() error = %v", err)
	}
	if len(got) != len(speeds) {
		t.Fatalf("len = %d, want %d", len(got), len(speeds))
	}
	for i := range speeds {
		want := VO2TreadmillGross(speeds[i], grades[i])
		if got[i] != want {
			t.Errorf("element %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestSeriesBroadcastsScalar(t *testing.T) {
	got, err := VO2StairGrossSeries([]float64{40, 60, 80}, []float64{0.2})
	if err != nil {
		t.Fatalf("VO2StairGrossSeries() error = %v", err)
	}
	for i, spm := range []float64{40, 60, 80} {
		if want := VO2StairGross(spm, 0.2); got[i] != want {
			t.Errorf("element %d = %v, want %v", i, got[i], want)
		}
	}

	mech, err := MechPowerTreadmillSeries([]float64{70}, []float64{3}, []float64{0, 5, 10}, StandardGravity)
	if err != nil {
		t.Fatalf("MechPowerTreadmillSeries() error = %v", err)
	}
	if len(mech) != 3 || mech[0] != 0 {
		t.Errorf("MechPowerTreadmillSeries() = %v", mech)
	}
}

func TestSeriesShapeMismatch(t *testing.T) {
	tests := []struct {
		name string
		call func() error
	}{
		{"treadmill vo2", func() error {
			_, err := VO2TreadmillGrossSeries([]float64{1, 2}, []float64{1, 2, 3})
			return err
		}},
		{"kcal", func() error {
			_, err := KcalPerMinSeries([]float64{1, 2, 3}, []float64{70, 80})
			return err
		}},
		{"net kcal", func() error {
			_, err := NetKcalPerMinSeries([]float64{}, []float64{70, 80})
			return err
		}},
		{"stair mech", func() error {
			_, err := MechPowerStairSeries([]float64{70, 80}, []float64{60}, []float64{0.2, 0.2, 0.2}, StandardGravity)
			return err
		}},
		{"efficiency", func() error {
			_, err := EfficiencySeries([]float64{1, 2}, []float64{1, 2, 3})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, ErrShapeMismatch) {
				t.Errorf("error = %v, want ErrShapeMismatch", err)
			}
		})
	}
}

func TestSeriesEmpty(t *testing.T) {
	got, err := KcalPerMinSeries([]float64{}, []float64{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
	if out := MetPowerSeries(nil); len(out) != 0 {
		t.Errorf("MetPowerSeries(nil) len = %d, want 0", len(out))
	}
}

func TestEfficiencySeries(t *testing.T) {
	mech := []float64{0, 25, 10, math.NaN()}
	met := []float64{100, 100, 0, 100}

	got, err := EfficiencySeries(mech, met)
	if err != nil {
		t.Fatalf("EfficiencySeries() error = %v", err)
	}

	if got[0] == nil || *got[0] != 0 {
		t.Errorf("element 0 = %v, want 0", got[0])
	}
	if got[1] == nil || *got[1] != 0.25 {
		t.Errorf("element 1 = %v, want 0.25", got[1])
	}
	if got[2] != nil {
		t.Errorf("element 2 = %v, want nil", *got[2])
	}
	if got[3] != nil {
		t.Errorf("element 3 = %v, want nil", *got[3])
	}
}

func TestSeriesRoundTrip(t *testing.T) {
	mass := []float64{70}
	speeds := []float64{3, 3, 4}
	grades := []float64{5, 10, 15}

	vo2, err := VO2TreadmillGrossSeries(speeds, grades)
	if err != nil {
		t.Fatal(err)
	}
	kcal, err := KcalPerMinSeries(vo2, mass)
	if err != nil {
		t.Fatal(err)
	}
	mech, err := MechPowerTreadmillSeries(mass, speeds, grades, StandardGravity)
	if err != nil {
		t.Fatal(err)
	}
	eff, err := EfficiencySeries(mech, MetPowerSeries(kcal))
	if err != nil {
		t.Fatal(err)
	}

	for i := range speeds {
		direct := mech[i] / (kcal[i] * WattsPerKcalMin)
		if eff[i] == nil || math.Abs(*eff[i]-direct) > 1e-9 {
			t.Errorf("element %d = %v, want %v", i, eff[i], direct)
		}
	}
}
