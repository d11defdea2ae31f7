package analysis

import (
	"math"
	"testing"

	"cardio-efficiency/internal/store"
)

func treadmillRecord(row int, modality string, grade *float64) store.ActivityRecord {
	return store.ActivityRecord{
		Row:      row,
		Modality: modality,
		SpeedMPH: floatPtr(3),
		GradePct: grade,
	}
}

func stairRecord(row int, spm float64) store.ActivityRecord {
	return store.ActivityRecord{
		Row:         row,
		Modality:    "stair",
		SPM:         floatPtr(spm),
		StepHeightM: floatPtr(0.2),
	}
}

func TestRemoveFlatTreadmill(t *testing.T) {
	tests := []struct {
		name      string
		records   []store.ActivityRecord
		tolerance float64
		wantRows  []int
	}{
		{
			name:      "capitalised modality at zero grade is dropped",
			records:   []store.ActivityRecord{treadmillRecord(0, "Treadmill", floatPtr(0))},
			tolerance: 0,
			wantRows:  nil,
		},
		{
			name:      "within tolerance is dropped",
			records:   []store.ActivityRecord{treadmillRecord(0, "Treadmill", floatPtr(0.05))},
			tolerance: 0.1,
			wantRows:  nil,
		},
		{
			name:      "above zero tolerance is kept",
			records:   []store.ActivityRecord{treadmillRecord(0, "Treadmill", floatPtr(0.05))},
			tolerance: 0,
			wantRows:  []int{0},
		},
		{
			name:      "negative grade within tolerance is dropped",
			records:   []store.ActivityRecord{treadmillRecord(0, "treadmill", floatPtr(-0.05))},
			tolerance: 0.1,
			wantRows:  nil,
		},
		{
			name:      "whitespace around modality",
			records:   []store.ActivityRecord{treadmillRecord(0, "  TREADMILL \t", floatPtr(0))},
			tolerance: 0,
			wantRows:  nil,
		},
		{
			name:      "missing grade fails open",
			records:   []store.ActivityRecord{treadmillRecord(0, "treadmill", nil)},
			tolerance: 0,
			wantRows:  []int{0},
		},
		{
			name:      "NaN grade fails open",
			records:   []store.ActivityRecord{treadmillRecord(0, "treadmill", floatPtr(math.NaN()))},
			tolerance: 5,
			wantRows:  []int{0},
		},
		{
			name: "stair records are never dropped",
			records: []store.ActivityRecord{
				stairRecord(0, 60),
				{Row: 1, Modality: "stair", GradePct: floatPtr(0)},
			},
			tolerance: 100,
			wantRows:  []int{0, 1},
		},
		{
			name: "order is preserved",
			records: []store.ActivityRecord{
				treadmillRecord(0, "treadmill", floatPtr(5)),
				treadmillRecord(1, "treadmill", floatPtr(0)),
				stairRecord(2, 60),
				treadmillRecord(3, "treadmill", floatPtr(10)),
				treadmillRecord(4, "Treadmill", floatPtr(0)),
			},
			tolerance: 0,
			wantRows:  []int{0, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveFlatTreadmill(tt.records, tt.tolerance)
			if len(got) != len(tt.wantRows) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.wantRows))
			}
			for i, r := range got {
				if r.Row != tt.wantRows[i] {
					t.Errorf("got[%d].Row = %d, want %d", i, r.Row, tt.wantRows[i])
				}
			}
		})
	}
}

func TestRemoveFlatTreadmillEmpty(t *testing.T) {
	if got := RemoveFlatTreadmill(nil, 0); got != nil {
		t.Errorf("RemoveFlatTreadmill(nil) = %v, want nil", got)
	}
	got := RemoveFlatTreadmill([]store.ActivityRecord{}, 0)
	if got == nil || len(got) != 0 {
		t.Errorf("RemoveFlatTreadmill(empty) = %v, want empty", got)
	}
}

func TestRemoveFlatTreadmillCounts(t *testing.T) {
	records := []store.ActivityRecord{
		treadmillRecord(0, "treadmill", floatPtr(0)),
		treadmillRecord(1, "treadmill", floatPtr(0.5)),
		treadmillRecord(2, "treadmill", floatPtr(3)),
		treadmillRecord(3, "treadmill", nil),
		stairRecord(4, 60),
		stairRecord(5, 80),
		{Row: 6, Modality: "Stairs"},
	}

	for _, tol := range []float64{0, 0.5, 1, 5} {
		out, stats := RemoveFlatTreadmillStats(records, tol)

		if stats.Kept+stats.Dropped != len(records) {
			t.Errorf("tol %v: kept %d + dropped %d != input %d", tol, stats.Kept, stats.Dropped, len(records))
		}
		if len(out) != stats.Kept {
			t.Errorf("tol %v: len(out) = %d, stats.Kept = %d", tol, len(out), stats.Kept)
		}

		stairIn, stairOut := 0, 0
		for _, r := range records {
			if r.NormalizedModality() == store.ModalityStair {
				stairIn++
			}
		}
		for _, r := range out {
			if r.NormalizedModality() == store.ModalityStair {
				stairOut++
			}
		}
		if stairIn != stairOut || stats.Stair != stairIn {
			t.Errorf("tol %v: stair in %d, out %d, stats %d", tol, stairIn, stairOut, stats.Stair)
		}
	}
}

func TestRemoveFlatTreadmillDoesNotMutateInput(t *testing.T) {
	records := []store.ActivityRecord{
		treadmillRecord(0, "treadmill", floatPtr(0)),
		treadmillRecord(1, "treadmill", floatPtr(4)),
	}
	_ = RemoveFlatTreadmill(records, 0)

	if len(records) != 2 || records[0].Row != 0 || records[1].Row != 1 {
		t.Errorf("input was modified: %+v", records)
	}
}
