package ingest

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/tormoder/fit"

	"cardio-efficiency/internal/store"
)

const mpsPerMPH = 0.44704

// ReadFIT converts every session of a FIT activity into one ActivityRecord.
// The modality comes from the session sub-sport (treadmill, stair climbing),
// falling back to opts.DefaultModality. Grade is estimated as total ascent over
// total distance. Measured kcal/min is total calories over timer time.
func ReadFIT(r io.Reader, opts Options) ([]store.ActivityRecord, error) {
	decoded, err := fit.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode FIT file: %w", err)
	}
	activity, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("activity FIT expected: %w", err)
	}

	records := make([]store.ActivityRecord, 0, len(activity.Sessions))
	for i, s := range activity.Sessions {
		records = append(records, sessionRecord(i, s, opts))
	}
	return records, nil
}

func sessionRecord(idx int, s *fit.SessionMsg, opts Options) store.ActivityRecord {
	rec := store.ActivityRecord{
		Row:      idx,
		Modality: fitModality(s.SubSport.String(), opts.DefaultModality),
	}

	timerSec := positive(s.GetTotalTimerTimeScaled())
	distanceM := positive(s.GetTotalDistanceScaled())

	if calories := validUint16(s.TotalCalories); calories > 0 && timerSec > 0 {
		kcalMin := float64(calories) / (timerSec / 60.0)
		rec.MeasuredKcalPerMin = &kcalMin
	}

	switch store.NormalizeModality(rec.Modality) {
	case store.ModalityTreadmill:
		speed := positive(s.GetEnhancedAvgSpeedScaled())
		if speed == 0 {
			speed = positive(s.GetAvgSpeedScaled())
		}
		if speed == 0 && timerSec > 0 {
			speed = distanceM / timerSec
		}
		if speed > 0 {
			mph := speed / mpsPerMPH
			rec.SpeedMPH = &mph
		}
		if ascent := validUint16(s.TotalAscent); distanceM > 0 && s.TotalAscent != math.MaxUint16 {
			grade := float64(ascent) / distanceM * 100.0
			rec.GradePct = &grade
		}
	case store.ModalityStair:
		if s.AvgCadence != math.MaxUint8 && s.AvgCadence > 0 {
			spm := float64(s.AvgCadence)
			rec.SPM = &spm
		}
	}

	return rec
}

func fitModality(subSport, fallback string) string {
	m := strings.ToLower(strings.TrimPrefix(subSport, "SubSport"))
	switch m {
	case "treadmill":
		return store.ModalityTreadmill
	case "stairclimbing", "stair_climbing", "stepper":
		return store.ModalityStair
	}
	if fallback != "" {
		return fallback
	}
	return m
}

func validUint16(v uint16) uint16 {
	if v == math.MaxUint16 {
		return 0
	}
	return v
}

func positive(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return v
}
