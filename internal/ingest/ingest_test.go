package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tormoder/fit"

	"cardio-efficiency/internal/store"
)

func TestParseNumericOrNull(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"3.5", ptr(3.5)},
		{"  -2 ", ptr(-2)},
		{"5%", ptr(5)},
		{"1e-3", ptr(0.001)},
		{"", nil},
		{"   ", nil},
		{"n/a", nil},
		{"NaN", nil},
		{"inf", nil},
		{"-Inf", nil},
		{"3,5", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseNumericOrNull(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-12)
		})
	}
}

func TestResolveColumnsAliases(t *testing.T) {
	header := []string{"\ufeffModality", " Speed ", "grade", "efficiency_measured", "EFF_THEORY_NET", "notes"}
	cols := ResolveColumns(header, DefaultAliases)

	assert.True(t, cols.Has(ColModality))
	assert.True(t, cols.Has(ColSpeedMPH))
	assert.True(t, cols.Has(ColGradePct))
	assert.True(t, cols.Has(ColMeasuredEfficiency))
	assert.True(t, cols.Has(ColTheoreticalEfficiency))
	assert.False(t, cols.Has(ColSPM))

	row := []string{"Treadmill", "3", "5", "0.1", "0.2", "felt good"}
	assert.Equal(t, "Treadmill", cols.Get(row, ColModality))
	assert.Equal(t, "", cols.Get(row, ColSPM))
	assert.Equal(t, "", cols.Get([]string{"x"}, ColGradePct), "short rows read as blank")
}

func TestResolveColumnsPrefersFirstAlias(t *testing.T) {
	header := []string{"efficiency_measured", "eff_measured"}
	cols := ResolveColumns(header, DefaultAliases)

	got := cols.Number([]string{"0.3", "0.1"}, ColMeasuredEfficiency)
	require.NotNil(t, got)
	assert.Equal(t, 0.1, *got)
}

func TestMergeAliases(t *testing.T) {
	merged := MergeAliases(map[string][]string{ColSPM: {"cadence"}})

	assert.Equal(t, "cadence", merged[ColSPM][0])
	assert.Contains(t, merged[ColSPM], "spm")
	assert.Equal(t, []string{"spm", "steps_per_min"}, DefaultAliases[ColSPM], "defaults must not be modified")
}

func TestReadCSV(t *testing.T) {
	data := `modality,speed_mph,grade_pct,spm,step_height_m,mass_kg,eff_measured,aw_active_kcal_min
Treadmill,3,5,,,70,0.10,
treadmill,3,oops,,,70,0.20,
stair,,,60,0.2,70,,7.5
,,,,,,,
stair,,,80,0.2,70,,
`
	records, err := ReadCSV(strings.NewReader(data), Options{})
	require.NoError(t, err)
	require.Len(t, records, 4)

	first := records[0]
	assert.Equal(t, "Treadmill", first.Modality)
	require.NotNil(t, first.SpeedMPH)
	assert.Equal(t, 3.0, *first.SpeedMPH)
	assert.Nil(t, first.SPM)
	require.NotNil(t, first.MeasuredEfficiency)
	assert.Equal(t, 0.10, *first.MeasuredEfficiency)
	assert.Nil(t, first.TheoreticalEfficiency, "absent column reads as nil")

	assert.Nil(t, records[1].GradePct, "non-numeric grade becomes nil")

	stair := records[2]
	assert.Equal(t, store.ModalityStair, stair.NormalizedModality())
	require.NotNil(t, stair.MeasuredKcalPerMin)
	assert.Equal(t, 7.5, *stair.MeasuredKcalPerMin)

	assert.Equal(t, 4, records[3].Row, "blank rows are skipped but row numbers follow the file")
}

func TestReadCSVDefaultModality(t *testing.T) {
	data := "spm,aw_active_kcal_min\n60,7\n80,9\n"

	_, err := ReadCSV(strings.NewReader(data), Options{})
	assert.ErrorIs(t, err, ErrMissingColumn)

	records, err := ReadCSV(strings.NewReader(data), Options{DefaultModality: "stair"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "stair", records[1].Modality)
}

func TestReadCSVEmpty(t *testing.T) {
	records, err := ReadCSV(strings.NewReader(""), Options{})
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = ReadCSV(strings.NewReader("modality,grade_pct\n"), Options{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReadFileFormats(t *testing.T) {
	dir := t.TempDir()

	tsv := filepath.Join(dir, "bouts.tsv")
	require.NoError(t, os.WriteFile(tsv, []byte("modality\tgrade_pct\ntreadmill\t4\n"), 0o644))
	records, err := ReadFile(tsv, Options{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].GradePct)
	assert.Equal(t, 4.0, *records[0].GradePct)

	_, err = ReadFile(filepath.Join(dir, "bouts.xlsx"), Options{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ReadFile(filepath.Join(dir, "missing.csv"), Options{})
	assert.Error(t, err)
}

func TestFITModality(t *testing.T) {
	assert.Equal(t, store.ModalityTreadmill, fitModality("Treadmill", ""))
	assert.Equal(t, store.ModalityStair, fitModality("StairClimbing", ""))
	assert.Equal(t, store.ModalityStair, fitModality("SubSportStairClimbing", ""))
	assert.Equal(t, "treadmill", fitModality("Generic", "treadmill"))
	assert.Equal(t, "generic", fitModality("Generic", ""))
}

func TestSessionRecordTreadmill(t *testing.T) {
	s := &fit.SessionMsg{
		TotalTimerTime: 600000, // 600 s
		TotalDistance:  80467,  // 804.67 m
		AvgSpeed:       1341,   // 1.341 m/s
		TotalAscent:    40,
		TotalCalories:  80,
	}

	rec := sessionRecord(2, s, Options{DefaultModality: "treadmill"})

	assert.Equal(t, 2, rec.Row)
	require.NotNil(t, rec.SpeedMPH)
	assert.InDelta(t, 1.341/0.44704, *rec.SpeedMPH, 1e-9)
	require.NotNil(t, rec.GradePct)
	assert.InDelta(t, 40/804.67*100, *rec.GradePct, 1e-9)
	require.NotNil(t, rec.MeasuredKcalPerMin)
	assert.InDelta(t, 8.0, *rec.MeasuredKcalPerMin, 1e-9)
	assert.Nil(t, rec.SPM)
}

func ptr(f float64) *float64 {
	return &f
}
