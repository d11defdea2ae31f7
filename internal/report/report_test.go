package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"

	"cardio-efficiency/internal/store"
)

func floatPtr(f float64) *float64 {
	return &f
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func sampleTreadmill() []store.TreadmillSummary {
	return []store.TreadmillSummary{
		{SpeedMPH: 3, GradePct: 5, N: 2, EffMeasured: floatPtr(0.15), EffTheory: floatPtr(0.17)},
		{SpeedMPH: 3, GradePct: 10, N: 1, EffMeasured: floatPtr(0.19), EffTheory: floatPtr(0.21)},
		{SpeedMPH: 3.5, GradePct: 5, N: 1, EffMeasured: floatPtr(0.16), EffTheory: nil},
	}
}

func sampleStair() []store.StairSummary {
	return []store.StairSummary{
		{SPM: 60, N: 2, AWKcalPerMin: floatPtr(8), NetKcalPerMin: floatPtr(14.28), EfficiencyTheory: floatPtr(0.138)},
		{SPM: 80, N: 1, AWKcalPerMin: floatPtr(10), NetKcalPerMin: floatPtr(18.9), EfficiencyTheory: floatPtr(0.139)},
	}
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Errorf("%s is not a PNG", path)
	}
}

func TestStyleTable(t *testing.T) {
	out := StyleTable("Results", []string{"Speed", "n", "Eff"}, [][]any{
		{3.0, 2, floatPtr(0.15)},
		{3.5, 1, (*float64)(nil)},
	})

	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[0], "Results") {
		t.Errorf("caption should be the first line, got %q", lines[0])
	}
	for _, want := range []string{"Speed", "Eff", "3.00", "0.15", "3.50", "-"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "0.150") {
		t.Errorf("values should be formatted with two decimals:\n%s", out)
	}
}

func TestStyleTableEmpty(t *testing.T) {
	out := StyleTable("Nothing here", []string{"a", "b"}, nil)
	if strings.TrimSpace(out) != "Nothing here" {
		t.Errorf("empty table should render caption only, got %q", out)
	}
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{1.0 / 3, "0.33"},
		{floatPtr(2.005), "2.00"},
		{(*float64)(nil), "-"},
		{nil, "-"},
		{7, "7"},
		{"treadmill", "treadmill"},
		{true, "yes"},
	}
	for _, tt := range tests {
		if got := FormatCell(tt.in); got != tt.want {
			t.Errorf("FormatCell(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStairTableCountColumn(t *testing.T) {
	rows := []store.StairSummary{{SPM: 60, N: 3, EfficiencyTheory: floatPtr(3), EfficiencyIsCount: true}}
	out := StairTable(rows)
	if !strings.Contains(out, "Count") {
		t.Errorf("count fallback should be labelled:\n%s", out)
	}
	if strings.Contains(out, "Eff theory") {
		t.Errorf("count fallback must not be labelled as efficiency:\n%s", out)
	}
}

func TestTreadmillEfficiencyPlot(t *testing.T) {
	rows := sampleTreadmill()
	path := filepath.Join(t.TempDir(), "nested", "figures", "treadmill.png")

	got, err := TreadmillEfficiencyPlot(rows, path)
	if err != nil {
		t.Fatalf("TreadmillEfficiencyPlot() error = %v", err)
	}
	if !reflect.DeepEqual(got, sampleTreadmill()) {
		t.Errorf("plot should return its input unchanged")
	}
	assertPNG(t, path)
}

func TestStairEfficiencyPlot(t *testing.T) {
	tests := []struct {
		name string
		rows []store.StairSummary
	}{
		{"with theory", sampleStair()},
		{"count fallback", []store.StairSummary{{SPM: 60, N: 2, AWKcalPerMin: floatPtr(8), EfficiencyTheory: floatPtr(2), EfficiencyIsCount: true}}},
		{"single point", sampleStair()[:1]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "stair.png")
			got, err := StairEfficiencyPlot(tt.rows, path)
			if err != nil {
				t.Fatalf("StairEfficiencyPlot() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.rows) {
				t.Errorf("plot should return its input unchanged")
			}
			assertPNG(t, path)
		})
	}
}

func TestPlotsEmptyInput(t *testing.T) {
	dir := t.TempDir()

	trows, err := TreadmillEfficiencyPlot(nil, filepath.Join(dir, "t.png"))
	if err != nil {
		t.Fatalf("TreadmillEfficiencyPlot(nil) error = %v", err)
	}
	if len(trows) != 0 {
		t.Errorf("expected empty rows back, got %d", len(trows))
	}
	assertPNG(t, filepath.Join(dir, "t.png"))

	srows, err := StairEfficiencyPlot([]store.StairSummary{}, filepath.Join(dir, "s.png"))
	if err != nil {
		t.Fatalf("StairEfficiencyPlot(empty) error = %v", err)
	}
	if len(srows) != 0 {
		t.Errorf("expected empty rows back, got %d", len(srows))
	}
	assertPNG(t, filepath.Join(dir, "s.png"))
}

func TestTerminalCharts(t *testing.T) {
	if out := TreadmillTerminalChart(sampleTreadmill(), 40); !strings.Contains(out, "3 mph") {
		t.Errorf("treadmill chart caption should name speeds:\n%s", out)
	}
	if out := StairTerminalChart(sampleStair(), 40); !strings.Contains(out, "ACSM net") {
		t.Errorf("stair chart caption should name series:\n%s", out)
	}
	if out := TreadmillTerminalChart(nil, 40); out != "" {
		t.Errorf("empty treadmill chart = %q, want empty", out)
	}
	if out := StairTerminalChart(nil, 40); out != "" {
		t.Errorf("empty stair chart = %q, want empty", out)
	}
}

func TestWriteParquet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	if err := WriteParquet(dir, "imp-1", sampleTreadmill(), sampleStair()); err != nil {
		t.Fatalf("WriteParquet() error = %v", err)
	}

	fr, err := local.NewLocalFileReader(filepath.Join(dir, TreadmillParquetFile))
	if err != nil {
		t.Fatalf("opening parquet: %v", err)
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(treadmillParquetRow), 1)
	if err != nil {
		t.Fatalf("NewParquetReader() error = %v", err)
	}
	defer pr.ReadStop()

	n := int(pr.GetNumRows())
	if n != 3 {
		t.Fatalf("rows = %d, want 3", n)
	}
	rows := make([]treadmillParquetRow, n)
	if err := pr.Read(&rows); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if rows[0].ImportID != "imp-1" || rows[0].N != 2 || rows[0].EffMeasured != 0.15 {
		t.Errorf("first row = %+v", rows[0])
	}
	if !math.IsNaN(rows[2].EffTheory) {
		t.Errorf("missing theory should be NaN, got %v", rows[2].EffTheory)
	}

	if _, err := os.Stat(filepath.Join(dir, StairParquetFile)); err != nil {
		t.Errorf("stair parquet not written: %v", err)
	}
}
