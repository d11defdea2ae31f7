package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"cardio-efficiency/internal/store"
)

// Parquet file names written by WriteParquet
const (
	TreadmillParquetFile = "treadmill_summary.parquet"
	StairParquetFile     = "stair_summary.parquet"
)

type treadmillParquetRow struct {
	ImportID    string  `parquet:"name=import_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	SpeedMPH    float64 `parquet:"name=speed_mph, type=DOUBLE"`
	GradePct    float64 `parquet:"name=grade_pct, type=DOUBLE"`
	N           int64   `parquet:"name=n, type=INT64"`
	EffMeasured float64 `parquet:"name=eff_measured, type=DOUBLE"`
	EffTheory   float64 `parquet:"name=eff_theory, type=DOUBLE"`
}

type stairParquetRow struct {
	ImportID          string  `parquet:"name=import_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	SPM               float64 `parquet:"name=spm, type=DOUBLE"`
	N                 int64   `parquet:"name=n, type=INT64"`
	AWKcalPerMin      float64 `parquet:"name=aw_active_kcal_min, type=DOUBLE"`
	NetKcalPerMin     float64 `parquet:"name=theory_net_kcal_min, type=DOUBLE"`
	EfficiencyTheory  float64 `parquet:"name=efficiency_theory, type=DOUBLE"`
	EfficiencyIsCount bool    `parquet:"name=efficiency_is_count, type=BOOLEAN"`
}

// WriteParquet writes both summaries into dir as snappy-compressed parquet
// files. Missing means are written as NaN.
func WriteParquet(dir, importID string, treadmill []store.TreadmillSummary, stair []store.StairSummary) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating parquet directory: %w", err)
	}

	trows := make([]treadmillParquetRow, len(treadmill))
	for i, r := range treadmill {
		trows[i] = treadmillParquetRow{
			ImportID:    importID,
			SpeedMPH:    r.SpeedMPH,
			GradePct:    r.GradePct,
			N:           int64(r.N),
			EffMeasured: valueOrNaN(r.EffMeasured),
			EffTheory:   valueOrNaN(r.EffTheory),
		}
	}
	if err := writeParquet(filepath.Join(dir, TreadmillParquetFile), trows); err != nil {
		return fmt.Errorf("writing treadmill parquet: %w", err)
	}

	srows := make([]stairParquetRow, len(stair))
	for i, r := range stair {
		srows[i] = stairParquetRow{
			ImportID:          importID,
			SPM:               r.SPM,
			N:                 int64(r.N),
			AWKcalPerMin:      valueOrNaN(r.AWKcalPerMin),
			NetKcalPerMin:     valueOrNaN(r.NetKcalPerMin),
			EfficiencyTheory:  valueOrNaN(r.EfficiencyTheory),
			EfficiencyIsCount: r.EfficiencyIsCount,
		}
	}
	if err := writeParquet(filepath.Join(dir, StairParquetFile), srows); err != nil {
		return fmt.Errorf("writing stair parquet: %w", err)
	}
	return nil
}

func writeParquet[T any](path string, rows []T) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	pw, err := writer.NewParquetWriter(fw, new(T), 4)
	if err != nil {
		_ = fw.Close()
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, row := range rows {
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			_ = fw.Close()
			return err
		}
	}
	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
