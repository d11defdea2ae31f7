package report

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"cardio-efficiency/internal/store"
)

// Default figure locations, relative to the working directory
const (
	DefaultTreadmillPlotPath = "figures/fig_treadmill_efficiency_vs_grade.png"
	DefaultStairPlotPath     = "figures/fig_stair_aw_vs_acsm.png"
)

const (
	plotWidth  = 1024
	plotHeight = 640
)

func measuredStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotColor:    col,
		DotWidth:    4,
	}
}

func theoryStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor:     col,
		StrokeWidth:     2,
		StrokeDashArray: []float64{6, 4},
		DotColor:        col,
		DotWidth:        3,
	}
}

// TreadmillEfficiencyPlot writes a PNG of efficiency against grade with one
// line per speed: measured solid, ACSM theory dashed. It returns rows unchanged.
func TreadmillEfficiencyPlot(rows []store.TreadmillSummary, path string) ([]store.TreadmillSummary, error) {
	if path == "" {
		path = DefaultTreadmillPlotPath
	}

	bySpeed := make(map[float64][]store.TreadmillSummary)
	for _, r := range rows {
		bySpeed[r.SpeedMPH] = append(bySpeed[r.SpeedMPH], r)
	}
	speeds := make([]float64, 0, len(bySpeed))
	for s := range bySpeed {
		speeds = append(speeds, s)
	}
	sort.Float64s(speeds)

	var series []chart.Series
	var xs, ys []float64
	for i, spd := range speeds {
		group := bySpeed[spd]
		sort.Slice(group, func(a, b int) bool { return group[a].GradePct < group[b].GradePct })
		col := chart.GetDefaultColor(i)
		label := humanize.FtoaWithDigits(spd, 2) + " mph"

		mx, my := treadmillPoints(group, func(r store.TreadmillSummary) *float64 { return r.EffMeasured })
		if len(mx) > 0 {
			series = append(series, chart.ContinuousSeries{Name: label + " - measured", XValues: mx, YValues: my, Style: measuredStyle(col)})
			xs, ys = append(xs, mx...), append(ys, my...)
		}
		tx, ty := treadmillPoints(group, func(r store.TreadmillSummary) *float64 { return r.EffTheory })
		if len(tx) > 0 {
			series = append(series, chart.ContinuousSeries{Name: label + " - ACSM theory", XValues: tx, YValues: ty, Style: theoryStyle(col)})
			xs, ys = append(xs, tx...), append(ys, ty...)
		}
	}

	ch := chart.Chart{
		Title:      "Treadmill: Efficiency vs Grade",
		Width:      plotWidth,
		Height:     plotHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "Grade (%)", Range: axisRange(xs)},
		YAxis:      chart.YAxis{Name: "Efficiency (mech/met)", Range: axisRange(ys), ValueFormatter: threeDecimals},
		Series:     series,
	}
	return rows, renderPNG(ch, path)
}

func treadmillPoints(group []store.TreadmillSummary, value func(store.TreadmillSummary) *float64) (xs, ys []float64) {
	for _, r := range group {
		v := value(r)
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			continue
		}
		xs = append(xs, r.GradePct)
		ys = append(ys, *v)
	}
	return xs, ys
}

// StairEfficiencyPlot writes a PNG of Apple Watch active kcal/min against
// ACSM net kcal/min by steps per minute. When the summary carries a real
// theoretical efficiency the plot is annotated with the first group's value.
// It returns rows unchanged.
func StairEfficiencyPlot(rows []store.StairSummary, path string) ([]store.StairSummary, error) {
	if path == "" {
		path = DefaultStairPlotPath
	}

	sorted := append([]store.StairSummary(nil), rows...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SPM < sorted[j].SPM })

	var awX, awY, netX, netY []float64
	for _, r := range sorted {
		if finite(r.AWKcalPerMin) {
			awX, awY = append(awX, r.SPM), append(awY, *r.AWKcalPerMin)
		}
		if finite(r.NetKcalPerMin) {
			netX, netY = append(netX, r.SPM), append(netY, *r.NetKcalPerMin)
		}
	}

	var series []chart.Series
	if len(awX) > 0 {
		series = append(series, chart.ContinuousSeries{Name: "AW Active (kcal/min)", XValues: awX, YValues: awY, Style: measuredStyle(chart.GetDefaultColor(0))})
	}
	if len(netX) > 0 {
		series = append(series, chart.ContinuousSeries{Name: "ACSM NET (kcal/min)", XValues: netX, YValues: netY, Style: theoryStyle(chart.GetDefaultColor(1))})
	}

	xs := append(append([]float64(nil), awX...), netX...)
	ys := append(append([]float64(nil), awY...), netY...)

	if len(sorted) > 0 && !sorted[0].EfficiencyIsCount && finite(sorted[0].EfficiencyTheory) {
		y := 0.0
		switch {
		case len(netY) > 0:
			y = minOf(netY)
		case len(awY) > 0:
			y = minOf(awY)
		}
		series = append(series, chart.AnnotationSeries{
			Annotations: []chart.Value2{{
				XValue: sorted[0].SPM,
				YValue: y,
				Label:  fmt.Sprintf("Theory eff ~ %.3f", *sorted[0].EfficiencyTheory),
			}},
		})
		xs, ys = append(xs, sorted[0].SPM), append(ys, y)
	}

	ch := chart.Chart{
		Title:      "StairMaster: Apple Watch vs ACSM NET by SPM",
		Width:      plotWidth,
		Height:     plotHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "Steps per minute (spm)", Range: axisRange(xs)},
		YAxis:      chart.YAxis{Name: "kcal/min", Range: axisRange(ys)},
		Series:     series,
	}
	return rows, renderPNG(ch, path)
}

// renderPNG writes ch to path, creating parent directories. A chart with no
// series is rendered as empty axes.
func renderPNG(ch chart.Chart, path string) error {
	if len(ch.Series) == 0 {
		ch.Series = []chart.Series{chart.ContinuousSeries{
			XValues: []float64{0, 1},
			YValues: []float64{0, 1},
			Style:   chart.Style{StrokeColor: drawing.ColorTransparent, DotColor: drawing.ColorTransparent},
		}}
	} else {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("rendering %s: %w", filepath.Base(path), err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating figure directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// axisRange pads the data extent so single points and flat lines still have
// a non-zero range.
func axisRange(values []float64) *chart.ContinuousRange {
	if len(values) == 0 {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	lo, hi := minOf(values), maxOf(values)
	pad := (hi - lo) * 0.08
	if pad == 0 {
		pad = math.Abs(lo) * 0.1
	}
	if pad == 0 {
		pad = 1
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func threeDecimals(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.3f", f)
	}
	return fmt.Sprint(v)
}

func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		m = math.Min(m, v)
	}
	return m
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		m = math.Max(m, v)
	}
	return m
}
