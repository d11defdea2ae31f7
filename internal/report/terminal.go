package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"

	"cardio-efficiency/internal/store"
)

// TreadmillTerminalChart plots measured efficiency (or theory when nothing was
// measured) across increasing grade, one line per speed. Returns "" when
// there is nothing to plot.
func TreadmillTerminalChart(rows []store.TreadmillSummary, width int) string {
	bySpeed := make(map[float64][]store.TreadmillSummary)
	for _, r := range rows {
		bySpeed[r.SpeedMPH] = append(bySpeed[r.SpeedMPH], r)
	}
	speeds := make([]float64, 0, len(bySpeed))
	for s := range bySpeed {
		speeds = append(speeds, s)
	}
	sort.Float64s(speeds)

	useTheory := true
	for _, r := range rows {
		if finite(r.EffMeasured) {
			useTheory = false
			break
		}
	}

	var data [][]float64
	var labels []string
	for _, spd := range speeds {
		group := bySpeed[spd]
		sort.Slice(group, func(a, b int) bool { return group[a].GradePct < group[b].GradePct })
		var line []float64
		for _, r := range group {
			v := r.EffMeasured
			if useTheory {
				v = r.EffTheory
			}
			if finite(v) {
				line = append(line, *v)
			}
		}
		if len(line) > 0 {
			data = append(data, line)
			labels = append(labels, fmt.Sprintf("%g mph", spd))
		}
	}
	if len(data) == 0 {
		return ""
	}

	kind := "measured"
	if useTheory {
		kind = "ACSM theory"
	}
	return plotMany(data, width, fmt.Sprintf("Efficiency (%s) by grade: %s", kind, strings.Join(labels, ", ")))
}

// StairTerminalChart plots AW active and ACSM net kcal/min across increasing
// spm. Returns "" when there is nothing to plot.
func StairTerminalChart(rows []store.StairSummary, width int) string {
	sorted := append([]store.StairSummary(nil), rows...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SPM < sorted[j].SPM })

	var aw, net []float64
	for _, r := range sorted {
		if finite(r.AWKcalPerMin) {
			aw = append(aw, *r.AWKcalPerMin)
		}
		if finite(r.NetKcalPerMin) {
			net = append(net, *r.NetKcalPerMin)
		}
	}

	var data [][]float64
	var labels []string
	if len(aw) > 0 {
		data = append(data, aw)
		labels = append(labels, "AW active")
	}
	if len(net) > 0 {
		data = append(data, net)
		labels = append(labels, "ACSM net")
	}
	if len(data) == 0 {
		return ""
	}
	return plotMany(data, width, "kcal/min by spm: "+strings.Join(labels, ", "))
}

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Blue,
	asciigraph.Green,
	asciigraph.Yellow,
	asciigraph.Red,
	asciigraph.Cyan,
	asciigraph.Magenta,
}

func plotMany(data [][]float64, width int, caption string) string {
	if width <= 0 {
		width = 60
	}
	colors := make([]asciigraph.AnsiColor, len(data))
	for i := range data {
		colors[i] = seriesColors[i%len(seriesColors)]
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(8),
		asciigraph.Width(width),
		asciigraph.Precision(3),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(caption),
	)
}
