package service

import (
	"github.com/prometheus/client_golang/prometheus"

	"cardio-efficiency/internal/analysis"
)

// Registry holds the pipeline metrics. It is separate from the default
// registerer so that a CLI run can write exactly these series to a textfile.
var Registry = prometheus.NewRegistry()

var (
	recordsIngestedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cardio",
		Subsystem: "ingest",
		Name:      "records_total",
		Help:      "Number of activity records ingested.",
	}, []string{"format"})

	recordsCleanedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cardio",
		Subsystem: "clean",
		Name:      "records_total",
		Help:      "Number of records seen by the flat-treadmill filter, by outcome.",
	}, []string{"outcome"})

	summaryRowsGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "cardio",
		Subsystem: "summary",
		Name:      "rows",
		Help:      "Summary rows produced by the most recent analysis.",
	}, []string{"modality"})

	excludedRecordsGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "cardio",
		Subsystem: "summary",
		Name:      "excluded_records",
		Help:      "Records of a modality that fell into no summary group in the most recent analysis.",
	}, []string{"modality"})
)

func init() {
	Registry.MustRegister(recordsIngestedCounter, recordsCleanedCounter, summaryRowsGauge, excludedRecordsGauge)
}

// WriteMetrics writes the pipeline metrics in Prometheus text format,
// e.g. for the node_exporter textfile collector.
func WriteMetrics(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}

func recordIngested(format string, n int) {
	recordsIngestedCounter.WithLabelValues(format).Add(float64(n))
}

func recordCleaned(stats analysis.CleanStats) {
	recordsCleanedCounter.WithLabelValues("kept").Add(float64(stats.Kept))
	recordsCleanedCounter.WithLabelValues("dropped").Add(float64(stats.Dropped))
}

func recordSummary(r *Report) {
	summaryRowsGauge.WithLabelValues("treadmill").Set(float64(len(r.Treadmill)))
	summaryRowsGauge.WithLabelValues("stair").Set(float64(len(r.Stair)))
	excludedRecordsGauge.WithLabelValues("treadmill").Set(float64(r.ExcludedTreadmill))
	excludedRecordsGauge.WithLabelValues("stair").Set(float64(r.ExcludedStair))
}
