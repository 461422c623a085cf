package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chartsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rostrace_charts_generated_total",
			Help: "Total number of charts generated",
		},
		[]string{"kind", "status"},
	)

	chartRowsPlotted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rostrace_chart_rows_total",
			Help: "Total number of source rows emitted into charts",
		},
		[]string{"kind"},
	)

	chartGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rostrace_chart_generation_duration_seconds",
			Help:    "Chart generation latency in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"kind"},
	)

	legendsTruncated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rostrace_legends_truncated_total",
			Help: "Total number of charts with a truncated legend",
		},
	)

	cacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rostrace_source_cache_requests_total",
			Help: "Visual source cache lookups",
		},
		[]string{"result"},
	)

	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rostrace_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"database", "operation"},
	)

	exportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rostrace_chart_exports_total",
			Help: "Total number of chart export tasks processed",
		},
		[]string{"status"},
	)
)

// RecordChartGenerated records the outcome of one chart generation.
func RecordChartGenerated(kind, status string, rows int, duration time.Duration) {
	chartsGenerated.WithLabelValues(kind, status).Inc()
	if rows > 0 {
		chartRowsPlotted.WithLabelValues(kind).Add(float64(rows))
	}
	chartGenerationDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordLegendTruncated counts a chart whose legend was cut off.
func RecordLegendTruncated() {
	legendsTruncated.Inc()
}

// RecordCacheResult counts a source cache hit or miss.
func RecordCacheResult(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheRequests.WithLabelValues(result).Inc()
}

// RecordDBQuery records the duration of a database query.
func RecordDBQuery(database, operation string, duration time.Duration) {
	dbQueryDuration.WithLabelValues(database, operation).Observe(duration.Seconds())
}

// RecordExport records the outcome of one export task.
func RecordExport(status string) {
	exportsTotal.WithLabelValues(status).Inc()
}
