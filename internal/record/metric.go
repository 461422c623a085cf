package record

// Metric names a per-entity time-series derived from the trace.
type Metric string

const (
	MetricLatency   Metric = "latency"
	MetricPeriod    Metric = "period"
	MetricFrequency Metric = "frequency"
)

// SupportedMetrics lists the valid metric names in display order.
func SupportedMetrics() []string {
	return []string{string(MetricLatency), string(MetricPeriod), string(MetricFrequency)}
}

// Valid reports whether m is one of the supported metrics.
func (m Metric) Valid() bool {
	switch m {
	case MetricLatency, MetricPeriod, MetricFrequency:
		return true
	}
	return false
}
