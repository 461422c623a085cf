package record

// MemorySource holds prefetched record tables for one chart-generation
// session, keyed by entity unique name. Upstream collaborators (the
// record store, the trace importer) materialize tables here so the plot
// pipeline stays a synchronous in-memory transform.
type MemorySource struct {
	spans     map[string]*RecordTable
	series    map[string]map[Metric]*RecordTable
	converter ClockConverter
}

// NewMemorySource creates an empty source.
func NewMemorySource() *MemorySource {
	return &MemorySource{
		spans:  make(map[string]*RecordTable),
		series: make(map[string]map[Metric]*RecordTable),
	}
}

// PutExecutionSpans stores the execution-span table for an entity.
func (s *MemorySource) PutExecutionSpans(uniqueName string, t *RecordTable) {
	s.spans[uniqueName] = t
}

// PutTimeseries stores a metric time-series table for an entity.
func (s *MemorySource) PutTimeseries(uniqueName string, metric Metric, t *RecordTable) {
	if s.series[uniqueName] == nil {
		s.series[uniqueName] = make(map[Metric]*RecordTable)
	}
	s.series[uniqueName][metric] = t
}

// SetConverter attaches an optional clock converter for sim-time axes.
func (s *MemorySource) SetConverter(c ClockConverter) { s.converter = c }

// ExecutionSpans returns the execution-span table for the entity, nil
// when none was loaded.
func (s *MemorySource) ExecutionSpans(uniqueName string) *RecordTable {
	return s.spans[uniqueName]
}

// Timeseries returns the metric table for the entity, nil when none was
// loaded.
func (s *MemorySource) Timeseries(uniqueName string, metric Metric) *RecordTable {
	if m, ok := s.series[uniqueName]; ok {
		return m[metric]
	}
	return nil
}

// Converter returns the attached clock converter, nil when absent.
func (s *MemorySource) Converter() ClockConverter { return s.converter }
