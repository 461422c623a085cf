package record

import (
	"encoding/json"
	"fmt"
	"os"
)

// dumpFile is the JSON shape of an offline trace dump. Spans are
// start/end nanosecond pairs per callback unique name; metric samples
// are timestamp/value pairs.
type dumpFile struct {
	Clock     *dumpClock           `json:"clock,omitempty"`
	Callbacks map[string]dumpEntry `json:"callbacks"`
}

type dumpClock struct {
	Slope  float64 `json:"slope"`
	Offset float64 `json:"offset"`
}

type dumpEntry struct {
	Spans   [][2]int64            `json:"spans,omitempty"`
	Metrics map[string][][2]int64 `json:"metrics,omitempty"`
}

// LoadDump reads a JSON trace dump from disk into a memory source
func LoadDump(path string) (*MemorySource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace dump %s: %w", path, err)
	}
	return ParseDump(data)
}

// ParseDump decodes a JSON trace dump into a memory source
func ParseDump(data []byte) (*MemorySource, error) {
	var file dumpFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse trace dump: %w", err)
	}

	src := NewMemorySource()
	if file.Clock != nil {
		src.SetConverter(NewLinearConverter(file.Clock.Slope, file.Clock.Offset))
	}

	for name, entry := range file.Callbacks {
		if len(entry.Spans) > 0 {
			table := NewRecordTable("callback_start", "callback_end")
			for _, span := range entry.Spans {
				table.Append(Row{"callback_start": span[0], "callback_end": span[1]})
			}
			src.PutExecutionSpans(name, table)
		}

		for metricName, samples := range entry.Metrics {
			metric := Metric(metricName)
			if !metric.Valid() {
				return nil, fmt.Errorf("trace dump has unknown metric %q for %s", metricName, name)
			}
			table := NewRecordTable("timestamp", metricName)
			for _, sample := range samples {
				table.Append(Row{"timestamp": sample[0], metricName: sample[1]})
			}
			src.PutTimeseries(name, metric, table)
		}
	}

	return src, nil
}
