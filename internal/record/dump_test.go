package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDump = `{
  "clock": {"slope": 1.0, "offset": -5.0},
  "callbacks": {
    "/talker/timer_callback_0": {
      "spans": [[1000, 2000], [3000, 4000]],
      "metrics": {
        "latency": [[1000, 100], [2000, 150]]
      }
    }
  }
}`

func TestParseDump(t *testing.T) {
	src, err := ParseDump([]byte(sampleDump))
	require.NoError(t, err)

	spans := src.ExecutionSpans("/talker/timer_callback_0")
	require.NotNil(t, spans)
	assert.Equal(t, 2, spans.Len())
	assert.Equal(t, int64(1000), spans.Rows()[0]["callback_start"])
	assert.Equal(t, int64(4000), spans.Rows()[1]["callback_end"])

	latency := src.Timeseries("/talker/timer_callback_0", MetricLatency)
	require.NotNil(t, latency)
	assert.Equal(t, 2, latency.Len())
	assert.Equal(t, int64(150), latency.Rows()[1]["latency"])

	require.NotNil(t, src.Converter())
	assert.InDelta(t, 995.0, src.Converter().Convert(1000), 1e-9)
}

func TestParseDumpUnknownMetric(t *testing.T) {
	_, err := ParseDump([]byte(`{"callbacks": {"/a/cb": {"metrics": {"jitter": [[1, 2]]}}}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown metric")
}

func TestParseDumpInvalidJSON(t *testing.T) {
	_, err := ParseDump([]byte(`{`))
	require.Error(t, err)
}

func TestParseDumpNoClock(t *testing.T) {
	src, err := ParseDump([]byte(`{"callbacks": {}}`))
	require.NoError(t, err)
	assert.Nil(t, src.Converter())
}
