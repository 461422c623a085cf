package plot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostrace/rostrace/internal/domain"
	apperrors "github.com/rostrace/rostrace/internal/pkg/errors"
	"github.com/rostrace/rostrace/internal/record"
)

func testTimeseriesSource(entities []domain.Entity, metric record.Metric) *record.MemorySource {
	src := record.NewMemorySource()
	base := int64(1_000_000_000)
	for i, e := range entities {
		table := record.NewRecordTable("timestamp", string(metric))
		for j := int64(0); j < 4; j++ {
			table.Append(record.Row{
				"timestamp":    base + int64(i)*10 + j*1_000_000_000,
				string(metric): (j + 1) * 1_000_000,
			})
		}
		src.PutTimeseries(e.UniqueName(), metric, table)
	}
	return src
}

func TestNewTimeSeriesPlotRejectsEmpty(t *testing.T) {
	_, err := NewTimeSeriesPlot(nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidArgument))
}

func TestTimeSeriesPlotGenerate(t *testing.T) {
	entities := []domain.Entity{
		newTestCallback(0),
		&domain.Publisher{NodeName: "/talker", TopicName: "/chatter"},
	}
	src := testTimeseriesSource(entities, record.MetricLatency)

	p, err := NewTimeSeriesPlot(nil, entities)
	require.NoError(t, err)

	chart, err := p.Generate(src, record.MetricLatency, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, chart.Items, 2)

	assert.Equal(t, record.MetricLatency, chart.Metric)
	assert.Equal(t, "callback", chart.Items[0].Kind)
	assert.Equal(t, "publisher", chart.Items[1].Kind)

	// Latency values scaled ns -> ms.
	assert.Equal(t, []any{1.0, 2.0, 3.0, 4.0}, chart.Items[0].Source.Column("y"))

	// system_time x starts at zero seconds for the earliest entity.
	assert.Equal(t, 0.0, chart.Items[0].Source.Column("x")[0])

	require.Len(t, chart.Legend, 2)
	assert.Equal(t, "callback0", chart.Legend[0].Label)
	assert.Equal(t, "publisher0", chart.Legend[1].Label)
}

func TestTimeSeriesPlotGenerateValidates(t *testing.T) {
	entities := []domain.Entity{newTestCallback(0)}
	p, err := NewTimeSeriesPlot(nil, entities)
	require.NoError(t, err)
	empty := record.NewMemorySource()

	opts := DefaultOptions()
	opts.XAxisType = "bogus"
	_, err = p.Generate(empty, record.MetricLatency, opts)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnsupportedType))
	assert.Contains(t, err.Error(), "system_time/index/sim_time")

	_, err = p.Generate(empty, "bogus", DefaultOptions())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnsupportedType))
	assert.Contains(t, err.Error(), "latency/period/frequency")
}

func TestTimeSeriesPlotGenerateIndexAxis(t *testing.T) {
	entities := []domain.Entity{newTestCallback(0)}
	src := testTimeseriesSource(entities, record.MetricFrequency)

	p, err := NewTimeSeriesPlot(nil, entities)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.XAxisType = XAxisIndex
	chart, err := p.Generate(src, record.MetricFrequency, opts)
	require.NoError(t, err)
	assert.Equal(t, []any{0, 1, 2, 3}, chart.Items[0].Source.Column("x"))
}

func TestTimeSeriesPlotGenerateMissingRecords(t *testing.T) {
	entities := []domain.Entity{newTestCallback(0)}
	p, err := NewTimeSeriesPlot(nil, entities)
	require.NoError(t, err)

	_, err = p.Generate(record.NewMemorySource(), record.MetricLatency, DefaultOptions())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidArgument))
}

func TestTimeSeriesPlotGenerateLegendTruncation(t *testing.T) {
	var entities []domain.Entity
	for i := 0; i < 25; i++ {
		entities = append(entities, newTestCallback(i))
	}
	src := testTimeseriesSource(entities, record.MetricPeriod)

	p, err := NewTimeSeriesPlot(nil, entities)
	require.NoError(t, err)

	chart, err := p.Generate(src, record.MetricPeriod, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, chart.Legend, 20)
	assert.True(t, chart.LegendTruncated)

	opts := DefaultOptions()
	opts.ShowAllLegends = true
	chart, err = p.Generate(src, record.MetricPeriod, opts)
	require.NoError(t, err)
	assert.Len(t, chart.Legend, 25)
	assert.False(t, chart.LegendTruncated)
}
