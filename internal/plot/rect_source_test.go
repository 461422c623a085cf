package plot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/rostrace/rostrace/internal/pkg/errors"
	"github.com/rostrace/rostrace/internal/record"
)

func newSpanTable(spans ...[2]int64) *record.RecordTable {
	t := record.NewRecordTable("callback_start_timestamp", "callback_end_timestamp")
	for _, s := range spans {
		t.Append(record.Row{
			"callback_start_timestamp": s[0],
			"callback_end_timestamp":   s[1],
		})
	}
	return t
}

func TestRectSourceBuilderGenerate(t *testing.T) {
	legend := NewLegendManager(nil)
	b := NewRectSourceBuilder(legend, nil, nil)
	cb := newTestCallback(0)

	src, err := b.Generate(cb, newSpanTable([2]int64{0, 1_000_000}, [2]int64{2_000_000, 3_000_000}))
	require.NoError(t, err)
	require.Equal(t, 2, src.Len())

	// Row geometry: centered on the span, band around y base 0.
	assert.InDelta(t, 500_000.0, src.Column("x")[0].(float64), 1e-9)
	assert.InDelta(t, 0.0, src.Column("y")[0].(float64), 1e-9)
	assert.InDelta(t, 1_000_000.0, src.Column("width")[0].(float64), 1e-9)
	assert.InDelta(t, 2*RectHeight, src.Column("height")[0].(float64), 1e-9)

	// Hover fields carry formatted values; latency is ns -> ms.
	assert.Equal(t, "legend_label = callback0", src.Column("legend_label")[0])
	assert.Equal(t, "callback_start = 0 [ns]", src.Column("callback_start")[0])
	assert.Equal(t, "callback_end = 1000000 [ns]", src.Column("callback_end")[0])
	assert.Equal(t, "latency = 1 [ms]", src.Column("latency")[0])
}

func TestRectSourceBuilderAdvanceBand(t *testing.T) {
	b := NewRectSourceBuilder(NewLegendManager(nil), nil, nil)

	assert.Equal(t, 0.0, b.YBase())
	b.AdvanceBand()
	assert.Equal(t, -1.5, b.YBase())
	b.AdvanceBand()
	assert.Equal(t, -3.0, b.YBase())

	// Rows generated after advancing render on the lower band.
	src, err := b.Generate(newTestCallback(0), newSpanTable([2]int64{0, 100}))
	require.NoError(t, err)
	assert.InDelta(t, -3.0, src.Column("y")[0].(float64), 1e-9)
}

func TestRectSourceBuilderAppliesClip(t *testing.T) {
	clip := record.NewClip(1_000, 2_000)
	b := NewRectSourceBuilder(NewLegendManager(nil), clip, nil)

	spans := newSpanTable([2]int64{500, 600}, [2]int64{1_500, 1_600}, [2]int64{5_000, 5_100})
	src, err := b.Generate(newTestCallback(0), spans)
	require.NoError(t, err)
	require.Equal(t, 1, src.Len())
	assert.InDelta(t, 1_550.0, src.Column("x")[0].(float64), 1e-9)
}

func TestRectSourceBuilderAppliesClockConverter(t *testing.T) {
	conv := record.NewLinearConverter(2, 100)
	b := NewRectSourceBuilder(NewLegendManager(nil), nil, conv)

	src, err := b.Generate(newTestCallback(0), newSpanTable([2]int64{10, 20}))
	require.NoError(t, err)
	// start 10 -> 120, end 20 -> 140.
	assert.InDelta(t, 130.0, src.Column("x")[0].(float64), 1e-9)
	assert.InDelta(t, 20.0, src.Column("width")[0].(float64), 1e-9)
	assert.Equal(t, "callback_start = 120 [ns]", src.Column("callback_start")[0])
}

func TestRectSourceBuilderMissingValue(t *testing.T) {
	b := NewRectSourceBuilder(NewLegendManager(nil), nil, nil)

	spans := record.NewRecordTable("callback_start_timestamp", "callback_end_timestamp")
	spans.Append(record.Row{"callback_start_timestamp": 0, "callback_end_timestamp": 100})
	spans.Append(record.Row{"callback_start_timestamp": 200})

	src, err := b.Generate(newTestCallback(0), spans)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeDataIntegrity))
	assert.Nil(t, src)
}
