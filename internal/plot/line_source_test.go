package plot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostrace/rostrace/internal/domain"
	apperrors "github.com/rostrace/rostrace/internal/pkg/errors"
	"github.com/rostrace/rostrace/internal/record"
)

func newSeriesTable(valueColumn string, points ...[2]int64) *record.RecordTable {
	t := record.NewRecordTable("timestamp", valueColumn)
	for _, p := range points {
		t.Append(record.Row{"timestamp": p[0], valueColumn: p[1]})
	}
	return t
}

func TestLineSourceBuilderXAxisModes(t *testing.T) {
	series := [][2]int64{{10, 5}, {1_000_000_010, 7}}

	tests := []struct {
		name  string
		xaxis XAxisType
		wantX []any
	}{
		{"system time is seconds from frame min", XAxisSystemTime, []any{0.0, 1.0}},
		{"index counts records", XAxisIndex, []any{0, 1}},
		{"sim time passes through", XAxisSimTime, []any{int64(10), int64(1_000_000_010)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewLineSourceBuilder(NewLegendManager(nil), 10, tt.xaxis)
			src, err := b.Generate(newTestCallback(0), newSeriesTable("frequency", series...))
			require.NoError(t, err)
			assert.Equal(t, tt.wantX, src.Column("x"))
			assert.Equal(t, []any{int64(5), int64(7)}, src.Column("y"))
		})
	}
}

func TestLineSourceBuilderScalesLatencyToMs(t *testing.T) {
	b := NewLineSourceBuilder(NewLegendManager(nil), 0, XAxisIndex)

	src, err := b.Generate(newTestCallback(0), newSeriesTable("latency", [2]int64{0, 1_000_000}))
	require.NoError(t, err)
	assert.Equal(t, []any{1.0}, src.Column("y"))

	src, err = b.Generate(newTestCallback(1), newSeriesTable("period_ns", [2]int64{0, 2_000_000}))
	require.NoError(t, err)
	assert.Equal(t, []any{2.0}, src.Column("y"))

	// Other metric columns pass through unscaled.
	src, err = b.Generate(newTestCallback(2), newSeriesTable("frequency", [2]int64{0, 50}))
	require.NoError(t, err)
	assert.Equal(t, []any{int64(50)}, src.Column("y"))
}

func TestLineSourceBuilderAttachesStaticMetadata(t *testing.T) {
	b := NewLineSourceBuilder(NewLegendManager(nil), 0, XAxisIndex)

	pub := &domain.Publisher{NodeName: "/talker", TopicName: "/chatter"}
	src, err := b.Generate(pub, newSeriesTable("frequency", [2]int64{0, 1}, [2]int64{1, 2}))
	require.NoError(t, err)

	// Same metadata value on every point of the entity.
	assert.Equal(t, []any{"node_name = /talker", "node_name = /talker"}, src.Column("node_name"))
	assert.Equal(t, []any{"topic_name = /chatter", "topic_name = /chatter"}, src.Column("topic_name"))
	assert.Equal(t, []any{"legend_label = publisher0", "legend_label = publisher0"}, src.Column("legend_label"))
}

func TestLineSourceBuilderMissingValue(t *testing.T) {
	b := NewLineSourceBuilder(NewLegendManager(nil), 0, XAxisIndex)

	table := record.NewRecordTable("timestamp", "latency")
	table.Append(record.Row{"timestamp": 0, "latency": 100})
	table.Append(record.Row{"timestamp": 1})

	src, err := b.Generate(newTestCallback(0), table)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeDataIntegrity))
	assert.Nil(t, src)
}

func TestLineSourceBuilderRejectsSingleColumn(t *testing.T) {
	b := NewLineSourceBuilder(NewLegendManager(nil), 0, XAxisIndex)

	table := record.NewRecordTable("timestamp")
	src, err := b.Generate(newTestCallback(0), table)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidArgument))
	assert.Nil(t, src)
}
