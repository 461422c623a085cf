package plot

import (
	"fmt"
	"strings"

	"github.com/rostrace/rostrace/internal/domain"
	apperrors "github.com/rostrace/rostrace/internal/pkg/errors"
	"github.com/rostrace/rostrace/internal/record"
)

// LineSourceBuilder emits one line source per tracked entity across the
// full observed time axis.
type LineSourceBuilder struct {
	sourceBase
	frameMin int64
	xaxis    XAxisType
}

// NewLineSourceBuilder creates a builder. frameMin is the earliest
// observed timestamp; xaxis selects the x-sequence semantics.
func NewLineSourceBuilder(legend *LegendManager, frameMin int64, xaxis XAxisType) *LineSourceBuilder {
	return &LineSourceBuilder{
		sourceBase: sourceBase{legend: legend},
		frameMin:   frameMin,
		xaxis:      xaxis,
	}
}

// Hover returns the tooltip spec for the entity's line source.
func (b *LineSourceBuilder) Hover(e domain.Entity) (HoverSpec, error) {
	keys, err := seriesKeys(e)
	if err != nil {
		return HoverSpec{}, err
	}
	return b.hover(keys, nil), nil
}

// Generate builds the line source for one entity from its two-column
// (timestamp, metric) table. Metric columns named latency or period are
// scaled from nanoseconds to milliseconds. Any missing value in either
// column fails the call.
func (b *LineSourceBuilder) Generate(e domain.Entity, series *record.RecordTable) (*VisualSource, error) {
	keys, err := seriesKeys(e)
	if err != nil {
		return nil, err
	}
	dict, err := b.dataDict(e, keys)
	if err != nil {
		return nil, err
	}

	cols := series.Columns()
	if len(cols) < 2 {
		return nil, apperrors.InvalidArgument(
			fmt.Sprintf("timeseries table for %s needs timestamp and value columns", e.UniqueName()))
	}
	tsCol, valueCol := cols[0], cols[1]
	timestamps, err := requireComplete(series.ColumnSeries(tsCol), tsCol, e)
	if err != nil {
		return nil, err
	}
	values, err := requireComplete(series.ColumnSeries(valueCol), valueCol, e)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(valueCol)
	scaleToMs := strings.Contains(lower, "latency") || strings.Contains(lower, "period")

	src := NewVisualSource(append([]string{"x", "y"}, keys...)...)
	for i := range values {
		var x, y any
		if scaleToMs {
			y = float64(values[i]) * 1e-6
		} else {
			y = values[i]
		}
		switch b.xaxis {
		case XAxisSystemTime:
			x = float64(timestamps[i]-b.frameMin) * 1e-9
		case XAxisIndex:
			x = i
		case XAxisSimTime:
			x = timestamps[i]
		}

		row := map[string]any{"x": x, "y": y}
		for k, v := range dict {
			row[k] = v
		}
		if err := src.Append(row); err != nil {
			return nil, err
		}
	}
	return src, nil
}

// requireComplete rejects series containing missing values. The record
// providers never emit them; one slipping through is a data-integrity
// failure, not a row to skip.
func requireComplete(series []*int64, column string, e domain.Entity) ([]int64, error) {
	out := make([]int64, 0, len(series))
	for i, v := range series {
		if v == nil {
			return nil, apperrors.DataIntegrity(
				fmt.Sprintf("missing %s at row %d for %s", column, i, e.UniqueName()))
		}
		out = append(out, *v)
	}
	return out, nil
}
