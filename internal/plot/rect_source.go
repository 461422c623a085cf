package plot

import (
	"fmt"
	"strconv"

	"github.com/rostrace/rostrace/internal/domain"
	apperrors "github.com/rostrace/rostrace/internal/pkg/errors"
	"github.com/rostrace/rostrace/internal/record"
)

// RectHeight is the half-height of a scheduling rectangle around its
// vertical band base.
const RectHeight = 0.3

// rectYStep moves the band base for the next callback. Negative so
// later callbacks render lower on the chart.
const rectYStep = -1.5

// RectSourceBuilder emits one rectangle per recorded callback execution
// span, stacked on a per-callback vertical band. The band base is
// session state: call AdvanceBand once per callback to keep bands
// non-overlapping.
type RectSourceBuilder struct {
	sourceBase
	clip      *record.Clip
	converter record.ClockConverter
	yBase     float64
}

// NewRectSourceBuilder creates a builder. clip shapes the span table
// before generation; converter is optional and maps timestamps into the
// simulation clock domain.
func NewRectSourceBuilder(legend *LegendManager, clip *record.Clip, converter record.ClockConverter) *RectSourceBuilder {
	return &RectSourceBuilder{
		sourceBase: sourceBase{legend: legend},
		clip:       clip,
		converter:  converter,
	}
}

// YBase returns the current vertical band base.
func (b *RectSourceBuilder) YBase() float64 { return b.yBase }

// AdvanceBand moves the band base to the next step.
func (b *RectSourceBuilder) AdvanceBand() { b.yBase += rectYStep }

// Hover returns the tooltip spec for the callback's rect source.
func (b *RectSourceBuilder) Hover(cb *domain.Callback) (HoverSpec, error) {
	keys, err := schedulingRectKeys(cb)
	if err != nil {
		return HoverSpec{}, err
	}
	return b.hover(keys, nil), nil
}

// Generate builds the rect source for one callback from its clipped
// execution-span table. Rows are processed in table order; a missing
// start or end timestamp is a data-integrity failure.
func (b *RectSourceBuilder) Generate(cb *domain.Callback, spans *record.RecordTable) (*VisualSource, error) {
	keys, err := schedulingRectKeys(cb)
	if err != nil {
		return nil, err
	}
	src := NewVisualSource(append([]string{"x", "y", "width", "height"}, keys...)...)

	table := spans
	if b.clip != nil {
		table = b.clip.Apply(spans)
	}
	cols := table.Columns()
	if len(cols) < 2 {
		return nil, apperrors.InvalidArgument(
			fmt.Sprintf("execution span table for %s needs start and end columns", cb.UniqueName()))
	}
	startCol, endCol := cols[0], cols[len(cols)-1]
	label := "legend_label = " + b.legend.LabelFor(cb)

	for i, row := range table.Rows() {
		startNs, ok := row[startCol]
		if !ok {
			return nil, apperrors.DataIntegrity(
				fmt.Sprintf("missing %s at row %d for %s", startCol, i, cb.UniqueName()))
		}
		endNs, ok := row[endCol]
		if !ok {
			return nil, apperrors.DataIntegrity(
				fmt.Sprintf("missing %s at row %d for %s", endCol, i, cb.UniqueName()))
		}

		start, end := float64(startNs), float64(endNs)
		if b.converter != nil {
			start = b.converter.Convert(startNs)
			end = b.converter.Convert(endNs)
		}
		rect := NewRectGeometry(start, end, b.yBase-RectHeight, b.yBase+RectHeight)

		if err := src.Append(map[string]any{
			"x":              rect.X,
			"y":              rect.Y,
			"width":          rect.Width,
			"height":         rect.Height,
			"legend_label":   label,
			"callback_start": fmt.Sprintf("callback_start = %s [ns]", formatNumber(start)),
			"callback_end":   fmt.Sprintf("callback_end = %s [ns]", formatNumber(end)),
			"latency":        fmt.Sprintf("latency = %s [ms]", formatNumber((end-start)*1e-6)),
		}); err != nil {
			return nil, err
		}
	}
	return src, nil
}

// formatNumber prints a float without exponent notation or trailing
// zeros so hover text stays readable for nanosecond magnitudes.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
