package plot

import (
	"github.com/rostrace/rostrace/internal/domain"
)

// barHalfHeight spans one full band unit around the band base.
const barHalfHeight = 0.5

// BarSourceBuilder emits one full-width context bar per callback,
// spanning the whole observed time frame so scheduling rectangles
// render against full-timeline context.
type BarSourceBuilder struct {
	sourceBase
	frameMin float64
	frameMax float64
}

// NewBarSourceBuilder creates a builder over the global frame bounds.
func NewBarSourceBuilder(legend *LegendManager, frameMin, frameMax int64) *BarSourceBuilder {
	return &BarSourceBuilder{
		sourceBase: sourceBase{legend: legend},
		frameMin:   float64(frameMin),
		frameMax:   float64(frameMax),
	}
}

// Hover returns the tooltip spec for the callback's context bar.
func (b *BarSourceBuilder) Hover(cb *domain.Callback) (HoverSpec, error) {
	keys, err := seriesKeys(cb)
	if err != nil {
		return HoverSpec{}, err
	}
	return b.hover(keys, nil), nil
}

// Generate builds the single-row bar source for one callback at the
// given band base, annotated with the callback's static metadata.
func (b *BarSourceBuilder) Generate(cb *domain.Callback, yBase float64) (*VisualSource, error) {
	keys, err := seriesKeys(cb)
	if err != nil {
		return nil, err
	}
	dict, err := b.dataDict(cb, keys)
	if err != nil {
		return nil, err
	}

	rect := NewRectGeometry(b.frameMin, b.frameMax, yBase-barHalfHeight, yBase+barHalfHeight)
	row := map[string]any{
		"x":      rect.X,
		"y":      rect.Y,
		"width":  rect.Width,
		"height": rect.Height,
	}
	for k, v := range dict {
		row[k] = v
	}

	src := NewVisualSource(append([]string{"x", "y", "width", "height"}, keys...)...)
	if err := src.Append(row); err != nil {
		return nil, err
	}
	return src, nil
}
