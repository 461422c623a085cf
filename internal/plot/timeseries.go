package plot

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/rostrace/rostrace/internal/domain"
	apperrors "github.com/rostrace/rostrace/internal/pkg/errors"
	"github.com/rostrace/rostrace/internal/record"
)

// TimeSeriesChart is the render-ready output of one time-series
// generation call: one line source per tracked entity.
type TimeSeriesChart struct {
	XAxisType       XAxisType        `json:"xaxisType"`
	Metric          record.Metric    `json:"metric"`
	FrameMinNs      int64            `json:"frameMinNs"`
	Items           []TimeSeriesItem `json:"items"`
	Legend          []LegendEntry    `json:"legend"`
	LegendTruncated bool             `json:"legendTruncated"`
}

// TimeSeriesItem carries one entity's line source with its hover spec
// and color grouping key.
type TimeSeriesItem struct {
	Entity   string        `json:"entity"`
	Kind     string        `json:"kind"`
	ColorKey string        `json:"colorKey"`
	Source   *VisualSource `json:"source"`
	Hover    HoverSpec     `json:"hover"`
}

// TimeSeriesPlot drives the time-series pipeline for a resolved entity
// list. One instance serves one chart session.
type TimeSeriesPlot struct {
	logger   *zap.Logger
	entities []domain.Entity
}

// NewTimeSeriesPlot creates a plot over the given entities. An empty
// list is an invalid argument.
func NewTimeSeriesPlot(logger *zap.Logger, entities []domain.Entity) (*TimeSeriesPlot, error) {
	if len(entities) == 0 {
		return nil, apperrors.InvalidArgument("no entities to plot")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimeSeriesPlot{logger: logger, entities: entities}, nil
}

// Entities returns the tracked entities in plot order.
func (p *TimeSeriesPlot) Entities() []domain.Entity { return p.entities }

// Generate runs the time-series pipeline for one metric: option and
// metric validation, frame computation, trimming, then one line source
// per entity. Either a complete chart is returned or the call fails
// with no partial output.
func (p *TimeSeriesPlot) Generate(src RecordSource, metric record.Metric, opts Options) (*TimeSeriesChart, error) {
	if err := opts.Validate(ChartTimeSeries); err != nil {
		return nil, err
	}
	if !metric.Valid() {
		return nil, apperrors.UnsupportedType("metric", string(metric), record.SupportedMetrics())
	}

	tables := make([]*record.RecordTable, 0, len(p.entities))
	frameSet := false
	var frameMin, frameMax int64
	for _, e := range p.entities {
		t := src.Timeseries(e.UniqueName(), metric)
		if t == nil {
			return nil, apperrors.InvalidArgument(
				fmt.Sprintf("no %s records for %s", metric, e.UniqueName()))
		}
		if lo, hi, ok := t.Range(); ok {
			if !frameSet || lo < frameMin {
				frameMin = lo
			}
			if !frameSet || hi > frameMax {
				frameMax = hi
			}
			frameSet = true
		}
		tables = append(tables, t)
	}

	if opts.LStripS > 0 || opts.RStripS > 0 {
		clip := record.TrimmedClip(frameMin, frameMax, opts.LStripS, opts.RStripS)
		frameSet = false
		for i, t := range tables {
			clipped := clip.Apply(t)
			tables[i] = clipped
			if lo, _, ok := clipped.Range(); ok {
				if !frameSet || lo < frameMin {
					frameMin = lo
				}
				frameSet = true
			}
		}
	}

	legend := NewLegendManager(p.logger)
	lines := NewLineSourceBuilder(legend, frameMin, opts.XAxisType)

	chart := &TimeSeriesChart{
		XAxisType:  opts.XAxisType,
		Metric:     metric,
		FrameMinNs: frameMin,
	}
	for i, e := range p.entities {
		lineSrc, err := lines.Generate(e, tables[i])
		if err != nil {
			return nil, err
		}
		hover, err := lines.Hover(e)
		if err != nil {
			return nil, err
		}
		label := legend.LabelFor(e)
		legend.Register(e, "line/"+label)

		chart.Items = append(chart.Items, TimeSeriesItem{
			Entity:   e.UniqueName(),
			Kind:     e.Kind().String(),
			ColorKey: timeseriesColorKey(opts.ColoringRule, e),
			Source:   lineSrc,
			Hover:    hover,
		})
	}

	collector := &legendCollector{}
	chart.LegendTruncated = legend.Draw(collector, opts.MaxLegends, opts.ShowAllLegends)
	chart.Legend = collector.entries
	return chart, nil
}

// timeseriesColorKey picks the color grouping key per coloring rule.
// Group membership is not resolvable from a bare entity, so the
// callback_group rule falls back to the node key here.
func timeseriesColorKey(rule ColoringRule, e domain.Entity) string {
	if rule == ColorByCallback {
		return e.UniqueName()
	}
	switch v := e.(type) {
	case *domain.Callback:
		return v.NodeName
	case *domain.Publisher:
		return v.NodeName
	case *domain.Subscription:
		return v.NodeName
	case *domain.Communication:
		return v.PublishNodeName()
	}
	return e.UniqueName()
}
