package plot

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/rostrace/rostrace/internal/domain"
	apperrors "github.com/rostrace/rostrace/internal/pkg/errors"
	"github.com/rostrace/rostrace/internal/record"
)

// SchedulingChart is the render-ready output of one scheduling
// generation call: one item per callback in band order, plus the
// paginated legend.
type SchedulingChart struct {
	XAxisType       XAxisType        `json:"xaxisType"`
	FrameMinNs      int64            `json:"frameMinNs"`
	FrameMaxNs      int64            `json:"frameMaxNs"`
	Items           []SchedulingItem `json:"items"`
	Legend          []LegendEntry    `json:"legend"`
	LegendTruncated bool             `json:"legendTruncated"`
}

// SchedulingItem carries the context bar and execution rectangles of
// one callback, with their hover specs and the color grouping key.
type SchedulingItem struct {
	Callback  string        `json:"callback"`
	ColorKey  string        `json:"colorKey"`
	Bar       *VisualSource `json:"bar"`
	BarHover  HoverSpec     `json:"barHover"`
	Rects     *VisualSource `json:"rects"`
	RectHover HoverSpec     `json:"rectHover"`
}

// SchedulingPlot drives the scheduling pipeline for a resolved set of
// callback groups. One instance serves one chart session.
type SchedulingPlot struct {
	logger *zap.Logger
	groups []*domain.CallbackGroup
}

// NewSchedulingPlot resolves an arbitrary target handle into the flat
// set of callback groups to plot.
func NewSchedulingPlot(logger *zap.Logger, target any) (*SchedulingPlot, error) {
	groups, err := ResolveCallbackGroups(target)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchedulingPlot{logger: logger, groups: groups}, nil
}

// CallbackGroups returns the resolved groups in plot order.
func (p *SchedulingPlot) CallbackGroups() []*domain.CallbackGroup { return p.groups }

// ResolveCallbackGroups maps an input handle onto callback groups:
// aggregates (application, executor, node) expose their own groups, a
// causal path contributes the groups of every hop's publishing node
// plus the last hop's subscribing node (deduplicated, insertion order
// preserved), a single group wraps itself, and an explicit list passes
// through verbatim.
func ResolveCallbackGroups(target any) ([]*domain.CallbackGroup, error) {
	switch t := target.(type) {
	case *domain.Application:
		groups := t.CallbackGroups()
		if len(groups) == 0 {
			return nil, apperrors.InvalidArgument("target application has no callback groups")
		}
		return groups, nil

	case *domain.Executor:
		if len(t.CallbackGroups) == 0 {
			return nil, apperrors.InvalidArgument("target executor has no callback groups")
		}
		return t.CallbackGroups, nil

	case *domain.Node:
		if len(t.CallbackGroups) == 0 {
			return nil, apperrors.InvalidArgument("target node has no callback groups")
		}
		return t.CallbackGroups, nil

	case *domain.Path:
		seen := make(map[*domain.CallbackGroup]struct{})
		var groups []*domain.CallbackGroup
		appendGroups := func(n *domain.Node) {
			if n == nil {
				return
			}
			for _, g := range n.CallbackGroups {
				if _, ok := seen[g]; ok {
					continue
				}
				seen[g] = struct{}{}
				groups = append(groups, g)
			}
		}
		for _, comm := range t.Communications {
			appendGroups(comm.PublishNode)
		}
		if n := len(t.Communications); n > 0 {
			appendGroups(t.Communications[n-1].SubscribeNode)
		}
		if len(groups) == 0 {
			return nil, apperrors.InvalidArgument("target path has no callback groups")
		}
		return groups, nil

	case *domain.CallbackGroup:
		return []*domain.CallbackGroup{t}, nil

	case []*domain.CallbackGroup:
		return t, nil
	}

	return nil, apperrors.UnsupportedType("target", fmt.Sprintf("%T", target),
		[]string{"application", "executor", "node", "path", "callback_group", "callback_group list"})
}

// Generate runs the scheduling pipeline: option validation, frame
// computation, trimming, then one bar and one rect source per callback
// on successive vertical bands. Either a complete chart is returned or
// the call fails with no partial output.
func (p *SchedulingPlot) Generate(src RecordSource, opts Options) (*SchedulingChart, error) {
	if err := opts.Validate(ChartScheduling); err != nil {
		return nil, err
	}

	type plotTarget struct {
		group *domain.CallbackGroup
		cb    *domain.Callback
		spans *record.RecordTable
	}
	var targets []plotTarget
	frameSet := false
	var frameMin, frameMax int64
	for _, g := range p.groups {
		for _, cb := range g.Callbacks {
			spans := src.ExecutionSpans(cb.UniqueName())
			if spans == nil {
				return nil, apperrors.InvalidArgument(
					fmt.Sprintf("no execution records for callback %s", cb.UniqueName()))
			}
			if lo, hi, ok := spans.Range(); ok {
				if !frameSet || lo < frameMin {
					frameMin = lo
				}
				if !frameSet || hi > frameMax {
					frameMax = hi
				}
				frameSet = true
			}
			targets = append(targets, plotTarget{group: g, cb: cb, spans: spans})
		}
	}
	if len(targets) == 0 {
		return nil, apperrors.InvalidArgument("target callback groups contain no callbacks")
	}

	var converter record.ClockConverter
	if opts.XAxisType == XAxisSimTime {
		converter = src.Converter()
		if converter == nil {
			return nil, apperrors.InvalidArgument("sim_time axis requires a clock converter")
		}
	}

	clip := record.TrimmedClip(frameMin, frameMax, opts.LStripS, opts.RStripS)
	legend := NewLegendManager(p.logger)
	rects := NewRectSourceBuilder(legend, clip, converter)
	bars := NewBarSourceBuilder(legend, frameMin, frameMax)

	chart := &SchedulingChart{
		XAxisType:  opts.XAxisType,
		FrameMinNs: frameMin,
		FrameMaxNs: frameMax,
	}
	for _, t := range targets {
		barSrc, err := bars.Generate(t.cb, rects.YBase())
		if err != nil {
			return nil, err
		}
		barHover, err := bars.Hover(t.cb)
		if err != nil {
			return nil, err
		}
		rectSrc, err := rects.Generate(t.cb, t.spans)
		if err != nil {
			return nil, err
		}
		rectHover, err := rects.Hover(t.cb)
		if err != nil {
			return nil, err
		}
		label := legend.LabelFor(t.cb)
		legend.Register(t.cb, "rect/"+label)

		chart.Items = append(chart.Items, SchedulingItem{
			Callback:  t.cb.UniqueName(),
			ColorKey:  schedulingColorKey(opts.ColoringRule, t.group, t.cb),
			Bar:       barSrc,
			BarHover:  barHover,
			Rects:     rectSrc,
			RectHover: rectHover,
		})
		rects.AdvanceBand()
	}

	collector := &legendCollector{}
	chart.LegendTruncated = legend.Draw(collector, opts.MaxLegends, opts.ShowAllLegends)
	chart.Legend = collector.entries
	return chart, nil
}

// schedulingColorKey picks the color grouping key per coloring rule.
func schedulingColorKey(rule ColoringRule, g *domain.CallbackGroup, cb *domain.Callback) string {
	switch rule {
	case ColorByCallbackGroup:
		return g.UniqueName()
	case ColorByNode:
		return cb.NodeName
	}
	return cb.UniqueName()
}

// legendCollector flattens paginated legend output into one slice for
// JSON responses.
type legendCollector struct {
	entries     []LegendEntry
	hideOnClick bool
}

func (c *legendCollector) AddLegendPage(entries []LegendEntry) {
	c.entries = append(c.entries, entries...)
}

func (c *legendCollector) EnableHideOnClick() { c.hideOnClick = true }
