package plot

import (
	apperrors "github.com/rostrace/rostrace/internal/pkg/errors"
)

// ChartKind selects which pipeline an option set applies to.
type ChartKind string

const (
	ChartScheduling ChartKind = "callback_scheduling"
	ChartTimeSeries ChartKind = "timeseries"
)

// XAxisType selects the x-axis semantics of a chart.
type XAxisType string

const (
	// XAxisSystemTime plots seconds elapsed since the frame minimum.
	XAxisSystemTime XAxisType = "system_time"
	// XAxisIndex plots the record index 0..N-1 (time-series only).
	XAxisIndex XAxisType = "index"
	// XAxisSimTime plots simulation-domain timestamps unmodified.
	XAxisSimTime XAxisType = "sim_time"
)

// ColoringRule selects the unit of color change across sources.
type ColoringRule string

const (
	ColorByCallback      ColoringRule = "callback"
	ColorByCallbackGroup ColoringRule = "callback_group"
	ColorByNode          ColoringRule = "node"
)

// Options is the per-chart-request configuration surface.
type Options struct {
	XAxisType      XAxisType
	ColoringRule   ColoringRule
	MaxLegends     int
	ShowAllLegends bool
	LStripS        float64
	RStripS        float64
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		XAxisType:    XAxisSystemTime,
		ColoringRule: ColorByCallback,
		MaxLegends:   20,
	}
}

// Validate checks the enum-valued options against the sets supported
// by the chart kind. It runs before any builder executes.
func (o Options) Validate(kind ChartKind) error {
	supported := []string{string(XAxisSystemTime), string(XAxisIndex), string(XAxisSimTime)}
	if kind == ChartScheduling {
		supported = []string{string(XAxisSystemTime), string(XAxisSimTime)}
	}
	valid := false
	for _, s := range supported {
		if string(o.XAxisType) == s {
			valid = true
			break
		}
	}
	if !valid {
		return apperrors.UnsupportedType("xaxis_type", string(o.XAxisType), supported)
	}

	switch o.ColoringRule {
	case ColorByCallback, ColorByCallbackGroup, ColorByNode:
	default:
		return apperrors.UnsupportedType("coloring_rule", string(o.ColoringRule),
			[]string{string(ColorByCallback), string(ColorByCallbackGroup), string(ColorByNode)})
	}
	return nil
}
