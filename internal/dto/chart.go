package dto

import (
	"encoding/json"

	"github.com/rostrace/rostrace/internal/plot"
)

// ChartTarget selects the part of the node graph a scheduling chart covers
type ChartTarget struct {
	// Type is one of application, node, path, callback_group
	Type string `json:"type" validate:"required,oneof=application node path callback_group"`
	// Name is the node/path/group name; ignored for application
	Name string `json:"name,omitempty"`
}

// EntityRef selects one plotted entity for a time-series chart
type EntityRef struct {
	Kind              string `json:"kind" validate:"required,oneof=callback communication publisher subscription"`
	Name              string `json:"name,omitempty"`
	TopicName         string `json:"topicName,omitempty"`
	NodeName          string `json:"nodeName,omitempty"`
	PublishNodeName   string `json:"publishNodeName,omitempty"`
	SubscribeNodeName string `json:"subscribeNodeName,omitempty"`
}

// ChartOptions carries the option set shared by both chart kinds.
// Axis and coloring values are checked by the pipeline, not by struct
// validation, so an unknown value reports UNSUPPORTED_TYPE with the
// supported candidates rather than a generic validation error.
type ChartOptions struct {
	XAxisType      string  `json:"xaxisType,omitempty"`
	ColoringRule   string  `json:"coloringRule,omitempty"`
	MaxLegends     *int    `json:"maxLegends,omitempty" validate:"omitempty,gte=0"`
	ShowAllLegends bool    `json:"showAllLegends,omitempty"`
	LStripS        float64 `json:"lstripS,omitempty" validate:"gte=0"`
	RStripS        float64 `json:"rstripS,omitempty" validate:"gte=0"`
}

// Apply overlays the request options on the given defaults
func (o ChartOptions) Apply(opts plot.Options) plot.Options {
	if o.XAxisType != "" {
		opts.XAxisType = plot.XAxisType(o.XAxisType)
	}
	if o.ColoringRule != "" {
		opts.ColoringRule = plot.ColoringRule(o.ColoringRule)
	}
	if o.MaxLegends != nil {
		opts.MaxLegends = *o.MaxLegends
	}
	opts.ShowAllLegends = o.ShowAllLegends
	opts.LStripS = o.LStripS
	opts.RStripS = o.RStripS
	return opts
}

// SchedulingChartRequest represents the callback scheduling chart request
type SchedulingChartRequest struct {
	SessionID string       `json:"sessionId" validate:"required"`
	Target    ChartTarget  `json:"target" validate:"required"`
	Options   ChartOptions `json:"options"`
}

// TimeSeriesChartRequest represents the time-series chart request
type TimeSeriesChartRequest struct {
	SessionID string       `json:"sessionId" validate:"required"`
	Targets   []EntityRef  `json:"targets" validate:"required,min=1,dive"`
	Metric    string       `json:"metric" validate:"required"`
	Options   ChartOptions `json:"options"`
}

// ChartResponse wraps a generated chart of either kind. Chart holds the
// pre-marshaled chart document so cached payloads pass through without
// a decode/encode round trip.
type ChartResponse struct {
	SessionID string          `json:"sessionId"`
	Cached    bool            `json:"cached"`
	Chart     json.RawMessage `json:"chart"`
}

// ExportChartRequest represents an async chart export request
type ExportChartRequest struct {
	SessionID string       `json:"sessionId" validate:"required"`
	Kind      string       `json:"kind" validate:"required,oneof=callback_scheduling timeseries"`
	Title     string       `json:"title,omitempty" validate:"omitempty,max=256"`
	Target    *ChartTarget `json:"target,omitempty"`
	Targets   []EntityRef  `json:"targets,omitempty" validate:"omitempty,dive"`
	Metric    string       `json:"metric,omitempty"`
	Options   ChartOptions `json:"options"`
}

// ExportChartResponse acknowledges a queued export
type ExportChartResponse struct {
	TaskID    string `json:"taskId"`
	ObjectKey string `json:"objectKey"`
}
