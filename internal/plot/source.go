package plot

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rostrace/rostrace/internal/domain"
	apperrors "github.com/rostrace/rostrace/internal/pkg/errors"
	"github.com/rostrace/rostrace/internal/record"
)

// VisualSource maps field names to ordered value sequences, one entry
// per plotted row. All field sequences of one source have equal length.
type VisualSource struct {
	fields []string
	data   map[string][]any
}

// NewVisualSource creates an empty source over the given fields.
func NewVisualSource(fields ...string) *VisualSource {
	data := make(map[string][]any, len(fields))
	for _, f := range fields {
		data[f] = []any{}
	}
	return &VisualSource{fields: fields, data: data}
}

// Fields returns the field names in declaration order.
func (s *VisualSource) Fields() []string { return s.fields }

// Len returns the number of rows.
func (s *VisualSource) Len() int {
	if len(s.fields) == 0 {
		return 0
	}
	return len(s.data[s.fields[0]])
}

// Column returns the value sequence of one field, nil for an unknown
// field.
func (s *VisualSource) Column(field string) []any { return s.data[field] }

// Append adds one row. Every declared field must be present so the
// equal-length invariant holds; a missing field is a data-integrity
// failure.
func (s *VisualSource) Append(values map[string]any) error {
	for _, f := range s.fields {
		if _, ok := values[f]; !ok {
			return apperrors.DataIntegrity(fmt.Sprintf("source row is missing field %q", f))
		}
	}
	for _, f := range s.fields {
		s.data[f] = append(s.data[f], values[f])
	}
	return nil
}

// MarshalJSON encodes the source as an object with fields in
// declaration order.
func (s *VisualSource) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range s.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		col, err := json.Marshal(s.data[f])
		if err != nil {
			return nil, err
		}
		buf.Write(col)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// HoverSpec describes the tooltip attached to one rendered source. The
// hover element follows the pointer and never consumes pointer focus.
type HoverSpec struct {
	Tooltips    []string          `json:"tooltips"`
	FollowMouse bool              `json:"followMouse"`
	Toggleable  bool              `json:"toggleable"`
	Options     map[string]string `json:"options,omitempty"`
}

// RecordSource supplies the prefetched record tables for one chart
// session. *record.MemorySource satisfies it.
type RecordSource interface {
	ExecutionSpans(uniqueName string) *record.RecordTable
	Timeseries(uniqueName string, metric record.Metric) *record.RecordTable
	Converter() record.ClockConverter
}

// sourceBase carries the hover construction and key-to-value assembly
// shared by the concrete source builders.
type sourceBase struct {
	legend *LegendManager
}

// hover builds the tooltip spec for the given source keys. Extra
// options pass through to the renderer untouched.
func (b *sourceBase) hover(keys []string, options map[string]string) HoverSpec {
	tooltips := make([]string, 0, len(keys))
	for _, k := range keys {
		tooltips = append(tooltips, "@"+k)
	}
	return HoverSpec{
		Tooltips:    tooltips,
		FollowMouse: true,
		Toggleable:  false,
		Options:     options,
	}
}

// dataDict resolves each source key to a "key = value" string,
// preferring the entity attribute of the same name and falling back to
// the key's description rule.
func (b *sourceBase) dataDict(e domain.Entity, keys []string) (map[string]any, error) {
	dict := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := attributeValue(e, k); ok {
			dict[k] = fmt.Sprintf("%s = %s", k, v)
			continue
		}
		desc, err := b.description(k, e)
		if err != nil {
			return nil, err
		}
		dict[k] = desc
	}
	return dict, nil
}

// description resolves keys that have no direct entity attribute.
func (b *sourceBase) description(key string, e domain.Entity) (string, error) {
	switch key {
	case "legend_label":
		return "legend_label = " + b.legend.LabelFor(e), nil
	case "callback_param":
		cb, ok := e.(*domain.Callback)
		if !ok {
			return "", apperrors.UnsupportedKey(key)
		}
		switch cb.CallbackType {
		case domain.CallbackTypeTimer:
			return fmt.Sprintf("period_ns = %d", cb.PeriodNs), nil
		case domain.CallbackTypeSubscription:
			return "subscribe_topic_name = " + cb.SubscribeTopicName, nil
		}
		return "", apperrors.UnsupportedKey(key)
	}
	return "", apperrors.UnsupportedKey(key)
}
