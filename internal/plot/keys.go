package plot

import (
	"github.com/rostrace/rostrace/internal/domain"
	apperrors "github.com/rostrace/rostrace/internal/pkg/errors"
)

// schedulingRectKeys is the hover key schema for scheduling rectangles.
// Only callbacks own execution spans, so the table is callback-only.
func schedulingRectKeys(e domain.Entity) ([]string, error) {
	if _, ok := e.(*domain.Callback); ok {
		return []string{"legend_label", "callback_start", "callback_end", "latency"}, nil
	}
	return nil, apperrors.UnsupportedType("entity", e.Kind().String(), []string{"callback"})
}

// seriesKeys is the hover key schema for time-series lines and context
// bars: a closed table over the entity kinds.
func seriesKeys(e domain.Entity) ([]string, error) {
	switch e.Kind() {
	case domain.KindCallback:
		return []string{
			"legend_label", "node_name", "callback_name",
			"callback_type", "callback_param", "symbol",
		}, nil
	case domain.KindCommunication:
		return []string{
			"legend_label", "topic_name",
			"publish_node_name", "subscribe_node_name",
		}, nil
	case domain.KindPublisher, domain.KindSubscription:
		return []string{"legend_label", "node_name", "topic_name"}, nil
	}
	return nil, apperrors.UnsupportedType("entity", e.Kind().String(),
		[]string{"callback", "communication", "publisher", "subscription"})
}

// attributeValue reads the entity attribute matching a source key.
// Returns false when the key has no attribute on the entity's kind;
// the caller then consults the description rules.
func attributeValue(e domain.Entity, key string) (string, bool) {
	switch v := e.(type) {
	case *domain.Callback:
		switch key {
		case "node_name":
			return v.NodeName, true
		case "callback_name":
			return v.CallbackName, true
		case "callback_type":
			return string(v.CallbackType), true
		case "symbol":
			return v.Symbol, true
		}
	case *domain.Communication:
		switch key {
		case "topic_name":
			return v.TopicName, true
		case "publish_node_name":
			return v.PublishNodeName(), true
		case "subscribe_node_name":
			return v.SubscribeNodeName(), true
		}
	case *domain.Publisher:
		switch key {
		case "node_name":
			return v.NodeName, true
		case "topic_name":
			return v.TopicName, true
		}
	case *domain.Subscription:
		switch key {
		case "node_name":
			return v.NodeName, true
		case "topic_name":
			return v.TopicName, true
		}
	}
	return "", false
}
