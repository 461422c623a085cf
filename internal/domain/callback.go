package domain

// CallbackType distinguishes how a callback is triggered.
type CallbackType string

const (
	CallbackTypeTimer        CallbackType = "timer_callback"
	CallbackTypeSubscription CallbackType = "subscription_callback"
	CallbackTypeService      CallbackType = "service_callback"
)

// Callback is a scheduled unit of work on a node. Timer callbacks carry
// PeriodNs, subscription callbacks carry SubscribeTopicName.
type Callback struct {
	NodeName           string       `json:"nodeName" yaml:"node_name"`
	CallbackName       string       `json:"callbackName" yaml:"callback_name"`
	CallbackType       CallbackType `json:"callbackType" yaml:"callback_type"`
	Symbol             string       `json:"symbol" yaml:"symbol"`
	PeriodNs           int64        `json:"periodNs,omitempty" yaml:"period_ns,omitempty"`
	SubscribeTopicName string       `json:"subscribeTopicName,omitempty" yaml:"subscribe_topic_name,omitempty"`
}

// Kind implements Entity.
func (c *Callback) Kind() EntityKind { return KindCallback }

// UniqueName implements Entity. Callback names are unique per node.
func (c *Callback) UniqueName() string { return c.NodeName + "/" + c.CallbackName }

// CallbackGroup is a set of callbacks scheduled together by one executor.
type CallbackGroup struct {
	GroupName string      `json:"groupName" yaml:"callback_group_name"`
	NodeName  string      `json:"nodeName" yaml:"node_name"`
	Callbacks []*Callback `json:"callbacks" yaml:"-"`
}

// UniqueName returns the group identifier within one trace session.
func (g *CallbackGroup) UniqueName() string { return g.NodeName + "/" + g.GroupName }
