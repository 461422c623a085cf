package domain

// Communication is one topic edge between a publishing and a subscribing
// node.
type Communication struct {
	TopicName     string `json:"topicName"`
	PublishNode   *Node  `json:"-"`
	SubscribeNode *Node  `json:"-"`
}

// Kind implements Entity.
func (c *Communication) Kind() EntityKind { return KindCommunication }

// UniqueName implements Entity.
func (c *Communication) UniqueName() string {
	return c.PublishNodeName() + "|" + c.TopicName + "|" + c.SubscribeNodeName()
}

// PublishNodeName returns the publishing node name, empty if unresolved.
func (c *Communication) PublishNodeName() string {
	if c.PublishNode == nil {
		return ""
	}
	return c.PublishNode.NodeName
}

// SubscribeNodeName returns the subscribing node name, empty if unresolved.
func (c *Communication) SubscribeNodeName() string {
	if c.SubscribeNode == nil {
		return ""
	}
	return c.SubscribeNode.NodeName
}

// Publisher is a per-node publishing endpoint for one topic.
type Publisher struct {
	NodeName  string `json:"nodeName"`
	TopicName string `json:"topicName"`
}

// Kind implements Entity.
func (p *Publisher) Kind() EntityKind { return KindPublisher }

// UniqueName implements Entity.
func (p *Publisher) UniqueName() string { return p.NodeName + "|pub|" + p.TopicName }

// Subscription is a per-node subscribing endpoint for one topic.
type Subscription struct {
	NodeName  string `json:"nodeName"`
	TopicName string `json:"topicName"`
}

// Kind implements Entity.
func (s *Subscription) Kind() EntityKind { return KindSubscription }

// UniqueName implements Entity.
func (s *Subscription) UniqueName() string { return s.NodeName + "|sub|" + s.TopicName }
