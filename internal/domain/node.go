package domain

// Node is one process-level participant in the trace: it owns callback
// groups and topic endpoints. CallbackGroups may be nil when the
// architecture description carries no scheduling information for the
// node; the plot layer treats that as an invalid target.
type Node struct {
	NodeName       string           `json:"nodeName"`
	CallbackGroups []*CallbackGroup `json:"callbackGroups,omitempty"`
	Publishers     []*Publisher     `json:"publishers,omitempty"`
	Subscriptions  []*Subscription  `json:"subscriptions,omitempty"`
}

// Callbacks returns all callbacks across the node's callback groups.
func (n *Node) Callbacks() []*Callback {
	var cbs []*Callback
	for _, g := range n.CallbackGroups {
		cbs = append(cbs, g.Callbacks...)
	}
	return cbs
}

// Executor groups callback groups scheduled by one executor thread pool.
type Executor struct {
	ExecutorName   string           `json:"executorName"`
	CallbackGroups []*CallbackGroup `json:"callbackGroups,omitempty"`
}

// Application is the whole traced system: every node plus the named
// causal paths declared in the architecture description.
type Application struct {
	Nodes []*Node `json:"nodes"`
	Paths []*Path `json:"paths,omitempty"`
}

// CallbackGroups returns the callback groups of every node, nil when no
// node carries scheduling information.
func (a *Application) CallbackGroups() []*CallbackGroup {
	var groups []*CallbackGroup
	for _, n := range a.Nodes {
		groups = append(groups, n.CallbackGroups...)
	}
	return groups
}

// FindNode returns the node with the given name, nil if absent.
func (a *Application) FindNode(name string) *Node {
	for _, n := range a.Nodes {
		if n.NodeName == name {
			return n
		}
	}
	return nil
}

// FindPath returns the named causal path, nil if absent.
func (a *Application) FindPath(name string) *Path {
	for _, p := range a.Paths {
		if p.PathName == name {
			return p
		}
	}
	return nil
}

// FindCallbackGroup returns the callback group with the given unique
// name across all nodes, nil if absent.
func (a *Application) FindCallbackGroup(uniqueName string) *CallbackGroup {
	for _, n := range a.Nodes {
		for _, g := range n.CallbackGroups {
			if g.UniqueName() == uniqueName {
				return g
			}
		}
	}
	return nil
}
