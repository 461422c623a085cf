package domain

// Path is a causal path: an ordered sequence of communication hops
// connecting a publishing endpoint to a subscribing endpoint across one
// or more nodes.
type Path struct {
	PathName       string           `json:"pathName"`
	Communications []*Communication `json:"communications"`
}

// Entities returns the path's hops as plottable entities, in hop order.
func (p *Path) Entities() []Entity {
	entities := make([]Entity, 0, len(p.Communications))
	for _, comm := range p.Communications {
		entities = append(entities, comm)
	}
	return entities
}
