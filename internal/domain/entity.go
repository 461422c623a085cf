package domain

// EntityKind identifies one of the closed set of trace entity variants.
type EntityKind int

const (
	KindCallback EntityKind = iota
	KindCommunication
	KindPublisher
	KindSubscription
)

// String returns the lowercase kind name used for legend labels.
func (k EntityKind) String() string {
	switch k {
	case KindCallback:
		return "callback"
	case KindCommunication:
		return "communication"
	case KindPublisher:
		return "publisher"
	case KindSubscription:
		return "subscription"
	}
	return "unknown"
}

// Entity is a plottable trace entity. The variant set is closed:
// *Callback, *Communication, *Publisher and *Subscription implement it.
// Entities are always handled by pointer so that identity-keyed caches
// (legend labels) survive attribute changes.
type Entity interface {
	Kind() EntityKind
	// UniqueName returns a stable identifier, unique within one trace
	// session, usable as a record-table lookup key.
	UniqueName() string
}
