// Package domain defines the runtime entity graph of a traced robotics
// application: nodes, callback groups, callbacks, topic communications
// and endpoints, and named causal paths. The graph is read-only input
// to the plot pipeline; entities are referenced by pointer so identity
// semantics hold across the pipeline.
package domain
