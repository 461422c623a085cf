// Package record models the trace record tables consumed by the plot
// pipeline: ordered rows over named nanosecond-valued columns, time
// range clipping, and clock conversion between trace and simulation
// time. Tables are materialized in memory by upstream providers before
// the pipeline runs.
package record
