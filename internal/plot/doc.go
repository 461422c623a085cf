// Package plot turns trace record tables and runtime entities into
// render-ready visual sources: callback scheduling rectangles stacked
// on per-callback vertical bands over full-width context bars, and
// per-entity time-series lines. Sources carry hover metadata resolved
// from a closed per-entity-kind key schema, and legend labels assigned
// by an identity-keyed manager.
//
// The pipeline is a synchronous in-memory transform: record tables are
// materialized by upstream providers, one chart-generation call either
// returns a complete chart or fails with no partial output. A
// SchedulingPlot or TimeSeriesPlot instance owns its legend and band
// state for the duration of one Generate call and is not safe for
// concurrent use.
package plot
