// Package repository contains data access implementations for RosTrace.
//
// Repository interfaces are defined at the service layer (consumer-defined
// interfaces); this tree contains the concrete implementations.
//
// # Data Stores
//
//   - ClickHouse: trace record tables (callback execution spans, metric
//     samples, clock conversions) keyed by trace session
//   - PostgreSQL: chart presets
//   - architecture: the YAML application description that chart targets
//     resolve against (a read-only file, not a database)
//
// # Thread Safety
//
// All repository implementations are safe for concurrent use.
// Connection pools are managed at the database layer.
package repository
