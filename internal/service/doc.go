// Package service contains the business logic layer for RosTrace.
//
// Services coordinate between handlers and repositories: ChartService
// resolves chart targets against the loaded architecture graph,
// prefetches record tables and drives the plot pipeline; PresetService
// persists named chart configurations; ExportService queues background
// HTML exports.
//
// Services depend on repository interfaces defined in this package,
// following the dependency inversion principle.
//
// # Thread Safety
//
// All services are designed to be safe for concurrent use from
// multiple goroutines.
package service
