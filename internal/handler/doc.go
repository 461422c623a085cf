// Package handler contains HTTP request handlers for RosTrace.
//
// Handlers are the entry point for HTTP requests, responsible for:
//   - Request parsing and validation
//   - Calling appropriate services
//   - Response formatting
//   - Error response mapping
//
// # Error Handling
//
// Handlers convert pipeline and repository errors to HTTP status codes
// using the apperrors package, so UNSUPPORTED_TYPE and
// INVALID_ARGUMENT surface as 400s, NOT_FOUND as 404, and anything
// unclassified as a logged 500.
package handler
