// Package errors provides the application error taxonomy.
//
// All pipeline failures are AppError values with a stable code:
// INVALID_ARGUMENT for empty or absent required entity collections,
// UNSUPPORTED_TYPE for enum-valued options outside their supported set,
// UNSUPPORTED_KEY for hover keys with no resolvable value, and
// DATA_INTEGRITY for missing values in consumed record columns.
// Errors propagate unmodified to the caller; the HTTP layer maps them
// to status codes via GetStatusCode.
package errors
