// Package dto contains Data Transfer Objects for HTTP request/response handling.
//
// DTOs provide:
//   - Type-safe request parsing with struct tags
//   - Declarative validation using go-playground/validator
//   - Separation between API contracts and domain types
//
// # Usage
//
// Use dto.ParseAndValidate() in handlers to parse and validate requests:
//
//	var req dto.SchedulingChartRequest
//	if err := dto.ParseAndValidate(c, &req); err != nil {
//	    return err
//	}
//
// # Validation Scope
//
// Struct tags cover shape-level validation (required fields, target
// and entity kinds, non-negative trims). Pipeline-level enums such as
// the x-axis type, coloring rule and metric are validated by the plot
// layer so the supported sets live in one place and surface as
// UNSUPPORTED_TYPE errors.
package dto
