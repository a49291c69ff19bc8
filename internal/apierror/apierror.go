// Package apierror provides the standardized error envelopes for the API.
// All errors returned to clients go through this package so internal
// details (stack traces, DB errors) never leak.
package apierror

// APIError is the canonical error envelope for all 4xx/5xx responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors from request binding.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation failed", Fields: fields}
}

// LineError identifies the failing line of a multi-line request, e.g. a
// sale line whose quantity exceeds stock.
type LineError struct {
	Detail    string `json:"detail"`
	Line      int    `json:"line"`
	ProductID string `json:"product_id"`
}

func NewLine(msg string, line int, productID string) *LineError {
	return &LineError{Detail: msg, Line: line, ProductID: productID}
}
