// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package so that internal
// details (DB errors, stack traces) never reach the response body.
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps per-field schema violations.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation error", Fields: fields}
}

// Message is the body returned by delete and register endpoints.
type Message struct {
	Message string `json:"message"`
}

func NewMessage(msg string) *Message {
	return &Message{Message: msg}
}
