// Package apierror defines the error envelope the POS front-end expects:
// a single "detail" string it can show on screen. Remote FACDIN errors are
// already relayed verbatim; every error generated locally goes through here
// so the UI never sees a GORM or driver message.
package apierror

// APIError is the body of every locally-generated 4xx/5xx response.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError carries per-field messages alongside the detail, so the
// UI can mark the offending inputs on the capture form.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
