package errors

// ErrorInfo contains detailed error information returned to clients.
type ErrorInfo struct {
	Code    string `json:"code"`              // Business error code, e.g., "NICKNAME_TAKEN"
	Details string `json:"details,omitempty"` // Optional extra context
}

// ErrorResponse defines the structure for error response bodies.
// Detail mirrors the original API's top-level field so existing
// frontends keep working.
type ErrorResponse struct {
	Detail string     `json:"detail"`
	Error  *ErrorInfo `json:"error,omitempty"`
}
