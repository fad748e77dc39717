package dto

// APIResponse is the envelope every JSON endpoint wraps its payload in,
// except the review decision endpoint, whose body is its own wire contract.
// On failure Error carries an ErrorDetail and Data is omitted.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty" validate:"omitempty"`
	Error   any    `json:"error,omitempty" validate:"omitempty"`
}

// ErrorDetail pairs a stable machine-readable code with optional
// human-oriented details, typically the list of field validation messages.
type ErrorDetail struct {
	Code    string `json:"code"`
	Details any    `json:"details,omitempty" validate:"omitempty"`
}
