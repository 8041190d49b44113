package models

// ErrorResponse is the common failure envelope: success=false plus either
// a single message or a list of validation messages.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func NewError(message string) *ErrorResponse {
	return &ErrorResponse{Success: false, Error: message}
}

func NewValidationErrors(errs []string) *ErrorResponse {
	return &ErrorResponse{Success: false, Errors: errs}
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
