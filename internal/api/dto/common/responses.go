package common

import "github.com/osa911/formintake/internal/api/validation"

// Client-visible error messages
const (
	MsgInvalidRecaptcha   = "Invalid reCAPTCHA. Please try again."
	MsgInternalServer     = "Internal server error"
	MsgInvalidBody        = "Invalid request body"
	MsgInvalidSubmission  = "Invalid submission"
	MsgBodyTooLarge       = "Request body too large"
	MsgTooManyRequests    = "Too many requests, please try again later."
	MsgHealthOK           = "Health check OK"
	MsgDatabaseConnection = "Database connection error"
)

// ErrorResponse is the body of every JSON error. Fields is only set for
// validation failures.
type ErrorResponse struct {
	Error  string                       `json:"error"`
	Fields []validation.ValidationError `json:"fields,omitempty"`
}

// MessageResponse is a standardized message response structure
type MessageResponse struct {
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// NewMessageResponse creates a new success response with a simple message
func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}

// Success messages
const (
	MsgHelpAdded    = "Help data added successfully"
	MsgContactAdded = "Contact data added successfully"
)
