package dto

// ErrorResponse is the error payload for all failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Common error messages, matching what the frontend expects verbatim.
const (
	MsgUnauthorized       = "Unauthorized"
	MsgInvalidCredentials = "Invalid credentials"
	MsgNotFound           = "Not found"
	MsgNothingToUpdate    = "Nothing to update"
	MsgMilesRequired      = "miles required"
	MsgKeyRequired        = "key required"
	MsgNotPending         = "Entry is not pending"
)

// Error creates an error response with the given message.
func Error(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}
