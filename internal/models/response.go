package models

// APIResponse is the envelope of every API answer.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// NewMessageResponse wraps a short confirmation for actions without a payload.
func NewMessageResponse(message string) APIResponse {
	return APIResponse{Success: true, Data: map[string]string{"message": message}}
}

func NewErrorResponse(message string) APIResponse {
	return APIResponse{Success: false, Error: message}
}

// NewValidationErrorResponse carries per-field messages from a Validate call.
func NewValidationErrorResponse(errors map[string]string) APIResponse {
	return APIResponse{
		Success: false,
		Error:   "Validation failed",
		Errors:  errors,
	}
}
