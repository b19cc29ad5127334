package dto

// APIResponse is the envelope shared by every endpoint:
// {success, message?, count?, data?, error?}.
type APIResponse struct {
	Success bool         `json:"success" example:"true"`
	Message string       `json:"message,omitempty" example:"Operation completed successfully"`
	Count   *int         `json:"count,omitempty" example:"12"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// NewSuccessResponse creates a success envelope carrying data.
func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewListResponse creates a success envelope carrying a list and its count.
func NewListResponse(data interface{}, count int) APIResponse {
	return APIResponse{
		Success: true,
		Count:   &count,
		Data:    data,
	}
}

// NewMessageResponse creates a success envelope with only a message.
func NewMessageResponse(message string) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
	}
}

// NewErrorResponse creates a failure envelope.
func NewErrorResponse(errorDetail *ErrorDetail) APIResponse {
	return APIResponse{
		Success: false,
		Error:   errorDetail,
	}
}
