package response

// Response - конверт для destinations, tours и site-content. Storage и
// Degraded заполняются, когда известен backend, сохранивший запись.
type Response struct {
	Success  bool   `json:"success"`
	Data     any    `json:"data,omitempty"`
	Message  string `json:"message,omitempty"`
	Storage  string `json:"storage,omitempty"`
	Degraded bool   `json:"degraded,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func SuccessResponse(data any, message string) Response {
	return Response{
		Success: true,
		Data:    data,
		Message: message,
	}
}

func ErrorResponseWithMessage(code, message string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   code,
		Message: message,
	}
}
