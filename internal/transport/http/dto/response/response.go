package response

// Response is the envelope of every JSON answer.
type Response struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Message    string      `json:"message,omitempty"`
	RetryAfter int         `json:"retryAfter,omitempty"`
}

func SuccessResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

func SuccessMessage(message string, data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
		Message: message,
	}
}

func ErrorResponse(err string) Response {
	return Response{
		Success: false,
		Error:   err,
	}
}

func RateLimited(retryAfter int) Response {
	return Response{
		Success:    false,
		Error:      "Too many requests, please try again later",
		RetryAfter: retryAfter,
	}
}
