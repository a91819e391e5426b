package dto

// APIResponse is the envelope returned for every outcome. Success is derived
// from the status code, never set independently.
type APIResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// NewAPIResponse builds a success envelope.
func NewAPIResponse(statusCode int, data any, message string) APIResponse {
	return APIResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}

// APIErrorResponse is the envelope returned for failures.
type APIErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// NewAPIErrorResponse builds an error envelope.
func NewAPIErrorResponse(statusCode int, message string, errs ...string) APIErrorResponse {
	if errs == nil {
		errs = []string{}
	}
	return APIErrorResponse{
		StatusCode: statusCode,
		Message:    message,
		Success:    false,
		Errors:     errs,
	}
}
