package dto

import "time"

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Message      string    `json:"message" example:"client not found"`
	ErrorDetails string    `json:"error,omitempty" example:"client with id \"a1b2\" not found"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewErrorResponse builds an ErrorResponse; err, when present, fills ErrorDetails.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}

func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}
