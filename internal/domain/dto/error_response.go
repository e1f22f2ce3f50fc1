package dto

import "time"

// ErrorResponse is the JSON error envelope returned by every endpoint.
type ErrorResponse struct {
	Message      string    `json:"message" example:"invalid scenario"`
	ErrorDetails string    `json:"error,omitempty" example:"stress_mult must be positive"`
	Timestamp    time.Time `json:"timestamp" example:"2025-08-20T10:00:00Z"`
}

// Error implements the error interface so handlers can pass the response
// around as a regular error value.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails != "" {
		return e.Message + ": " + e.ErrorDetails
	}
	return e.Message
}

// NewErrorResponse builds an ErrorResponse with the current timestamp.
// A nil err leaves ErrorDetails empty.
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
