// Package handler provides HTTP request handlers for FormSeal.
package handler

import "time"

// Response is the standard API response envelope.
// All JSON responses use this format (except /metrics which uses
// Prometheus format). The guard middleware writes its own rejection
// body, so 403 responses carry the bare code/message pair instead.
//
// @design DS-0302
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
	Details   any    `json:"details,omitempty"` // Additional error details
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      "OK",
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string, details any) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Details:   details,
	}
}

// TokenResponse is the response body for GET /token. Clients submit the
// token and time values under the reported field names.
//
// @design DS-0301
type TokenResponse struct {
	Token      string `json:"token"`
	Time       int64  `json:"time"`
	TokenField string `json:"token_field"`
	TimeField  string `json:"time_field"`
}

// SubmitResponse is the response body for POST /submit.
//
// @design DS-0301
type SubmitResponse struct {
	Accepted bool   `json:"accepted"`
	Name     string `json:"name,omitempty"`
	Message  string `json:"message,omitempty"`
}
