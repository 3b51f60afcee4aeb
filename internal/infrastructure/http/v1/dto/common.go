// Package dto provides Data Transfer Objects for API requests/responses.
package dto

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
