// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// ContactRequest is the body of POST /api/contact.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// SubscribeRequest is the body of POST /api/subscribe.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,contains=@"`
}

// ProxyResponse is the simplified result returned by both relay endpoints.
// Message is set on success and Error on failure.
type ProxyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK builds a successful ProxyResponse.
func OK(message string) ProxyResponse {
	return ProxyResponse{Success: true, Message: message}
}

// Fail builds a failed ProxyResponse.
func Fail(errMsg string) ProxyResponse {
	return ProxyResponse{Success: false, Error: errMsg}
}
