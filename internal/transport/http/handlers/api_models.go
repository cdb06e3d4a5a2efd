package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Machine-readable error codes carried in ErrorResponse.Code.
const (
	CodeMissingField      = "missing_field"
	CodeInvalidField      = "invalid_field"
	CodeInvalidEmail      = "invalid_email"
	CodeInvalidPhone      = "invalid_phone"
	CodeDuplicateUsername = "duplicate_username"
	CodeUserNotFound      = "user_not_found"
	CodeIncorrectPassword = "incorrect_password"
	CodeIncorrectUsername = "incorrect_username"
	CodeTokenMismatch     = "token_mismatch"
	CodeInvalidPayload    = "invalid_payload"
	CodeInternalError     = "internal_error"
)

// ErrorResponse represents a generic error payload with trace ID for debugging.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context
func NewErrorResponse(c *gin.Context, code, message string) ErrorResponse {
	traceID, _ := c.Get("trace_id")
	traceIDStr, _ := traceID.(string)

	return ErrorResponse{
		Error:   message,
		Code:    code,
		TraceID: traceIDStr,
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse is returned for a successful login.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// LogoutResponse is returned for a successful logout. The capitalized key is
// what existing clients read.
type LogoutResponse struct {
	Message string `json:"Message"`
}

// HealthResponse describes the service health payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
	Timestamp time.Time `json:"timestamp"`
}

// ReadyResponse describes readiness probe results with dependency checks.
type ReadyResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
