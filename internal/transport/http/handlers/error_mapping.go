package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/legalmonkey/MIC-GitHub-Submission/internal/core/domain"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/infra/logger"
)

// ErrorCase maps a sentinel error to an HTTP status code and response message.
type ErrorCase struct {
	Err     error
	Status  int
	Code    string
	Message string
}

// RespondWithMappedError resolves err against cases in order. Unmatched errors
// are logged and answered with a 500 that does not leak internals.
func RespondWithMappedError(c *gin.Context, log *zap.Logger, err error, cases []ErrorCase) {
	if err == nil {
		c.Status(http.StatusOK)
		return
	}

	for _, cs := range cases {
		if cs.Err == nil {
			continue
		}
		if errors.Is(err, cs.Err) {
			message := cs.Message
			if message == "" {
				message = err.Error()
			}
			c.JSON(cs.Status, NewErrorResponse(c, cs.Code, message))
			return
		}
	}

	logger.WithContext(c.Request.Context(), log).Error("request failed",
		zap.String("path", c.FullPath()),
		zap.String("trace_id", c.GetString("trace_id")),
		zap.Error(err),
	)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, NewErrorResponse(c, CodeInternalError, "Internal server error"))
}

// invalidFieldCase reports a non-string field using the error's own message.
var invalidFieldCase = ErrorCase{Err: domain.ErrInvalidField, Status: http.StatusBadRequest, Code: CodeInvalidField}

var signupErrorCases = []ErrorCase{
	{Err: domain.ErrMissingField, Status: http.StatusBadRequest, Code: CodeMissingField, Message: "Input must contain all details (name, username, email, phone, password)"},
	invalidFieldCase,
	{Err: domain.ErrInvalidEmail, Status: http.StatusBadRequest, Code: CodeInvalidEmail, Message: "Email address is invalid"},
	{Err: domain.ErrInvalidPhone, Status: http.StatusBadRequest, Code: CodeInvalidPhone, Message: "Enter valid 10-digit phone number"},
	{Err: domain.ErrDuplicateUsername, Status: http.StatusBadRequest, Code: CodeDuplicateUsername, Message: "Username already exists"},
}

var loginErrorCases = []ErrorCase{
	{Err: domain.ErrMissingField, Status: http.StatusBadRequest, Code: CodeMissingField, Message: "Missing username or password"},
	invalidFieldCase,
	{Err: domain.ErrUserNotFound, Status: http.StatusNotFound, Code: CodeUserNotFound, Message: "Username not found"},
	{Err: domain.ErrIncorrectPassword, Status: http.StatusNotFound, Code: CodeIncorrectPassword, Message: "Incorrect password"},
}

var logoutErrorCases = []ErrorCase{
	{Err: domain.ErrMissingToken, Status: http.StatusBadRequest, Code: CodeMissingField, Message: "Pass user token for logging out"},
	{Err: domain.ErrMissingField, Status: http.StatusBadRequest, Code: CodeMissingField, Message: "Pass username for logging out"},
	invalidFieldCase,
	{Err: domain.ErrIncorrectUsername, Status: http.StatusNotFound, Code: CodeIncorrectUsername, Message: "Incorrect username"},
	{Err: domain.ErrTokenMismatch, Status: http.StatusBadRequest, Code: CodeTokenMismatch, Message: "Token error / user already logged out"},
}
