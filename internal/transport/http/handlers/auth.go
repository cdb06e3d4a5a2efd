package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/legalmonkey/MIC-GitHub-Submission/internal/usecase"
)

// AuthHandler exposes signup, login and logout.
type AuthHandler struct {
	validator    *usecase.InputValidator
	registration *usecase.RegistrationService
	sessions     *usecase.SessionService
	logger       *zap.Logger
}

// AuthHandlerOption customises an AuthHandler.
type AuthHandlerOption func(*AuthHandler)

// WithLogger sets the logger used for unexpected failures.
func WithLogger(log *zap.Logger) AuthHandlerOption {
	return func(h *AuthHandler) {
		if log != nil {
			h.logger = log
		}
	}
}

// NewAuthHandler wires the handler to its services.
func NewAuthHandler(registration *usecase.RegistrationService, sessions *usecase.SessionService, opts ...AuthHandlerOption) *AuthHandler {
	h := &AuthHandler{
		validator:    usecase.NewInputValidator(),
		registration: registration,
		sessions:     sessions,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes binds the account endpoints to r.
func (h *AuthHandler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	r.PUT("/logout", h.Logout)
}

// decodePayload reads the body as a JSON object. It answers the request
// itself and returns false when the body is not one.
func decodePayload(c *gin.Context) (usecase.Payload, bool) {
	var payload usecase.Payload
	if err := c.ShouldBindJSON(&payload); err != nil || payload == nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, CodeInvalidPayload, "Request body must be a JSON object"))
		return nil, false
	}
	return payload, true
}
