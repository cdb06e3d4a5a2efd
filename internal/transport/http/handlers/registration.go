package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Signup godoc
// @Summary Register a new account
// @Description Creates a logged-out account. Usernames are unique regardless of letter case.
// @Tags Accounts
// @Accept json
// @Produce json
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	payload, ok := decodePayload(c)
	if !ok {
		return
	}

	in, err := h.validator.ValidateSignup(payload)
	if err != nil {
		RespondWithMappedError(c, h.logger, err, signupErrorCases)
		return
	}

	if _, err := h.registration.Register(c.Request.Context(), in); err != nil {
		RespondWithMappedError(c, h.logger, err, signupErrorCases)
		return
	}

	c.JSON(http.StatusCreated, MessageResponse{Message: "Signed up successfully"})
}
