package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Login godoc
// @Summary Log in
// @Description Returns the account's session token, issuing one when the account is logged out.
// @Tags Sessions
// @Accept json
// @Produce json
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	payload, ok := decodePayload(c)
	if !ok {
		return
	}

	in, err := h.validator.ValidateLogin(payload)
	if err != nil {
		RespondWithMappedError(c, h.logger, err, loginErrorCases)
		return
	}

	result, err := h.sessions.Login(c.Request.Context(), in)
	if err != nil {
		RespondWithMappedError(c, h.logger, err, loginErrorCases)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Message: "Logged in successfully", Token: result.Token})
}

// Logout godoc
// @Summary Log out
// @Description Clears the session token when the supplied token is the current one.
// @Tags Sessions
// @Accept json
// @Produce json
// @Success 200 {object} LogoutResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/logout [put]
func (h *AuthHandler) Logout(c *gin.Context) {
	payload, ok := decodePayload(c)
	if !ok {
		return
	}

	in, err := h.validator.ValidateLogout(payload)
	if err != nil {
		RespondWithMappedError(c, h.logger, err, logoutErrorCases)
		return
	}

	if _, err := h.sessions.Logout(c.Request.Context(), in); err != nil {
		RespondWithMappedError(c, h.logger, err, logoutErrorCases)
		return
	}

	c.JSON(http.StatusOK, LogoutResponse{Message: "Logged out for " + in.Username})
}
