package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const welcomePage = "<h1>Surprise babydoll!</h1>"

// Welcome serves the static greeting page.
func Welcome(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(welcomePage))
}
