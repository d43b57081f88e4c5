package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/juvenstu/real-estate-marketplace/internal/utils"
)

// setSessionCookie delivers the session token as an HTTP-only cookie so
// client-side scripts cannot read it.
func setSessionCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		utils.SessionCookie,
		token,
		maxAge,
		"/",
		"", // current domain
		secure,
		true, // httpOnly
	)
}

func clearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.SessionCookie, "", -1, "/", "", secure, true)
}
