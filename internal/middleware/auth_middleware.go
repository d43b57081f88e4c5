package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/juvenstu/real-estate-marketplace/internal/apperr"
	"github.com/juvenstu/real-estate-marketplace/internal/httpx"
	"github.com/juvenstu/real-estate-marketplace/internal/utils"
)

// ContextUserID is the gin context key holding the authenticated user id.
const ContextUserID = "user_id"

// AuthRequired gates mutating endpoints behind the session cookie.
// A missing cookie is Unauthenticated, an unverifiable token is Forbidden;
// on success the decoded user id is attached to the request context and
// nothing else happens.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(utils.SessionCookie)
		if err != nil || token == "" {
			httpx.AbortError(c, apperr.Unauthenticated("Unauthorized"))
			return
		}

		claims, err := utils.ValidateToken(token, jwtSecret)
		if err != nil {
			httpx.AbortError(c, apperr.Forbidden("Forbidden"))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// UserID extracts the authenticated user id placed by AuthRequired.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
