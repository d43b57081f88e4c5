// Package httpx centralizes the JSON failure shape returned by every endpoint:
// {"success": false, "statusCode": N, "message": "..."}.
package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/juvenstu/real-estate-marketplace/internal/apperr"
	"github.com/juvenstu/real-estate-marketplace/pkg/logger"
)

// Error renders err as the uniform failure payload. Unclassified errors are
// logged and reported as a generic 500 so internals never leak to clients.
func Error(c *gin.Context, err error) {
	statusCode, message := classify(c, err)
	c.JSON(statusCode, gin.H{
		"success":    false,
		"statusCode": statusCode,
		"message":    message,
	})
}

// AbortError renders err like Error and stops the middleware chain.
func AbortError(c *gin.Context, err error) {
	statusCode, message := classify(c, err)
	c.AbortWithStatusJSON(statusCode, gin.H{
		"success":    false,
		"statusCode": statusCode,
		"message":    message,
	})
}

func classify(c *gin.Context, err error) (int, string) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr.StatusCode, appErr.Message
	}

	logger.Log.Error("Unhandled error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	return http.StatusInternalServerError, "Internal Server Error"
}
