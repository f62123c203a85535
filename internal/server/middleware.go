package server

import (
	"net/http"
	"strings"
	"time"

	"best-offer/internal/auth"
	"best-offer/internal/offererrors"
	"best-offer/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// AuthMiddleware resolves the bearer token to an actor identity and gates
// unverified emails before any engine work runs.
func AuthMiddleware(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			utils.JSONError(c, http.StatusUnauthorized, "missing bearer token", offererrors.CodeUnauthorized, nil)
			c.Abort()
			return
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "invalid or expired token", offererrors.CodeUnauthorized, nil)
			c.Abort()
			return
		}
		if !identity.EmailVerified {
			utils.JSONError(c, http.StatusForbidden, "email address must be verified before making offers", offererrors.CodeEmailNotVerified, nil)
			c.Abort()
			return
		}

		c.Set(auth.ActorKey, identity.UserID)
		c.Next()
	}
}
