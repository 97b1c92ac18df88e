package api

import (
	"context"
	"net/http"
	"strings"

	"portfolio-api/internal/apperrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenVerifier resolves a session token to the admin account.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

const accountKey = "account"

func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequireAdmin rejects requests without a valid "Authorization: Bearer"
// session token.
func RequireAdmin(verifier TokenVerifier, r responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			r.fail(c, apperrors.Unauthorized("Missing session token"))
			return
		}
		account, err := verifier.Verify(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			if _, ok := apperrors.As(err); !ok {
				err = apperrors.Unauthorized("Invalid or expired session")
			}
			r.fail(c, err)
			return
		}
		c.Set(accountKey, account)
		c.Next()
	}
}

// Recovery turns a panic into a 500 response.
func Recovery(log *zap.SugaredLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Errorw("panic while handling request", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}
