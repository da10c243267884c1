// Package access gates destructive operations behind a shared secret.
package access

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var ErrForbidden = errors.New("that's not allowed")

const deniedMessage = "Sorry, that's not allowed. Make sure you have the correct api_key."

type Guard struct {
	secret []byte
}

// NewGuard builds a guard for secret. An empty secret denies everything.
func NewGuard(secret string) *Guard {
	return &Guard{secret: []byte(secret)}
}

// Check returns ErrForbidden unless key equals the configured secret exactly.
func (g *Guard) Check(key string) error {
	if len(g.secret) == 0 || subtle.ConstantTimeCompare([]byte(key), g.secret) != 1 {
		return ErrForbidden
	}
	return nil
}

// RequireAPIKey rejects the request with 403 unless the apikey query value
// matches. The check runs before any route handler touches storage.
func (g *Guard) RequireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := g.Check(c.Query("apikey")); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"response": gin.H{"error": deniedMessage}})
			return
		}
		c.Next()
	}
}
