package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/jnabil1974/storal.fr-sub003/internal/logging"
)

const (
	bcryptCostFactor = 12

	// APIKeyHeader carries the admin API key. "Authorization: Bearer <key>" is accepted too.
	APIKeyHeader = "X-API-Key"
)

// HashAPIKey generates a bcrypt hash for the given API key secret.
// Use this when provisioning ADMIN_API_KEY_HASH.
func HashAPIKey(apiKeySecret string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(apiKeySecret), bcryptCostFactor)
	if err != nil {
		slog.Error("Failed to generate bcrypt hash for API key", slog.Any("error", err))
		return "", fmt.Errorf("failed to hash api key: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckAPIKey compares a plaintext API key secret with a stored bcrypt hash.
func CheckAPIKey(apiKeySecret, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(apiKeySecret))
	if err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			// Log unexpected errors during comparison
			slog.Warn("Error comparing api key hash", slog.Any("error", err))
		}
		return false
	}
	return true
}

func apiKeyFromRequest(c *gin.Context) string {
	if key := c.GetHeader(APIKeyHeader); key != "" {
		return key
	}
	if bearer, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(bearer)
	}
	return ""
}

// RequireAPIKey rejects requests whose API key does not match hash.
func RequireAPIKey(hash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logCtx := logging.ContextWithHandler(c.Request.Context(), "RequireAPIKey")
		key := apiKeyFromRequest(c)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing API key"})
			return
		}
		if !CheckAPIKey(key, hash) {
			slog.WarnContext(logCtx, "Rejected admin request with invalid API key",
				slog.String("path", c.FullPath()),
				slog.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}
		c.Next()
	}
}
