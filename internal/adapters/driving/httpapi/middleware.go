package httpapi

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

// userIDKey is the gin context key the auth middleware stores the
// resolved user ID under.
const userIDKey = "anchor_user_id"

// userID retrieves the authenticated user ID set by the auth middleware.
func userID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// authMiddleware verifies the bearer token and mirrors the identity
// into the local user store so every handler can assume the row exists.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := s.verifier.Verify(c.Request.Context(), extractBearerToken(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		user, err := s.services.Users.Sync(c.Request.Context(), driving.SyncUserInput{
			ID:        identity.UserID,
			Email:     identity.Email,
			FirstName: identity.FirstName,
			LastName:  identity.LastName,
			ImageURL:  identity.ImageURL,
		})
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "user sync failed"})
			return
		}

		c.Set(userIDKey, user.ID)
		c.Next()
	}
}

// extractBearerToken parses "Authorization: Bearer <token>". The scheme
// is case-insensitive per RFC 7235.
func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// requestLogger logs one line per request at debug level.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
