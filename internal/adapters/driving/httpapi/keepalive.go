package httpapi

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// KeepaliveSecretHeader guards the keepalive endpoint when a secret is
// configured.
const KeepaliveSecretHeader = "X-Keepalive-Secret"

// handleKeepalive pings the database if enough time has passed since
// the last ping. Unauthenticated so an external cron can drive it.
func (s *Server) handleKeepalive(c *gin.Context) {
	if s.cfg.KeepaliveSecret != "" {
		provided := c.GetHeader(KeepaliveSecretHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(s.cfg.KeepaliveSecret)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
	}

	pinged, lastPing, err := s.services.Keepalive.Ping(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if c.Request.Method == http.MethodHead {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pinged": pinged, "lastPing": lastPing})
}
