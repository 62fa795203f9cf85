package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coastline-labs/anchor/internal/adapters/driven/identity"
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

// Identity webhook event types.
const (
	webhookUserCreated = "user.created"
	webhookUserUpdated = "user.updated"
	webhookUserDeleted = "user.deleted"
)

// identityWebhookEvent is the provider's webhook payload.
type identityWebhookEvent struct {
	Type string `json:"type"`
	Data struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		ImageURL  string `json:"image_url"`
	} `json:"data"`
}

// handleIdentityWebhook syncs user lifecycle events from the identity
// provider. The payload is authenticated with an HMAC signature.
func (s *Server) handleIdentityWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable payload"})
		return
	}

	signature := c.GetHeader(identity.SignatureHeader)
	if err := identity.VerifySignature(s.cfg.WebhookSecret, payload, signature); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	var event identityWebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload"})
		return
	}
	if event.Data.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user id"})
		return
	}

	switch event.Type {
	case webhookUserCreated, webhookUserUpdated:
		_, err = s.services.Users.Sync(c.Request.Context(), driving.SyncUserInput{
			ID:        event.Data.ID,
			Email:     event.Data.Email,
			FirstName: event.Data.FirstName,
			LastName:  event.Data.LastName,
			ImageURL:  event.Data.ImageURL,
		})
	case webhookUserDeleted:
		err = s.services.Users.Delete(c.Request.Context(), event.Data.ID)
	default:
		// Unknown event types are acknowledged and skipped.
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
