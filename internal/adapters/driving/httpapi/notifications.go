package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

// createNotificationRequest is the POST /api/notifications payload.
type createNotificationRequest struct {
	ContactID     string     `json:"contactId"`
	InteractionID string     `json:"interactionId"`
	Type          string     `json:"type" binding:"required,oneof=follow_up_email follow_up_call follow_up_meeting general"`
	Title         string     `json:"title" binding:"required"`
	Description   string     `json:"description"`
	DueDate       *time.Time `json:"dueDate"`
}

// updateNotificationRequest is the PATCH /api/notifications/:id payload.
type updateNotificationRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	IsCompleted *bool      `json:"isCompleted"`
}

func (s *Server) handleListNotifications(c *gin.Context) {
	status := domain.NotificationStatus(c.DefaultQuery("status", string(domain.NotificationPending)))
	page, err := s.services.Notifications.List(c.Request.Context(), userID(c), status, pageParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleCreateNotification(c *gin.Context) {
	var req createNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	notification, err := s.services.Notifications.Create(c.Request.Context(), userID(c), driving.CreateNotificationInput{
		ContactID:     req.ContactID,
		InteractionID: req.InteractionID,
		Type:          domain.NotificationType(req.Type),
		Title:         req.Title,
		Description:   req.Description,
		DueDate:       req.DueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, notification)
}

func (s *Server) handleUpdateNotification(c *gin.Context) {
	var req updateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	notification, err := s.services.Notifications.Update(c.Request.Context(), userID(c), c.Param("id"), driving.UpdateNotificationInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}

func (s *Server) handleCompleteNotification(c *gin.Context) {
	notification, err := s.services.Notifications.Complete(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}

func (s *Server) handleDeleteNotification(c *gin.Context) {
	if err := s.services.Notifications.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
