package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

// createInteractionRequest is the POST /api/interactions payload.
type createInteractionRequest struct {
	ContactID  string     `json:"contactId" binding:"required"`
	Type       string     `json:"type" binding:"required,oneof=call email meeting other"`
	Summary    string     `json:"summary"`
	Outcome    string     `json:"outcome"`
	Sentiment  string     `json:"sentiment" binding:"omitempty,oneof=positive neutral negative"`
	OccurredAt *time.Time `json:"occurredAt"`
}

// updateInteractionRequest is the PATCH /api/interactions/:id payload.
type updateInteractionRequest struct {
	Type       *string    `json:"type" binding:"omitempty,oneof=call email meeting other"`
	Summary    *string    `json:"summary"`
	Outcome    *string    `json:"outcome"`
	Sentiment  *string    `json:"sentiment" binding:"omitempty,oneof=positive neutral negative"`
	OccurredAt *time.Time `json:"occurredAt"`
}

func (s *Server) handleListInteractions(c *gin.Context) {
	page, err := s.services.Interactions.List(c.Request.Context(), userID(c), c.Query("contactId"), pageParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleCreateInteraction(c *gin.Context) {
	var req createInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	interaction, err := s.services.Interactions.Create(c.Request.Context(), userID(c), driving.CreateInteractionInput{
		ContactID:  req.ContactID,
		Type:       domain.InteractionType(req.Type),
		Summary:    req.Summary,
		Outcome:    req.Outcome,
		Sentiment:  domain.Sentiment(req.Sentiment),
		OccurredAt: req.OccurredAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, interaction)
}

func (s *Server) handleGetInteraction(c *gin.Context) {
	interaction, err := s.services.Interactions.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, interaction)
}

func (s *Server) handleUpdateInteraction(c *gin.Context) {
	var req updateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	input := driving.UpdateInteractionInput{
		Summary:    req.Summary,
		Outcome:    req.Outcome,
		OccurredAt: req.OccurredAt,
	}
	if req.Type != nil {
		t := domain.InteractionType(*req.Type)
		input.Type = &t
	}
	if req.Sentiment != nil {
		sentiment := domain.Sentiment(*req.Sentiment)
		input.Sentiment = &sentiment
	}
	interaction, err := s.services.Interactions.Update(c.Request.Context(), userID(c), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, interaction)
}

func (s *Server) handleDeleteInteraction(c *gin.Context) {
	if err := s.services.Interactions.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
