package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

// createNoteRequest is the POST /api/notes payload.
type createNoteRequest struct {
	Content       string `json:"content" binding:"required"`
	ContactID     string `json:"contactId"`
	CompanyID     string `json:"companyId"`
	InteractionID string `json:"interactionId"`
}

// updateNoteRequest is the PATCH /api/notes/:id payload.
type updateNoteRequest struct {
	Content string `json:"content" binding:"required"`
}

func (s *Server) handleListNotes(c *gin.Context) {
	filters := domain.NoteFilters{
		ContactID:     c.Query("contactId"),
		CompanyID:     c.Query("companyId"),
		InteractionID: c.Query("interactionId"),
		Query:         c.Query("q"),
	}
	page, err := s.services.Notes.List(c.Request.Context(), userID(c), filters, pageParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleCreateNote(c *gin.Context) {
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	note, err := s.services.Notes.Create(c.Request.Context(), userID(c), driving.CreateNoteInput{
		Content:       req.Content,
		ContactID:     req.ContactID,
		CompanyID:     req.CompanyID,
		InteractionID: req.InteractionID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (s *Server) handleGetNote(c *gin.Context) {
	note, err := s.services.Notes.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func (s *Server) handleUpdateNote(c *gin.Context) {
	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	note, err := s.services.Notes.Update(c.Request.Context(), userID(c), c.Param("id"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func (s *Server) handleDeleteNote(c *gin.Context) {
	if err := s.services.Notes.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
