package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

// chatRequest is the POST /api/chat payload. An empty threadId starts a
// new thread.
type chatRequest struct {
	ThreadID string `json:"threadId"`
	Message  string `json:"message" binding:"required"`
}

// handleChat runs one assistant turn and returns the reply as JSON.
func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	reply, err := s.services.Assistant.SendMessage(c.Request.Context(), userID(c), req.ThreadID, req.Message, nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// handleChatStream runs one assistant turn and streams progress events
// over SSE. The final "done" event carries the thread ID; a failed turn
// ends with an "error" event instead.
func (s *Server) handleChatStream(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	sink := func(event driving.AssistantEvent) {
		writeSSE(c, event)
	}

	_, err := s.services.Assistant.SendMessage(c.Request.Context(), userID(c), req.ThreadID, req.Message, sink)
	if err != nil {
		writeSSE(c, driving.AssistantEvent{
			Type:  driving.AssistantEventError,
			Error: err.Error(),
		})
	}
}

// writeSSE serialises one event as an SSE data frame and flushes it.
func writeSSE(c *gin.Context, event driving.AssistantEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	c.Writer.WriteString("data: ")
	c.Writer.Write(payload)
	c.Writer.WriteString("\n\n")
	c.Writer.Flush()
}
