package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// renameThreadRequest is the PATCH /api/threads/:id payload.
type renameThreadRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *Server) handleListThreads(c *gin.Context) {
	page, err := s.services.Threads.List(c.Request.Context(), userID(c), pageParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleGetThread(c *gin.Context) {
	thread, err := s.services.Threads.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, thread)
}

func (s *Server) handleRenameThread(c *gin.Context) {
	var req renameThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	thread, err := s.services.Threads.Rename(c.Request.Context(), userID(c), c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, thread)
}

func (s *Server) handleDeleteThread(c *gin.Context) {
	if err := s.services.Threads.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
