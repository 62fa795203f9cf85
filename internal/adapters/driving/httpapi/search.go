package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

func (s *Server) handleHybridSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}
	result, err := s.services.Search.HybridSearch(c.Request.Context(), userID(c), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleFuzzySearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	matches, err := s.services.Search.FuzzySearch(c.Request.Context(), userID(c), query, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": matches})
}

func (s *Server) handleSemanticSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	var entityTypes []domain.EntityType
	for _, raw := range c.QueryArray("entityType") {
		entityType := domain.EntityType(raw)
		if !entityType.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown entity type"})
			return
		}
		entityTypes = append(entityTypes, entityType)
	}
	hits, err := s.services.Search.SemanticSearch(c.Request.Context(), userID(c), query, entityTypes, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": hits})
}

func (s *Server) handleSearchCompanies(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	matches, err := s.services.Search.FuzzySearchCompanies(c.Request.Context(), userID(c), query, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": matches})
}

func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.services.Stats.Dashboard(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
