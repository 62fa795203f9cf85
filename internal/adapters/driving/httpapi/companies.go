package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

// createCompanyRequest is the POST /api/companies payload.
type createCompanyRequest struct {
	Name        string `json:"name" binding:"required"`
	Website     string `json:"website" binding:"omitempty,url"`
	Industry    string `json:"industry"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// updateCompanyRequest is the PATCH /api/companies/:id payload.
type updateCompanyRequest struct {
	Name        *string `json:"name"`
	Website     *string `json:"website" binding:"omitempty,url"`
	Industry    *string `json:"industry"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
}

func (s *Server) handleListCompanies(c *gin.Context) {
	opts := domain.CompanyListOptions{
		Page:   pageParams(c),
		SortBy: domain.CompanySortBy(c.Query("sortBy")),
		Order:  domain.SortOrder(c.Query("order")),
		Query:  c.Query("q"),
	}
	page, err := s.services.Companies.List(c.Request.Context(), userID(c), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleCreateCompany(c *gin.Context) {
	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	company, err := s.services.Companies.Create(c.Request.Context(), userID(c), driving.CreateCompanyInput{
		Name:        req.Name,
		Website:     req.Website,
		Industry:    req.Industry,
		Address:     req.Address,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

func (s *Server) handleGetCompany(c *gin.Context) {
	company, err := s.services.Companies.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (s *Server) handleUpdateCompany(c *gin.Context) {
	var req updateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	company, err := s.services.Companies.Update(c.Request.Context(), userID(c), c.Param("id"), driving.UpdateCompanyInput{
		Name:        req.Name,
		Website:     req.Website,
		Industry:    req.Industry,
		Address:     req.Address,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (s *Server) handleDeleteCompany(c *gin.Context) {
	if err := s.services.Companies.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
