package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

// createContactRequest is the POST /api/contacts payload.
type createContactRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
	JobTitle  string `json:"jobTitle"`
	CompanyID string `json:"companyId"`
}

// updateContactRequest is the PATCH /api/contacts/:id payload. Absent
// fields are left untouched; companyId set to "" detaches the contact.
type updateContactRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	JobTitle  *string `json:"jobTitle"`
	CompanyID *string `json:"companyId"`
}

func (s *Server) handleListContacts(c *gin.Context) {
	opts := domain.ContactListOptions{
		Page:      pageParams(c),
		SortBy:    domain.ContactSortBy(c.Query("sortBy")),
		Order:     domain.SortOrder(c.Query("order")),
		CompanyID: c.Query("companyId"),
		Query:     c.Query("q"),
	}
	page, err := s.services.Contacts.List(c.Request.Context(), userID(c), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleCreateContact(c *gin.Context) {
	var req createContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	contact, err := s.services.Contacts.Create(c.Request.Context(), userID(c), driving.CreateContactInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		JobTitle:  req.JobTitle,
		CompanyID: req.CompanyID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

func (s *Server) handleGetContact(c *gin.Context) {
	detail, err := s.services.Contacts.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (s *Server) handleUpdateContact(c *gin.Context) {
	var req updateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	contact, err := s.services.Contacts.Update(c.Request.Context(), userID(c), c.Param("id"), driving.UpdateContactInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		JobTitle:  req.JobTitle,
		CompanyID: req.CompanyID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (s *Server) handleDeleteContact(c *gin.Context) {
	if err := s.services.Contacts.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
