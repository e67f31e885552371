package service

import (
	"nexuscrm/logutils"
	"nexuscrm/model"
	"nexuscrm/response"

	"github.com/gin-gonic/gin"
)

type CreateContactReq struct {
	Name     string  `json:"name" binding:"required,max=255"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Company  *string `json:"company" binding:"omitempty,max=255"`
	JobTitle *string `json:"job_title" binding:"omitempty,max=255"`
}

type UpdateContactReq struct {
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Company  *string `json:"company" binding:"omitempty,max=255"`
	JobTitle *string `json:"job_title" binding:"omitempty,max=255"`
}

func (h *Handler) RegisterContact(g *gin.RouterGroup) {
	g.GET("/contacts", h.ListContacts)
	g.POST("/contacts", h.CreateContact)
	g.GET("/contacts/:id", h.ShowContact)
	g.PUT("/contacts/:id", h.UpdateContact)
	g.DELETE("/contacts/:id", h.DeleteContact)
}

func (h *Handler) ListContacts(c *gin.Context) {
	contacts, err := h.store.ListContactsByOwner(c.Request.Context(), currentUserID(c))
	if err != nil {
		logutils.Log.Error("list contacts: ", err)
		response.Error(c, "failed to list contacts", response.NotSpecified)
		return
	}
	response.Success(c, contacts)
}

func (h *Handler) CreateContact(c *gin.Context) {
	var req CreateContactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	contact := model.Contact{
		OwnerID:  currentUserID(c),
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Company:  req.Company,
		JobTitle: req.JobTitle,
	}
	if err := h.store.CreateContact(c.Request.Context(), &contact); err != nil {
		logutils.Log.Error("create contact: ", err)
		response.Error(c, "failed to create contact", response.NotSpecified)
		return
	}
	response.Success(c, contact)
}

// findOwnContact resolves the contact and enforces owner-only access.
func (h *Handler) findOwnContact(c *gin.Context) (*model.Contact, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return nil, false
	}
	contact, err := h.store.GetContact(c.Request.Context(), id)
	if err != nil {
		response.NotFoundError(c, "contact not found")
		return nil, false
	}
	if contact.OwnerID != currentUserID(c) {
		response.ForbiddenError(c, "no access to this contact")
		return nil, false
	}
	return contact, true
}

func (h *Handler) ShowContact(c *gin.Context) {
	contact, ok := h.findOwnContact(c)
	if !ok {
		return
	}
	response.Success(c, contact)
}

func (h *Handler) UpdateContact(c *gin.Context) {
	contact, ok := h.findOwnContact(c)
	if !ok {
		return
	}
	var req UpdateContactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	if req.Name != nil {
		contact.Name = *req.Name
	}
	if req.Email != nil {
		contact.Email = req.Email
	}
	if req.Phone != nil {
		contact.Phone = req.Phone
	}
	if req.Company != nil {
		contact.Company = req.Company
	}
	if req.JobTitle != nil {
		contact.JobTitle = req.JobTitle
	}
	if err := h.store.UpdateContact(c.Request.Context(), contact); err != nil {
		logutils.Log.Error("update contact: ", err)
		response.Error(c, "failed to update contact", response.NotSpecified)
		return
	}
	response.Success(c, contact)
}

func (h *Handler) DeleteContact(c *gin.Context) {
	contact, ok := h.findOwnContact(c)
	if !ok {
		return
	}
	if err := h.store.DeleteContact(c.Request.Context(), contact.ID); err != nil {
		logutils.Log.Error("delete contact: ", err)
		response.Error(c, "failed to delete contact", response.NotSpecified)
		return
	}
	response.Success(c, nil)
}
