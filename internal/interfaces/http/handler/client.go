package handler

import (
	partnerapp "github.com/agency/backend/internal/application/partner"
	"github.com/agency/backend/internal/domain/partner"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClientHandler handles client (traveler) endpoints.
type ClientHandler struct {
	BaseHandler
	partnerService *partnerapp.Service
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(partnerService *partnerapp.Service) *ClientHandler {
	return &ClientHandler{partnerService: partnerService}
}

// Create registers a new client.
func (h *ClientHandler) Create(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req partnerapp.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var createdBy *uuid.UUID
	if userID, err := getUserID(c); err == nil {
		createdBy = &userID
	}

	client, err := h.partnerService.CreateClient(c.Request.Context(), agencyID, createdBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, client)
}

// List returns clients with pagination and optional name/document search.
func (h *ClientHandler) List(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var query struct {
		Search   string `form:"search"`
		Page     int    `form:"page"`
		PageSize int    `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = 20
	}

	filter := partner.ClientFilter{
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	}

	clients, total, err := h.partnerService.ListClients(c.Request.Context(), agencyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, clients, total, filter.Page, filter.PageSize)
}

// GetByID returns a single client.
func (h *ClientHandler) GetByID(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	client, err := h.partnerService.GetClient(c.Request.Context(), agencyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// Update replaces a client's details.
func (h *ClientHandler) Update(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	var req partnerapp.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	client, err := h.partnerService.UpdateClient(c.Request.Context(), agencyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// Delete removes a client.
func (h *ClientHandler) Delete(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	if err := h.partnerService.DeleteClient(c.Request.Context(), agencyID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
