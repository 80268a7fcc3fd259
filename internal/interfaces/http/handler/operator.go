package handler

import (
	partnerapp "github.com/agency/backend/internal/application/partner"
	"github.com/agency/backend/internal/domain/partner"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OperatorHandler handles tour operator endpoints.
type OperatorHandler struct {
	BaseHandler
	partnerService *partnerapp.Service
}

// NewOperatorHandler creates a new OperatorHandler.
func NewOperatorHandler(partnerService *partnerapp.Service) *OperatorHandler {
	return &OperatorHandler{partnerService: partnerService}
}

// Create registers a new operator.
func (h *OperatorHandler) Create(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req partnerapp.OperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var createdBy *uuid.UUID
	if userID, err := getUserID(c); err == nil {
		createdBy = &userID
	}

	operator, err := h.partnerService.CreateOperator(c.Request.Context(), agencyID, createdBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, operator)
}

// List returns operators with pagination and optional search.
func (h *OperatorHandler) List(c *gin.Context) {
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

	filter := partner.OperatorFilter{
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	}

	operators, total, err := h.partnerService.ListOperators(c.Request.Context(), agencyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, operators, total, filter.Page, filter.PageSize)
}

// GetByID returns a single operator.
func (h *OperatorHandler) GetByID(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid operator ID")
		return
	}

	operator, err := h.partnerService.GetOperator(c.Request.Context(), agencyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, operator)
}

// Update replaces an operator's details.
func (h *OperatorHandler) Update(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid operator ID")
		return
	}

	var req partnerapp.OperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	operator, err := h.partnerService.UpdateOperator(c.Request.Context(), agencyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, operator)
}

// Delete removes an operator.
func (h *OperatorHandler) Delete(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid operator ID")
		return
	}

	if err := h.partnerService.DeleteOperator(c.Request.Context(), agencyID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
