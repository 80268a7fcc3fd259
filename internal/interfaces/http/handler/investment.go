package handler

import (
	financeapp "github.com/agency/backend/internal/application/finance"
	"github.com/agency/backend/internal/domain/finance"
	"github.com/gin-gonic/gin"
)

// InvestmentHandler handles outgoing payment (investment) endpoints.
type InvestmentHandler struct {
	BaseHandler
	investmentService *financeapp.InvestmentService
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentService *financeapp.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService}
}

// Create registers a new investment with its allocations.
func (h *InvestmentHandler) Create(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	investment, err := h.investmentService.Create(c.Request.Context(), agencyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, investment)
}

// List returns investments filtered by operator, booking, category and date window.
func (h *InvestmentHandler) List(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var query struct {
		OperatorID string `form:"operator_id"`
		BookingID  string `form:"booking_id"`
		Category   string `form:"category"`
		From       string `form:"from"`
		To         string `form:"to"`
		Page       int    `form:"page"`
		PageSize   int    `form:"page_size"`
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

	operatorID, err := parseUUID(query.OperatorID)
	if err != nil {
		h.BadRequest(c, "Invalid operator_id")
		return
	}
	bookingID, err := parseUUID(query.BookingID)
	if err != nil {
		h.BadRequest(c, "Invalid booking_id")
		return
	}
	dateRange, err := parseRange(query.From, query.To)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := finance.InvestmentFilter{
		OperatorID: operatorID,
		BookingID:  bookingID,
		Category:   finance.InvestmentCategory(query.Category),
		Range:      dateRange,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}

	investments, total, err := h.investmentService.List(c.Request.Context(), agencyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, investments, total, filter.Page, filter.PageSize)
}

// GetByID returns a single investment.
func (h *InvestmentHandler) GetByID(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid investment ID")
		return
	}

	investment, err := h.investmentService.GetByID(c.Request.Context(), agencyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, investment)
}

// Update replaces an investment's details and allocations.
func (h *InvestmentHandler) Update(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid investment ID")
		return
	}

	var req financeapp.UpdateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	investment, err := h.investmentService.Update(c.Request.Context(), agencyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, investment)
}

// Delete removes an investment and its allocation rows.
func (h *InvestmentHandler) Delete(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid investment ID")
		return
	}

	if err := h.investmentService.Delete(c.Request.Context(), agencyID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
