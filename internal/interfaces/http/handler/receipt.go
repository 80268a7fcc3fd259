package handler

import (
	financeapp "github.com/agency/backend/internal/application/finance"
	"github.com/agency/backend/internal/domain/finance"
	"github.com/gin-gonic/gin"
)

// ReceiptHandler handles client payment receipt endpoints.
type ReceiptHandler struct {
	BaseHandler
	receiptService *financeapp.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(receiptService *financeapp.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Create registers a new receipt with its legs and allocations.
func (h *ReceiptHandler) Create(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	receipt, err := h.receiptService.Create(c.Request.Context(), agencyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, receipt)
}

// List returns receipts filtered by booking, client, operator and date window.
func (h *ReceiptHandler) List(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var query struct {
		BookingID  string `form:"booking_id"`
		ClientID   string `form:"client_id"`
		OperatorID string `form:"operator_id"`
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

	bookingID, err := parseUUID(query.BookingID)
	if err != nil {
		h.BadRequest(c, "Invalid booking_id")
		return
	}
	clientID, err := parseUUID(query.ClientID)
	if err != nil {
		h.BadRequest(c, "Invalid client_id")
		return
	}
	operatorID, err := parseUUID(query.OperatorID)
	if err != nil {
		h.BadRequest(c, "Invalid operator_id")
		return
	}
	dateRange, err := parseRange(query.From, query.To)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := finance.ReceiptFilter{
		BookingID:  bookingID,
		ClientID:   clientID,
		OperatorID: operatorID,
		Range:      dateRange,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}

	receipts, total, err := h.receiptService.List(c.Request.Context(), agencyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, receipts, total, filter.Page, filter.PageSize)
}

// GetByID returns a single receipt.
func (h *ReceiptHandler) GetByID(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID")
		return
	}

	receipt, err := h.receiptService.GetByID(c.Request.Context(), agencyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

// Update replaces a receipt's details, legs and allocations.
func (h *ReceiptHandler) Update(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID")
		return
	}

	var req financeapp.UpdateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	receipt, err := h.receiptService.Update(c.Request.Context(), agencyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

// Delete removes a receipt and its allocation rows.
func (h *ReceiptHandler) Delete(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID")
		return
	}

	if err := h.receiptService.Delete(c.Request.Context(), agencyID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
