package handler

import (
	financeapp "github.com/agency/backend/internal/application/finance"
	"github.com/agency/backend/internal/domain/finance"
	"github.com/gin-gonic/gin"
)

// DueHandler handles scheduled payment (due) endpoints for both operators
// and clients.
type DueHandler struct {
	BaseHandler
	scheduleService *financeapp.ScheduleService
}

// NewDueHandler creates a new DueHandler.
func NewDueHandler(scheduleService *financeapp.ScheduleService) *DueHandler {
	return &DueHandler{scheduleService: scheduleService}
}

// SetDueStatusRequest changes a due's payment status.
type SetDueStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pendiente pagado"`
}

type listDuesQuery struct {
	OperatorID string `form:"operator_id"`
	ClientID   string `form:"client_id"`
	BookingID  string `form:"booking_id"`
	Status     string `form:"status"`
	From       string `form:"from"`
	To         string `form:"to"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

func (q *listDuesQuery) toFilter() (finance.DueFilter, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = 20
	}

	operatorID, err := parseUUID(q.OperatorID)
	if err != nil {
		return finance.DueFilter{}, errInvalidQueryID("operator_id")
	}
	clientID, err := parseUUID(q.ClientID)
	if err != nil {
		return finance.DueFilter{}, errInvalidQueryID("client_id")
	}
	bookingID, err := parseUUID(q.BookingID)
	if err != nil {
		return finance.DueFilter{}, errInvalidQueryID("booking_id")
	}
	dateRange, err := parseRange(q.From, q.To)
	if err != nil {
		return finance.DueFilter{}, err
	}

	return finance.DueFilter{
		OperatorID: operatorID,
		ClientID:   clientID,
		BookingID:  bookingID,
		Status:     finance.DueStatus(q.Status),
		Range:      dateRange,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}, nil
}

// CreateOperatorDue schedules a payment owed to an operator.
func (h *DueHandler) CreateOperatorDue(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.CreateOperatorDueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	due, err := h.scheduleService.CreateOperatorDue(c.Request.Context(), agencyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, due)
}

// ListOperatorDues returns operator dues filtered by operator, booking,
// status and due date window.
func (h *DueHandler) ListOperatorDues(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var query listDuesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter, err := query.toFilter()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dues, total, err := h.scheduleService.ListOperatorDues(c.Request.Context(), agencyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, dues, total, filter.Page, filter.PageSize)
}

// SetOperatorDueStatus marks an operator due paid or pending.
func (h *DueHandler) SetOperatorDueStatus(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid due ID")
		return
	}

	var req SetDueStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	due, err := h.scheduleService.SetOperatorDueStatus(c.Request.Context(), agencyID, id, finance.DueStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, due)
}

// DeleteOperatorDue removes an operator due.
func (h *DueHandler) DeleteOperatorDue(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid due ID")
		return
	}

	if err := h.scheduleService.DeleteOperatorDue(c.Request.Context(), agencyID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateClientDue schedules an installment owed by a client.
func (h *DueHandler) CreateClientDue(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.CreateClientDueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	due, err := h.scheduleService.CreateClientDue(c.Request.Context(), agencyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, due)
}

// ListClientDues returns client dues filtered by client, booking, status
// and due date window.
func (h *DueHandler) ListClientDues(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var query listDuesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter, err := query.toFilter()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dues, total, err := h.scheduleService.ListClientDues(c.Request.Context(), agencyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, dues, total, filter.Page, filter.PageSize)
}

// SetClientDueStatus marks a client due paid or pending.
func (h *DueHandler) SetClientDueStatus(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid due ID")
		return
	}

	var req SetDueStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	due, err := h.scheduleService.SetClientDueStatus(c.Request.Context(), agencyID, id, finance.DueStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, due)
}

// DeleteClientDue removes a client due.
func (h *DueHandler) DeleteClientDue(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid due ID")
		return
	}

	if err := h.scheduleService.DeleteClientDue(c.Request.Context(), agencyID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
