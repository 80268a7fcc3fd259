package handler

import (
	"time"

	financeapp "github.com/agency/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
)

const monthLayout = "2006-01"

// ReportHandler handles the cashbox summary and operator insights reports.
type ReportHandler struct {
	BaseHandler
	cashboxService  *financeapp.CashboxService
	insightsService *financeapp.OperatorInsightsService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(cashboxService *financeapp.CashboxService, insightsService *financeapp.OperatorInsightsService) *ReportHandler {
	return &ReportHandler{
		cashboxService:  cashboxService,
		insightsService: insightsService,
	}
}

// Cashbox returns the monthly cash summary with a paginated movement list.
func (h *ReportHandler) Cashbox(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var query struct {
		Month    string `form:"month" binding:"required"`
		Page     int    `form:"page"`
		PageSize int    `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	month, err := time.Parse(monthLayout, query.Month)
	if err != nil {
		h.BadRequest(c, "Invalid month, expected yyyy-mm")
		return
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = 20
	}

	summary, err := h.cashboxService.MonthlySummary(c.Request.Context(), agencyID, month, query.Page, query.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// OperatorInsights returns per-operator bookings, totals and dues for a
// date window. The date_mode query picks creation or travel date gating.
func (h *ReportHandler) OperatorInsights(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	operatorID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid operator ID")
		return
	}

	var query struct {
		From     string `form:"from" binding:"required"`
		To       string `form:"to" binding:"required"`
		DateMode string `form:"date_mode"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	from, err := time.Parse(dateLayout, query.From)
	if err != nil {
		h.BadRequest(c, "Invalid from date, expected yyyy-mm-dd")
		return
	}
	to, err := time.Parse(dateLayout, query.To)
	if err != nil {
		h.BadRequest(c, "Invalid to date, expected yyyy-mm-dd")
		return
	}

	mode := financeapp.DateMode(query.DateMode)
	if mode == "" {
		mode = financeapp.DateModeCreation
	}
	if !mode.IsValid() {
		h.BadRequest(c, "Invalid date_mode, expected creation or travel")
		return
	}

	insights, err := h.insightsService.Insights(c.Request.Context(), agencyID, operatorID, from, to, mode)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, insights)
}
