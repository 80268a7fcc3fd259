package handler

import (
	bookingapp "github.com/agency/backend/internal/application/booking"
	"github.com/agency/backend/internal/domain/booking"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookingHandler handles booking and travel service endpoints.
type BookingHandler struct {
	BaseHandler
	bookingService *bookingapp.Service
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *bookingapp.Service) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// Create registers a new booking or quote.
func (h *BookingHandler) Create(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req bookingapp.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	b, err := h.bookingService.CreateBooking(c.Request.Context(), agencyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, b)
}

// List returns bookings filtered by client, status and creation window.
func (h *BookingHandler) List(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var query struct {
		ClientID    string `form:"client_id"`
		Status      string `form:"status"`
		QuoteStatus string `form:"quote_status"`
		Search      string `form:"search"`
		From        string `form:"from"`
		To          string `form:"to"`
		Page        int    `form:"page"`
		PageSize    int    `form:"page_size"`
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

	clientID, err := parseUUID(query.ClientID)
	if err != nil {
		h.BadRequest(c, "Invalid client_id")
		return
	}
	from, err := parseDate(query.From)
	if err != nil {
		h.BadRequest(c, "Invalid from date, expected yyyy-mm-dd")
		return
	}
	to, err := parseDate(query.To)
	if err != nil {
		h.BadRequest(c, "Invalid to date, expected yyyy-mm-dd")
		return
	}

	filter := booking.Filter{
		ClientID:    clientID,
		Status:      booking.Status(query.Status),
		QuoteStatus: booking.QuoteStatus(query.QuoteStatus),
		Search:      query.Search,
		From:        from,
		To:          to,
		Page:        query.Page,
		PageSize:    query.PageSize,
	}

	bookings, total, err := h.bookingService.ListBookings(c.Request.Context(), agencyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, bookings, total, filter.Page, filter.PageSize)
}

// GetByID returns a booking with its travel services.
func (h *BookingHandler) GetByID(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	b, err := h.bookingService.GetBooking(c.Request.Context(), agencyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, b)
}

// Update replaces a booking's mutable fields.
func (h *BookingHandler) Update(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	var req bookingapp.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	b, err := h.bookingService.UpdateBooking(c.Request.Context(), agencyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, b)
}

// ConvertQuote promotes a pending quote into a confirmed booking.
func (h *BookingHandler) ConvertQuote(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	b, err := h.bookingService.ConvertQuote(c.Request.Context(), agencyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, b)
}

// Delete removes a booking and its travel services.
func (h *BookingHandler) Delete(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	if err := h.bookingService.DeleteBooking(c.Request.Context(), agencyID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddService attaches a travel service to a booking.
func (h *BookingHandler) AddService(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	bookingID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	var req bookingapp.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	svc, err := h.bookingService.AddService(c.Request.Context(), agencyID, bookingID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, svc)
}

// DeleteService removes a travel service.
func (h *BookingHandler) DeleteService(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	serviceID, err := uuid.Parse(c.Param("service_id"))
	if err != nil {
		h.BadRequest(c, "Invalid service ID")
		return
	}

	if err := h.bookingService.DeleteService(c.Request.Context(), agencyID, serviceID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Debt returns the booking's per-currency client and operator position.
func (h *BookingHandler) Debt(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	bookingID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	debt, err := h.bookingService.Debt(c.Request.Context(), agencyID, bookingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, debt)
}
