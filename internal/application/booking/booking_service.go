package booking

import (
	"context"
	"time"

	"github.com/agency/backend/internal/domain/booking"
	"github.com/agency/backend/internal/domain/finance"
	"github.com/agency/backend/internal/domain/partner"
	"github.com/agency/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service provides booking and travel-service use cases, including the
// per-booking debt view.
type Service struct {
	bookingRepo    booking.Repository
	serviceRepo    booking.ServiceRepository
	clientRepo     partner.ClientRepository
	receiptRepo    finance.ReceiptRepository
	investmentRepo finance.InvestmentRepository
}

// NewService creates a booking Service.
func NewService(
	bookingRepo booking.Repository,
	serviceRepo booking.ServiceRepository,
	clientRepo partner.ClientRepository,
	receiptRepo finance.ReceiptRepository,
	investmentRepo finance.InvestmentRepository,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		serviceRepo:    serviceRepo,
		clientRepo:     clientRepo,
		receiptRepo:    receiptRepo,
		investmentRepo: investmentRepo,
	}
}

// CreateBookingRequest creates a booking.
type CreateBookingRequest struct {
	ClientID             uuid.UUID       `json:"client_id" binding:"required"`
	Reference            string          `json:"reference" binding:"required"`
	Title                string          `json:"title"`
	CreationDate         time.Time       `json:"creation_date" binding:"required"`
	Notes                string          `json:"notes"`
	CardInterest         decimal.Decimal `json:"card_interest"`
	CardInterestTaxable  decimal.Decimal `json:"card_interest_taxable"`
	CardInterestVAT      decimal.Decimal `json:"card_interest_vat"`
	CardInterestCurrency string          `json:"card_interest_currency"`
	CreatedBy            *uuid.UUID      `json:"-"`
}

// UpdateBookingRequest updates a booking.
type UpdateBookingRequest struct {
	Title                string          `json:"title"`
	Status               string          `json:"status" binding:"required,oneof=pendiente pagado"`
	Notes                string          `json:"notes"`
	CardInterest         decimal.Decimal `json:"card_interest"`
	CardInterestTaxable  decimal.Decimal `json:"card_interest_taxable"`
	CardInterestVAT      decimal.Decimal `json:"card_interest_vat"`
	CardInterestCurrency string          `json:"card_interest_currency"`
}

// CreateServiceRequest adds a travel service to a booking.
type CreateServiceRequest struct {
	OperatorID    uuid.UUID       `json:"operator_id" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	SalePrice     decimal.Decimal `json:"sale_price" binding:"required"`
	CostPrice     decimal.Decimal `json:"cost_price" binding:"required"`
	Currency      string          `json:"currency" binding:"required,currency"`
	DepartureDate *time.Time      `json:"departure_date"`
	ReturnDate    *time.Time      `json:"return_date"`
}

// CreateBooking persists a new booking. The client must exist.
func (s *Service) CreateBooking(ctx context.Context, agencyID uuid.UUID, req CreateBookingRequest) (*booking.Booking, error) {
	if _, err := s.clientRepo.FindByID(ctx, agencyID, req.ClientID); err != nil {
		return nil, err
	}
	b, err := booking.NewBooking(agencyID, req.ClientID, req.Reference, req.Title, req.CreationDate)
	if err != nil {
		return nil, err
	}
	b.Notes = req.Notes
	b.CardInterest = req.CardInterest
	b.CardInterestTaxable = req.CardInterestTaxable
	b.CardInterestVAT = req.CardInterestVAT
	b.CardInterestCurrency = finance.NormalizeCurrency(req.CardInterestCurrency)
	if req.CreatedBy != nil {
		b.SetCreatedBy(*req.CreatedBy)
	}
	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBooking rewrites booking fields.
func (s *Service) UpdateBooking(ctx context.Context, agencyID, id uuid.UUID, req UpdateBookingRequest) (*booking.Booking, error) {
	b, err := s.bookingRepo.FindByID(ctx, agencyID, id)
	if err != nil {
		return nil, err
	}
	status := booking.Status(req.Status)
	if !status.IsValid() {
		return nil, shared.ErrInvalidInput
	}
	b.Title = req.Title
	b.Status = status
	b.Notes = req.Notes
	b.CardInterest = req.CardInterest
	b.CardInterestTaxable = req.CardInterestTaxable
	b.CardInterestVAT = req.CardInterestVAT
	b.CardInterestCurrency = finance.NormalizeCurrency(req.CardInterestCurrency)
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ConvertQuote converts an active quote into a sale.
func (s *Service) ConvertQuote(ctx context.Context, agencyID, id uuid.UUID) (*booking.Booking, error) {
	b, err := s.bookingRepo.FindByID(ctx, agencyID, id)
	if err != nil {
		return nil, err
	}
	if err := b.ConvertQuote(); err != nil {
		return nil, err
	}
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBooking returns one booking with its services.
func (s *Service) GetBooking(ctx context.Context, agencyID, id uuid.UUID) (*booking.Booking, error) {
	return s.bookingRepo.FindByID(ctx, agencyID, id)
}

// ListBookings returns bookings matching the filter.
func (s *Service) ListBookings(ctx context.Context, agencyID uuid.UUID, filter booking.Filter) ([]booking.Booking, int64, error) {
	return s.bookingRepo.FindAll(ctx, agencyID, filter)
}

// DeleteBooking removes a booking.
func (s *Service) DeleteBooking(ctx context.Context, agencyID, id uuid.UUID) error {
	return s.bookingRepo.Delete(ctx, agencyID, id)
}

// AddService adds a travel service to a booking.
func (s *Service) AddService(ctx context.Context, agencyID, bookingID uuid.UUID, req CreateServiceRequest) (*booking.TravelService, error) {
	if _, err := s.bookingRepo.FindByID(ctx, agencyID, bookingID); err != nil {
		return nil, err
	}
	svc, err := booking.NewTravelService(agencyID, bookingID, req.OperatorID, req.Description, req.SalePrice, req.CostPrice, req.Currency)
	if err != nil {
		return nil, err
	}
	svc.DepartureDate = req.DepartureDate
	svc.ReturnDate = req.ReturnDate
	if err := s.serviceRepo.Save(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// DeleteService removes a travel service.
func (s *Service) DeleteService(ctx context.Context, agencyID, id uuid.UUID) error {
	return s.serviceRepo.Delete(ctx, agencyID, id)
}

// BookingDebt is the per-booking debt view.
type BookingDebt struct {
	BookingID        uuid.UUID        `json:"booking_id"`
	Reference        string           `json:"reference"`
	SaleWithInterest finance.MoneyMap `json:"sale_with_interest"`
	Paid             finance.MoneyMap `json:"paid"`
	// ClientDebt is clamped to zero here: this endpoint feeds the booking
	// list UI, which never shows negative debt. The netter itself does not
	// clamp.
	ClientDebt   finance.MoneyMap `json:"client_debt"`
	Cost         finance.MoneyMap `json:"cost"`
	PaidOperator finance.MoneyMap `json:"paid_operator"`
	OperatorDebt finance.MoneyMap `json:"operator_debt"`
}

// Debt nets one booking's client and operator position per currency.
func (s *Service) Debt(ctx context.Context, agencyID, bookingID uuid.UUID) (*BookingDebt, error) {
	b, err := s.bookingRepo.FindByID(ctx, agencyID, bookingID)
	if err != nil {
		return nil, err
	}
	services, err := s.serviceRepo.FindByBooking(ctx, agencyID, bookingID)
	if err != nil {
		return nil, err
	}
	b.Services = services

	receipts, err := s.receiptRepo.FindByBooking(ctx, agencyID, bookingID)
	if err != nil {
		return nil, err
	}
	paid := finance.NewMoneyMap()
	for i := range receipts {
		amount, currency := receipts[i].Settled()
		paid.Add(currency, amount)
	}

	serviceIDs := make([]uuid.UUID, 0, len(services))
	for _, svc := range services {
		serviceIDs = append(serviceIDs, svc.ID)
	}
	paidOperator := finance.NewMoneyMap()
	if len(serviceIDs) > 0 {
		investments, err := s.investmentRepo.FindByServiceIDs(ctx, agencyID, serviceIDs)
		if err != nil {
			return nil, err
		}
		own := make(map[uuid.UUID]struct{}, len(serviceIDs))
		for _, id := range serviceIDs {
			own[id] = struct{}{}
		}
		// Legacy service bundles may span bookings; resolve every referenced
		// service so the proportional split weighs the whole bundle.
		var external []uuid.UUID
		seen := make(map[uuid.UUID]struct{})
		for i := range investments {
			for _, id := range investments[i].ServiceIDs {
				if _, ok := own[id]; ok {
					continue
				}
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
				external = append(external, id)
			}
		}
		resolved := services
		if len(external) > 0 {
			extra, err := s.serviceRepo.FindByIDs(ctx, agencyID, external)
			if err != nil {
				return nil, err
			}
			resolved = append(append([]booking.TravelService{}, services...), extra...)
		}
		for i := range investments {
			inv := &investments[i]
			for svcID, m := range inv.PaidPerService(booking.CostsByID(resolved, inv.ServiceIDs)) {
				if _, ok := own[svcID]; ok {
					paidOperator.Merge(m)
				}
			}
		}
	}

	saleWithInterest := b.SaleWithInterest()
	cost := b.CostTotal()
	clientDebt := finance.ClientDebt(saleWithInterest, paid).Rounded()
	for code, amount := range clientDebt {
		if amount < 0 {
			clientDebt[code] = 0
		}
	}

	return &BookingDebt{
		BookingID:        b.ID,
		Reference:        b.Reference,
		SaleWithInterest: saleWithInterest.Rounded(),
		Paid:             paid.Rounded(),
		ClientDebt:       clientDebt,
		Cost:             cost.Rounded(),
		PaidOperator:     paidOperator.Rounded(),
		OperatorDebt:     finance.OperatorDebt(cost, paidOperator).Rounded(),
	}, nil
}
