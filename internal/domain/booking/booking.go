package booking

import (
	"time"

	"github.com/agency/backend/internal/domain/finance"
	"github.com/agency/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the payment status of a booking.
type Status string

const (
	StatusPending Status = "pendiente"
	StatusPaid    Status = "pagado"
)

// IsValid reports whether the status is a known Status.
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusPaid
}

// QuoteStatus tracks whether a booking is still a quote or became a sale.
type QuoteStatus string

const (
	QuoteActive    QuoteStatus = "active"
	QuoteConverted QuoteStatus = "converted"
)

// IsValid reports whether the quote status is known.
func (s QuoteStatus) IsValid() bool {
	return s == QuoteActive || s == QuoteConverted
}

// Booking is a client file grouping the travel services sold together.
type Booking struct {
	shared.AgencyEntity
	ClientID     uuid.UUID
	Reference    string
	Title        string
	Status       Status
	QuoteStatus  QuoteStatus
	CreationDate time.Time
	Notes        string

	// Card interest in its two historical shapes. The itemized taxable+VAT
	// split takes precedence over the flat amount when non-zero.
	CardInterest         decimal.Decimal
	CardInterestTaxable  decimal.Decimal
	CardInterestVAT      decimal.Decimal
	CardInterestCurrency string

	Services []TravelService
}

// NewBooking creates a pending booking for a client.
func NewBooking(agencyID, clientID uuid.UUID, reference, title string, creationDate time.Time) (*Booking, error) {
	if reference == "" {
		return nil, shared.ErrInvalidInput
	}
	return &Booking{
		AgencyEntity: shared.NewAgencyEntity(agencyID),
		ClientID:     clientID,
		Reference:    reference,
		Title:        title,
		Status:       StatusPending,
		QuoteStatus:  QuoteActive,
		CreationDate: creationDate,
	}, nil
}

// MarkPaid flags the booking as fully paid.
func (b *Booking) MarkPaid() {
	b.Status = StatusPaid
}

// ConvertQuote converts an active quote into a sale.
func (b *Booking) ConvertQuote() error {
	if b.QuoteStatus != QuoteActive {
		return shared.ErrInvalidState
	}
	b.QuoteStatus = QuoteConverted
	return nil
}

// Interest returns the booking's card interest in netting form.
func (b *Booking) Interest() finance.CardInterest {
	return finance.CardInterest{
		Currency: b.CardInterestCurrency,
		Flat:     b.CardInterest.InexactFloat64(),
		Taxable:  b.CardInterestTaxable.InexactFloat64(),
		VAT:      b.CardInterestVAT.InexactFloat64(),
	}
}

// SaleTotal accumulates the sale price of every service per currency.
func (b *Booking) SaleTotal() finance.MoneyMap {
	total := finance.NewMoneyMap()
	for _, svc := range b.Services {
		total.Add(svc.Currency, svc.SalePrice.InexactFloat64())
	}
	return total
}

// CostTotal accumulates the cost price of every service per currency.
func (b *Booking) CostTotal() finance.MoneyMap {
	total := finance.NewMoneyMap()
	for _, svc := range b.Services {
		total.Add(svc.Currency, svc.CostPrice.InexactFloat64())
	}
	return total
}

// SaleWithInterest is the sale total plus card interest.
func (b *Booking) SaleWithInterest() finance.MoneyMap {
	return finance.SaleWithInterest(b.SaleTotal(), b.Interest())
}
