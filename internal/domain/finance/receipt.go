package finance

import (
	"time"

	"github.com/agency/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptAllocation is an explicit per-service portion of a receipt. When a
// receipt carries allocations they are authoritative and the legacy
// ServiceIDs list is ignored.
type ReceiptAllocation struct {
	ServiceID       uuid.UUID       `json:"service_id"`
	AmountPayment   decimal.Decimal `json:"amount_payment"`
	PaymentCurrency string          `json:"payment_currency"`
	AmountService   decimal.Decimal `json:"amount_service"`
	ServiceCurrency string          `json:"service_currency"`
}

// ReceiptLeg is one payment leg of a receipt: the portion settled through a
// specific payment method against a specific finance account. A receipt split
// across methods or accounts carries one leg per split.
type ReceiptLeg struct {
	Method    string          `json:"method"`
	AccountID uuid.UUID       `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// Receipt is a client payment against a booking.
type Receipt struct {
	shared.AgencyEntity
	BookingID uuid.UUID
	ClientID  uuid.UUID
	Number    string
	Concept   string
	Date      time.Time

	Amount   decimal.Decimal
	Currency string

	// Cross-currency receipts settle in the counter currency; when the
	// counter pair is present it overrides the primary amount+currency.
	CounterAmount   *decimal.Decimal
	CounterCurrency string

	Legs        []ReceiptLeg
	ServiceIDs  []uuid.UUID // legacy bundle, pre-allocation schema
	Allocations []ReceiptAllocation
}

// NewReceipt creates a receipt for a booking.
func NewReceipt(agencyID, bookingID, clientID uuid.UUID, number string, date time.Time, amount decimal.Decimal, currency string) (*Receipt, error) {
	if NormalizeCurrency(currency) == "" {
		return nil, shared.ErrInvalidInput
	}
	return &Receipt{
		AgencyEntity: shared.NewAgencyEntity(agencyID),
		BookingID:    bookingID,
		ClientID:     clientID,
		Number:       number,
		Date:         date,
		Amount:       amount,
		Currency:     NormalizeCurrency(currency),
	}, nil
}

// Settled returns the amount and currency the payment was actually settled
// in: the counter pair when present, the primary pair otherwise.
func (r *Receipt) Settled() (float64, string) {
	if r.CounterAmount != nil && NormalizeCurrency(r.CounterCurrency) != "" {
		return r.CounterAmount.InexactFloat64(), NormalizeCurrency(r.CounterCurrency)
	}
	return r.Amount.InexactFloat64(), NormalizeCurrency(r.Currency)
}

// HasAllocations reports whether explicit per-service allocations exist.
func (r *Receipt) HasAllocations() bool {
	return len(r.Allocations) > 0
}

// PaidPerService distributes the receipt across the services it references,
// keyed by service currency. Explicit allocations win; a legacy bundle is
// split proportionally over the supplied service costs.
func (r *Receipt) PaidPerService(legacyCosts []ServiceCost) map[uuid.UUID]MoneyMap {
	out := make(map[uuid.UUID]MoneyMap)
	if r.HasAllocations() {
		for _, alloc := range r.Allocations {
			m, ok := out[alloc.ServiceID]
			if !ok {
				m = NewMoneyMap()
				out[alloc.ServiceID] = m
			}
			m.Add(alloc.ServiceCurrency, alloc.AmountService.InexactFloat64())
		}
		return out
	}

	amount, currency := r.Settled()
	for _, share := range AllocateProportionally(amount, currency, legacyCosts) {
		m, ok := out[share.ServiceID]
		if !ok {
			m = NewMoneyMap()
			out[share.ServiceID] = m
		}
		m.Add(currency, share.Amount)
	}
	return out
}
