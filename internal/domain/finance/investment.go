package finance

import (
	"time"

	"github.com/agency/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvestmentCategory classifies an investment.
type InvestmentCategory string

const (
	InvestmentOperatorPayment InvestmentCategory = "pago_operador"
	InvestmentExpense         InvestmentCategory = "gasto"
)

// InvestmentAllocation is an explicit per-service portion of an investment,
// written by the investment create/update transaction. When allocation rows
// exist they are authoritative and the legacy ServiceIDs list is ignored.
type InvestmentAllocation struct {
	ID              uuid.UUID       `json:"id"`
	ServiceID       uuid.UUID       `json:"service_id"`
	AmountPayment   decimal.Decimal `json:"amount_payment"`
	PaymentCurrency string          `json:"payment_currency"`
	AmountService   decimal.Decimal `json:"amount_service"`
	ServiceCurrency string          `json:"service_currency"`
}

// Investment is a payment to an operator or a standalone agency expense.
type Investment struct {
	shared.AgencyEntity
	OperatorID *uuid.UUID
	BookingID  *uuid.UUID
	Category   InvestmentCategory
	Concept    string
	Date       time.Time

	Amount   decimal.Decimal
	Currency string
	Method   string
	// AccountID is the finance account the money left from.
	AccountID *uuid.UUID

	ServiceIDs  []uuid.UUID // legacy bundle, pre-allocation schema
	Allocations []InvestmentAllocation
}

// NewInvestment creates an investment.
func NewInvestment(agencyID uuid.UUID, category InvestmentCategory, concept string, date time.Time, amount decimal.Decimal, currency string) (*Investment, error) {
	if NormalizeCurrency(currency) == "" {
		return nil, shared.ErrInvalidInput
	}
	if category != InvestmentOperatorPayment && category != InvestmentExpense {
		return nil, shared.ErrInvalidInput
	}
	return &Investment{
		AgencyEntity: shared.NewAgencyEntity(agencyID),
		Category:     category,
		Concept:      concept,
		Date:         date,
		Amount:       amount,
		Currency:     NormalizeCurrency(currency),
	}, nil
}

// HasAllocations reports whether explicit allocation rows exist.
func (inv *Investment) HasAllocations() bool {
	return len(inv.Allocations) > 0
}

// ReplaceAllocations swaps the allocation rows, assigning fresh IDs to rows
// that lack one. Persisted atomically with the investment itself.
func (inv *Investment) ReplaceAllocations(allocations []InvestmentAllocation) {
	for i := range allocations {
		if allocations[i].ID == uuid.Nil {
			allocations[i].ID = uuid.New()
		}
	}
	inv.Allocations = allocations
}

// PaidPerService distributes the investment across the services it
// references, keyed by service currency. Explicit allocations win; a legacy
// bundle is split proportionally over the supplied service costs.
func (inv *Investment) PaidPerService(legacyCosts []ServiceCost) map[uuid.UUID]MoneyMap {
	out := make(map[uuid.UUID]MoneyMap)
	if inv.HasAllocations() {
		for _, alloc := range inv.Allocations {
			m, ok := out[alloc.ServiceID]
			if !ok {
				m = NewMoneyMap()
				out[alloc.ServiceID] = m
			}
			m.Add(alloc.ServiceCurrency, alloc.AmountService.InexactFloat64())
		}
		return out
	}

	for _, share := range AllocateProportionally(inv.Amount.InexactFloat64(), inv.Currency, legacyCosts) {
		m, ok := out[share.ServiceID]
		if !ok {
			m = NewMoneyMap()
			out[share.ServiceID] = m
		}
		m.Add(inv.Currency, share.Amount)
	}
	return out
}
