package finance

import (
	"time"

	"github.com/agency/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinanceAccount is a cashbox account: a till, a bank account, a wallet.
type FinanceAccount struct {
	shared.AgencyEntity
	Name        string
	Description string
	Active      bool
}

// NewFinanceAccount creates an active finance account.
func NewFinanceAccount(agencyID uuid.UUID, name, description string) (*FinanceAccount, error) {
	if name == "" {
		return nil, shared.ErrInvalidInput
	}
	return &FinanceAccount{
		AgencyEntity: shared.NewAgencyEntity(agencyID),
		Name:         name,
		Description:  description,
		Active:       true,
	}, nil
}

// OpeningBalance is a stored (account, currency) balance snapshot effective
// from a date. The most recent snapshot at or before a query date is the
// authoritative replay checkpoint for that pair.
type OpeningBalance struct {
	shared.AgencyEntity
	AccountID     uuid.UUID
	Currency      string
	Amount        decimal.Decimal
	EffectiveDate time.Time
}

// NewOpeningBalance creates an opening balance snapshot.
func NewOpeningBalance(agencyID, accountID uuid.UUID, currency string, amount decimal.Decimal, effectiveDate time.Time) (*OpeningBalance, error) {
	code := NormalizeCurrency(currency)
	if code == "" {
		return nil, shared.ErrInvalidInput
	}
	return &OpeningBalance{
		AgencyEntity:  shared.NewAgencyEntity(agencyID),
		AccountID:     accountID,
		Currency:      code,
		Amount:        amount,
		EffectiveDate: effectiveDate,
	}, nil
}

// Snapshot converts to the replay checkpoint form used by BalanceAsOf.
func (ob *OpeningBalance) Snapshot() OpeningSnapshot {
	return OpeningSnapshot{
		EffectiveDate: ob.EffectiveDate,
		Amount:        ob.Amount.InexactFloat64(),
	}
}

// HolderType distinguishes credit account holders.
type HolderType string

const (
	HolderClient   HolderType = "client"
	HolderOperator HolderType = "operator"
)

// CreditAccount is the current balance kept per (holder, currency).
// Sign convention: a negative client balance means the client owes the
// agency; a positive operator balance means the agency owes the operator.
// When rows exist for a holder they override debt totals computed from
// movements.
type CreditAccount struct {
	shared.AgencyEntity
	HolderType HolderType
	HolderID   uuid.UUID
	Currency   string
	Balance    decimal.Decimal
}
