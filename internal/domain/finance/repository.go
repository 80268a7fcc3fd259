package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DateRange is a half-open [From, To) window used by report queries.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the window.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && t.Before(r.To)
}

// ReceiptFilter narrows receipt queries.
type ReceiptFilter struct {
	BookingID  *uuid.UUID
	ClientID   *uuid.UUID
	OperatorID *uuid.UUID
	Range      *DateRange
	Page       int
	PageSize   int
}

// ReceiptRepository persists receipts.
type ReceiptRepository interface {
	Save(ctx context.Context, receipt *Receipt) error
	Update(ctx context.Context, receipt *Receipt) error
	Delete(ctx context.Context, agencyID, id uuid.UUID) error
	FindByID(ctx context.Context, agencyID, id uuid.UUID) (*Receipt, error)
	FindAll(ctx context.Context, agencyID uuid.UUID, filter ReceiptFilter) ([]Receipt, int64, error)
	FindByBooking(ctx context.Context, agencyID, bookingID uuid.UUID) ([]Receipt, error)
	FindByServiceIDs(ctx context.Context, agencyID uuid.UUID, serviceIDs []uuid.UUID) ([]Receipt, error)
}

// InvestmentFilter narrows investment queries.
type InvestmentFilter struct {
	OperatorID *uuid.UUID
	BookingID  *uuid.UUID
	Category   InvestmentCategory
	Range      *DateRange
	Page       int
	PageSize   int
}

// InvestmentRepository persists investments. Save and Update must write the
// investment and its allocation rows in one database transaction.
type InvestmentRepository interface {
	Save(ctx context.Context, investment *Investment) error
	Update(ctx context.Context, investment *Investment) error
	Delete(ctx context.Context, agencyID, id uuid.UUID) error
	FindByID(ctx context.Context, agencyID, id uuid.UUID) (*Investment, error)
	FindAll(ctx context.Context, agencyID uuid.UUID, filter InvestmentFilter) ([]Investment, int64, error)
	FindByServiceIDs(ctx context.Context, agencyID uuid.UUID, serviceIDs []uuid.UUID) ([]Investment, error)
}

// DueFilter narrows scheduled due queries.
type DueFilter struct {
	OperatorID *uuid.UUID
	ClientID   *uuid.UUID
	BookingID  *uuid.UUID
	Status     DueStatus
	Range      *DateRange
	Page       int
	PageSize   int
}

// OperatorDueRepository persists operator dues.
type OperatorDueRepository interface {
	Save(ctx context.Context, due *OperatorDue) error
	Update(ctx context.Context, due *OperatorDue) error
	Delete(ctx context.Context, agencyID, id uuid.UUID) error
	FindByID(ctx context.Context, agencyID, id uuid.UUID) (*OperatorDue, error)
	FindAll(ctx context.Context, agencyID uuid.UUID, filter DueFilter) ([]OperatorDue, int64, error)
}

// ClientDueRepository persists client dues.
type ClientDueRepository interface {
	Save(ctx context.Context, due *ClientDue) error
	Update(ctx context.Context, due *ClientDue) error
	Delete(ctx context.Context, agencyID, id uuid.UUID) error
	FindByID(ctx context.Context, agencyID, id uuid.UUID) (*ClientDue, error)
	FindAll(ctx context.Context, agencyID uuid.UUID, filter DueFilter) ([]ClientDue, int64, error)
}

// FinanceAccountRepository persists finance accounts and their opening
// balance snapshots.
type FinanceAccountRepository interface {
	Save(ctx context.Context, account *FinanceAccount) error
	Update(ctx context.Context, account *FinanceAccount) error
	FindByID(ctx context.Context, agencyID, id uuid.UUID) (*FinanceAccount, error)
	FindAll(ctx context.Context, agencyID uuid.UUID) ([]FinanceAccount, error)
	SaveOpeningBalance(ctx context.Context, balance *OpeningBalance) error
	FindOpeningBalances(ctx context.Context, agencyID, accountID uuid.UUID) ([]OpeningBalance, error)
	FindAllOpeningBalances(ctx context.Context, agencyID uuid.UUID) ([]OpeningBalance, error)
}

// CreditAccountRepository reads the authoritative credit balances. The
// aggregation core never writes them.
type CreditAccountRepository interface {
	FindByHolder(ctx context.Context, agencyID uuid.UUID, holderType HolderType, holderID uuid.UUID) ([]CreditAccount, error)
	FindAll(ctx context.Context, agencyID uuid.UUID, holderType HolderType) ([]CreditAccount, error)
}
