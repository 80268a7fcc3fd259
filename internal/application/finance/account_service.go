package finance

import (
	"context"
	"time"

	"github.com/agency/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountService manages finance accounts, their opening balance snapshots
// and the read-only credit account views.
type AccountService struct {
	accountRepo finance.FinanceAccountRepository
	creditRepo  finance.CreditAccountRepository
}

// NewAccountService creates an AccountService.
func NewAccountService(accountRepo finance.FinanceAccountRepository, creditRepo finance.CreditAccountRepository) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		creditRepo:  creditRepo,
	}
}

// CreateAccountRequest creates a finance account.
type CreateAccountRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateOpeningBalanceRequest records a balance snapshot for an account.
type CreateOpeningBalanceRequest struct {
	Currency      string          `json:"currency" binding:"required,currency"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	EffectiveDate time.Time       `json:"effective_date" binding:"required"`
}

// CreateAccount persists a new finance account.
func (s *AccountService) CreateAccount(ctx context.Context, agencyID uuid.UUID, req CreateAccountRequest) (*finance.FinanceAccount, error) {
	account, err := finance.NewFinanceAccount(agencyID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// ListAccounts returns every finance account of the agency.
func (s *AccountService) ListAccounts(ctx context.Context, agencyID uuid.UUID) ([]finance.FinanceAccount, error) {
	return s.accountRepo.FindAll(ctx, agencyID)
}

// GetAccount returns one finance account.
func (s *AccountService) GetAccount(ctx context.Context, agencyID, id uuid.UUID) (*finance.FinanceAccount, error) {
	return s.accountRepo.FindByID(ctx, agencyID, id)
}

// AddOpeningBalance records a snapshot for an account. The account must
// exist in this agency.
func (s *AccountService) AddOpeningBalance(ctx context.Context, agencyID, accountID uuid.UUID, req CreateOpeningBalanceRequest) (*finance.OpeningBalance, error) {
	if _, err := s.accountRepo.FindByID(ctx, agencyID, accountID); err != nil {
		return nil, err
	}
	balance, err := finance.NewOpeningBalance(agencyID, accountID, req.Currency, req.Amount, req.EffectiveDate)
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.SaveOpeningBalance(ctx, balance); err != nil {
		return nil, err
	}
	return balance, nil
}

// ListOpeningBalances returns the snapshots of one account.
func (s *AccountService) ListOpeningBalances(ctx context.Context, agencyID, accountID uuid.UUID) ([]finance.OpeningBalance, error) {
	if _, err := s.accountRepo.FindByID(ctx, agencyID, accountID); err != nil {
		return nil, err
	}
	return s.accountRepo.FindOpeningBalances(ctx, agencyID, accountID)
}

// ListCreditAccounts returns the credit balances of one holder type.
func (s *AccountService) ListCreditAccounts(ctx context.Context, agencyID uuid.UUID, holderType finance.HolderType) ([]finance.CreditAccount, error) {
	return s.creditRepo.FindAll(ctx, agencyID, holderType)
}
