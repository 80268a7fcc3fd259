package persistence

import (
	"context"
	"errors"

	"github.com/agency/backend/internal/domain/finance"
	"github.com/agency/backend/internal/domain/shared"
	"github.com/agency/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFinanceAccountRepository implements finance.FinanceAccountRepository
// using GORM.
type GormFinanceAccountRepository struct {
	db *gorm.DB
}

// NewGormFinanceAccountRepository creates a new GormFinanceAccountRepository.
func NewGormFinanceAccountRepository(db *gorm.DB) *GormFinanceAccountRepository {
	return &GormFinanceAccountRepository{db: db}
}

// Save creates a finance account.
func (r *GormFinanceAccountRepository) Save(ctx context.Context, account *finance.FinanceAccount) error {
	model := &models.FinanceAccountModel{}
	model.FromDomain(account)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update rewrites a finance account.
func (r *GormFinanceAccountRepository) Update(ctx context.Context, account *finance.FinanceAccount) error {
	model := &models.FinanceAccountModel{}
	model.FromDomain(account)
	return r.db.WithContext(ctx).
		Where("agency_id = ? AND id = ?", account.AgencyID, account.ID).
		Save(model).Error
}

// FindByID finds a finance account by ID within an agency.
func (r *GormFinanceAccountRepository) FindByID(ctx context.Context, agencyID, id uuid.UUID) (*finance.FinanceAccount, error) {
	var model models.FinanceAccountModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ? AND id = ?", agencyID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all finance accounts of an agency, active and inactive,
// ordered by name.
func (r *GormFinanceAccountRepository) FindAll(ctx context.Context, agencyID uuid.UUID) ([]finance.FinanceAccount, error) {
	var accountModels []models.FinanceAccountModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		Order("name ASC").
		Find(&accountModels).Error; err != nil {
		return nil, err
	}
	accounts := make([]finance.FinanceAccount, len(accountModels))
	for i := range accountModels {
		accounts[i] = *accountModels[i].ToDomain()
	}
	return accounts, nil
}

// SaveOpeningBalance stores an opening balance snapshot.
func (r *GormFinanceAccountRepository) SaveOpeningBalance(ctx context.Context, balance *finance.OpeningBalance) error {
	model := &models.OpeningBalanceModel{}
	model.FromDomain(balance)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindOpeningBalances finds the snapshots of one account ordered by
// effective date.
func (r *GormFinanceAccountRepository) FindOpeningBalances(ctx context.Context, agencyID, accountID uuid.UUID) ([]finance.OpeningBalance, error) {
	var balanceModels []models.OpeningBalanceModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ? AND account_id = ?", agencyID, accountID).
		Order("effective_date ASC, created_at ASC").
		Find(&balanceModels).Error; err != nil {
		return nil, err
	}
	balances := make([]finance.OpeningBalance, len(balanceModels))
	for i := range balanceModels {
		balances[i] = *balanceModels[i].ToDomain()
	}
	return balances, nil
}

// FindAllOpeningBalances finds every snapshot of an agency ordered by
// effective date.
func (r *GormFinanceAccountRepository) FindAllOpeningBalances(ctx context.Context, agencyID uuid.UUID) ([]finance.OpeningBalance, error) {
	var balanceModels []models.OpeningBalanceModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		Order("effective_date ASC, created_at ASC").
		Find(&balanceModels).Error; err != nil {
		return nil, err
	}
	balances := make([]finance.OpeningBalance, len(balanceModels))
	for i := range balanceModels {
		balances[i] = *balanceModels[i].ToDomain()
	}
	return balances, nil
}

// GormCreditAccountRepository implements finance.CreditAccountRepository
// using GORM. Credit balances are written by their own maintenance flow;
// this repository only reads them.
type GormCreditAccountRepository struct {
	db *gorm.DB
}

// NewGormCreditAccountRepository creates a new GormCreditAccountRepository.
func NewGormCreditAccountRepository(db *gorm.DB) *GormCreditAccountRepository {
	return &GormCreditAccountRepository{db: db}
}

// FindByHolder finds the credit rows of one holder.
func (r *GormCreditAccountRepository) FindByHolder(ctx context.Context, agencyID uuid.UUID, holderType finance.HolderType, holderID uuid.UUID) ([]finance.CreditAccount, error) {
	var creditModels []models.CreditAccountModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ? AND holder_type = ? AND holder_id = ?", agencyID, holderType, holderID).
		Order("currency ASC").
		Find(&creditModels).Error; err != nil {
		return nil, err
	}
	credits := make([]finance.CreditAccount, len(creditModels))
	for i := range creditModels {
		credits[i] = *creditModels[i].ToDomain()
	}
	return credits, nil
}

// FindAll finds every credit row of an agency for one holder type.
func (r *GormCreditAccountRepository) FindAll(ctx context.Context, agencyID uuid.UUID, holderType finance.HolderType) ([]finance.CreditAccount, error) {
	var creditModels []models.CreditAccountModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ? AND holder_type = ?", agencyID, holderType).
		Order("holder_id ASC, currency ASC").
		Find(&creditModels).Error; err != nil {
		return nil, err
	}
	credits := make([]finance.CreditAccount, len(creditModels))
	for i := range creditModels {
		credits[i] = *creditModels[i].ToDomain()
	}
	return credits, nil
}
