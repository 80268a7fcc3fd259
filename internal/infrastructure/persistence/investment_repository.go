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

// GormInvestmentRepository implements finance.InvestmentRepository using GORM.
type GormInvestmentRepository struct {
	db *gorm.DB
}

// NewGormInvestmentRepository creates a new GormInvestmentRepository.
func NewGormInvestmentRepository(db *gorm.DB) *GormInvestmentRepository {
	return &GormInvestmentRepository{db: db}
}

// Save creates an investment and its allocation rows in one transaction.
func (r *GormInvestmentRepository) Save(ctx context.Context, investment *finance.Investment) error {
	model := &models.InvestmentModel{}
	model.FromDomain(investment)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Allocations").Create(model).Error; err != nil {
			return err
		}
		for i := range model.Allocations {
			if err := tx.Create(&model.Allocations[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Update rewrites an investment and replaces its allocation rows atomically.
func (r *GormInvestmentRepository) Update(ctx context.Context, investment *finance.Investment) error {
	model := &models.InvestmentModel{}
	model.FromDomain(investment)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Omit("Allocations").
			Where("agency_id = ? AND id = ?", investment.AgencyID, investment.ID).
			Save(model)
		if result.Error != nil {
			return result.Error
		}
		if err := tx.Where("investment_id = ?", investment.ID).
			Delete(&models.InvestmentAllocationModel{}).Error; err != nil {
			return err
		}
		for i := range model.Allocations {
			if err := tx.Create(&model.Allocations[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes an investment and its allocation rows.
func (r *GormInvestmentRepository) Delete(ctx context.Context, agencyID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("investment_id = ?", id).
			Delete(&models.InvestmentAllocationModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("agency_id = ? AND id = ?", agencyID, id).
			Delete(&models.InvestmentModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds an investment by ID within an agency.
func (r *GormInvestmentRepository) FindByID(ctx context.Context, agencyID, id uuid.UUID) (*finance.Investment, error) {
	var model models.InvestmentModel
	if err := r.db.WithContext(ctx).
		Preload("Allocations").
		Where("agency_id = ? AND id = ?", agencyID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds investments matching the filter, newest first, with the
// total count before pagination.
func (r *GormInvestmentRepository) FindAll(ctx context.Context, agencyID uuid.UUID, filter finance.InvestmentFilter) ([]finance.Investment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.InvestmentModel{}).
		Where("agency_id = ?", agencyID)

	if filter.OperatorID != nil {
		query = query.Where("operator_id = ?", *filter.OperatorID)
	}
	if filter.BookingID != nil {
		query = query.Where("booking_id = ?", *filter.BookingID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	query = applyDateRange(query, "date", filter.Range)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var investmentModels []models.InvestmentModel
	if err := paginate(query.Preload("Allocations").Order("date DESC, created_at DESC"), filter.Page, filter.PageSize).
		Find(&investmentModels).Error; err != nil {
		return nil, 0, err
	}

	investments := make([]finance.Investment, len(investmentModels))
	for i := range investmentModels {
		investments[i] = *investmentModels[i].ToDomain()
	}
	return investments, total, nil
}

// FindByServiceIDs finds investments referencing any of the given services
// through allocation rows or the legacy bundle column.
func (r *GormInvestmentRepository) FindByServiceIDs(ctx context.Context, agencyID uuid.UUID, serviceIDs []uuid.UUID) ([]finance.Investment, error) {
	if len(serviceIDs) == 0 {
		return nil, nil
	}
	var investmentModels []models.InvestmentModel
	if err := r.db.WithContext(ctx).
		Preload("Allocations").
		Where("agency_id = ?", agencyID).
		Where(
			`id IN (SELECT investment_id FROM investment_allocations WHERE service_id IN ?)
			 OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(service_ids) AS sid
			        WHERE sid::uuid IN ?)`,
			serviceIDs, serviceIDs).
		Order("date ASC, created_at ASC").
		Find(&investmentModels).Error; err != nil {
		return nil, err
	}
	investments := make([]finance.Investment, len(investmentModels))
	for i := range investmentModels {
		investments[i] = *investmentModels[i].ToDomain()
	}
	return investments, nil
}
