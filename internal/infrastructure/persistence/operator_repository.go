package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/agency/backend/internal/domain/partner"
	"github.com/agency/backend/internal/domain/shared"
	"github.com/agency/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOperatorRepository implements partner.OperatorRepository using GORM.
type GormOperatorRepository struct {
	db *gorm.DB
}

// NewGormOperatorRepository creates a new GormOperatorRepository.
func NewGormOperatorRepository(db *gorm.DB) *GormOperatorRepository {
	return &GormOperatorRepository{db: db}
}

// Save creates an operator.
func (r *GormOperatorRepository) Save(ctx context.Context, operator *partner.Operator) error {
	model := &models.OperatorModel{}
	model.FromDomain(operator)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update rewrites an operator.
func (r *GormOperatorRepository) Update(ctx context.Context, operator *partner.Operator) error {
	model := &models.OperatorModel{}
	model.FromDomain(operator)
	return r.db.WithContext(ctx).
		Where("agency_id = ? AND id = ?", operator.AgencyID, operator.ID).
		Save(model).Error
}

// Delete removes an operator.
func (r *GormOperatorRepository) Delete(ctx context.Context, agencyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("agency_id = ? AND id = ?", agencyID, id).
		Delete(&models.OperatorModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an operator by ID within an agency.
func (r *GormOperatorRepository) FindByID(ctx context.Context, agencyID, id uuid.UUID) (*partner.Operator, error) {
	var model models.OperatorModel
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

// FindAll finds operators matching the filter ordered by name, with the
// total count before pagination.
func (r *GormOperatorRepository) FindAll(ctx context.Context, agencyID uuid.UUID, filter partner.OperatorFilter) ([]partner.Operator, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OperatorModel{}).
		Where("agency_id = ?", agencyID)

	if filter.Search != "" {
		pattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("name ILIKE ? OR contact_name ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var operatorModels []models.OperatorModel
	if err := paginate(query.Order("name ASC"), filter.Page, filter.PageSize).
		Find(&operatorModels).Error; err != nil {
		return nil, 0, err
	}

	operators := make([]partner.Operator, len(operatorModels))
	for i := range operatorModels {
		operators[i] = *operatorModels[i].ToDomain()
	}
	return operators, total, nil
}
