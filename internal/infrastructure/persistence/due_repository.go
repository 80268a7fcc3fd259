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

// GormOperatorDueRepository implements finance.OperatorDueRepository using
// GORM.
type GormOperatorDueRepository struct {
	db *gorm.DB
}

// NewGormOperatorDueRepository creates a new GormOperatorDueRepository.
func NewGormOperatorDueRepository(db *gorm.DB) *GormOperatorDueRepository {
	return &GormOperatorDueRepository{db: db}
}

// Save creates an operator due.
func (r *GormOperatorDueRepository) Save(ctx context.Context, due *finance.OperatorDue) error {
	model := &models.OperatorDueModel{}
	model.FromDomain(due)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update rewrites an operator due.
func (r *GormOperatorDueRepository) Update(ctx context.Context, due *finance.OperatorDue) error {
	model := &models.OperatorDueModel{}
	model.FromDomain(due)
	return r.db.WithContext(ctx).
		Where("agency_id = ? AND id = ?", due.AgencyID, due.ID).
		Save(model).Error
}

// Delete removes an operator due.
func (r *GormOperatorDueRepository) Delete(ctx context.Context, agencyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("agency_id = ? AND id = ?", agencyID, id).
		Delete(&models.OperatorDueModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an operator due by ID within an agency.
func (r *GormOperatorDueRepository) FindByID(ctx context.Context, agencyID, id uuid.UUID) (*finance.OperatorDue, error) {
	var model models.OperatorDueModel
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

// FindAll finds operator dues matching the filter ordered by due date.
func (r *GormOperatorDueRepository) FindAll(ctx context.Context, agencyID uuid.UUID, filter finance.DueFilter) ([]finance.OperatorDue, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OperatorDueModel{}).
		Where("agency_id = ?", agencyID)

	if filter.OperatorID != nil {
		query = query.Where("operator_id = ?", *filter.OperatorID)
	}
	if filter.BookingID != nil {
		query = query.Where("booking_id = ?", *filter.BookingID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	query = applyDateRange(query, "due_date", filter.Range)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var dueModels []models.OperatorDueModel
	if err := paginate(query.Order("due_date ASC, created_at ASC"), filter.Page, filter.PageSize).
		Find(&dueModels).Error; err != nil {
		return nil, 0, err
	}

	dues := make([]finance.OperatorDue, len(dueModels))
	for i := range dueModels {
		dues[i] = *dueModels[i].ToDomain()
	}
	return dues, total, nil
}

// GormClientDueRepository implements finance.ClientDueRepository using GORM.
type GormClientDueRepository struct {
	db *gorm.DB
}

// NewGormClientDueRepository creates a new GormClientDueRepository.
func NewGormClientDueRepository(db *gorm.DB) *GormClientDueRepository {
	return &GormClientDueRepository{db: db}
}

// Save creates a client due.
func (r *GormClientDueRepository) Save(ctx context.Context, due *finance.ClientDue) error {
	model := &models.ClientDueModel{}
	model.FromDomain(due)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update rewrites a client due.
func (r *GormClientDueRepository) Update(ctx context.Context, due *finance.ClientDue) error {
	model := &models.ClientDueModel{}
	model.FromDomain(due)
	return r.db.WithContext(ctx).
		Where("agency_id = ? AND id = ?", due.AgencyID, due.ID).
		Save(model).Error
}

// Delete removes a client due.
func (r *GormClientDueRepository) Delete(ctx context.Context, agencyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("agency_id = ? AND id = ?", agencyID, id).
		Delete(&models.ClientDueModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a client due by ID within an agency.
func (r *GormClientDueRepository) FindByID(ctx context.Context, agencyID, id uuid.UUID) (*finance.ClientDue, error) {
	var model models.ClientDueModel
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

// FindAll finds client dues matching the filter ordered by due date.
func (r *GormClientDueRepository) FindAll(ctx context.Context, agencyID uuid.UUID, filter finance.DueFilter) ([]finance.ClientDue, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ClientDueModel{}).
		Where("agency_id = ?", agencyID)

	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.BookingID != nil {
		query = query.Where("booking_id = ?", *filter.BookingID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	query = applyDateRange(query, "due_date", filter.Range)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var dueModels []models.ClientDueModel
	if err := paginate(query.Order("due_date ASC, created_at ASC"), filter.Page, filter.PageSize).
		Find(&dueModels).Error; err != nil {
		return nil, 0, err
	}

	dues := make([]finance.ClientDue, len(dueModels))
	for i := range dueModels {
		dues[i] = *dueModels[i].ToDomain()
	}
	return dues, total, nil
}
