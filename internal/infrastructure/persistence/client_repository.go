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

// GormClientRepository implements partner.ClientRepository using GORM.
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository.
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// Save creates a client.
func (r *GormClientRepository) Save(ctx context.Context, client *partner.Client) error {
	model := &models.ClientModel{}
	model.FromDomain(client)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update rewrites a client.
func (r *GormClientRepository) Update(ctx context.Context, client *partner.Client) error {
	model := &models.ClientModel{}
	model.FromDomain(client)
	return r.db.WithContext(ctx).
		Where("agency_id = ? AND id = ?", client.AgencyID, client.ID).
		Save(model).Error
}

// Delete removes a client.
func (r *GormClientRepository) Delete(ctx context.Context, agencyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("agency_id = ? AND id = ?", agencyID, id).
		Delete(&models.ClientModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a client by ID within an agency.
func (r *GormClientRepository) FindByID(ctx context.Context, agencyID, id uuid.UUID) (*partner.Client, error) {
	var model models.ClientModel
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

// FindAll finds clients matching the filter ordered by name, with the total
// count before pagination.
func (r *GormClientRepository) FindAll(ctx context.Context, agencyID uuid.UUID, filter partner.ClientFilter) ([]partner.Client, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ClientModel{}).
		Where("agency_id = ?", agencyID)

	if filter.Search != "" {
		pattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR document ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clientModels []models.ClientModel
	if err := paginate(query.Order("name ASC"), filter.Page, filter.PageSize).
		Find(&clientModels).Error; err != nil {
		return nil, 0, err
	}

	clients := make([]partner.Client, len(clientModels))
	for i := range clientModels {
		clients[i] = *clientModels[i].ToDomain()
	}
	return clients, total, nil
}
