package persistence

import (
	"context"
	"errors"

	"github.com/agency/backend/internal/domain/booking"
	"github.com/agency/backend/internal/domain/shared"
	"github.com/agency/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTravelServiceRepository implements booking.ServiceRepository using
// GORM.
type GormTravelServiceRepository struct {
	db *gorm.DB
}

// NewGormTravelServiceRepository creates a new GormTravelServiceRepository.
func NewGormTravelServiceRepository(db *gorm.DB) *GormTravelServiceRepository {
	return &GormTravelServiceRepository{db: db}
}

// Save creates a travel service.
func (r *GormTravelServiceRepository) Save(ctx context.Context, svc *booking.TravelService) error {
	model := &models.TravelServiceModel{}
	model.FromDomain(svc)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update rewrites a travel service.
func (r *GormTravelServiceRepository) Update(ctx context.Context, svc *booking.TravelService) error {
	model := &models.TravelServiceModel{}
	model.FromDomain(svc)
	return r.db.WithContext(ctx).
		Where("agency_id = ? AND id = ?", svc.AgencyID, svc.ID).
		Save(model).Error
}

// Delete removes a travel service.
func (r *GormTravelServiceRepository) Delete(ctx context.Context, agencyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("agency_id = ? AND id = ?", agencyID, id).
		Delete(&models.TravelServiceModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a travel service by ID within an agency.
func (r *GormTravelServiceRepository) FindByID(ctx context.Context, agencyID, id uuid.UUID) (*booking.TravelService, error) {
	var model models.TravelServiceModel
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

// FindByBooking finds the services of one booking in creation order.
func (r *GormTravelServiceRepository) FindByBooking(ctx context.Context, agencyID, bookingID uuid.UUID) ([]booking.TravelService, error) {
	var serviceModels []models.TravelServiceModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ? AND booking_id = ?", agencyID, bookingID).
		Order("created_at ASC").
		Find(&serviceModels).Error; err != nil {
		return nil, err
	}
	return toDomainServices(serviceModels), nil
}

// FindByIDs finds travel services by ID.
func (r *GormTravelServiceRepository) FindByIDs(ctx context.Context, agencyID uuid.UUID, ids []uuid.UUID) ([]booking.TravelService, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var serviceModels []models.TravelServiceModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ? AND id IN ?", agencyID, ids).
		Find(&serviceModels).Error; err != nil {
		return nil, err
	}
	return toDomainServices(serviceModels), nil
}

// FindByOperator finds an operator's services gated by creation date or by
// travel-date overlap, depending on which filter bounds are set.
func (r *GormTravelServiceRepository) FindByOperator(ctx context.Context, agencyID, operatorID uuid.UUID, filter booking.ServiceFilter) ([]booking.TravelService, error) {
	query := r.db.WithContext(ctx).Model(&models.TravelServiceModel{}).
		Where("agency_id = ? AND operator_id = ?", agencyID, operatorID)

	if filter.BookingID != nil {
		query = query.Where("booking_id = ?", *filter.BookingID)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at < ?", *filter.CreatedTo)
	}
	// Travel overlap: departs before the window ends and the trip end
	// (return, or departure when open-ended) falls on or after the start.
	if filter.TravelFrom != nil {
		query = query.Where("departure_date IS NOT NULL AND COALESCE(return_date, departure_date) >= ?", *filter.TravelFrom)
	}
	if filter.TravelTo != nil {
		query = query.Where("departure_date IS NOT NULL AND departure_date < ?", *filter.TravelTo)
	}

	var serviceModels []models.TravelServiceModel
	if err := query.Order("created_at ASC").Find(&serviceModels).Error; err != nil {
		return nil, err
	}
	return toDomainServices(serviceModels), nil
}

func toDomainServices(serviceModels []models.TravelServiceModel) []booking.TravelService {
	services := make([]booking.TravelService, len(serviceModels))
	for i := range serviceModels {
		services[i] = *serviceModels[i].ToDomain()
	}
	return services
}
