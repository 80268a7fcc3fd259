package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/agency/backend/internal/domain/booking"
	"github.com/agency/backend/internal/domain/shared"
	"github.com/agency/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBookingRepository implements booking.Repository using GORM.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Save creates a booking. Services are persisted through the service
// repository, never through here.
func (r *GormBookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	model := &models.BookingModel{}
	model.FromDomain(b)
	return r.db.WithContext(ctx).Omit("Services").Create(model).Error
}

// Update rewrites a booking's own fields.
func (r *GormBookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	model := &models.BookingModel{}
	model.FromDomain(b)
	return r.db.WithContext(ctx).Omit("Services").
		Where("agency_id = ? AND id = ?", b.AgencyID, b.ID).
		Save(model).Error
}

// Delete removes a booking and its services.
func (r *GormBookingRepository) Delete(ctx context.Context, agencyID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("agency_id = ? AND booking_id = ?", agencyID, id).
			Delete(&models.TravelServiceModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("agency_id = ? AND id = ?", agencyID, id).
			Delete(&models.BookingModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a booking with its services.
func (r *GormBookingRepository) FindByID(ctx context.Context, agencyID, id uuid.UUID) (*booking.Booking, error) {
	var model models.BookingModel
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where("agency_id = ? AND id = ?", agencyID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds bookings matching the filter, newest first, with the total
// count before pagination.
func (r *GormBookingRepository) FindAll(ctx context.Context, agencyID uuid.UUID, filter booking.Filter) ([]booking.Booking, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BookingModel{}).
		Where("agency_id = ?", agencyID)

	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.QuoteStatus != "" {
		query = query.Where("quote_status = ?", filter.QuoteStatus)
	}
	if filter.Search != "" {
		pattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("reference ILIKE ? OR title ILIKE ?", pattern, pattern)
	}
	if filter.From != nil {
		query = query.Where("creation_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("creation_date < ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookingModels []models.BookingModel
	if err := paginate(query.Preload("Services").Order("creation_date DESC, created_at DESC"), filter.Page, filter.PageSize).
		Find(&bookingModels).Error; err != nil {
		return nil, 0, err
	}

	bookings := make([]booking.Booking, len(bookingModels))
	for i := range bookingModels {
		bookings[i] = *bookingModels[i].ToDomain()
	}
	return bookings, total, nil
}

// FindByIDs finds bookings by ID with their services.
func (r *GormBookingRepository) FindByIDs(ctx context.Context, agencyID uuid.UUID, ids []uuid.UUID) ([]booking.Booking, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var bookingModels []models.BookingModel
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where("agency_id = ? AND id IN ?", agencyID, ids).
		Find(&bookingModels).Error; err != nil {
		return nil, err
	}
	bookings := make([]booking.Booking, len(bookingModels))
	for i := range bookingModels {
		bookings[i] = *bookingModels[i].ToDomain()
	}
	return bookings, nil
}
