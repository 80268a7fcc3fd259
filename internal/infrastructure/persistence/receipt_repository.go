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

// GormReceiptRepository implements finance.ReceiptRepository using GORM.
type GormReceiptRepository struct {
	db *gorm.DB
}

// NewGormReceiptRepository creates a new GormReceiptRepository.
func NewGormReceiptRepository(db *gorm.DB) *GormReceiptRepository {
	return &GormReceiptRepository{db: db}
}

// Save creates a receipt and its allocation rows in one transaction.
func (r *GormReceiptRepository) Save(ctx context.Context, receipt *finance.Receipt) error {
	model := &models.ReceiptModel{}
	model.FromDomain(receipt)
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

// Update rewrites a receipt and replaces its allocation rows atomically.
func (r *GormReceiptRepository) Update(ctx context.Context, receipt *finance.Receipt) error {
	model := &models.ReceiptModel{}
	model.FromDomain(receipt)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Omit("Allocations").
			Where("agency_id = ? AND id = ?", receipt.AgencyID, receipt.ID).
			Save(model)
		if result.Error != nil {
			return result.Error
		}
		if err := tx.Where("receipt_id = ?", receipt.ID).
			Delete(&models.ReceiptAllocationModel{}).Error; err != nil {
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

// Delete removes a receipt and its allocation rows.
func (r *GormReceiptRepository) Delete(ctx context.Context, agencyID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("receipt_id = ?", id).
			Delete(&models.ReceiptAllocationModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("agency_id = ? AND id = ?", agencyID, id).
			Delete(&models.ReceiptModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a receipt by ID within an agency.
func (r *GormReceiptRepository) FindByID(ctx context.Context, agencyID, id uuid.UUID) (*finance.Receipt, error) {
	var model models.ReceiptModel
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

// FindAll finds receipts matching the filter, newest first, with the total
// count before pagination.
func (r *GormReceiptRepository) FindAll(ctx context.Context, agencyID uuid.UUID, filter finance.ReceiptFilter) ([]finance.Receipt, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ReceiptModel{}).
		Where("agency_id = ?", agencyID)

	if filter.BookingID != nil {
		query = query.Where("booking_id = ?", *filter.BookingID)
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.OperatorID != nil {
		// A receipt has no operator of its own; it belongs to an operator
		// through the services it references, explicitly or via the legacy
		// bundle column.
		query = query.Where(
			`id IN (SELECT ra.receipt_id FROM receipt_allocations ra
			        JOIN travel_services ts ON ts.id = ra.service_id
			        WHERE ts.operator_id = ?)
			 OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(service_ids) AS sid
			        JOIN travel_services ts ON ts.id = sid::uuid
			        WHERE ts.operator_id = ?)`,
			*filter.OperatorID, *filter.OperatorID)
	}
	query = applyDateRange(query, "date", filter.Range)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var receiptModels []models.ReceiptModel
	if err := paginate(query.Preload("Allocations").Order("date DESC, created_at DESC"), filter.Page, filter.PageSize).
		Find(&receiptModels).Error; err != nil {
		return nil, 0, err
	}

	receipts := make([]finance.Receipt, len(receiptModels))
	for i := range receiptModels {
		receipts[i] = *receiptModels[i].ToDomain()
	}
	return receipts, total, nil
}

// FindByBooking finds all receipts against a booking in date order.
func (r *GormReceiptRepository) FindByBooking(ctx context.Context, agencyID, bookingID uuid.UUID) ([]finance.Receipt, error) {
	var receiptModels []models.ReceiptModel
	if err := r.db.WithContext(ctx).
		Preload("Allocations").
		Where("agency_id = ? AND booking_id = ?", agencyID, bookingID).
		Order("date ASC, created_at ASC").
		Find(&receiptModels).Error; err != nil {
		return nil, err
	}
	receipts := make([]finance.Receipt, len(receiptModels))
	for i := range receiptModels {
		receipts[i] = *receiptModels[i].ToDomain()
	}
	return receipts, nil
}

// FindByServiceIDs finds receipts referencing any of the given services
// through allocation rows or the legacy bundle column.
func (r *GormReceiptRepository) FindByServiceIDs(ctx context.Context, agencyID uuid.UUID, serviceIDs []uuid.UUID) ([]finance.Receipt, error) {
	if len(serviceIDs) == 0 {
		return nil, nil
	}
	var receiptModels []models.ReceiptModel
	if err := r.db.WithContext(ctx).
		Preload("Allocations").
		Where("agency_id = ?", agencyID).
		Where(
			`id IN (SELECT receipt_id FROM receipt_allocations WHERE service_id IN ?)
			 OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(service_ids) AS sid
			        WHERE sid::uuid IN ?)`,
			serviceIDs, serviceIDs).
		Order("date ASC, created_at ASC").
		Find(&receiptModels).Error; err != nil {
		return nil, err
	}
	receipts := make([]finance.Receipt, len(receiptModels))
	for i := range receiptModels {
		receipts[i] = *receiptModels[i].ToDomain()
	}
	return receipts, nil
}

// applyDateRange narrows a query to the half-open [From, To) window on the
// given column.
func applyDateRange(query *gorm.DB, column string, dateRange *finance.DateRange) *gorm.DB {
	if dateRange == nil {
		return query
	}
	if !dateRange.From.IsZero() {
		query = query.Where(column+" >= ?", dateRange.From)
	}
	if !dateRange.To.IsZero() {
		query = query.Where(column+" < ?", dateRange.To)
	}
	return query
}
