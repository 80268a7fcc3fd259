package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Filter narrows booking list queries.
type Filter struct {
	ClientID    *uuid.UUID
	Status      Status
	QuoteStatus QuoteStatus
	Search      string
	From        *time.Time
	To          *time.Time
	Page        int
	PageSize    int
}

// Repository persists bookings and their services.
type Repository interface {
	Save(ctx context.Context, b *Booking) error
	Update(ctx context.Context, b *Booking) error
	Delete(ctx context.Context, agencyID, id uuid.UUID) error
	FindByID(ctx context.Context, agencyID, id uuid.UUID) (*Booking, error)
	FindAll(ctx context.Context, agencyID uuid.UUID, filter Filter) ([]Booking, int64, error)
	FindByIDs(ctx context.Context, agencyID uuid.UUID, ids []uuid.UUID) ([]Booking, error)
}

// ServiceFilter narrows travel service queries.
type ServiceFilter struct {
	BookingID  *uuid.UUID
	OperatorID *uuid.UUID
	// CreatedFrom/CreatedTo gate by record creation date; TravelFrom/TravelTo
	// by departure/return overlap. Report endpoints pick one via date mode.
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	TravelFrom  *time.Time
	TravelTo    *time.Time
}

// ServiceRepository persists travel services.
type ServiceRepository interface {
	Save(ctx context.Context, svc *TravelService) error
	Update(ctx context.Context, svc *TravelService) error
	Delete(ctx context.Context, agencyID, id uuid.UUID) error
	FindByID(ctx context.Context, agencyID, id uuid.UUID) (*TravelService, error)
	FindByBooking(ctx context.Context, agencyID, bookingID uuid.UUID) ([]TravelService, error)
	FindByIDs(ctx context.Context, agencyID uuid.UUID, ids []uuid.UUID) ([]TravelService, error)
	FindByOperator(ctx context.Context, agencyID, operatorID uuid.UUID, filter ServiceFilter) ([]TravelService, error)
}
