package booking

import (
	"time"

	"github.com/agency/backend/internal/domain/finance"
	"github.com/agency/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TravelService is one sellable item inside a booking: a hotel stay, a
// flight, an excursion. It belongs to exactly one booking and one operator,
// and all its monetary fields live in a single currency: a service is never
// split across currencies.
type TravelService struct {
	shared.AgencyEntity
	BookingID  uuid.UUID
	OperatorID uuid.UUID

	Description string
	SalePrice   decimal.Decimal
	CostPrice   decimal.Decimal
	Currency    string

	DepartureDate *time.Time
	ReturnDate    *time.Time
}

// NewTravelService creates a service under a booking.
func NewTravelService(agencyID, bookingID, operatorID uuid.UUID, description string, salePrice, costPrice decimal.Decimal, currency string) (*TravelService, error) {
	code := finance.NormalizeCurrency(currency)
	if code == "" || description == "" {
		return nil, shared.ErrInvalidInput
	}
	return &TravelService{
		AgencyEntity: shared.NewAgencyEntity(agencyID),
		BookingID:    bookingID,
		OperatorID:   operatorID,
		Description:  description,
		SalePrice:    salePrice,
		CostPrice:    costPrice,
		Currency:     code,
	}, nil
}

// Cost returns the allocator input for this service.
func (s *TravelService) Cost() finance.ServiceCost {
	return finance.ServiceCost{
		ServiceID: s.ID,
		CostPrice: s.CostPrice.InexactFloat64(),
		Currency:  s.Currency,
	}
}

// TravelsWithin reports whether the service's travel dates overlap the
// window: it departs before the window ends and returns (or departs, when
// open-ended) on or after the window start.
func (s *TravelService) TravelsWithin(from, to time.Time) bool {
	if s.DepartureDate == nil {
		return false
	}
	if !s.DepartureDate.Before(to) {
		return false
	}
	end := s.DepartureDate
	if s.ReturnDate != nil {
		end = s.ReturnDate
	}
	return !end.Before(from)
}

// ServiceCosts maps services into allocator inputs preserving order.
func ServiceCosts(services []TravelService) []finance.ServiceCost {
	costs := make([]finance.ServiceCost, 0, len(services))
	for _, svc := range services {
		costs = append(costs, svc.Cost())
	}
	return costs
}

// CostsByID returns allocator inputs for the given IDs in the order the IDs
// appear, skipping unknown ones. Order matters to the allocator: the last
// referenced service absorbs the rounding remainder.
func CostsByID(services []TravelService, ids []uuid.UUID) []finance.ServiceCost {
	byID := make(map[uuid.UUID]*TravelService, len(services))
	for i := range services {
		byID[services[i].ID] = &services[i]
	}
	costs := make([]finance.ServiceCost, 0, len(ids))
	for _, id := range ids {
		if svc, ok := byID[id]; ok {
			costs = append(costs, svc.Cost())
		}
	}
	return costs
}
