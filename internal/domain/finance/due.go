package finance

import (
	"time"

	"github.com/agency/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DueStatus is the lifecycle of a scheduled debt entry. Transitions are
// unconditional (marked from the UI), so no state machine beyond the enum.
type DueStatus string

const (
	DuePending DueStatus = "pendiente"
	DuePaid    DueStatus = "pagado"
)

// IsValid reports whether the status is a known DueStatus.
func (s DueStatus) IsValid() bool {
	return s == DuePending || s == DuePaid
}

// OperatorDue is a scheduled amount the agency owes an operator.
type OperatorDue struct {
	shared.AgencyEntity
	OperatorID uuid.UUID
	BookingID  *uuid.UUID
	Concept    string
	DueDate    time.Time
	Amount     decimal.Decimal
	Currency   string
	Status     DueStatus
}

// NewOperatorDue creates a pending operator due.
func NewOperatorDue(agencyID, operatorID uuid.UUID, concept string, dueDate time.Time, amount decimal.Decimal, currency string) (*OperatorDue, error) {
	if NormalizeCurrency(currency) == "" {
		return nil, shared.ErrInvalidInput
	}
	return &OperatorDue{
		AgencyEntity: shared.NewAgencyEntity(agencyID),
		OperatorID:   operatorID,
		Concept:      concept,
		DueDate:      dueDate,
		Amount:       amount,
		Currency:     NormalizeCurrency(currency),
		Status:       DuePending,
	}, nil
}

// ClientDue is a scheduled client payment toward a booking.
type ClientDue struct {
	shared.AgencyEntity
	ClientID  uuid.UUID
	BookingID uuid.UUID
	Concept   string
	DueDate   time.Time
	Amount    decimal.Decimal
	Currency  string
	Status    DueStatus
}

// NewClientDue creates a pending client due.
func NewClientDue(agencyID, clientID, bookingID uuid.UUID, concept string, dueDate time.Time, amount decimal.Decimal, currency string) (*ClientDue, error) {
	if NormalizeCurrency(currency) == "" {
		return nil, shared.ErrInvalidInput
	}
	return &ClientDue{
		AgencyEntity: shared.NewAgencyEntity(agencyID),
		ClientID:     clientID,
		BookingID:    bookingID,
		Concept:      concept,
		DueDate:      dueDate,
		Amount:       amount,
		Currency:     NormalizeCurrency(currency),
		Status:       DuePending,
	}, nil
}
