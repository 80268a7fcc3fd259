package partner

import (
	"context"

	"github.com/agency/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Operator is a wholesale provider the agency buys services from.
type Operator struct {
	shared.AgencyEntity
	Name            string
	ContactName     string
	Email           string
	Phone           string
	DefaultCurrency string
	Notes           string
}

// NewOperator creates an operator record.
func NewOperator(agencyID uuid.UUID, name string) (*Operator, error) {
	if name == "" {
		return nil, shared.ErrInvalidInput
	}
	return &Operator{
		AgencyEntity: shared.NewAgencyEntity(agencyID),
		Name:         name,
	}, nil
}

// OperatorFilter narrows operator list queries.
type OperatorFilter struct {
	Search   string
	Page     int
	PageSize int
}

// OperatorRepository persists operators.
type OperatorRepository interface {
	Save(ctx context.Context, operator *Operator) error
	Update(ctx context.Context, operator *Operator) error
	Delete(ctx context.Context, agencyID, id uuid.UUID) error
	FindByID(ctx context.Context, agencyID, id uuid.UUID) (*Operator, error)
	FindAll(ctx context.Context, agencyID uuid.UUID, filter OperatorFilter) ([]Operator, int64, error)
}
