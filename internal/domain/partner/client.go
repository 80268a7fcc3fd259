package partner

import (
	"context"

	"github.com/agency/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Client is a person or company the agency sells to.
type Client struct {
	shared.AgencyEntity
	Name     string
	Document string
	Email    string
	Phone    string
	Address  string
	Notes    string
}

// NewClient creates a client record.
func NewClient(agencyID uuid.UUID, name string) (*Client, error) {
	if name == "" {
		return nil, shared.ErrInvalidInput
	}
	return &Client{
		AgencyEntity: shared.NewAgencyEntity(agencyID),
		Name:         name,
	}, nil
}

// ClientFilter narrows client list queries.
type ClientFilter struct {
	Search   string
	Page     int
	PageSize int
}

// ClientRepository persists clients.
type ClientRepository interface {
	Save(ctx context.Context, client *Client) error
	Update(ctx context.Context, client *Client) error
	Delete(ctx context.Context, agencyID, id uuid.UUID) error
	FindByID(ctx context.Context, agencyID, id uuid.UUID) (*Client, error)
	FindAll(ctx context.Context, agencyID uuid.UUID, filter ClientFilter) ([]Client, int64, error)
}
