package partner

import (
	"context"

	"github.com/agency/backend/internal/domain/finance"
	"github.com/agency/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// Service provides client and operator use cases.
type Service struct {
	clientRepo   partner.ClientRepository
	operatorRepo partner.OperatorRepository
}

// NewService creates a partner Service.
func NewService(clientRepo partner.ClientRepository, operatorRepo partner.OperatorRepository) *Service {
	return &Service{clientRepo: clientRepo, operatorRepo: operatorRepo}
}

// ClientRequest carries client fields for create and update.
type ClientRequest struct {
	Name     string `json:"name" binding:"required"`
	Document string `json:"document"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Notes    string `json:"notes"`
}

// OperatorRequest carries operator fields for create and update.
type OperatorRequest struct {
	Name            string `json:"name" binding:"required"`
	ContactName     string `json:"contact_name"`
	Email           string `json:"email" binding:"omitempty,email"`
	Phone           string `json:"phone"`
	DefaultCurrency string `json:"default_currency" binding:"omitempty,currency"`
	Notes           string `json:"notes"`
}

// CreateClient persists a new client.
func (s *Service) CreateClient(ctx context.Context, agencyID uuid.UUID, createdBy *uuid.UUID, req ClientRequest) (*partner.Client, error) {
	c, err := partner.NewClient(agencyID, req.Name)
	if err != nil {
		return nil, err
	}
	applyClient(c, req)
	if createdBy != nil {
		c.SetCreatedBy(*createdBy)
	}
	if err := s.clientRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateClient rewrites client fields.
func (s *Service) UpdateClient(ctx context.Context, agencyID, id uuid.UUID, req ClientRequest) (*partner.Client, error) {
	c, err := s.clientRepo.FindByID(ctx, agencyID, id)
	if err != nil {
		return nil, err
	}
	applyClient(c, req)
	if err := s.clientRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetClient returns one client.
func (s *Service) GetClient(ctx context.Context, agencyID, id uuid.UUID) (*partner.Client, error) {
	return s.clientRepo.FindByID(ctx, agencyID, id)
}

// ListClients returns clients matching the filter.
func (s *Service) ListClients(ctx context.Context, agencyID uuid.UUID, filter partner.ClientFilter) ([]partner.Client, int64, error) {
	return s.clientRepo.FindAll(ctx, agencyID, filter)
}

// DeleteClient removes a client.
func (s *Service) DeleteClient(ctx context.Context, agencyID, id uuid.UUID) error {
	return s.clientRepo.Delete(ctx, agencyID, id)
}

// CreateOperator persists a new operator.
func (s *Service) CreateOperator(ctx context.Context, agencyID uuid.UUID, createdBy *uuid.UUID, req OperatorRequest) (*partner.Operator, error) {
	o, err := partner.NewOperator(agencyID, req.Name)
	if err != nil {
		return nil, err
	}
	applyOperator(o, req)
	if createdBy != nil {
		o.SetCreatedBy(*createdBy)
	}
	if err := s.operatorRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateOperator rewrites operator fields.
func (s *Service) UpdateOperator(ctx context.Context, agencyID, id uuid.UUID, req OperatorRequest) (*partner.Operator, error) {
	o, err := s.operatorRepo.FindByID(ctx, agencyID, id)
	if err != nil {
		return nil, err
	}
	applyOperator(o, req)
	if err := s.operatorRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// GetOperator returns one operator.
func (s *Service) GetOperator(ctx context.Context, agencyID, id uuid.UUID) (*partner.Operator, error) {
	return s.operatorRepo.FindByID(ctx, agencyID, id)
}

// ListOperators returns operators matching the filter.
func (s *Service) ListOperators(ctx context.Context, agencyID uuid.UUID, filter partner.OperatorFilter) ([]partner.Operator, int64, error) {
	return s.operatorRepo.FindAll(ctx, agencyID, filter)
}

// DeleteOperator removes an operator.
func (s *Service) DeleteOperator(ctx context.Context, agencyID, id uuid.UUID) error {
	return s.operatorRepo.Delete(ctx, agencyID, id)
}

func applyClient(c *partner.Client, req ClientRequest) {
	c.Name = req.Name
	c.Document = req.Document
	c.Email = req.Email
	c.Phone = req.Phone
	c.Address = req.Address
	c.Notes = req.Notes
}

func applyOperator(o *partner.Operator, req OperatorRequest) {
	o.Name = req.Name
	o.ContactName = req.ContactName
	o.Email = req.Email
	o.Phone = req.Phone
	o.DefaultCurrency = finance.NormalizeCurrency(req.DefaultCurrency)
	o.Notes = req.Notes
}
