package finance

import (
	"context"
	"time"

	"github.com/agency/backend/internal/domain/finance"
	"github.com/agency/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScheduleService manages scheduled operator and client dues.
type ScheduleService struct {
	operatorDueRepo finance.OperatorDueRepository
	clientDueRepo   finance.ClientDueRepository
}

// NewScheduleService creates a ScheduleService.
func NewScheduleService(operatorDueRepo finance.OperatorDueRepository, clientDueRepo finance.ClientDueRepository) *ScheduleService {
	return &ScheduleService{
		operatorDueRepo: operatorDueRepo,
		clientDueRepo:   clientDueRepo,
	}
}

// CreateOperatorDueRequest creates an operator due.
type CreateOperatorDueRequest struct {
	OperatorID uuid.UUID       `json:"operator_id" binding:"required"`
	BookingID  *uuid.UUID      `json:"booking_id"`
	Concept    string          `json:"concept" binding:"required"`
	DueDate    time.Time       `json:"due_date" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Currency   string          `json:"currency" binding:"required,currency"`
}

// CreateClientDueRequest creates a client due.
type CreateClientDueRequest struct {
	ClientID  uuid.UUID       `json:"client_id" binding:"required"`
	BookingID uuid.UUID       `json:"booking_id" binding:"required"`
	Concept   string          `json:"concept" binding:"required"`
	DueDate   time.Time       `json:"due_date" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Currency  string          `json:"currency" binding:"required,currency"`
}

// CreateOperatorDue persists a pending operator due.
func (s *ScheduleService) CreateOperatorDue(ctx context.Context, agencyID uuid.UUID, req CreateOperatorDueRequest) (*finance.OperatorDue, error) {
	due, err := finance.NewOperatorDue(agencyID, req.OperatorID, req.Concept, req.DueDate, req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}
	due.BookingID = req.BookingID
	if err := s.operatorDueRepo.Save(ctx, due); err != nil {
		return nil, err
	}
	return due, nil
}

// CreateClientDue persists a pending client due.
func (s *ScheduleService) CreateClientDue(ctx context.Context, agencyID uuid.UUID, req CreateClientDueRequest) (*finance.ClientDue, error) {
	due, err := finance.NewClientDue(agencyID, req.ClientID, req.BookingID, req.Concept, req.DueDate, req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}
	if err := s.clientDueRepo.Save(ctx, due); err != nil {
		return nil, err
	}
	return due, nil
}

// SetOperatorDueStatus marks an operator due paid or pending.
func (s *ScheduleService) SetOperatorDueStatus(ctx context.Context, agencyID, id uuid.UUID, status finance.DueStatus) (*finance.OperatorDue, error) {
	if !status.IsValid() {
		return nil, shared.ErrInvalidInput
	}
	due, err := s.operatorDueRepo.FindByID(ctx, agencyID, id)
	if err != nil {
		return nil, err
	}
	due.Status = status
	if err := s.operatorDueRepo.Update(ctx, due); err != nil {
		return nil, err
	}
	return due, nil
}

// SetClientDueStatus marks a client due paid or pending.
func (s *ScheduleService) SetClientDueStatus(ctx context.Context, agencyID, id uuid.UUID, status finance.DueStatus) (*finance.ClientDue, error) {
	if !status.IsValid() {
		return nil, shared.ErrInvalidInput
	}
	due, err := s.clientDueRepo.FindByID(ctx, agencyID, id)
	if err != nil {
		return nil, err
	}
	due.Status = status
	if err := s.clientDueRepo.Update(ctx, due); err != nil {
		return nil, err
	}
	return due, nil
}

// ListOperatorDues returns operator dues matching the filter.
func (s *ScheduleService) ListOperatorDues(ctx context.Context, agencyID uuid.UUID, filter finance.DueFilter) ([]finance.OperatorDue, int64, error) {
	return s.operatorDueRepo.FindAll(ctx, agencyID, filter)
}

// ListClientDues returns client dues matching the filter.
func (s *ScheduleService) ListClientDues(ctx context.Context, agencyID uuid.UUID, filter finance.DueFilter) ([]finance.ClientDue, int64, error) {
	return s.clientDueRepo.FindAll(ctx, agencyID, filter)
}

// DeleteOperatorDue removes an operator due.
func (s *ScheduleService) DeleteOperatorDue(ctx context.Context, agencyID, id uuid.UUID) error {
	return s.operatorDueRepo.Delete(ctx, agencyID, id)
}

// DeleteClientDue removes a client due.
func (s *ScheduleService) DeleteClientDue(ctx context.Context, agencyID, id uuid.UUID) error {
	return s.clientDueRepo.Delete(ctx, agencyID, id)
}
