package finance

import (
	"context"
	"time"

	"github.com/agency/backend/internal/domain/booking"
	"github.com/agency/backend/internal/domain/finance"
	"github.com/agency/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvestmentService provides investment CRUD. Creating or updating an
// investment that references services also writes its allocation rows, in
// one repository transaction.
type InvestmentService struct {
	investmentRepo finance.InvestmentRepository
	serviceRepo    booking.ServiceRepository
}

// NewInvestmentService creates an InvestmentService.
func NewInvestmentService(investmentRepo finance.InvestmentRepository, serviceRepo booking.ServiceRepository) *InvestmentService {
	return &InvestmentService{
		investmentRepo: investmentRepo,
		serviceRepo:    serviceRepo,
	}
}

// AllocationInput is one explicit per-service portion supplied by the caller.
type AllocationInput struct {
	ServiceID       uuid.UUID       `json:"service_id" binding:"required"`
	AmountPayment   decimal.Decimal `json:"amount_payment" binding:"required"`
	PaymentCurrency string          `json:"payment_currency" binding:"required,currency"`
	AmountService   decimal.Decimal `json:"amount_service" binding:"required"`
	ServiceCurrency string          `json:"service_currency" binding:"required,currency"`
}

// CreateInvestmentRequest creates an investment.
type CreateInvestmentRequest struct {
	OperatorID  *uuid.UUID        `json:"operator_id"`
	BookingID   *uuid.UUID        `json:"booking_id"`
	Category    string            `json:"category" binding:"required,oneof=pago_operador gasto"`
	Concept     string            `json:"concept" binding:"required"`
	Date        time.Time         `json:"date" binding:"required"`
	Amount      decimal.Decimal   `json:"amount" binding:"required"`
	Currency    string            `json:"currency" binding:"required,currency"`
	Method      string            `json:"method"`
	AccountID   *uuid.UUID        `json:"account_id"`
	ServiceIDs  []uuid.UUID       `json:"service_ids"`
	Allocations []AllocationInput `json:"allocations"`
	CreatedBy   *uuid.UUID        `json:"-"`
}

// UpdateInvestmentRequest updates an investment.
type UpdateInvestmentRequest struct {
	Concept     string            `json:"concept" binding:"required"`
	Date        time.Time         `json:"date" binding:"required"`
	Amount      decimal.Decimal   `json:"amount" binding:"required"`
	Currency    string            `json:"currency" binding:"required,currency"`
	Method      string            `json:"method"`
	AccountID   *uuid.UUID        `json:"account_id"`
	ServiceIDs  []uuid.UUID       `json:"service_ids"`
	Allocations []AllocationInput `json:"allocations"`
}

// Create persists a new investment together with its allocation rows.
func (s *InvestmentService) Create(ctx context.Context, agencyID uuid.UUID, req CreateInvestmentRequest) (*finance.Investment, error) {
	inv, err := finance.NewInvestment(agencyID, finance.InvestmentCategory(req.Category), req.Concept, req.Date, req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}
	inv.OperatorID = req.OperatorID
	inv.BookingID = req.BookingID
	inv.Method = req.Method
	inv.AccountID = req.AccountID
	if req.CreatedBy != nil {
		inv.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.applyAllocations(ctx, agencyID, inv, req.ServiceIDs, req.Allocations); err != nil {
		return nil, err
	}
	if err := s.investmentRepo.Save(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Update rewrites an investment and replaces its allocation rows.
func (s *InvestmentService) Update(ctx context.Context, agencyID, id uuid.UUID, req UpdateInvestmentRequest) (*finance.Investment, error) {
	inv, err := s.investmentRepo.FindByID(ctx, agencyID, id)
	if err != nil {
		return nil, err
	}
	if finance.NormalizeCurrency(req.Currency) == "" {
		return nil, shared.ErrInvalidInput
	}
	inv.Concept = req.Concept
	inv.Date = req.Date
	inv.Amount = req.Amount
	inv.Currency = finance.NormalizeCurrency(req.Currency)
	inv.Method = req.Method
	inv.AccountID = req.AccountID

	if err := s.applyAllocations(ctx, agencyID, inv, req.ServiceIDs, req.Allocations); err != nil {
		return nil, err
	}
	if err := s.investmentRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// applyAllocations resolves the request's service references into allocation
// rows. Explicit allocations are taken as-is; a bare service ID list is split
// proportionally by service cost. A bundle the allocator refuses (mixed
// currencies) keeps the legacy ID list with no rows.
func (s *InvestmentService) applyAllocations(ctx context.Context, agencyID uuid.UUID, inv *finance.Investment, serviceIDs []uuid.UUID, explicit []AllocationInput) error {
	if len(explicit) > 0 {
		rows := make([]finance.InvestmentAllocation, 0, len(explicit))
		for _, in := range explicit {
			rows = append(rows, finance.InvestmentAllocation{
				ServiceID:       in.ServiceID,
				AmountPayment:   in.AmountPayment,
				PaymentCurrency: finance.NormalizeCurrency(in.PaymentCurrency),
				AmountService:   in.AmountService,
				ServiceCurrency: finance.NormalizeCurrency(in.ServiceCurrency),
			})
		}
		inv.ServiceIDs = nil
		inv.ReplaceAllocations(rows)
		return nil
	}

	inv.ServiceIDs = serviceIDs
	inv.ReplaceAllocations(nil)
	if len(serviceIDs) == 0 {
		return nil
	}

	services, err := s.serviceRepo.FindByIDs(ctx, agencyID, serviceIDs)
	if err != nil {
		return err
	}
	shares := finance.AllocateProportionally(
		inv.Amount.InexactFloat64(),
		inv.Currency,
		booking.CostsByID(services, serviceIDs),
	)
	if len(shares) == 0 {
		return nil
	}
	rows := make([]finance.InvestmentAllocation, 0, len(shares))
	for _, share := range shares {
		amount := decimal.NewFromFloat(share.Amount)
		rows = append(rows, finance.InvestmentAllocation{
			ServiceID:       share.ServiceID,
			AmountPayment:   amount,
			PaymentCurrency: inv.Currency,
			AmountService:   amount,
			ServiceCurrency: inv.Currency,
		})
	}
	inv.ReplaceAllocations(rows)
	return nil
}

// GetByID returns one investment.
func (s *InvestmentService) GetByID(ctx context.Context, agencyID, id uuid.UUID) (*finance.Investment, error) {
	return s.investmentRepo.FindByID(ctx, agencyID, id)
}

// List returns investments matching the filter.
func (s *InvestmentService) List(ctx context.Context, agencyID uuid.UUID, filter finance.InvestmentFilter) ([]finance.Investment, int64, error) {
	return s.investmentRepo.FindAll(ctx, agencyID, filter)
}

// Delete removes an investment and its allocation rows.
func (s *InvestmentService) Delete(ctx context.Context, agencyID, id uuid.UUID) error {
	return s.investmentRepo.Delete(ctx, agencyID, id)
}
