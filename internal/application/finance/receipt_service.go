package finance

import (
	"context"
	"time"

	"github.com/agency/backend/internal/domain/finance"
	"github.com/agency/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptService provides receipt CRUD.
type ReceiptService struct {
	receiptRepo finance.ReceiptRepository
}

// NewReceiptService creates a ReceiptService.
func NewReceiptService(receiptRepo finance.ReceiptRepository) *ReceiptService {
	return &ReceiptService{receiptRepo: receiptRepo}
}

// ReceiptLegInput is one payment leg of a receipt request.
type ReceiptLegInput struct {
	Method    string          `json:"method" binding:"required"`
	AccountID uuid.UUID       `json:"account_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// ReceiptAllocationInput is one explicit per-service portion.
type ReceiptAllocationInput struct {
	ServiceID       uuid.UUID       `json:"service_id" binding:"required"`
	AmountPayment   decimal.Decimal `json:"amount_payment" binding:"required"`
	PaymentCurrency string          `json:"payment_currency" binding:"required,currency"`
	AmountService   decimal.Decimal `json:"amount_service" binding:"required"`
	ServiceCurrency string          `json:"service_currency" binding:"required,currency"`
}

// CreateReceiptRequest creates a receipt.
type CreateReceiptRequest struct {
	BookingID       uuid.UUID                `json:"booking_id" binding:"required"`
	ClientID        uuid.UUID                `json:"client_id" binding:"required"`
	Number          string                   `json:"number" binding:"required"`
	Concept         string                   `json:"concept"`
	Date            time.Time                `json:"date" binding:"required"`
	Amount          decimal.Decimal          `json:"amount" binding:"required"`
	Currency        string                   `json:"currency" binding:"required,currency"`
	CounterAmount   *decimal.Decimal         `json:"counter_amount"`
	CounterCurrency string                   `json:"counter_currency"`
	Legs            []ReceiptLegInput        `json:"legs"`
	ServiceIDs      []uuid.UUID              `json:"service_ids"`
	Allocations     []ReceiptAllocationInput `json:"allocations"`
	CreatedBy       *uuid.UUID               `json:"-"`
}

// UpdateReceiptRequest updates a receipt.
type UpdateReceiptRequest struct {
	Concept         string                   `json:"concept"`
	Date            time.Time                `json:"date" binding:"required"`
	Amount          decimal.Decimal          `json:"amount" binding:"required"`
	Currency        string                   `json:"currency" binding:"required,currency"`
	CounterAmount   *decimal.Decimal         `json:"counter_amount"`
	CounterCurrency string                   `json:"counter_currency"`
	Legs            []ReceiptLegInput        `json:"legs"`
	ServiceIDs      []uuid.UUID              `json:"service_ids"`
	Allocations     []ReceiptAllocationInput `json:"allocations"`
}

// Create persists a new receipt.
func (s *ReceiptService) Create(ctx context.Context, agencyID uuid.UUID, req CreateReceiptRequest) (*finance.Receipt, error) {
	receipt, err := finance.NewReceipt(agencyID, req.BookingID, req.ClientID, req.Number, req.Date, req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}
	receipt.Concept = req.Concept
	if req.CreatedBy != nil {
		receipt.SetCreatedBy(*req.CreatedBy)
	}
	if err := applyReceiptDetails(receipt, req.CounterAmount, req.CounterCurrency, req.Legs, req.ServiceIDs, req.Allocations); err != nil {
		return nil, err
	}
	if err := s.receiptRepo.Save(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// Update rewrites a receipt.
func (s *ReceiptService) Update(ctx context.Context, agencyID, id uuid.UUID, req UpdateReceiptRequest) (*finance.Receipt, error) {
	receipt, err := s.receiptRepo.FindByID(ctx, agencyID, id)
	if err != nil {
		return nil, err
	}
	if finance.NormalizeCurrency(req.Currency) == "" {
		return nil, shared.ErrInvalidInput
	}
	receipt.Concept = req.Concept
	receipt.Date = req.Date
	receipt.Amount = req.Amount
	receipt.Currency = finance.NormalizeCurrency(req.Currency)
	if err := applyReceiptDetails(receipt, req.CounterAmount, req.CounterCurrency, req.Legs, req.ServiceIDs, req.Allocations); err != nil {
		return nil, err
	}
	if err := s.receiptRepo.Update(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

func applyReceiptDetails(receipt *finance.Receipt, counterAmount *decimal.Decimal, counterCurrency string, legs []ReceiptLegInput, serviceIDs []uuid.UUID, allocations []ReceiptAllocationInput) error {
	receipt.CounterAmount = counterAmount
	receipt.CounterCurrency = finance.NormalizeCurrency(counterCurrency)
	if (counterAmount == nil) != (receipt.CounterCurrency == "") {
		// Half a counter pair is unusable.
		return shared.ErrInvalidInput
	}

	receipt.Legs = receipt.Legs[:0]
	var legSum decimal.Decimal
	for _, in := range legs {
		receipt.Legs = append(receipt.Legs, finance.ReceiptLeg{
			Method:    in.Method,
			AccountID: in.AccountID,
			Amount:    in.Amount,
		})
		legSum = legSum.Add(in.Amount)
	}
	if len(legs) > 0 {
		settled := receipt.Amount
		if counterAmount != nil {
			settled = *counterAmount
		}
		if !legSum.Round(2).Equal(settled.Round(2)) {
			return shared.NewDomainError("LEGS_MISMATCH", "Payment legs must sum to the settled amount")
		}
	}

	receipt.ServiceIDs = serviceIDs
	receipt.Allocations = receipt.Allocations[:0]
	for _, in := range allocations {
		receipt.Allocations = append(receipt.Allocations, finance.ReceiptAllocation{
			ServiceID:       in.ServiceID,
			AmountPayment:   in.AmountPayment,
			PaymentCurrency: finance.NormalizeCurrency(in.PaymentCurrency),
			AmountService:   in.AmountService,
			ServiceCurrency: finance.NormalizeCurrency(in.ServiceCurrency),
		})
	}
	if len(receipt.Allocations) > 0 {
		receipt.ServiceIDs = nil
	}
	return nil
}

// GetByID returns one receipt.
func (s *ReceiptService) GetByID(ctx context.Context, agencyID, id uuid.UUID) (*finance.Receipt, error) {
	return s.receiptRepo.FindByID(ctx, agencyID, id)
}

// List returns receipts matching the filter.
func (s *ReceiptService) List(ctx context.Context, agencyID uuid.UUID, filter finance.ReceiptFilter) ([]finance.Receipt, int64, error) {
	return s.receiptRepo.FindAll(ctx, agencyID, filter)
}

// Delete removes a receipt.
func (s *ReceiptService) Delete(ctx context.Context, agencyID, id uuid.UUID) error {
	return s.receiptRepo.Delete(ctx, agencyID, id)
}
