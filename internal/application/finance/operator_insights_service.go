package finance

import (
	"context"
	"sort"
	"time"

	"github.com/agency/backend/internal/domain/booking"
	"github.com/agency/backend/internal/domain/finance"
	"github.com/agency/backend/internal/domain/partner"
	"github.com/agency/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DateMode selects which date field gates a service into an insights window.
type DateMode string

const (
	// DateModeCreation gates by the service's record creation date.
	DateModeCreation DateMode = "creation"
	// DateModeTravel gates by departure/return overlap with the window.
	DateModeTravel DateMode = "travel"
)

// IsValid reports whether the mode is known.
func (m DateMode) IsValid() bool {
	return m == DateModeCreation || m == DateModeTravel
}

// OperatorInsightsService aggregates one operator's services, client
// receipts, operator payments and dues over a date range.
type OperatorInsightsService struct {
	operatorRepo   partner.OperatorRepository
	bookingRepo    booking.Repository
	serviceRepo    booking.ServiceRepository
	receiptRepo    finance.ReceiptRepository
	investmentRepo finance.InvestmentRepository
	dueRepo        finance.OperatorDueRepository
}

// NewOperatorInsightsService creates an OperatorInsightsService.
func NewOperatorInsightsService(
	operatorRepo partner.OperatorRepository,
	bookingRepo booking.Repository,
	serviceRepo booking.ServiceRepository,
	receiptRepo finance.ReceiptRepository,
	investmentRepo finance.InvestmentRepository,
	dueRepo finance.OperatorDueRepository,
) *OperatorInsightsService {
	return &OperatorInsightsService{
		operatorRepo:   operatorRepo,
		bookingRepo:    bookingRepo,
		serviceRepo:    serviceRepo,
		receiptRepo:    receiptRepo,
		investmentRepo: investmentRepo,
		dueRepo:        dueRepo,
	}
}

// BookingInsight is the per-booking netting row of the insights report.
type BookingInsight struct {
	BookingID    uuid.UUID        `json:"booking_id"`
	Reference    string           `json:"reference"`
	Sold         finance.MoneyMap `json:"sold"`
	Cost         finance.MoneyMap `json:"cost"`
	Received     finance.MoneyMap `json:"received"`
	Paid         finance.MoneyMap `json:"paid"`
	ClientDebt   finance.MoneyMap `json:"client_debt"`
	OperatorDebt finance.MoneyMap `json:"operator_debt"`
}

// DueInsight is one scheduled due row.
type DueInsight struct {
	ID       uuid.UUID `json:"id"`
	Concept  string    `json:"concept"`
	DueDate  time.Time `json:"due_date"`
	Currency string    `json:"currency"`
	Amount   float64   `json:"amount"`
	Status   string    `json:"status"`
}

// OperatorInsights is the assembled report.
type OperatorInsights struct {
	OperatorID   uuid.UUID        `json:"operator_id"`
	OperatorName string           `json:"operator_name"`
	DateMode     string           `json:"date_mode"`
	From         time.Time        `json:"from"`
	To           time.Time        `json:"to"`
	Bookings     []BookingInsight `json:"bookings"`
	Sold         finance.MoneyMap `json:"sold"`
	Cost         finance.MoneyMap `json:"cost"`
	Received     finance.MoneyMap `json:"received"`
	Paid         finance.MoneyMap `json:"paid"`
	ClientDebt   finance.MoneyMap `json:"client_debt"`
	OperatorDebt finance.MoneyMap `json:"operator_debt"`
	Dues         []DueInsight     `json:"dues"`
}

// Insights assembles the report for one operator over [from, to).
func (s *OperatorInsightsService) Insights(ctx context.Context, agencyID, operatorID uuid.UUID, from, to time.Time, mode DateMode) (*OperatorInsights, error) {
	if !mode.IsValid() {
		return nil, shared.ErrInvalidInput
	}
	operator, err := s.operatorRepo.FindByID(ctx, agencyID, operatorID)
	if err != nil {
		return nil, err
	}

	filter := booking.ServiceFilter{OperatorID: &operatorID}
	if mode == DateModeCreation {
		filter.CreatedFrom = &from
		filter.CreatedTo = &to
	} else {
		filter.TravelFrom = &from
		filter.TravelTo = &to
	}
	services, err := s.serviceRepo.FindByOperator(ctx, agencyID, operatorID, filter)
	if err != nil {
		return nil, err
	}

	report := &OperatorInsights{
		OperatorID:   operatorID,
		OperatorName: operator.Name,
		DateMode:     string(mode),
		From:         from,
		To:           to,
		Bookings:     []BookingInsight{},
		Dues:         []DueInsight{},
	}
	if err := s.assembleBookings(ctx, report, agencyID, services); err != nil {
		return nil, err
	}
	if err := s.assembleDues(ctx, report, agencyID, operatorID, from, to); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *OperatorInsightsService) assembleBookings(ctx context.Context, report *OperatorInsights, agencyID uuid.UUID, services []booking.TravelService) error {
	if len(services) == 0 {
		report.Sold = finance.NewMoneyMap()
		report.Cost = finance.NewMoneyMap()
		report.Received = finance.NewMoneyMap()
		report.Paid = finance.NewMoneyMap()
		report.ClientDebt = finance.NewMoneyMap()
		report.OperatorDebt = finance.NewMoneyMap()
		return nil
	}

	serviceIDs := make([]uuid.UUID, 0, len(services))
	bookingIDSet := make(map[uuid.UUID]struct{})
	for _, svc := range services {
		serviceIDs = append(serviceIDs, svc.ID)
		bookingIDSet[svc.BookingID] = struct{}{}
	}
	bookingIDs := make([]uuid.UUID, 0, len(bookingIDSet))
	for id := range bookingIDSet {
		bookingIDs = append(bookingIDs, id)
	}
	bookings, err := s.bookingRepo.FindByIDs(ctx, agencyID, bookingIDs)
	if err != nil {
		return err
	}
	bookingByID := make(map[uuid.UUID]*booking.Booking, len(bookings))
	for i := range bookings {
		bookingByID[bookings[i].ID] = &bookings[i]
	}

	receipts, err := s.receiptRepo.FindByServiceIDs(ctx, agencyID, serviceIDs)
	if err != nil {
		return err
	}
	investments, err := s.investmentRepo.FindByServiceIDs(ctx, agencyID, serviceIDs)
	if err != nil {
		return err
	}

	// Legacy bundles may reference services of other operators too; the
	// proportional split must weigh the whole bundle, so resolve every
	// referenced service, not only this operator's.
	refSet := make(map[uuid.UUID]struct{})
	for i := range receipts {
		if !receipts[i].HasAllocations() {
			for _, id := range receipts[i].ServiceIDs {
				refSet[id] = struct{}{}
			}
		}
	}
	for i := range investments {
		if !investments[i].HasAllocations() {
			for _, id := range investments[i].ServiceIDs {
				refSet[id] = struct{}{}
			}
		}
	}
	refIDs := make([]uuid.UUID, 0, len(refSet))
	for id := range refSet {
		refIDs = append(refIDs, id)
	}
	var referenced []booking.TravelService
	if len(refIDs) > 0 {
		referenced, err = s.serviceRepo.FindByIDs(ctx, agencyID, refIDs)
		if err != nil {
			return err
		}
	}

	receivedPerService := make(map[uuid.UUID]finance.MoneyMap)
	for i := range receipts {
		r := &receipts[i]
		for svcID, paid := range r.PaidPerService(booking.CostsByID(referenced, r.ServiceIDs)) {
			if m, ok := receivedPerService[svcID]; ok {
				m.Merge(paid)
			} else {
				receivedPerService[svcID] = paid
			}
		}
	}
	paidPerService := make(map[uuid.UUID]finance.MoneyMap)
	for i := range investments {
		inv := &investments[i]
		for svcID, paid := range inv.PaidPerService(booking.CostsByID(referenced, inv.ServiceIDs)) {
			if m, ok := paidPerService[svcID]; ok {
				m.Merge(paid)
			} else {
				paidPerService[svcID] = paid
			}
		}
	}

	totalSold := finance.NewMoneyMap()
	totalSoldWithInterest := finance.NewMoneyMap()
	totalCost := finance.NewMoneyMap()
	totalReceived := finance.NewMoneyMap()
	totalPaid := finance.NewMoneyMap()

	perBooking := make(map[uuid.UUID]*BookingInsight)
	order := make([]uuid.UUID, 0, len(bookingIDSet))
	for _, svc := range services {
		row, ok := perBooking[svc.BookingID]
		if !ok {
			row = &BookingInsight{
				BookingID: svc.BookingID,
				Sold:      finance.NewMoneyMap(),
				Cost:      finance.NewMoneyMap(),
				Received:  finance.NewMoneyMap(),
				Paid:      finance.NewMoneyMap(),
			}
			if bk := bookingByID[svc.BookingID]; bk != nil {
				row.Reference = bk.Reference
			}
			perBooking[svc.BookingID] = row
			order = append(order, svc.BookingID)
		}
		row.Sold.Add(svc.Currency, svc.SalePrice.InexactFloat64())
		row.Cost.Add(svc.Currency, svc.CostPrice.InexactFloat64())
		if received, ok := receivedPerService[svc.ID]; ok {
			row.Received.Merge(received)
		}
		if paid, ok := paidPerService[svc.ID]; ok {
			row.Paid.Merge(paid)
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return perBooking[order[i]].Reference < perBooking[order[j]].Reference
	})
	for _, id := range order {
		row := perBooking[id]
		saleWithInterest := row.Sold
		if bk := bookingByID[id]; bk != nil {
			saleWithInterest = finance.SaleWithInterest(row.Sold, bk.Interest())
		}
		// Unclamped on purpose: overpayment shows as negative debt.
		row.ClientDebt = finance.ClientDebt(saleWithInterest, row.Received).Rounded()
		row.OperatorDebt = finance.OperatorDebt(row.Cost, row.Paid).Rounded()

		totalSold.Merge(row.Sold)
		totalSoldWithInterest.Merge(saleWithInterest)
		totalCost.Merge(row.Cost)
		totalReceived.Merge(row.Received)
		totalPaid.Merge(row.Paid)

		row.Sold = row.Sold.Rounded()
		row.Cost = row.Cost.Rounded()
		row.Received = row.Received.Rounded()
		row.Paid = row.Paid.Rounded()
		report.Bookings = append(report.Bookings, *row)
	}

	report.Sold = totalSold.Rounded()
	report.Cost = totalCost.Rounded()
	report.Received = totalReceived.Rounded()
	report.Paid = totalPaid.Rounded()
	// Card interest belongs to the debt figure, so the totals net against the
	// interest-inclusive sale and stay consistent with the per-booking rows.
	report.ClientDebt = finance.Net(totalSoldWithInterest, totalReceived).Rounded()
	report.OperatorDebt = finance.Net(totalCost, totalPaid).Rounded()
	return nil
}

func (s *OperatorInsightsService) assembleDues(ctx context.Context, report *OperatorInsights, agencyID, operatorID uuid.UUID, from, to time.Time) error {
	window := finance.DateRange{From: from, To: to}
	dues, _, err := s.dueRepo.FindAll(ctx, agencyID, finance.DueFilter{OperatorID: &operatorID, Range: &window})
	if err != nil {
		return err
	}
	for _, due := range dues {
		report.Dues = append(report.Dues, DueInsight{
			ID:       due.ID,
			Concept:  due.Concept,
			DueDate:  due.DueDate,
			Currency: due.Currency,
			Amount:   finance.Round2(due.Amount.InexactFloat64()),
			Status:   string(due.Status),
		})
	}
	return nil
}
