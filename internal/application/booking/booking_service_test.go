package booking

import (
	"context"
	"testing"
	"time"

	"github.com/agency/backend/internal/domain/booking"
	"github.com/agency/backend/internal/domain/finance"
	"github.com/agency/backend/internal/domain/partner"
	"github.com/agency/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory repository fakes, same shape as the GORM implementations but
// without filter handling the tests don't need.

type fakeBookingRepo struct {
	bookings []booking.Booking
	updated  int
}

func (f *fakeBookingRepo) Save(ctx context.Context, b *booking.Booking) error {
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, b *booking.Booking) error {
	f.updated++
	for i := range f.bookings {
		if f.bookings[i].ID == b.ID {
			f.bookings[i] = *b
			return nil
		}
	}
	return shared.ErrNotFound
}

func (f *fakeBookingRepo) Delete(ctx context.Context, agencyID, id uuid.UUID) error { return nil }

func (f *fakeBookingRepo) FindByID(ctx context.Context, agencyID, id uuid.UUID) (*booking.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeBookingRepo) FindByIDs(ctx context.Context, agencyID uuid.UUID, ids []uuid.UUID) ([]booking.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingRepo) FindAll(ctx context.Context, agencyID uuid.UUID, filter booking.Filter) ([]booking.Booking, int64, error) {
	return f.bookings, int64(len(f.bookings)), nil
}

type fakeServiceRepo struct {
	services []booking.TravelService
}

func (f *fakeServiceRepo) Save(ctx context.Context, svc *booking.TravelService) error {
	f.services = append(f.services, *svc)
	return nil
}

func (f *fakeServiceRepo) Update(ctx context.Context, svc *booking.TravelService) error { return nil }

func (f *fakeServiceRepo) Delete(ctx context.Context, agencyID, id uuid.UUID) error { return nil }

func (f *fakeServiceRepo) FindByID(ctx context.Context, agencyID, id uuid.UUID) (*booking.TravelService, error) {
	for i := range f.services {
		if f.services[i].ID == id {
			return &f.services[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeServiceRepo) FindByBooking(ctx context.Context, agencyID, bookingID uuid.UUID) ([]booking.TravelService, error) {
	var out []booking.TravelService
	for _, svc := range f.services {
		if svc.BookingID == bookingID {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) FindByIDs(ctx context.Context, agencyID uuid.UUID, ids []uuid.UUID) ([]booking.TravelService, error) {
	want := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []booking.TravelService
	for _, svc := range f.services {
		if _, ok := want[svc.ID]; ok {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) FindByOperator(ctx context.Context, agencyID, operatorID uuid.UUID, filter booking.ServiceFilter) ([]booking.TravelService, error) {
	return nil, nil
}

type fakeClientRepo struct {
	clients []partner.Client
}

func (f *fakeClientRepo) Save(ctx context.Context, c *partner.Client) error {
	f.clients = append(f.clients, *c)
	return nil
}

func (f *fakeClientRepo) Update(ctx context.Context, c *partner.Client) error { return nil }

func (f *fakeClientRepo) Delete(ctx context.Context, agencyID, id uuid.UUID) error { return nil }

func (f *fakeClientRepo) FindByID(ctx context.Context, agencyID, id uuid.UUID) (*partner.Client, error) {
	for i := range f.clients {
		if f.clients[i].ID == id {
			return &f.clients[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeClientRepo) FindAll(ctx context.Context, agencyID uuid.UUID, filter partner.ClientFilter) ([]partner.Client, int64, error) {
	return f.clients, int64(len(f.clients)), nil
}

type fakeReceiptRepo struct {
	receipts []finance.Receipt
}

func (f *fakeReceiptRepo) Save(ctx context.Context, r *finance.Receipt) error {
	f.receipts = append(f.receipts, *r)
	return nil
}

func (f *fakeReceiptRepo) Update(ctx context.Context, r *finance.Receipt) error { return nil }

func (f *fakeReceiptRepo) Delete(ctx context.Context, agencyID, id uuid.UUID) error { return nil }

func (f *fakeReceiptRepo) FindByID(ctx context.Context, agencyID, id uuid.UUID) (*finance.Receipt, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeReceiptRepo) FindAll(ctx context.Context, agencyID uuid.UUID, filter finance.ReceiptFilter) ([]finance.Receipt, int64, error) {
	return f.receipts, int64(len(f.receipts)), nil
}

func (f *fakeReceiptRepo) FindByBooking(ctx context.Context, agencyID, bookingID uuid.UUID) ([]finance.Receipt, error) {
	var out []finance.Receipt
	for _, r := range f.receipts {
		if r.BookingID == bookingID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReceiptRepo) FindByServiceIDs(ctx context.Context, agencyID uuid.UUID, serviceIDs []uuid.UUID) ([]finance.Receipt, error) {
	return nil, nil
}

type fakeInvestmentRepo struct {
	investments []finance.Investment
}

func (f *fakeInvestmentRepo) Save(ctx context.Context, inv *finance.Investment) error {
	f.investments = append(f.investments, *inv)
	return nil
}

func (f *fakeInvestmentRepo) Update(ctx context.Context, inv *finance.Investment) error { return nil }

func (f *fakeInvestmentRepo) Delete(ctx context.Context, agencyID, id uuid.UUID) error { return nil }

func (f *fakeInvestmentRepo) FindByID(ctx context.Context, agencyID, id uuid.UUID) (*finance.Investment, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeInvestmentRepo) FindAll(ctx context.Context, agencyID uuid.UUID, filter finance.InvestmentFilter) ([]finance.Investment, int64, error) {
	return f.investments, int64(len(f.investments)), nil
}

func (f *fakeInvestmentRepo) FindByServiceIDs(ctx context.Context, agencyID uuid.UUID, serviceIDs []uuid.UUID) ([]finance.Investment, error) {
	want := make(map[uuid.UUID]struct{}, len(serviceIDs))
	for _, id := range serviceIDs {
		want[id] = struct{}{}
	}
	var out []finance.Investment
	for _, inv := range f.investments {
		match := false
		for _, id := range inv.ServiceIDs {
			if _, ok := want[id]; ok {
				match = true
			}
		}
		for _, alloc := range inv.Allocations {
			if _, ok := want[alloc.ServiceID]; ok {
				match = true
			}
		}
		if match {
			out = append(out, inv)
		}
	}
	return out, nil
}

func newTestService() (*Service, *fakeBookingRepo, *fakeServiceRepo, *fakeClientRepo, *fakeReceiptRepo, *fakeInvestmentRepo) {
	bookingRepo := &fakeBookingRepo{}
	serviceRepo := &fakeServiceRepo{}
	clientRepo := &fakeClientRepo{}
	receiptRepo := &fakeReceiptRepo{}
	investmentRepo := &fakeInvestmentRepo{}
	svc := NewService(bookingRepo, serviceRepo, clientRepo, receiptRepo, investmentRepo)
	return svc, bookingRepo, serviceRepo, clientRepo, receiptRepo, investmentRepo
}

func seedClient(t *testing.T, repo *fakeClientRepo, agencyID uuid.UUID) *partner.Client {
	t.Helper()
	client, err := partner.NewClient(agencyID, "Ana Torres")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), client))
	return client
}

func TestService_CreateBooking(t *testing.T) {
	svc, bookingRepo, _, clientRepo, _, _ := newTestService()
	ctx := context.Background()
	agencyID := uuid.New()
	client := seedClient(t, clientRepo, agencyID)

	t.Run("creates pending quote", func(t *testing.T) {
		b, err := svc.CreateBooking(ctx, agencyID, CreateBookingRequest{
			ClientID:     client.ID,
			Reference:    "RES-0042",
			Title:        "Bariloche familia García",
			CreationDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.Equal(t, booking.StatusPending, b.Status)
		assert.Equal(t, booking.QuoteActive, b.QuoteStatus)
		assert.Len(t, bookingRepo.bookings, 1)
	})

	t.Run("rejects unknown client", func(t *testing.T) {
		_, err := svc.CreateBooking(ctx, agencyID, CreateBookingRequest{
			ClientID:     uuid.New(),
			Reference:    "RES-0043",
			CreationDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestService_ConvertQuote(t *testing.T) {
	svc, _, _, clientRepo, _, _ := newTestService()
	ctx := context.Background()
	agencyID := uuid.New()
	client := seedClient(t, clientRepo, agencyID)

	b, err := svc.CreateBooking(ctx, agencyID, CreateBookingRequest{
		ClientID:     client.ID,
		Reference:    "RES-0042",
		CreationDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	converted, err := svc.ConvertQuote(ctx, agencyID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.QuoteConverted, converted.QuoteStatus)

	// Conversion is one-way.
	_, err = svc.ConvertQuote(ctx, agencyID, b.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestService_AddService(t *testing.T) {
	svc, _, serviceRepo, clientRepo, _, _ := newTestService()
	ctx := context.Background()
	agencyID := uuid.New()
	client := seedClient(t, clientRepo, agencyID)

	b, err := svc.CreateBooking(ctx, agencyID, CreateBookingRequest{
		ClientID:     client.ID,
		Reference:    "RES-0042",
		CreationDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	t.Run("adds service to existing booking", func(t *testing.T) {
		created, err := svc.AddService(ctx, agencyID, b.ID, CreateServiceRequest{
			OperatorID:  uuid.New(),
			Description: "Aéreo AEP-BRC",
			SalePrice:   decimal.NewFromInt(1000),
			CostPrice:   decimal.NewFromInt(700),
			Currency:    "ARS",
		})
		require.NoError(t, err)
		assert.Equal(t, b.ID, created.BookingID)
		assert.Len(t, serviceRepo.services, 1)
	})

	t.Run("rejects unknown booking", func(t *testing.T) {
		_, err := svc.AddService(ctx, agencyID, uuid.New(), CreateServiceRequest{
			OperatorID:  uuid.New(),
			Description: "Hotel",
			SalePrice:   decimal.NewFromInt(100),
			CostPrice:   decimal.NewFromInt(80),
			Currency:    "USD",
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestService_Debt(t *testing.T) {
	svc, _, _, clientRepo, receiptRepo, investmentRepo := newTestService()
	ctx := context.Background()
	agencyID := uuid.New()
	client := seedClient(t, clientRepo, agencyID)
	operatorID := uuid.New()

	b, err := svc.CreateBooking(ctx, agencyID, CreateBookingRequest{
		ClientID:             client.ID,
		Reference:            "RES-0042",
		CreationDate:         time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		CardInterest:         decimal.NewFromInt(100),
		CardInterestCurrency: "ARS",
	})
	require.NoError(t, err)

	arsService, err := svc.AddService(ctx, agencyID, b.ID, CreateServiceRequest{
		OperatorID:  operatorID,
		Description: "Aéreo AEP-BRC",
		SalePrice:   decimal.NewFromInt(1000),
		CostPrice:   decimal.NewFromInt(700),
		Currency:    "ARS",
	})
	require.NoError(t, err)

	_, err = svc.AddService(ctx, agencyID, b.ID, CreateServiceRequest{
		OperatorID:  operatorID,
		Description: "Excursión Circuito Chico",
		SalePrice:   decimal.NewFromInt(200),
		CostPrice:   decimal.NewFromInt(150),
		Currency:    "USD",
	})
	require.NoError(t, err)

	// Client paid 500 ARS and 300 USD. USD overshoots the 200 USD sale.
	arsReceipt, err := finance.NewReceipt(agencyID, b.ID, client.ID, "R-1", time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(500), "ARS")
	require.NoError(t, err)
	require.NoError(t, receiptRepo.Save(ctx, arsReceipt))

	usdReceipt, err := finance.NewReceipt(agencyID, b.ID, client.ID, "R-2", time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(300), "USD")
	require.NoError(t, err)
	require.NoError(t, receiptRepo.Save(ctx, usdReceipt))

	// Operator received 400 ARS against the flight, itemized.
	payment, err := finance.NewInvestment(agencyID, finance.InvestmentOperatorPayment, "Pago LATAM", time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(400), "ARS")
	require.NoError(t, err)
	payment.OperatorID = &operatorID
	payment.ReplaceAllocations([]finance.InvestmentAllocation{
		{
			ServiceID:       arsService.ID,
			AmountPayment:   decimal.NewFromInt(400),
			PaymentCurrency: "ARS",
			AmountService:   decimal.NewFromInt(400),
			ServiceCurrency: "ARS",
		},
	})
	require.NoError(t, investmentRepo.Save(ctx, payment))

	debt, err := svc.Debt(ctx, agencyID, b.ID)
	require.NoError(t, err)

	assert.InDelta(t, 1100.0, debt.SaleWithInterest["ARS"], 0.001)
	assert.InDelta(t, 200.0, debt.SaleWithInterest["USD"], 0.001)
	assert.InDelta(t, 500.0, debt.Paid["ARS"], 0.001)
	assert.InDelta(t, 300.0, debt.Paid["USD"], 0.001)

	// 1100 - 500 still owed in ARS; the USD overpayment clamps to zero.
	assert.InDelta(t, 600.0, debt.ClientDebt["ARS"], 0.001)
	assert.InDelta(t, 0.0, debt.ClientDebt["USD"], 0.001)

	assert.InDelta(t, 400.0, debt.PaidOperator["ARS"], 0.001)
	assert.InDelta(t, 300.0, debt.OperatorDebt["ARS"], 0.001)
	assert.InDelta(t, 150.0, debt.OperatorDebt["USD"], 0.001)
}

func TestService_Debt_LegacyBundleAcrossBookings(t *testing.T) {
	svc, _, serviceRepo, clientRepo, _, investmentRepo := newTestService()
	ctx := context.Background()
	agencyID := uuid.New()
	client := seedClient(t, clientRepo, agencyID)
	operatorID := uuid.New()

	b, err := svc.CreateBooking(ctx, agencyID, CreateBookingRequest{
		ClientID:     client.ID,
		Reference:    "RES-0050",
		CreationDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	ownService, err := svc.AddService(ctx, agencyID, b.ID, CreateServiceRequest{
		OperatorID:  operatorID,
		Description: "Hotel Llao Llao",
		SalePrice:   decimal.NewFromInt(200),
		CostPrice:   decimal.NewFromInt(150),
		Currency:    "USD",
	})
	require.NoError(t, err)

	// A service of another booking, bundled into the same legacy payment.
	external, err := booking.NewTravelService(agencyID, uuid.New(), operatorID, "Hotel otro legajo", decimal.NewFromInt(80), decimal.NewFromInt(50), "USD")
	require.NoError(t, err)
	require.NoError(t, serviceRepo.Save(ctx, external))

	payment, err := finance.NewInvestment(agencyID, finance.InvestmentOperatorPayment, "Pago hotelería", time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(200), "USD")
	require.NoError(t, err)
	payment.OperatorID = &operatorID
	payment.ServiceIDs = []uuid.UUID{ownService.ID, external.ID}
	require.NoError(t, investmentRepo.Save(ctx, payment))

	debt, err := svc.Debt(ctx, agencyID, b.ID)
	require.NoError(t, err)

	// 200 USD split 150:50 by cost; only this booking's 150 counts here.
	assert.InDelta(t, 150.0, debt.PaidOperator["USD"], 0.001)
	assert.InDelta(t, 0.0, debt.OperatorDebt["USD"], 0.001)
}
