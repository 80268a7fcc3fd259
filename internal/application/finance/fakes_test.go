package finance

import (
	"context"
	"encoding/json"
	"time"

	"github.com/agency/backend/internal/domain/booking"
	"github.com/agency/backend/internal/domain/finance"
	"github.com/agency/backend/internal/domain/partner"
	"github.com/agency/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// In-memory repository fakes. They apply the same filter semantics the GORM
// implementations do, minus pagination unless a test needs it.

type fakeReceiptRepo struct {
	receipts []finance.Receipt
	calls    int
}

func (f *fakeReceiptRepo) Save(ctx context.Context, r *finance.Receipt) error {
	f.receipts = append(f.receipts, *r)
	return nil
}

func (f *fakeReceiptRepo) Update(ctx context.Context, r *finance.Receipt) error { return nil }

func (f *fakeReceiptRepo) Delete(ctx context.Context, agencyID, id uuid.UUID) error { return nil }

func (f *fakeReceiptRepo) FindByID(ctx context.Context, agencyID, id uuid.UUID) (*finance.Receipt, error) {
	for i := range f.receipts {
		if f.receipts[i].ID == id {
			return &f.receipts[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeReceiptRepo) FindAll(ctx context.Context, agencyID uuid.UUID, filter finance.ReceiptFilter) ([]finance.Receipt, int64, error) {
	f.calls++
	var out []finance.Receipt
	for _, r := range f.receipts {
		if filter.Range != nil && !inRange(*filter.Range, r.Date) {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
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
	want := idSet(serviceIDs)
	var out []finance.Receipt
	for _, r := range f.receipts {
		if referencesAny(want, r.ServiceIDs, receiptAllocationIDs(r.Allocations)) {
			out = append(out, r)
		}
	}
	return out, nil
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
	for i := range f.investments {
		if f.investments[i].ID == id {
			return &f.investments[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeInvestmentRepo) FindAll(ctx context.Context, agencyID uuid.UUID, filter finance.InvestmentFilter) ([]finance.Investment, int64, error) {
	var out []finance.Investment
	for _, inv := range f.investments {
		if filter.Range != nil && !inRange(*filter.Range, inv.Date) {
			continue
		}
		out = append(out, inv)
	}
	return out, int64(len(out)), nil
}

func (f *fakeInvestmentRepo) FindByServiceIDs(ctx context.Context, agencyID uuid.UUID, serviceIDs []uuid.UUID) ([]finance.Investment, error) {
	want := idSet(serviceIDs)
	var out []finance.Investment
	for _, inv := range f.investments {
		if referencesAny(want, inv.ServiceIDs, investmentAllocationIDs(inv.Allocations)) {
			out = append(out, inv)
		}
	}
	return out, nil
}

type fakeOperatorDueRepo struct {
	dues []finance.OperatorDue
}

func (f *fakeOperatorDueRepo) Save(ctx context.Context, due *finance.OperatorDue) error {
	f.dues = append(f.dues, *due)
	return nil
}

func (f *fakeOperatorDueRepo) Update(ctx context.Context, due *finance.OperatorDue) error { return nil }

func (f *fakeOperatorDueRepo) Delete(ctx context.Context, agencyID, id uuid.UUID) error { return nil }

func (f *fakeOperatorDueRepo) FindByID(ctx context.Context, agencyID, id uuid.UUID) (*finance.OperatorDue, error) {
	for i := range f.dues {
		if f.dues[i].ID == id {
			return &f.dues[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeOperatorDueRepo) FindAll(ctx context.Context, agencyID uuid.UUID, filter finance.DueFilter) ([]finance.OperatorDue, int64, error) {
	var out []finance.OperatorDue
	for _, due := range f.dues {
		if filter.Status != "" && due.Status != filter.Status {
			continue
		}
		if filter.OperatorID != nil && due.OperatorID != *filter.OperatorID {
			continue
		}
		if filter.Range != nil && !inRange(*filter.Range, due.DueDate) {
			continue
		}
		out = append(out, due)
	}
	return out, int64(len(out)), nil
}

type fakeClientDueRepo struct {
	dues []finance.ClientDue
}

func (f *fakeClientDueRepo) Save(ctx context.Context, due *finance.ClientDue) error {
	f.dues = append(f.dues, *due)
	return nil
}

func (f *fakeClientDueRepo) Update(ctx context.Context, due *finance.ClientDue) error { return nil }

func (f *fakeClientDueRepo) Delete(ctx context.Context, agencyID, id uuid.UUID) error { return nil }

func (f *fakeClientDueRepo) FindByID(ctx context.Context, agencyID, id uuid.UUID) (*finance.ClientDue, error) {
	for i := range f.dues {
		if f.dues[i].ID == id {
			return &f.dues[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeClientDueRepo) FindAll(ctx context.Context, agencyID uuid.UUID, filter finance.DueFilter) ([]finance.ClientDue, int64, error) {
	var out []finance.ClientDue
	for _, due := range f.dues {
		if filter.Status != "" && due.Status != filter.Status {
			continue
		}
		if filter.ClientID != nil && due.ClientID != *filter.ClientID {
			continue
		}
		if filter.Range != nil && !inRange(*filter.Range, due.DueDate) {
			continue
		}
		out = append(out, due)
	}
	return out, int64(len(out)), nil
}

type fakeAccountRepo struct {
	accounts []finance.FinanceAccount
	openings []finance.OpeningBalance
}

func (f *fakeAccountRepo) Save(ctx context.Context, account *finance.FinanceAccount) error {
	f.accounts = append(f.accounts, *account)
	return nil
}

func (f *fakeAccountRepo) Update(ctx context.Context, account *finance.FinanceAccount) error {
	return nil
}

func (f *fakeAccountRepo) FindByID(ctx context.Context, agencyID, id uuid.UUID) (*finance.FinanceAccount, error) {
	for i := range f.accounts {
		if f.accounts[i].ID == id {
			return &f.accounts[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeAccountRepo) FindAll(ctx context.Context, agencyID uuid.UUID) ([]finance.FinanceAccount, error) {
	return f.accounts, nil
}

func (f *fakeAccountRepo) SaveOpeningBalance(ctx context.Context, balance *finance.OpeningBalance) error {
	f.openings = append(f.openings, *balance)
	return nil
}

func (f *fakeAccountRepo) FindOpeningBalances(ctx context.Context, agencyID, accountID uuid.UUID) ([]finance.OpeningBalance, error) {
	var out []finance.OpeningBalance
	for _, ob := range f.openings {
		if ob.AccountID == accountID {
			out = append(out, ob)
		}
	}
	return out, nil
}

func (f *fakeAccountRepo) FindAllOpeningBalances(ctx context.Context, agencyID uuid.UUID) ([]finance.OpeningBalance, error) {
	return f.openings, nil
}

type fakeCreditRepo struct {
	accounts []finance.CreditAccount
}

func (f *fakeCreditRepo) FindByHolder(ctx context.Context, agencyID uuid.UUID, holderType finance.HolderType, holderID uuid.UUID) ([]finance.CreditAccount, error) {
	var out []finance.CreditAccount
	for _, ca := range f.accounts {
		if ca.HolderType == holderType && ca.HolderID == holderID {
			out = append(out, ca)
		}
	}
	return out, nil
}

func (f *fakeCreditRepo) FindAll(ctx context.Context, agencyID uuid.UUID, holderType finance.HolderType) ([]finance.CreditAccount, error) {
	var out []finance.CreditAccount
	for _, ca := range f.accounts {
		if ca.HolderType == holderType {
			out = append(out, ca)
		}
	}
	return out, nil
}

type fakeOperatorRepo struct {
	operators []partner.Operator
}

func (f *fakeOperatorRepo) Save(ctx context.Context, o *partner.Operator) error {
	f.operators = append(f.operators, *o)
	return nil
}

func (f *fakeOperatorRepo) Update(ctx context.Context, o *partner.Operator) error { return nil }

func (f *fakeOperatorRepo) Delete(ctx context.Context, agencyID, id uuid.UUID) error { return nil }

func (f *fakeOperatorRepo) FindByID(ctx context.Context, agencyID, id uuid.UUID) (*partner.Operator, error) {
	for i := range f.operators {
		if f.operators[i].ID == id {
			return &f.operators[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeOperatorRepo) FindAll(ctx context.Context, agencyID uuid.UUID, filter partner.OperatorFilter) ([]partner.Operator, int64, error) {
	return f.operators, int64(len(f.operators)), nil
}

type fakeBookingRepo struct {
	bookings []booking.Booking
}

func (f *fakeBookingRepo) Save(ctx context.Context, b *booking.Booking) error {
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, b *booking.Booking) error { return nil }

func (f *fakeBookingRepo) Delete(ctx context.Context, agencyID, id uuid.UUID) error { return nil }

func (f *fakeBookingRepo) FindByID(ctx context.Context, agencyID, id uuid.UUID) (*booking.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			return &f.bookings[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeBookingRepo) FindByIDs(ctx context.Context, agencyID uuid.UUID, ids []uuid.UUID) ([]booking.Booking, error) {
	want := idSet(ids)
	var out []booking.Booking
	for _, b := range f.bookings {
		if _, ok := want[b.ID]; ok {
			out = append(out, b)
		}
	}
	return out, nil
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
	want := idSet(ids)
	var out []booking.TravelService
	for _, svc := range f.services {
		if _, ok := want[svc.ID]; ok {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) FindByOperator(ctx context.Context, agencyID, operatorID uuid.UUID, filter booking.ServiceFilter) ([]booking.TravelService, error) {
	var out []booking.TravelService
	for _, svc := range f.services {
		if svc.OperatorID != operatorID {
			continue
		}
		if filter.CreatedFrom != nil && filter.CreatedTo != nil {
			if svc.CreatedAt.Before(*filter.CreatedFrom) || !svc.CreatedAt.Before(*filter.CreatedTo) {
				continue
			}
		}
		if filter.TravelFrom != nil && filter.TravelTo != nil {
			if !svc.TravelsWithin(*filter.TravelFrom, *filter.TravelTo) {
				continue
			}
		}
		out = append(out, svc)
	}
	return out, nil
}

// fakeCache stores JSON-encoded entries like the Redis implementation does.
type fakeCache struct {
	entries map[string][]byte
	hits    int
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	c.sets++
	return nil
}

func inRange(r finance.DateRange, t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && !t.Before(r.To) {
		return false
	}
	return true
}

func idSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func referencesAny(want map[uuid.UUID]struct{}, legacy []uuid.UUID, allocated []uuid.UUID) bool {
	for _, id := range legacy {
		if _, ok := want[id]; ok {
			return true
		}
	}
	for _, id := range allocated {
		if _, ok := want[id]; ok {
			return true
		}
	}
	return false
}

func receiptAllocationIDs(allocations []finance.ReceiptAllocation) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(allocations))
	for _, a := range allocations {
		ids = append(ids, a.ServiceID)
	}
	return ids
}

func investmentAllocationIDs(allocations []finance.InvestmentAllocation) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(allocations))
	for _, a := range allocations {
		ids = append(ids, a.ServiceID)
	}
	return ids
}
