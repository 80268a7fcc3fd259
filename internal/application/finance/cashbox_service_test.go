package finance

import (
	"context"
	"testing"
	"time"

	"github.com/agency/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCashboxFixture() (uuid.UUID, *fakeReceiptRepo, *fakeInvestmentRepo, *fakeOperatorDueRepo, *fakeClientDueRepo, *fakeAccountRepo, *fakeCreditRepo) {
	agencyID := uuid.New()
	return agencyID, &fakeReceiptRepo{}, &fakeInvestmentRepo{}, &fakeOperatorDueRepo{}, &fakeClientDueRepo{}, &fakeAccountRepo{}, &fakeCreditRepo{}
}

func newTestReceipt(t *testing.T, agencyID uuid.UUID, date time.Time, amount float64, currency string, legs ...finance.ReceiptLeg) finance.Receipt {
	t.Helper()
	r, err := finance.NewReceipt(agencyID, uuid.New(), uuid.New(), "R-0001", date, decimal.NewFromFloat(amount), currency)
	require.NoError(t, err)
	r.Legs = legs
	return *r
}

func newTestInvestment(t *testing.T, agencyID uuid.UUID, date time.Time, amount float64, currency, method string, accountID uuid.UUID) finance.Investment {
	t.Helper()
	inv, err := finance.NewInvestment(agencyID, finance.InvestmentExpense, "gasto oficina", date, decimal.NewFromFloat(amount), currency)
	require.NoError(t, err)
	inv.Method = method
	inv.AccountID = &accountID
	return *inv
}

func TestCashboxMonthlySummary(t *testing.T) {
	ctx := context.Background()
	march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("totals by currency method and account", func(t *testing.T) {
		agencyID, receipts, investments, opDues, clDues, accounts, credits := newCashboxFixture()

		account, err := finance.NewFinanceAccount(agencyID, "Caja", "")
		require.NoError(t, err)
		require.NoError(t, accounts.Save(ctx, account))

		receipt := newTestReceipt(t, agencyID, march.AddDate(0, 0, 9), 500, "ARS",
			finance.ReceiptLeg{Method: "Efectivo", AccountID: account.ID, Amount: decimal.NewFromInt(500)})
		receipts.receipts = append(receipts.receipts, receipt)
		investments.investments = append(investments.investments,
			newTestInvestment(t, agencyID, march.AddDate(0, 0, 14), 200, "ARS", "Transferencia", account.ID))

		svc := NewCashboxService(receipts, investments, opDues, clDues, accounts, credits)
		summary, err := svc.MonthlySummary(ctx, agencyID, march, 1, 20)
		require.NoError(t, err)

		assert.Equal(t, "2024-03", summary.Month)
		require.Len(t, summary.TotalsByCurrency, 1)
		totals := summary.TotalsByCurrency[0]
		assert.Equal(t, "ARS", totals.Currency)
		assert.Equal(t, 0.0, totals.Opening)
		assert.Equal(t, 500.0, totals.Income)
		assert.Equal(t, 200.0, totals.Expenses)
		// Net stacks income and expense magnitudes (500 + 200), it is not
		// income minus expenses.
		assert.Equal(t, 700.0, totals.Net)

		require.Len(t, summary.ByMethod, 2)
		assert.Equal(t, "Efectivo", summary.ByMethod[0].Method)
		assert.Equal(t, 500.0, summary.ByMethod[0].Income["ARS"])
		assert.Equal(t, "Transferencia", summary.ByMethod[1].Method)
		assert.Equal(t, 200.0, summary.ByMethod[1].Expenses["ARS"])

		require.Len(t, summary.ByAccount, 1)
		acc := summary.ByAccount[0]
		assert.Equal(t, "Caja", acc.AccountName)
		assert.Equal(t, 500.0, acc.Income["ARS"])
		assert.Equal(t, 200.0, acc.Expenses["ARS"])
		assert.Equal(t, 300.0, acc.Closing["ARS"])

		assert.Equal(t, int64(2), summary.TotalMovements)
		require.Len(t, summary.Movements, 2)
		// Newest first.
		assert.Equal(t, "expense", summary.Movements[0].Type)
		assert.Equal(t, "income", summary.Movements[1].Type)
	})

	t.Run("opening balance replays snapshot plus prior cash", func(t *testing.T) {
		agencyID, receipts, investments, opDues, clDues, accounts, credits := newCashboxFixture()

		account, err := finance.NewFinanceAccount(agencyID, "Banco", "")
		require.NoError(t, err)
		require.NoError(t, accounts.Save(ctx, account))
		opening, err := finance.NewOpeningBalance(agencyID, account.ID, "ARS",
			decimal.NewFromInt(1000), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NoError(t, accounts.SaveOpeningBalance(ctx, opening))

		// February income moves the balance before the March window opens.
		receipts.receipts = append(receipts.receipts,
			newTestReceipt(t, agencyID, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), 100, "ARS",
				finance.ReceiptLeg{Method: "Transferencia", AccountID: account.ID, Amount: decimal.NewFromInt(100)}))
		receipts.receipts = append(receipts.receipts,
			newTestReceipt(t, agencyID, march.AddDate(0, 0, 5), 50, "ARS",
				finance.ReceiptLeg{Method: "Transferencia", AccountID: account.ID, Amount: decimal.NewFromInt(50)}))

		svc := NewCashboxService(receipts, investments, opDues, clDues, accounts, credits)
		summary, err := svc.MonthlySummary(ctx, agencyID, march, 1, 20)
		require.NoError(t, err)

		require.Len(t, summary.TotalsByCurrency, 1)
		totals := summary.TotalsByCurrency[0]
		assert.Equal(t, 1100.0, totals.Opening)
		assert.Equal(t, 50.0, totals.Income)
		assert.Equal(t, 1150.0, totals.Net)

		require.Len(t, summary.ByAccount, 1)
		assert.Equal(t, 1100.0, summary.ByAccount[0].Opening["ARS"])
		assert.Equal(t, 1150.0, summary.ByAccount[0].Closing["ARS"])
	})

	t.Run("pending dues become debt movements and upcoming entries", func(t *testing.T) {
		agencyID, receipts, investments, opDues, clDues, accounts, credits := newCashboxFixture()

		operatorID := uuid.New()
		due, err := finance.NewOperatorDue(agencyID, operatorID, "saldo mayorista",
			march.AddDate(0, 0, 19), decimal.NewFromInt(400), "USD")
		require.NoError(t, err)
		require.NoError(t, opDues.Save(ctx, due))

		paid, err := finance.NewOperatorDue(agencyID, operatorID, "ya pagado",
			march.AddDate(0, 0, 20), decimal.NewFromInt(900), "USD")
		require.NoError(t, err)
		paid.Status = finance.DuePaid
		require.NoError(t, opDues.Save(ctx, paid))

		clientDue, err := finance.NewClientDue(agencyID, uuid.New(), uuid.New(), "cuota 2",
			march.AddDate(0, 0, 24), decimal.NewFromInt(150), "USD")
		require.NoError(t, err)
		require.NoError(t, clDues.Save(ctx, clientDue))

		svc := NewCashboxService(receipts, investments, opDues, clDues, accounts, credits)
		summary, err := svc.MonthlySummary(ctx, agencyID, march, 1, 20)
		require.NoError(t, err)

		assert.Equal(t, 400.0, summary.OperatorDebt["USD"])
		assert.Equal(t, 150.0, summary.ClientDebt["USD"])
		assert.Equal(t, int64(2), summary.TotalMovements)
		assert.Len(t, summary.UpcomingDues, 2)
	})

	t.Run("credit accounts override computed debt", func(t *testing.T) {
		agencyID, receipts, investments, opDues, clDues, accounts, credits := newCashboxFixture()

		clientDue, err := finance.NewClientDue(agencyID, uuid.New(), uuid.New(), "cuota",
			march.AddDate(0, 0, 10), decimal.NewFromInt(150), "USD")
		require.NoError(t, err)
		require.NoError(t, clDues.Save(ctx, clientDue))

		// Negative client balance means the client owes the agency.
		credits.accounts = append(credits.accounts, finance.CreditAccount{
			HolderType: finance.HolderClient,
			HolderID:   uuid.New(),
			Currency:   "USD",
			Balance:    decimal.NewFromInt(-275),
		})

		svc := NewCashboxService(receipts, investments, opDues, clDues, accounts, credits)
		summary, err := svc.MonthlySummary(ctx, agencyID, march, 1, 20)
		require.NoError(t, err)

		assert.Equal(t, 275.0, summary.ClientDebt["USD"])
	})

	t.Run("movement list paginates in date order", func(t *testing.T) {
		agencyID, receipts, investments, opDues, clDues, accounts, credits := newCashboxFixture()

		for day := 1; day <= 5; day++ {
			receipts.receipts = append(receipts.receipts,
				newTestReceipt(t, agencyID, march.AddDate(0, 0, day), 10, "ARS"))
		}

		svc := NewCashboxService(receipts, investments, opDues, clDues, accounts, credits)
		summary, err := svc.MonthlySummary(ctx, agencyID, march, 2, 2)
		require.NoError(t, err)

		assert.Equal(t, int64(5), summary.TotalMovements)
		require.Len(t, summary.Movements, 2)
		assert.Equal(t, march.AddDate(0, 0, 4), summary.Movements[0].Date)
		assert.Equal(t, march.AddDate(0, 0, 3), summary.Movements[1].Date)
	})

	t.Run("second read within ttl comes from cache", func(t *testing.T) {
		agencyID, receipts, investments, opDues, clDues, accounts, credits := newCashboxFixture()
		receipts.receipts = append(receipts.receipts,
			newTestReceipt(t, agencyID, march.AddDate(0, 0, 1), 500, "ARS"))

		cache := newFakeCache()
		svc := NewCashboxService(receipts, investments, opDues, clDues, accounts, credits,
			WithReportCache(cache))

		first, err := svc.MonthlySummary(ctx, agencyID, march, 1, 20)
		require.NoError(t, err)
		callsAfterFirst := receipts.calls

		second, err := svc.MonthlySummary(ctx, agencyID, march, 1, 20)
		require.NoError(t, err)

		assert.Equal(t, callsAfterFirst, receipts.calls, "cached read must not hit the repositories")
		assert.Equal(t, 1, cache.sets)
		assert.Equal(t, 1, cache.hits)
		assert.Equal(t, first.TotalsByCurrency, second.TotalsByCurrency)
	})
}
