package finance

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/agency/backend/internal/domain/finance"
	"github.com/google/uuid"
)

// ReportCache caches assembled reports. Implementations live in
// infrastructure/cache; a nil cache disables caching.
type ReportCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// cashboxCacheTTL is short on purpose: the report is cheap to rebuild and
// bookkeeping edits should show up quickly.
const cashboxCacheTTL = 2 * time.Minute

// CashboxService assembles the monthly cashbox summary: per-currency totals,
// method and account breakdowns with reconstructed opening balances, global
// debt positions and the movement list.
type CashboxService struct {
	receiptRepo     finance.ReceiptRepository
	investmentRepo  finance.InvestmentRepository
	operatorDueRepo finance.OperatorDueRepository
	clientDueRepo   finance.ClientDueRepository
	accountRepo     finance.FinanceAccountRepository
	creditRepo      finance.CreditAccountRepository
	cache           ReportCache
}

// CashboxServiceOption configures a CashboxService.
type CashboxServiceOption func(*CashboxService)

// WithReportCache enables report caching.
func WithReportCache(cache ReportCache) CashboxServiceOption {
	return func(s *CashboxService) {
		s.cache = cache
	}
}

// NewCashboxService creates a CashboxService.
func NewCashboxService(
	receiptRepo finance.ReceiptRepository,
	investmentRepo finance.InvestmentRepository,
	operatorDueRepo finance.OperatorDueRepository,
	clientDueRepo finance.ClientDueRepository,
	accountRepo finance.FinanceAccountRepository,
	creditRepo finance.CreditAccountRepository,
	opts ...CashboxServiceOption,
) *CashboxService {
	s := &CashboxService{
		receiptRepo:     receiptRepo,
		investmentRepo:  investmentRepo,
		operatorDueRepo: operatorDueRepo,
		clientDueRepo:   clientDueRepo,
		accountRepo:     accountRepo,
		creditRepo:      creditRepo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CurrencyTotals is the per-currency cashbox line.
type CurrencyTotals struct {
	Currency string  `json:"currency"`
	Opening  float64 `json:"opening"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// MethodTotals breaks the month down by payment method.
type MethodTotals struct {
	Method   string           `json:"method"`
	Income   finance.MoneyMap `json:"income"`
	Expenses finance.MoneyMap `json:"expenses"`
}

// AccountTotals breaks the month down by finance account, with opening and
// closing balances reconstructed from snapshots plus replay.
type AccountTotals struct {
	AccountID   uuid.UUID        `json:"account_id"`
	AccountName string           `json:"account_name"`
	Opening     finance.MoneyMap `json:"opening"`
	Income      finance.MoneyMap `json:"income"`
	Expenses    finance.MoneyMap `json:"expenses"`
	Closing     finance.MoneyMap `json:"closing"`
}

// MovementItem is one row of the cashbox movement list.
type MovementItem struct {
	ID       uuid.UUID  `json:"id"`
	Type     string     `json:"type"`
	Concept  string     `json:"concept"`
	Date     time.Time  `json:"date"`
	DueDate  *time.Time `json:"due_date,omitempty"`
	Currency string     `json:"currency"`
	Amount   float64    `json:"amount"`
}

// CashboxSummary is the assembled monthly report.
type CashboxSummary struct {
	Month            string           `json:"month"`
	TotalsByCurrency []CurrencyTotals `json:"totals_by_currency"`
	ByMethod         []MethodTotals   `json:"by_method"`
	ByAccount        []AccountTotals  `json:"by_account"`
	ClientDebt       finance.MoneyMap `json:"client_debt"`
	OperatorDebt     finance.MoneyMap `json:"operator_debt"`
	UpcomingDues     []MovementItem   `json:"upcoming_dues"`
	Movements        []MovementItem   `json:"movements"`
	TotalMovements   int64            `json:"total_movements"`
}

// MonthlySummary assembles the cashbox report for the month containing the
// given date. Pagination applies to the movement list only.
func (s *CashboxService) MonthlySummary(ctx context.Context, agencyID uuid.UUID, month time.Time, page, pageSize int) (*CashboxSummary, error) {
	monthStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	window := finance.DateRange{From: monthStart, To: monthEnd}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	cacheKey := fmt.Sprintf("cashbox:%s:%s:%d:%d", agencyID, monthStart.Format("2006-01"), page, pageSize)
	if s.cache != nil {
		var cached CashboxSummary
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	inMonth, err := s.collectMovements(ctx, agencyID, &window)
	if err != nil {
		return nil, err
	}
	// Full cash history up to the month start feeds the opening balance
	// replay; debt movements are excluded there anyway.
	history, err := s.collectCashHistory(ctx, agencyID, monthStart)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.FindAll(ctx, agencyID)
	if err != nil {
		return nil, err
	}
	openings, err := s.accountRepo.FindAllOpeningBalances(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	summary := &CashboxSummary{Month: monthStart.Format("2006-01")}
	s.assembleTotals(summary, inMonth, history, accounts, openings, monthStart, monthEnd)

	if err := s.assembleDebt(ctx, summary, agencyID, inMonth); err != nil {
		return nil, err
	}
	s.assembleMovementList(summary, inMonth, window, page, pageSize)

	if s.cache != nil {
		// Best effort: a cache failure never fails the report.
		_ = s.cache.Set(ctx, cacheKey, summary, cashboxCacheTTL)
	}
	return summary, nil
}

// collectMovements normalizes everything dated inside the window.
func (s *CashboxService) collectMovements(ctx context.Context, agencyID uuid.UUID, window *finance.DateRange) ([]finance.CashMovement, error) {
	var movements []finance.CashMovement

	receipts, _, err := s.receiptRepo.FindAll(ctx, agencyID, finance.ReceiptFilter{Range: window})
	if err != nil {
		return nil, err
	}
	for i := range receipts {
		movements = append(movements, finance.MovementFromReceipt(&receipts[i]))
	}

	investments, _, err := s.investmentRepo.FindAll(ctx, agencyID, finance.InvestmentFilter{Range: window})
	if err != nil {
		return nil, err
	}
	for i := range investments {
		movements = append(movements, finance.MovementFromInvestment(&investments[i]))
	}

	operatorDues, _, err := s.operatorDueRepo.FindAll(ctx, agencyID, finance.DueFilter{Status: finance.DuePending, Range: window})
	if err != nil {
		return nil, err
	}
	for i := range operatorDues {
		movements = append(movements, finance.MovementFromOperatorDue(&operatorDues[i]))
	}

	clientDues, _, err := s.clientDueRepo.FindAll(ctx, agencyID, finance.DueFilter{Status: finance.DuePending, Range: window})
	if err != nil {
		return nil, err
	}
	for i := range clientDues {
		movements = append(movements, finance.MovementFromClientDue(&clientDues[i]))
	}

	return movements, nil
}

// collectCashHistory normalizes all receipts and investments dated before
// the month start, for opening balance replay.
func (s *CashboxService) collectCashHistory(ctx context.Context, agencyID uuid.UUID, before time.Time) ([]finance.CashMovement, error) {
	window := finance.DateRange{To: before}
	var movements []finance.CashMovement

	receipts, _, err := s.receiptRepo.FindAll(ctx, agencyID, finance.ReceiptFilter{Range: &window})
	if err != nil {
		return nil, err
	}
	for i := range receipts {
		movements = append(movements, finance.MovementFromReceipt(&receipts[i]))
	}

	investments, _, err := s.investmentRepo.FindAll(ctx, agencyID, finance.InvestmentFilter{Range: &window})
	if err != nil {
		return nil, err
	}
	for i := range investments {
		movements = append(movements, finance.MovementFromInvestment(&investments[i]))
	}

	return movements, nil
}

func (s *CashboxService) assembleTotals(
	summary *CashboxSummary,
	inMonth, history []finance.CashMovement,
	accounts []finance.FinanceAccount,
	openings []finance.OpeningBalance,
	monthStart, monthEnd time.Time,
) {
	income := finance.NewMoneyMap()
	expenses := finance.NewMoneyMap()
	methodIncome := make(map[string]finance.MoneyMap)
	methodExpenses := make(map[string]finance.MoneyMap)

	for _, mv := range inMonth {
		switch mv.Type {
		case finance.MovementIncome:
			income.Add(mv.Currency, mv.Amount)
		case finance.MovementExpense:
			expenses.Add(mv.Currency, mv.Amount)
		default:
			continue
		}
		for _, leg := range mv.Legs {
			byMethod := methodIncome
			if mv.Type == finance.MovementExpense {
				byMethod = methodExpenses
			}
			m, ok := byMethod[leg.Method]
			if !ok {
				m = finance.NewMoneyMap()
				byMethod[leg.Method] = m
			}
			m.Add(mv.Currency, leg.Amount)
		}
	}

	// Opening balances per currency, summed over accounts.
	snapshotsByAccount := make(map[uuid.UUID]map[string][]finance.OpeningSnapshot)
	currencies := make(map[string]struct{})
	for code := range income {
		currencies[code] = struct{}{}
	}
	for code := range expenses {
		currencies[code] = struct{}{}
	}
	for _, ob := range openings {
		byCurrency, ok := snapshotsByAccount[ob.AccountID]
		if !ok {
			byCurrency = make(map[string][]finance.OpeningSnapshot)
			snapshotsByAccount[ob.AccountID] = byCurrency
		}
		byCurrency[ob.Currency] = append(byCurrency[ob.Currency], ob.Snapshot())
		currencies[ob.Currency] = struct{}{}
	}
	for _, mv := range history {
		if mv.Type.IsCash() {
			currencies[finance.NormalizeCurrency(mv.Currency)] = struct{}{}
		}
	}
	delete(currencies, "")

	opening := finance.NewMoneyMap()
	for i := range accounts {
		acc := &accounts[i]
		accIncome := finance.NewMoneyMap()
		accExpenses := finance.NewMoneyMap()
		accOpening := finance.NewMoneyMap()
		accClosing := finance.NewMoneyMap()

		for code := range currencies {
			snaps := snapshotsByAccount[acc.ID][code]
			open := finance.BalanceAsOf(snaps, finance.LedgerEntries(history, acc.ID, code), monthStart)
			// Closing replays the same checkpoint plus history and the month
			// itself, up to (excluding) the first day of the next month.
			all := append(append([]finance.CashMovement{}, history...), inMonth...)
			closing := finance.BalanceAsOf(snaps, finance.LedgerEntries(all, acc.ID, code), monthEnd)
			if open != 0 {
				accOpening[code] = open
				opening.Add(code, open)
			}
			if closing != 0 {
				accClosing[code] = closing
			}
		}
		for _, mv := range inMonth {
			if !mv.Type.IsCash() {
				continue
			}
			for _, leg := range mv.Legs {
				if leg.AccountID != acc.ID {
					continue
				}
				if mv.Type == finance.MovementIncome {
					accIncome.Add(mv.Currency, leg.Amount)
				} else {
					accExpenses.Add(mv.Currency, leg.Amount)
				}
			}
		}
		summary.ByAccount = append(summary.ByAccount, AccountTotals{
			AccountID:   acc.ID,
			AccountName: acc.Name,
			Opening:     accOpening.Rounded(),
			Income:      accIncome.Rounded(),
			Expenses:    accExpenses.Rounded(),
			Closing:     accClosing.Rounded(),
		})
	}

	codes := make([]string, 0, len(currencies))
	for code := range currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		in := income[code]
		out := expenses[code]
		open := opening[code]
		summary.TotalsByCurrency = append(summary.TotalsByCurrency, CurrencyTotals{
			Currency: code,
			Opening:  finance.Round2(open),
			Income:   finance.Round2(in),
			Expenses: finance.Round2(out),
			// Net adds the expense magnitude instead of subtracting it.
			// Long-standing report behavior; consumers reconcile against
			// this figure, so it must stay as-is.
			Net: finance.Round2(open + in + out),
		})
	}

	methods := make([]string, 0, len(methodIncome)+len(methodExpenses))
	seen := make(map[string]struct{})
	for method := range methodIncome {
		methods = append(methods, method)
		seen[method] = struct{}{}
	}
	for method := range methodExpenses {
		if _, ok := seen[method]; !ok {
			methods = append(methods, method)
		}
	}
	sort.Strings(methods)
	for _, method := range methods {
		in := methodIncome[method]
		if in == nil {
			in = finance.NewMoneyMap()
		}
		out := methodExpenses[method]
		if out == nil {
			out = finance.NewMoneyMap()
		}
		summary.ByMethod = append(summary.ByMethod, MethodTotals{
			Method:   method,
			Income:   in.Rounded(),
			Expenses: out.Rounded(),
		})
	}
}

// assembleDebt fills the global debt positions. Authoritative CreditAccount
// rows override the totals computed from the month's debt movements.
func (s *CashboxService) assembleDebt(ctx context.Context, summary *CashboxSummary, agencyID uuid.UUID, inMonth []finance.CashMovement) error {
	clientDebt := finance.NewMoneyMap()
	operatorDebt := finance.NewMoneyMap()
	for _, mv := range inMonth {
		switch mv.Type {
		case finance.MovementClientDebt:
			clientDebt.Add(mv.Currency, mv.Amount)
		case finance.MovementOperatorDebt:
			operatorDebt.Add(mv.Currency, mv.Amount)
		}
	}

	clientCredits, err := s.creditRepo.FindAll(ctx, agencyID, finance.HolderClient)
	if err != nil {
		return err
	}
	if len(clientCredits) > 0 {
		clientDebt = finance.NewMoneyMap()
		for _, ca := range clientCredits {
			// Negative client balance means the client owes the agency.
			clientDebt.Add(ca.Currency, -ca.Balance.InexactFloat64())
		}
	}

	operatorCredits, err := s.creditRepo.FindAll(ctx, agencyID, finance.HolderOperator)
	if err != nil {
		return err
	}
	if len(operatorCredits) > 0 {
		operatorDebt = finance.NewMoneyMap()
		for _, ca := range operatorCredits {
			// Positive operator balance means the agency owes the operator.
			operatorDebt.Add(ca.Currency, ca.Balance.InexactFloat64())
		}
	}

	summary.ClientDebt = clientDebt.Rounded()
	summary.OperatorDebt = operatorDebt.Rounded()
	return nil
}

func (s *CashboxService) assembleMovementList(summary *CashboxSummary, inMonth []finance.CashMovement, window finance.DateRange, page, pageSize int) {
	items := make([]MovementItem, 0, len(inMonth))
	for _, mv := range inMonth {
		item := MovementItem{
			ID:       mv.ID,
			Type:     string(mv.Type),
			Concept:  mv.Concept,
			Date:     mv.Date,
			DueDate:  mv.DueDate,
			Currency: mv.Currency,
			Amount:   finance.Round2(mv.Amount),
		}
		items = append(items, item)
		if mv.DueDate != nil && window.Contains(*mv.DueDate) && !mv.Type.IsCash() {
			summary.UpcomingDues = append(summary.UpcomingDues, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})

	summary.TotalMovements = int64(len(items))
	start := (page - 1) * pageSize
	if start >= len(items) {
		summary.Movements = []MovementItem{}
		return
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	summary.Movements = items[start:end]
}
