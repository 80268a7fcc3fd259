package finance

import (
	"time"

	"github.com/google/uuid"
)

// MovementType classifies a cashbox movement.
type MovementType string

const (
	MovementIncome       MovementType = "income"
	MovementExpense      MovementType = "expense"
	MovementClientDebt   MovementType = "client_debt"
	MovementOperatorDebt MovementType = "operator_debt"
)

// IsCash reports whether the movement moves money now (as opposed to a
// scheduled debt entry).
func (t MovementType) IsCash() bool {
	return t == MovementIncome || t == MovementExpense
}

// PaymentLeg is one (method, account) slice of a movement's amount. Ledger
// replay and the method/account breakdowns key each leg by its own pair, not
// by the movement's top-level account.
type PaymentLeg struct {
	Method    string
	AccountID uuid.UUID
	Amount    float64
}

// CashMovement is the normalized read-time view the cashbox assembler works
// on. It is derived per request from receipts, investments and dues; never
// persisted.
type CashMovement struct {
	ID       uuid.UUID
	Type     MovementType
	Concept  string
	Date     time.Time
	DueDate  *time.Time
	Currency string
	Amount   float64
	Legs     []PaymentLeg

	BookingID  *uuid.UUID
	ClientID   *uuid.UUID
	OperatorID *uuid.UUID
}

// MovementFromReceipt normalizes a receipt into an income movement. The
// settled (counter-aware) amount wins; a receipt without explicit legs
// contributes a single leg under its full amount so ledger replay still sees
// it.
func MovementFromReceipt(r *Receipt) CashMovement {
	amount, currency := r.Settled()
	legs := make([]PaymentLeg, 0, len(r.Legs))
	for _, leg := range r.Legs {
		legs = append(legs, PaymentLeg{
			Method:    leg.Method,
			AccountID: leg.AccountID,
			Amount:    leg.Amount.InexactFloat64(),
		})
	}
	if len(legs) == 0 {
		legs = append(legs, PaymentLeg{Amount: amount})
	}
	bookingID := r.BookingID
	clientID := r.ClientID
	return CashMovement{
		ID:        r.ID,
		Type:      MovementIncome,
		Concept:   r.Concept,
		Date:      r.Date,
		Currency:  currency,
		Amount:    amount,
		Legs:      legs,
		BookingID: &bookingID,
		ClientID:  &clientID,
	}
}

// MovementFromInvestment normalizes an investment into an expense movement
// with a single leg against the account the money left from.
func MovementFromInvestment(inv *Investment) CashMovement {
	leg := PaymentLeg{Method: inv.Method, Amount: inv.Amount.InexactFloat64()}
	if inv.AccountID != nil {
		leg.AccountID = *inv.AccountID
	}
	return CashMovement{
		ID:         inv.ID,
		Type:       MovementExpense,
		Concept:    inv.Concept,
		Date:       inv.Date,
		Currency:   NormalizeCurrency(inv.Currency),
		Amount:     inv.Amount.InexactFloat64(),
		Legs:       []PaymentLeg{leg},
		BookingID:  inv.BookingID,
		OperatorID: inv.OperatorID,
	}
}

// MovementFromOperatorDue normalizes a pending operator due into an
// operator_debt movement gated by its due date.
func MovementFromOperatorDue(due *OperatorDue) CashMovement {
	dueDate := due.DueDate
	operatorID := due.OperatorID
	return CashMovement{
		ID:         due.ID,
		Type:       MovementOperatorDebt,
		Concept:    due.Concept,
		Date:       due.DueDate,
		DueDate:    &dueDate,
		Currency:   NormalizeCurrency(due.Currency),
		Amount:     due.Amount.InexactFloat64(),
		BookingID:  due.BookingID,
		OperatorID: &operatorID,
	}
}

// MovementFromClientDue normalizes a pending client due into a client_debt
// movement gated by its due date.
func MovementFromClientDue(due *ClientDue) CashMovement {
	dueDate := due.DueDate
	clientID := due.ClientID
	bookingID := due.BookingID
	return CashMovement{
		ID:        due.ID,
		Type:      MovementClientDebt,
		Concept:   due.Concept,
		Date:      due.DueDate,
		DueDate:   &dueDate,
		Currency:  NormalizeCurrency(due.Currency),
		Amount:    due.Amount.InexactFloat64(),
		BookingID: &bookingID,
		ClientID:  &clientID,
	}
}

// LedgerEntries flattens cash movements into per-(account, currency) replay
// entries. Debt movements are not cash and contribute nothing.
func LedgerEntries(movements []CashMovement, accountID uuid.UUID, currency string) []LedgerEntry {
	code := NormalizeCurrency(currency)
	var entries []LedgerEntry
	for _, mv := range movements {
		if !mv.Type.IsCash() || NormalizeCurrency(mv.Currency) != code {
			continue
		}
		kind := EntryIncome
		if mv.Type == MovementExpense {
			kind = EntryExpense
		}
		for _, leg := range mv.Legs {
			if leg.AccountID != accountID {
				continue
			}
			entries = append(entries, LedgerEntry{Date: mv.Date, Kind: kind, Amount: leg.Amount})
		}
	}
	return entries
}
