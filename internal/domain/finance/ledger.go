package finance

import (
	"math"
	"time"
)

// EntryKind classifies a replayable ledger entry.
type EntryKind string

const (
	EntryIncome  EntryKind = "income"
	EntryExpense EntryKind = "expense"
)

// LedgerEntry is one dated movement leg for a single (account, currency)
// pair, already flattened by the caller: a movement split across several
// payment methods or accounts contributes one entry per leg, keyed by the
// leg's own account, not the movement's top-level one.
type LedgerEntry struct {
	Date   time.Time
	Kind   EntryKind
	Amount float64
}

// OpeningSnapshot is a stored (account, currency) balance effective from a
// date. At most one snapshot is authoritative as of any query date: the most
// recent one with EffectiveDate ≤ the query date.
type OpeningSnapshot struct {
	EffectiveDate time.Time
	Amount        float64
}

// BalanceAsOf reconstructs the balance of an account+currency at target
// without a running balance column: it picks the latest snapshot at or before
// target as the checkpoint (zero if none) and replays every entry dated
// strictly after the checkpoint and strictly before target, adding income and
// subtracting expense. Entries with non-finite or non-positive amounts are
// dropped silently.
func BalanceAsOf(snapshots []OpeningSnapshot, entries []LedgerEntry, target time.Time) float64 {
	var checkpoint time.Time
	balance := 0.0
	for _, snap := range snapshots {
		if snap.EffectiveDate.After(target) {
			continue
		}
		if checkpoint.IsZero() || snap.EffectiveDate.After(checkpoint) {
			checkpoint = snap.EffectiveDate
			balance = snap.Amount
		}
	}

	for _, entry := range entries {
		if math.IsNaN(entry.Amount) || math.IsInf(entry.Amount, 0) || entry.Amount <= 0 {
			continue
		}
		if !checkpoint.IsZero() && !entry.Date.After(checkpoint) {
			continue
		}
		if !entry.Date.Before(target) {
			continue
		}
		switch entry.Kind {
		case EntryIncome:
			balance += entry.Amount
		case EntryExpense:
			balance -= entry.Amount
		}
	}
	return Round2(balance)
}
