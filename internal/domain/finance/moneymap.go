package finance

import (
	"math"
	"strings"
)

// roundEpsilon counters binary floating point drift before rounding.
// 0.1+0.2 accumulates to 0.30000000000000004; the epsilon nudges such sums
// onto the intended cent before the half-away-from-zero round.
const roundEpsilon = 1e-9

// MoneyMap is a mapping from uppercase ISO-ish currency codes to accumulated
// signed amounts. An absent key is zero. It is the unit of financial
// computation for every report in the back office and serializes to a plain
// currency→number JSON object.
type MoneyMap map[string]float64

// NewMoneyMap returns an empty MoneyMap.
func NewMoneyMap() MoneyMap {
	return MoneyMap{}
}

// Round2 rounds a reportable total to two decimals, half away from zero,
// with the epsilon correction applied first. Non-finite input yields zero.
// Intermediate accumulation must NOT be rounded; only final totals are.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return math.Round((x+roundEpsilon)*100) / 100
}

// NormalizeCurrency uppercases and trims a currency code. An empty result
// means the code is unusable.
func NormalizeCurrency(currency string) string {
	return strings.ToUpper(strings.TrimSpace(currency))
}

// Add accumulates amount under currency. Empty currency codes and non-finite
// amounts are a silent no-op, never an error: one corrupt row must not block
// an entire monthly report.
func (m MoneyMap) Add(currency string, amount float64) {
	if m == nil {
		return
	}
	code := NormalizeCurrency(currency)
	if code == "" {
		return
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return
	}
	m[code] += amount
}

// Get returns the accumulated amount for currency, zero when absent.
func (m MoneyMap) Get(currency string) float64 {
	return m[NormalizeCurrency(currency)]
}

// Clone returns an independent copy.
func (m MoneyMap) Clone() MoneyMap {
	out := make(MoneyMap, len(m))
	for code, amount := range m {
		out[code] = amount
	}
	return out
}

// Merge adds every entry of other into m.
func (m MoneyMap) Merge(other MoneyMap) {
	for code, amount := range other {
		m.Add(code, amount)
	}
}

// Net returns a−b over the union of both key sets, defaulting a missing side
// to zero. A currency present in only one input therefore still appears in
// the result, possibly negative.
func Net(a, b MoneyMap) MoneyMap {
	out := make(MoneyMap, len(a)+len(b))
	for code, amount := range a {
		out[code] = amount - b[code]
	}
	for code, amount := range b {
		if _, seen := a[code]; !seen {
			out[code] = -amount
		}
	}
	return out
}

// Sum returns a+b over the union of both key sets.
func Sum(a, b MoneyMap) MoneyMap {
	out := a.Clone()
	out.Merge(b)
	return out
}

// Rounded returns a copy with Round2 applied to every entry. Used when a map
// becomes a reportable total.
func (m MoneyMap) Rounded() MoneyMap {
	out := make(MoneyMap, len(m))
	for code, amount := range m {
		out[code] = Round2(amount)
	}
	return out
}

// IsZero reports whether every entry rounds to zero.
func (m MoneyMap) IsZero() bool {
	for _, amount := range m {
		if Round2(amount) != 0 {
			return false
		}
	}
	return true
}
