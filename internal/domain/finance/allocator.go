package finance

import (
	"math"

	"github.com/google/uuid"
)

// ServiceCost is the slice of a travel service the allocator needs: its
// identity, its outstanding cost and its currency. Order matters: callers
// must pass services in the order they appear in the referencing ID list.
type ServiceCost struct {
	ServiceID uuid.UUID
	CostPrice float64
	Currency  string
}

// ServiceShare is one service's allocated portion of a legacy payment.
type ServiceShare struct {
	ServiceID uuid.UUID
	Amount    float64
}

// AllocateProportionally splits a single un-itemized payment or investment
// across the services it references, weighted by each service's cost, so each
// service can compute its own paid/pending state.
//
// Rules:
//   - Only services whose currency matches the payment currency are eligible.
//     A referenced set spanning more than one currency cannot be split safely
//     and produces no allocations at all (silent skip, not an error).
//   - Weight is max(cost, 0); zero total weight falls back to an equal split.
//   - Every share but the last is Round2(total·weight/totalWeight). The last
//     service absorbs the running remainder, so the shares always sum to the
//     original total exactly. Which service is last is determined by input
//     order, never by sorting.
func AllocateProportionally(total float64, currency string, services []ServiceCost) []ServiceShare {
	if math.IsNaN(total) || math.IsInf(total, 0) || len(services) == 0 {
		return nil
	}
	payCurrency := NormalizeCurrency(currency)
	if payCurrency == "" {
		return nil
	}

	// A legacy bundle in mixed currencies loses the payment's effect on the
	// bundled services. Known quirk of the legacy schema; kept as-is.
	for _, svc := range services {
		if NormalizeCurrency(svc.Currency) != payCurrency {
			return nil
		}
	}

	totalWeight := 0.0
	for _, svc := range services {
		totalWeight += math.Max(svc.CostPrice, 0)
	}

	shares := make([]ServiceShare, 0, len(services))
	remaining := total
	last := len(services) - 1
	for i, svc := range services {
		var amount float64
		if i == last {
			amount = Round2(remaining)
		} else {
			if totalWeight > 0 {
				amount = Round2(total * math.Max(svc.CostPrice, 0) / totalWeight)
			} else {
				amount = Round2(total / float64(len(services)))
			}
			remaining -= amount
		}
		shares = append(shares, ServiceShare{ServiceID: svc.ServiceID, Amount: amount})
	}
	return shares
}
