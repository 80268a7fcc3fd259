package finance

// CardInterest carries the booking-level card surcharge in its two historical
// shapes: an itemized taxable+VAT split, or an older flat amount. When the
// split is non-zero it is authoritative and the flat field is ignored
// (prefer itemized over flat).
type CardInterest struct {
	Currency string
	Flat     float64
	Taxable  float64
	VAT      float64
}

// Total returns the interest amount the netter should add to the sale.
func (ci CardInterest) Total() float64 {
	if ci.Taxable != 0 || ci.VAT != 0 {
		return ci.Taxable + ci.VAT
	}
	return ci.Flat
}

// SaleWithInterest returns sale plus the booking's card interest in the
// interest currency. The input map is not mutated.
func SaleWithInterest(sale MoneyMap, interest CardInterest) MoneyMap {
	out := sale.Clone()
	out.Add(interest.Currency, interest.Total())
	return out
}

// ClientDebt nets what a booking's client owes the agency per currency:
// sale-with-interest minus payments received. Negative entries mean
// overpayment and are NOT clamped here; whether an overpayment displays as
// negative is a response-shaping decision of individual endpoints.
func ClientDebt(saleWithInterest, paidByClient MoneyMap) MoneyMap {
	return Net(saleWithInterest, paidByClient)
}

// OperatorDebt nets what the agency owes an operator per currency for a
// booking: service cost minus payments already made to the operator.
// Negative entries (operator overpaid) are not clamped either.
func OperatorDebt(operatorCost, paidToOperator MoneyMap) MoneyMap {
	return Net(operatorCost, paidToOperator)
}
