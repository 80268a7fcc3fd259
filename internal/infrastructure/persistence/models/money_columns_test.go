package models

import (
	"reflect"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// Every persisted monetary column uses the same precision. A single field
// drifting to another scale silently truncates amounts on write.
func TestMonetaryColumnsShareOnePrecision(t *testing.T) {
	models := []any{
		BookingModel{},
		TravelServiceModel{},
		ReceiptModel{},
		ReceiptAllocationModel{},
		InvestmentModel{},
		InvestmentAllocationModel{},
		OperatorDueModel{},
		ClientDueModel{},
		FinanceAccountModel{},
		OpeningBalanceModel{},
		CreditAccountModel{},
	}

	decimalType := reflect.TypeOf(decimal.Decimal{})
	decimalPtrType := reflect.TypeOf(&decimal.Decimal{})

	for _, model := range models {
		rt := reflect.TypeOf(model)
		for i := 0; i < rt.NumField(); i++ {
			field := rt.Field(i)
			if field.Type != decimalType && field.Type != decimalPtrType {
				continue
			}
			tag := field.Tag.Get("gorm")
			assert.True(t, strings.Contains(tag, "type:decimal(18,4)"),
				"%s.%s declares %q", rt.Name(), field.Name, tag)
		}
	}
}
