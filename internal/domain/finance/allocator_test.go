package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateProportionally(t *testing.T) {
	svcA := uuid.New()
	svcB := uuid.New()
	svcC := uuid.New()

	t.Run("weights by cost with last service absorbing the remainder", func(t *testing.T) {
		shares := AllocateProportionally(100, "ARS", []ServiceCost{
			{ServiceID: svcA, CostPrice: 300, Currency: "ARS"},
			{ServiceID: svcB, CostPrice: 700, Currency: "ARS"},
		})

		require.Len(t, shares, 2)
		assert.Equal(t, svcA, shares[0].ServiceID)
		assert.Equal(t, 30.0, shares[0].Amount)
		assert.Equal(t, svcB, shares[1].ServiceID)
		assert.Equal(t, 70.0, shares[1].Amount)
	})

	t.Run("shares always sum to the original total", func(t *testing.T) {
		shares := AllocateProportionally(100, "ARS", []ServiceCost{
			{ServiceID: svcA, CostPrice: 1, Currency: "ARS"},
			{ServiceID: svcB, CostPrice: 1, Currency: "ARS"},
			{ServiceID: svcC, CostPrice: 1, Currency: "ARS"},
		})

		require.Len(t, shares, 3)
		total := 0.0
		for _, s := range shares {
			assert.GreaterOrEqual(t, s.Amount, 0.0)
			total += s.Amount
		}
		assert.Equal(t, 100.0, Round2(total))
		// 33.33 + 33.33 + 33.34: the last one took the extra cent.
		assert.Equal(t, 33.33, shares[0].Amount)
		assert.Equal(t, 33.33, shares[1].Amount)
		assert.Equal(t, 33.34, shares[2].Amount)
	})

	t.Run("zero total weight falls back to equal split", func(t *testing.T) {
		shares := AllocateProportionally(90, "ARS", []ServiceCost{
			{ServiceID: svcA, CostPrice: 0, Currency: "ARS"},
			{ServiceID: svcB, CostPrice: -50, Currency: "ARS"},
			{ServiceID: svcC, CostPrice: 0, Currency: "ARS"},
		})

		require.Len(t, shares, 3)
		assert.Equal(t, 30.0, shares[0].Amount)
		assert.Equal(t, 30.0, shares[1].Amount)
		assert.Equal(t, 30.0, shares[2].Amount)
	})

	t.Run("negative cost weighs as zero", func(t *testing.T) {
		shares := AllocateProportionally(100, "ARS", []ServiceCost{
			{ServiceID: svcA, CostPrice: -500, Currency: "ARS"},
			{ServiceID: svcB, CostPrice: 100, Currency: "ARS"},
		})

		require.Len(t, shares, 2)
		assert.Equal(t, 0.0, shares[0].Amount)
		assert.Equal(t, 100.0, shares[1].Amount)
	})

	t.Run("mixed currency bundle is skipped entirely", func(t *testing.T) {
		shares := AllocateProportionally(100, "ARS", []ServiceCost{
			{ServiceID: svcA, CostPrice: 300, Currency: "ARS"},
			{ServiceID: svcB, CostPrice: 700, Currency: "USD"},
		})
		assert.Nil(t, shares)
	})

	t.Run("currency mismatch with payment is skipped", func(t *testing.T) {
		shares := AllocateProportionally(100, "USD", []ServiceCost{
			{ServiceID: svcA, CostPrice: 300, Currency: "ARS"},
			{ServiceID: svcB, CostPrice: 700, Currency: "ARS"},
		})
		assert.Nil(t, shares)
	})

	t.Run("input order decides who absorbs the remainder", func(t *testing.T) {
		reversed := AllocateProportionally(100, "ARS", []ServiceCost{
			{ServiceID: svcB, CostPrice: 700, Currency: "ARS"},
			{ServiceID: svcA, CostPrice: 300, Currency: "ARS"},
		})

		require.Len(t, reversed, 2)
		assert.Equal(t, 70.0, reversed[0].Amount)
		assert.Equal(t, 30.0, reversed[1].Amount)
	})

	t.Run("empty or invalid inputs produce nothing", func(t *testing.T) {
		assert.Nil(t, AllocateProportionally(100, "ARS", nil))
		assert.Nil(t, AllocateProportionally(100, "", []ServiceCost{{ServiceID: svcA, Currency: "ARS"}}))
	})

	t.Run("single service takes the full amount", func(t *testing.T) {
		shares := AllocateProportionally(123.45, "ARS", []ServiceCost{
			{ServiceID: svcA, CostPrice: 999, Currency: "ars"},
		})
		require.Len(t, shares, 1)
		assert.Equal(t, 123.45, shares[0].Amount)
	})
}
