package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSummarizeTotals(t *testing.T) {
	rows := []OrderRow{
		{QtyToOrderRounded: 30, PricePerPack: 4.5, Amount: 13.5, WeightKg: 6, VolumeM3: 1.5},
		{QtyToOrderRounded: 10, PricePerPack: 0.1, Amount: 0.1, WeightKg: 0.2, VolumeM3: 0.3},
		{QtyToOrderRounded: 5}, // needs ordering but unpriced
		{QtyToOrderRounded: 0}, // nothing to order, missing price is fine
	}

	totals := SummarizeTotals(rows)

	assert.Equal(t, 4, totals.Rows)
	assert.Equal(t, 45, totals.ToOrder)
	assert.True(t, totals.Amount.Equal(decimal.NewFromFloat(13.6)), "amount %s", totals.Amount)
	assert.True(t, totals.WeightKg.Equal(decimal.NewFromFloat(6.2)), "weight %s", totals.WeightKg)
	assert.True(t, totals.VolumeM3.Equal(decimal.NewFromFloat(1.8)), "volume %s", totals.VolumeM3)
	assert.Equal(t, 1, totals.MissingPrice)
}

func TestSummarizeTotals_Empty(t *testing.T) {
	totals := SummarizeTotals(nil)

	assert.Zero(t, totals.Rows)
	assert.True(t, totals.Amount.IsZero())
	assert.Zero(t, totals.MissingPrice)
}
