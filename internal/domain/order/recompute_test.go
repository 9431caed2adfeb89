package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestRecompute_NeededFormula(t *testing.T) {
	tests := []struct {
		name string
		row  OrderRow
		want int
	}{
		{
			name: "all components",
			row: OrderRow{
				StandardQty:     100,
				CurrentStock:    40,
				QtyExpiring:     10,
				BackOrders:      5,
				LoanBalance:     3,
				PlannedDonsGive: 2,
				DonsReceive:     4,
			},
			// 100 - 40 + 10 - 5 - 3 + 2 - 4
			want: 60,
		},
		{
			name: "clamped at zero",
			row:  OrderRow{StandardQty: 10, CurrentStock: 50},
			want: 0,
		},
		{
			name: "negative loan balance adds to need",
			row:  OrderRow{StandardQty: 10, CurrentStock: 10, LoanBalance: -5},
			want: 5,
		},
		{
			name: "empty row",
			row:  OrderRow{},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Recompute(&tt.row)
			assert.Equal(t, tt.want, tt.row.QtyNeeded)
		})
	}
}

func TestRecompute_MaterializesQtyToOrder(t *testing.T) {
	row := OrderRow{StandardQty: 30, CurrentStock: 10}
	Recompute(&row)

	assert.True(t, row.QtyToOrderSet())
	assert.Equal(t, 20, *row.QtyToOrder)
	assert.Equal(t, 20, row.QtyToOrderRounded)
}

func TestRecompute_PreservesUserQtyToOrder(t *testing.T) {
	row := OrderRow{StandardQty: 30, CurrentStock: 10, QtyToOrder: intPtr(7)}
	Recompute(&row)

	assert.Equal(t, 20, row.QtyNeeded)
	assert.Equal(t, 7, *row.QtyToOrder)
	assert.Equal(t, 7, row.QtyToOrderRounded)
}

func TestRecompute_PackRounding(t *testing.T) {
	tests := []struct {
		name        string
		toOrder     int
		packSize    int
		wantRounded int
	}{
		{"exact multiple", 20, 10, 20},
		{"rounds up", 21, 10, 30},
		{"one unit", 1, 12, 12},
		{"zero stays zero", 0, 10, 0},
		{"negative override rounds toward zero", -5, 10, 0},
		{"no pack size passes through", 17, 0, 17},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := OrderRow{QtyToOrder: intPtr(tt.toOrder), PackSize: tt.packSize}
			Recompute(&row)
			assert.Equal(t, tt.wantRounded, row.QtyToOrderRounded)
		})
	}
}

func TestRecompute_NeedRoundsUpToPack(t *testing.T) {
	row := OrderRow{StandardQty: 10, CurrentStock: 4, PackSize: 3}
	Recompute(&row)
	assert.Equal(t, 6, row.QtyNeeded)
	assert.Equal(t, 6, *row.QtyToOrder)
	assert.Equal(t, 6, row.QtyToOrderRounded)

	row = OrderRow{StandardQty: 10, CurrentStock: 4, PackSize: 4}
	Recompute(&row)
	assert.Equal(t, 6, row.QtyNeeded)
	assert.Equal(t, 8, row.QtyToOrderRounded)
}

func TestRecompute_Valuation(t *testing.T) {
	row := OrderRow{
		QtyToOrder:       intPtr(25),
		PackSize:         10,
		PricePerPack:     4.5,
		WeightPerPack:    2,
		VolumePerPackDM3: 500,
	}
	Recompute(&row)

	// 25 rounds up to 30, which is 3 packs.
	assert.Equal(t, 30, row.QtyToOrderRounded)
	assert.InDelta(t, 13.5, row.Amount, 1e-9)
	assert.InDelta(t, 6, row.WeightKg, 1e-9)
	assert.InDelta(t, 1.5, row.VolumeM3, 1e-9)
}

func TestRecompute_NoPackSizeZeroesValuation(t *testing.T) {
	row := OrderRow{
		QtyToOrder:   intPtr(25),
		PricePerPack: 4.5,
		Amount:       99,
		WeightKg:     99,
		VolumeM3:     99,
	}
	Recompute(&row)

	assert.Equal(t, 25, row.QtyToOrderRounded)
	assert.Zero(t, row.Amount)
	assert.Zero(t, row.WeightKg)
	assert.Zero(t, row.VolumeM3)
}
