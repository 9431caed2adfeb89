package order

import "github.com/shopspring/decimal"

// Totals summarizes an order projection for the report footer.
// Monetary and physical sums use decimals so long reports do not
// accumulate float drift.
type Totals struct {
	Rows     int
	ToOrder  int
	Amount   decimal.Decimal
	WeightKg decimal.Decimal
	VolumeM3 decimal.Decimal

	// MissingPrice counts rows that need ordering but carry no price,
	// so the amount total is known to be an underestimate.
	MissingPrice int
}

// SummarizeTotals folds rows into report totals.
func SummarizeTotals(rows []OrderRow) Totals {
	t := Totals{
		Amount:   decimal.Zero,
		WeightKg: decimal.Zero,
		VolumeM3: decimal.Zero,
	}
	for i := range rows {
		r := &rows[i]
		t.Rows++
		t.ToOrder += r.QtyToOrderRounded
		t.Amount = t.Amount.Add(decimal.NewFromFloat(r.Amount))
		t.WeightKg = t.WeightKg.Add(decimal.NewFromFloat(r.WeightKg))
		t.VolumeM3 = t.VolumeM3.Add(decimal.NewFromFloat(r.VolumeM3))
		if r.QtyToOrderRounded > 0 && r.PricePerPack == 0 {
			t.MissingPrice++
		}
	}
	return t
}
