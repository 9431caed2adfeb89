package order

// Recompute rebuilds every derived quantity of a row from its inputs.
// It runs after the initial merge and after every accepted edit.
//
//	qty_needed = standard - stock + expiring - back_orders
//	             - loan_balance + planned_dons_give - dons_receive
//
// clamped at zero. An unset qty_to_order is materialized from
// qty_needed; a user-supplied value is preserved as-is.
func Recompute(r *OrderRow) {
	needed := r.StandardQty - r.CurrentStock + r.QtyExpiring -
		r.BackOrders - r.LoanBalance + r.PlannedDonsGive - r.DonsReceive
	if needed < 0 {
		needed = 0
	}
	r.QtyNeeded = needed

	if r.QtyToOrder == nil {
		v := needed
		r.QtyToOrder = &v
	}
	toOrder := *r.QtyToOrder

	if r.PackSize > 0 {
		r.QtyToOrderRounded = ceilToMultiple(toOrder, r.PackSize)
		packs := float64(r.QtyToOrderRounded) / float64(r.PackSize)
		r.Amount = packs * r.PricePerPack
		r.WeightKg = packs * r.WeightPerPack
		r.VolumeM3 = packs * r.VolumePerPackDM3 / 1000
		return
	}

	// Without a pack size there is no packing conversion and the
	// valuation columns stay zero.
	r.QtyToOrderRounded = toOrder
	r.Amount = 0
	r.WeightKg = 0
	r.VolumeM3 = 0
}

// ceilToMultiple rounds n up to the nearest multiple of pack (pack > 0).
func ceilToMultiple(n, pack int) int {
	q := n / pack
	if n%pack != 0 && n > 0 {
		q++
	}
	return q * pack
}
