// Package order implements the order-needs computation engine: it
// reconciles standing quantities, current stock, expiring lots, loan
// balances and commercial metadata into one projection per item code
// of how much to order.
package order

import (
	"strings"
	"time"

	"medstock/internal/core/dateutil"
	"medstock/internal/domain/item"
)

// Loan category taxonomy. Outbound categories raise the loan balance,
// inbound return categories lower it.
var (
	LoanOutTypes    = []string{"Loan", "Return of Borrowing"}
	LoanReturnTypes = []string{"In Borrowing", "In Return of Loan"}
)

// Filters scope an order-needs refresh.
type Filters struct {
	Kit        string
	Module     string
	Type       string
	ItemSearch string

	// Month parameters defining the expiry-risk horizon; callers clamp
	// them through settings.ClampMonths before building Filters.
	LeadMonths   int
	CoverMonths  int
	BufferMonths int
}

// HorizonMonths is the expiry lookahead window in months.
func (f Filters) HorizonMonths() int {
	return f.LeadMonths + f.CoverMonths + f.BufferMonths
}

// HorizonEnd is the last date a lot may expire and still count as
// "expiring within the horizon".
func (f Filters) HorizonEnd(today time.Time) time.Time {
	return dateutil.AddMonths(today, f.HorizonMonths())
}

// Source returns the kit/module scope shared by the source fetchers.
func (f Filters) Source() SourceFilter {
	return SourceFilter{Kit: f.Kit, Module: f.Module}
}

// SourceFilter is the kit/module scope applied by each source fetcher.
// Empty or "All" values mean unfiltered.
type SourceFilter struct {
	Kit    string
	Module string
}

// KitActive reports whether the kit filter restricts the fetch.
func (s SourceFilter) KitActive() bool { return filterActive(s.Kit) }

// ModuleActive reports whether the module filter restricts the fetch.
func (s SourceFilter) ModuleActive() bool { return filterActive(s.Module) }

func filterActive(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, "all")
}

// Commercial holds per-item catalog metadata used for pack rounding
// and order valuation. Zero values mean "unknown": no packing
// conversion, no price.
type Commercial struct {
	PackSize         int
	PricePerPack     float64
	WeightPerPack    float64
	VolumePerPackDM3 float64
	AccountCode      string
}

// OrderRow is one line of the order-needs projection. Rows are rebuilt
// in full on every refresh; edits mutate the in-memory row and trigger
// an immediate recompute of that row only.
type OrderRow struct {
	Code        string
	Description string
	Type        item.Type

	// Source quantities
	StandardQty  int
	CurrentStock int
	QtyExpiring  int
	LoanBalance  int

	// User-editable planning quantities
	BackOrders      int
	PlannedDonsGive int
	DonsReceive     int

	// Commercial metadata
	PackSize         int
	PricePerPack     float64
	WeightPerPack    float64
	VolumePerPackDM3 float64
	AccountCode      string

	// Derived quantities. QtyToOrder is nil while unset; Recompute
	// materializes it from QtyNeeded.
	QtyNeeded         int
	QtyToOrder        *int
	QtyToOrderRounded int
	Amount            float64
	WeightKg          float64
	VolumeM3          float64

	Remarks string
}

// QtyToOrderSet reports whether qty_to_order has a value (either user
// supplied or materialized by a recompute).
func (r *OrderRow) QtyToOrderSet() bool { return r.QtyToOrder != nil }
