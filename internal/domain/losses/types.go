// Package losses implements the loss-aggregation reporting engine: it
// folds outbound loss transactions into one record per
// (date, item code, loss category) with deduplicated side attributes.
package losses

import "time"

// Loss categories recognized by the aggregator. Outbound transactions
// with any other category are not losses and never enter a report.
const (
	CategoryExpired   = "Expired Items"
	CategoryDamaged   = "Damaged Items"
	CategoryColdChain = "Cold Chain Break"
	CategoryRecall    = "Batch Recall"
	CategoryTheft     = "Theft"
	CategoryOther     = "Other Losses"
)

// Categories lists the loss taxonomy in report order.
func Categories() []string {
	return []string{
		CategoryExpired,
		CategoryDamaged,
		CategoryColdChain,
		CategoryRecall,
		CategoryTheft,
		CategoryOther,
	}
}

// IsLossCategory reports whether an outbound transaction category is a
// loss category.
func IsLossCategory(category string) bool {
	switch category {
	case CategoryExpired, CategoryDamaged, CategoryColdChain,
		CategoryRecall, CategoryTheft, CategoryOther:
		return true
	}
	return false
}

// Filter scopes a loss aggregation. String filters with an empty or
// "All" value are inactive; nil date bounds mean unbounded.
type Filter struct {
	Scenario   string
	Kit        string
	Module     string
	Type       string
	Category   string
	ItemSearch string
	DocSearch  string

	DateFrom *time.Time
	DateTo   *time.Time
}

// TransactionRow is one outbound loss movement as read from the
// transaction register. Side attributes are nullable; QtyOut absorbs
// whatever the register column holds and is coerced during the fold.
type TransactionRow struct {
	Date     string `db:"date"`
	Code     string `db:"code"`
	Category string `db:"out_type"`
	QtyOut   any    `db:"qty_out"`

	Scenario   *string `db:"scenario"`
	Kit        *string `db:"kit"`
	Module     *string `db:"module"`
	ExpiryDate *string `db:"expiry_date"`
	Document   *string `db:"document_number"`
	Remarks    *string `db:"remarks"`
}

// Record is one aggregated loss line. The attribute fields hold the
// deduplicated, sorted, comma-joined values observed across the
// transactions folded into the record.
type Record struct {
	Date        string
	Code        string
	Description string
	Type        string
	Category    string
	Quantity    int

	Scenarios   string
	Kits        string
	Modules     string
	ExpiryDates string
	Documents   string
	Remarks     string
}
