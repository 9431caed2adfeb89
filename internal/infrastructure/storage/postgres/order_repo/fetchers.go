package order_repo

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"medstock/internal/core/apperror"
	"medstock/internal/core/dateutil"
	"medstock/internal/core/types"
	"medstock/internal/domain/order"
	"medstock/internal/domain/schema"
	"medstock/pkg/logger"
)

// StandardQuantities sums standing quantities per code from the
// standard quantity helper table.
func (r *OrderRepo) StandardQuantities(ctx context.Context, f order.SourceFilter) (map[string]int, error) {
	q, err := r.standardQtyQuery(f)
	if err != nil {
		return nil, err
	}
	var rows []qtyRow
	if err := r.selectRaw(ctx, q, &rows, "standard quantities"); err != nil {
		return nil, err
	}
	return foldQty(rows), nil
}

func (r *OrderRepo) standardQtyQuery(f order.SourceFilter) (squirrel.SelectBuilder, error) {
	t := r.schema.Table(schema.TableStandardQty)
	if !t.HasAll("code", "std_qty") {
		return squirrel.SelectBuilder{}, apperror.NewMissingSchema(schema.TableStandardQty, "code", "std_qty")
	}
	q := r.Builder().
		Select("code", "std_qty AS qty").
		From(schema.TableStandardQty)
	return andWhere(q, nil, scopeConjuncts(t, f, "kit", "module")), nil
}

// CurrentStock sums on-hand quantities per code from the stock
// register. Registers keyed by composite unique identifier are folded
// through the identifier parser.
func (r *OrderRepo) CurrentStock(ctx context.Context, f order.SourceFilter) (map[string]int, error) {
	q, byUniqueID, err := r.stockQuery(f, nil)
	if err != nil {
		return nil, err
	}
	var rows []qtyRow
	if err := r.selectRaw(ctx, q, &rows, "current stock"); err != nil {
		return nil, err
	}
	if byUniqueID {
		return foldQtyByUniqueID(rows), nil
	}
	return foldQty(rows), nil
}

// stockQuery builds the stock register select. When extraCols is
// non-nil those columns are appended to the select list.
func (r *OrderRepo) stockQuery(f order.SourceFilter, extraCols []string) (squirrel.SelectBuilder, bool, error) {
	t := r.schema.Table(schema.TableStockData)
	if !t.Has("final_qty") {
		return squirrel.SelectBuilder{}, false, apperror.NewMissingSchema(schema.TableStockData, "final_qty")
	}

	codeSel := "code"
	byUniqueID := false
	if !t.Has("code") {
		if !t.Has("unique_id") {
			return squirrel.SelectBuilder{}, false, apperror.NewMissingSchema(schema.TableStockData, "code")
		}
		codeSel = "unique_id AS code"
		byUniqueID = true
	}

	cols := append([]string{codeSel, "final_qty AS qty"}, extraCols...)
	q := r.Builder().
		Select(cols...).
		From(schema.TableStockData)
	// Rows without a recorded quantity never enter the code union.
	hasQty := squirrel.NotEq{"final_qty": nil}
	return andWhere(q, hasQty, scopeConjuncts(t, f, "kit_number", "module_number")), byUniqueID, nil
}

// expiringRow extends the quantity pair with the raw expiry date text.
type expiringRow struct {
	Code    *string `db:"code"`
	Qty     any     `db:"qty"`
	ExpDate *string `db:"exp_date"`
}

// ExpiringQuantities sums stock expiring on or before horizonEnd.
// Expiry dates are stored as typed text and parsed leniently; a row
// whose date cannot be read is skipped, not fatal.
func (r *OrderRepo) ExpiringQuantities(ctx context.Context, f order.SourceFilter, horizonEnd time.Time) (map[string]int, error) {
	t := r.schema.Table(schema.TableStockData)
	if !t.Has("exp_date") {
		return nil, apperror.NewMissingSchema(schema.TableStockData, "exp_date")
	}
	q, byUniqueID, err := r.stockQuery(f, []string{"exp_date"})
	if err != nil {
		return nil, err
	}
	q = q.Where(squirrel.NotEq{"exp_date": nil}).Where(squirrel.NotEq{"exp_date": ""})

	var rows []expiringRow
	if err := r.selectRaw(ctx, q, &rows, "expiring quantities"); err != nil {
		return nil, err
	}

	out := make(map[string]int, len(rows))
	skipped := 0
	for i := range rows {
		row := &rows[i]
		if row.Code == nil || row.ExpDate == nil {
			continue
		}
		expiry, ok := dateutil.ParseUserDate(*row.ExpDate, dateutil.RoleTo)
		if !ok {
			skipped++
			continue
		}
		if expiry.After(horizonEnd) {
			continue
		}
		code := *row.Code
		if byUniqueID {
			code = order.CodeFromUniqueID(code)
		}
		if code == "" {
			continue
		}
		out[code] += types.CoerceInt(row.Qty)
	}
	if skipped > 0 {
		logger.Debug(ctx, "unreadable expiry dates skipped", "count", skipped)
	}
	return out, nil
}

// loanRow is one loan movement before folding.
type loanRow struct {
	Code    *string `db:"code"`
	QtyIn   any     `db:"qty_in"`
	QtyOut  any     `db:"qty_out"`
	InType  *string `db:"in_type"`
	OutType *string `db:"out_type"`
}

// LoanBalances nets loan movements per code from the transaction
// register: outbound loan categories add, inbound returns subtract.
func (r *OrderRepo) LoanBalances(ctx context.Context, f order.SourceFilter) (map[string]int, error) {
	q, err := r.loanQuery(f)
	if err != nil {
		return nil, err
	}
	var rows []loanRow
	if err := r.selectRaw(ctx, q, &rows, "loan balances"); err != nil {
		return nil, err
	}

	out := make(map[string]int, len(rows))
	loanOut := toSet(order.LoanOutTypes)
	loanIn := toSet(order.LoanReturnTypes)
	for i := range rows {
		row := &rows[i]
		if row.Code == nil || *row.Code == "" {
			continue
		}
		if row.OutType != nil {
			if _, ok := loanOut[*row.OutType]; ok {
				out[*row.Code] += types.CoerceInt(row.QtyOut)
			}
		}
		if row.InType != nil {
			if _, ok := loanIn[*row.InType]; ok {
				out[*row.Code] -= types.CoerceInt(row.QtyIn)
			}
		}
	}
	return out, nil
}

// loanQuery selects loan movements. The category predicate is built as
// a single conjunct so the kit and module filters always AND against
// the whole category disjunction.
func (r *OrderRepo) loanQuery(f order.SourceFilter) (squirrel.SelectBuilder, error) {
	t := r.schema.Table(schema.TableTransactions)
	if !t.HasAll("code", "qty_in", "qty_out", "in_type", "out_type") {
		return squirrel.SelectBuilder{}, apperror.NewMissingSchema(schema.TableTransactions,
			"code", "qty_in", "qty_out", "in_type", "out_type")
	}

	categories := squirrel.Or{
		squirrel.Eq{"out_type": order.LoanOutTypes},
		squirrel.Eq{"in_type": order.LoanReturnTypes},
	}
	q := r.Builder().
		Select("code", "qty_in", "qty_out", "in_type", "out_type").
		From(schema.TableTransactions)
	return andWhere(q, categories, scopeConjuncts(t, f, "kit", "module")), nil
}

// commercialRow is a raw catalog line; absent columns select as NULL.
type commercialRow struct {
	Code        string `db:"code"`
	Pack        any    `db:"pack"`
	Price       any    `db:"price_per_pack_euros"`
	Weight      any    `db:"weight_per_pack_kg"`
	Volume      any    `db:"volume_per_pack_dm3"`
	AccountCode any    `db:"account_code"`
}

// CommercialData loads pack, pricing and account metadata for codes.
// Columns missing from this schema revision read as NULL and coerce to
// their zero values.
func (r *OrderRepo) CommercialData(ctx context.Context, codes []string) (map[string]order.Commercial, error) {
	if len(codes) == 0 {
		return map[string]order.Commercial{}, nil
	}
	t := r.schema.Table(schema.TableItemsList)
	if !t.Has("code") {
		return nil, apperror.NewMissingSchema(schema.TableItemsList, "code")
	}

	col := func(name string) string {
		if t.Has(name) {
			return name
		}
		return "NULL AS " + name
	}
	q := r.Builder().
		Select("code",
			col("pack"),
			col("price_per_pack_euros"),
			col("weight_per_pack_kg"),
			col("volume_per_pack_dm3"),
			col("account_code")).
		From(schema.TableItemsList).
		Where(squirrel.Eq{"code": codes})

	var rows []commercialRow
	if err := r.selectRaw(ctx, q, &rows, "commercial data"); err != nil {
		return nil, err
	}

	out := make(map[string]order.Commercial, len(rows))
	for i := range rows {
		row := &rows[i]
		if row.Code == "" {
			continue
		}
		out[row.Code] = order.Commercial{
			PackSize:         types.CoerceInt(row.Pack),
			PricePerPack:     types.CoerceFloat(row.Price),
			WeightPerPack:    types.CoerceFloat(row.Weight),
			VolumePerPackDM3: types.CoerceFloat(row.Volume),
			AccountCode:      types.CoerceString(row.AccountCode),
		}
	}
	return out, nil
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
