// Package order_repo provides the PostgreSQL implementation of the
// order engine's source fetchers. Quantities are read raw and coerced
// in Go: field databases accumulate text and NULL in numeric columns,
// and a junk value must cost one value, not the whole fetch.
package order_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"medstock/internal/core/apperror"
	"medstock/internal/core/types"
	"medstock/internal/domain/order"
	"medstock/internal/domain/schema"
	"medstock/internal/infrastructure/storage/postgres"
)

// OrderRepo implements order.Repository.
type OrderRepo struct {
	db     postgres.Querier
	schema schema.Database
}

func New(db postgres.Querier, sc schema.Database) *OrderRepo {
	return &OrderRepo{db: db, schema: sc}
}

// Builder returns a squirrel builder with PostgreSQL placeholders.
func (r *OrderRepo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// scopeConjuncts translates an active kit/module scope into WHERE
// conjuncts, skipping columns this schema revision does not carry.
func scopeConjuncts(t schema.Table, f order.SourceFilter, kitCol, moduleCol string) []squirrel.Sqlizer {
	var conj []squirrel.Sqlizer
	if f.KitActive() && t.Has(kitCol) {
		conj = append(conj, squirrel.Eq{kitCol: f.Kit})
	}
	if f.ModuleActive() && t.Has(moduleCol) {
		conj = append(conj, squirrel.Eq{moduleCol: f.Module})
	}
	return conj
}

// andWhere combines a base predicate with scope conjuncts. The base
// stays a single conjunct so scope filters can never widen it.
func andWhere(q squirrel.SelectBuilder, base squirrel.Sqlizer, conj []squirrel.Sqlizer) squirrel.SelectBuilder {
	all := make(squirrel.And, 0, len(conj)+1)
	if base != nil {
		all = append(all, base)
	}
	all = append(all, conj...)
	if len(all) == 0 {
		return q
	}
	return q.Where(all)
}

func (r *OrderRepo) selectRaw(ctx context.Context, q squirrel.SelectBuilder, dest any, op string) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("build %s: %w", op, err))
	}
	if err := pgxscan.Select(ctx, r.db, dest, sql, args...); err != nil {
		return apperror.NewDatabase(op, err)
	}
	return nil
}

// qtyRow is a raw (code, quantity) pair before coercion.
type qtyRow struct {
	Code *string `db:"code"`
	Qty  any     `db:"qty"`
}

// foldQty sums coerced quantities per code, dropping rows without one.
func foldQty(rows []qtyRow) map[string]int {
	out := make(map[string]int, len(rows))
	for i := range rows {
		if rows[i].Code == nil || *rows[i].Code == "" {
			continue
		}
		out[*rows[i].Code] += types.CoerceInt(rows[i].Qty)
	}
	return out
}

// foldQtyByUniqueID is foldQty for registers that key stock by the
// composite unique identifier instead of a plain code column.
func foldQtyByUniqueID(rows []qtyRow) map[string]int {
	out := make(map[string]int, len(rows))
	for i := range rows {
		if rows[i].Code == nil {
			continue
		}
		code := order.CodeFromUniqueID(*rows[i].Code)
		if code == "" {
			continue
		}
		out[code] += types.CoerceInt(rows[i].Qty)
	}
	return out
}
