// Package loss_repo provides the PostgreSQL reader for loss
// transactions in the stock register.
package loss_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"medstock/internal/core/apperror"
	"medstock/internal/domain/losses"
	"medstock/internal/domain/schema"
	"medstock/internal/infrastructure/storage/postgres"
)

// LossRepo implements losses.Repository.
type LossRepo struct {
	db     postgres.Querier
	schema schema.Database
}

func New(db postgres.Querier, sc schema.Database) *LossRepo {
	return &LossRepo{db: db, schema: sc}
}

// Builder returns a squirrel builder with PostgreSQL placeholders.
func (r *LossRepo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// LossTransactions reads the outbound loss movements matching the
// filter. Scenario, kit, module, category, document and date filters
// run in SQL; type and item-text filters need the classifier and stay
// with the service.
func (r *LossRepo) LossTransactions(ctx context.Context, f losses.Filter) ([]losses.TransactionRow, error) {
	q, err := r.transactionsQuery(f)
	if err != nil {
		return nil, err
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("build loss transactions: %w", err))
	}

	var rows []losses.TransactionRow
	if err := pgxscan.Select(ctx, r.db, &rows, sql, args...); err != nil {
		return nil, apperror.NewDatabase("loss transactions", err)
	}
	return rows, nil
}

func (r *LossRepo) transactionsQuery(f losses.Filter) (squirrel.SelectBuilder, error) {
	t := r.schema.Table(schema.TableTransactions)
	if !t.HasAll("code", "out_type", "qty_out", "date") {
		return squirrel.SelectBuilder{}, apperror.NewMissingSchema(schema.TableTransactions,
			"code", "out_type", "qty_out", "date")
	}

	// Side columns missing from this schema revision read as NULL.
	col := func(name string) string {
		if t.Has(name) {
			return name
		}
		return "NULL AS " + name
	}

	q := r.Builder().
		Select(
			"COALESCE(date, '') AS date",
			"COALESCE(code, '') AS code",
			"COALESCE(out_type, '') AS out_type",
			"qty_out",
			col("scenario"),
			col("kit"),
			col("module"),
			col("expiry_date"),
			col("document_number"),
			col("remarks"),
		).
		From(schema.TableTransactions).
		Where(categoryPredicate(f.Category))

	if active(f.Scenario) && t.Has("scenario") {
		q = q.Where(squirrel.Eq{"scenario": f.Scenario})
	}
	if active(f.Kit) && t.Has("kit") {
		q = q.Where(squirrel.Eq{"kit": f.Kit})
	}
	if active(f.Module) && t.Has("module") {
		q = q.Where(squirrel.Eq{"module": f.Module})
	}
	if f.DocSearch != "" && t.Has("document_number") {
		q = q.Where(squirrel.ILike{"document_number": "%" + f.DocSearch + "%"})
	}
	if f.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": f.DateFrom.Format("2006-01-02")})
	}
	if f.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": f.DateTo.Format("2006-01-02")})
	}

	return q.OrderBy("date", "code"), nil
}

// categoryPredicate restricts the fetch to loss categories, or to one
// selected category when the filter names a valid one.
func categoryPredicate(category string) squirrel.Sqlizer {
	if active(category) && losses.IsLossCategory(category) {
		return squirrel.Eq{"out_type": category}
	}
	return squirrel.Eq{"out_type": losses.Categories()}
}

func active(v string) bool {
	return v != "" && v != "All" && v != "all"
}
