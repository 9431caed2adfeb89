package order_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstock/internal/core/apperror"
	"medstock/internal/domain/order"
	"medstock/internal/domain/schema"
)

func fullSchema() schema.Database {
	return schema.NewDatabase([]schema.Table{
		schema.NewTable(schema.TableStandardQty, []string{"code", "std_qty", "kit", "module"}),
		schema.NewTable(schema.TableStockData, []string{"code", "final_qty", "exp_date", "kit_number", "module_number"}),
		schema.NewTable(schema.TableTransactions, []string{"code", "qty_in", "qty_out", "in_type", "out_type", "kit", "module"}),
		schema.NewTable(schema.TableItemsList, []string{"code", "pack", "price_per_pack_euros", "weight_per_pack_kg", "volume_per_pack_dm3", "account_code"}),
	})
}

func TestStandardQtyQuery_NoScope(t *testing.T) {
	repo := New(nil, fullSchema())

	q, err := repo.standardQtyQuery(order.SourceFilter{})
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT code, std_qty AS qty FROM std_qty_helper", sql)
	assert.Empty(t, args)
}

func TestStandardQtyQuery_KitAndModuleScope(t *testing.T) {
	repo := New(nil, fullSchema())

	q, err := repo.standardQtyQuery(order.SourceFilter{Kit: "KIT A", Module: "MOD 1"})
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT code, std_qty AS qty FROM std_qty_helper WHERE (kit = $1 AND module = $2)", sql)
	assert.Equal(t, []any{"KIT A", "MOD 1"}, args)
}

func TestStandardQtyQuery_AllBypassesScope(t *testing.T) {
	repo := New(nil, fullSchema())

	q, err := repo.standardQtyQuery(order.SourceFilter{Kit: "All", Module: "  "})
	require.NoError(t, err)

	sql, _, err := q.ToSql()
	require.NoError(t, err)
	assert.NotContains(t, sql, "WHERE")
}

func TestStandardQtyQuery_ScopeColumnAbsentIsDropped(t *testing.T) {
	sc := schema.NewDatabase([]schema.Table{
		schema.NewTable(schema.TableStandardQty, []string{"code", "std_qty"}),
	})
	repo := New(nil, sc)

	q, err := repo.standardQtyQuery(order.SourceFilter{Kit: "KIT A"})
	require.NoError(t, err)

	sql, _, err := q.ToSql()
	require.NoError(t, err)
	assert.NotContains(t, sql, "kit")
}

func TestStandardQtyQuery_MissingTable(t *testing.T) {
	repo := New(nil, schema.NewDatabase(nil))

	_, err := repo.standardQtyQuery(order.SourceFilter{})
	require.Error(t, err)
	assert.True(t, apperror.IsMissingSchema(err))
}

func TestStockQuery_UniqueIDFallback(t *testing.T) {
	sc := schema.NewDatabase([]schema.Table{
		schema.NewTable(schema.TableStockData, []string{"unique_id", "final_qty"}),
	})
	repo := New(nil, sc)

	q, byUniqueID, err := repo.stockQuery(order.SourceFilter{}, nil)
	require.NoError(t, err)
	assert.True(t, byUniqueID)

	sql, _, err := q.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT unique_id AS code, final_qty AS qty FROM stock_data WHERE (final_qty IS NOT NULL)", sql)
}

// A code whose only stock rows carry NULL quantities must not enter
// the code union, so the null guard is part of every stock select.
func TestStockQuery_ExcludesNullQuantities(t *testing.T) {
	repo := New(nil, fullSchema())

	q, _, err := repo.stockQuery(order.SourceFilter{}, nil)
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT code, final_qty AS qty FROM stock_data WHERE (final_qty IS NOT NULL)", sql)
	assert.Empty(t, args)

	q, _, err = repo.stockQuery(order.SourceFilter{}, []string{"exp_date"})
	require.NoError(t, err)
	sql, _, err = q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "final_qty IS NOT NULL", "expiring fetch shares the guard")
}

func TestStockQuery_ScopeUsesRegisterColumns(t *testing.T) {
	repo := New(nil, fullSchema())

	q, byUniqueID, err := repo.stockQuery(order.SourceFilter{Kit: "KIT A"}, nil)
	require.NoError(t, err)
	assert.False(t, byUniqueID)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT code, final_qty AS qty FROM stock_data WHERE (final_qty IS NOT NULL AND kit_number = $1)", sql)
	assert.Equal(t, []any{"KIT A"}, args)
}

func TestLoanQuery_CategoriesOnly(t *testing.T) {
	repo := New(nil, fullSchema())

	q, err := repo.loanQuery(order.SourceFilter{})
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT code, qty_in, qty_out, in_type, out_type FROM stock_transactions "+
			"WHERE ((out_type IN ($1,$2) OR in_type IN ($3,$4)))",
		sql)
	assert.Equal(t, []any{"Loan", "Return of Borrowing", "In Borrowing", "In Return of Loan"}, args)
}

// The kit and module filters must conjoin against the whole loan
// category disjunction. A naive WHERE chain that interleaves OR terms
// lets scoped queries return non-loan movements.
func TestLoanQuery_ScopeBindsOutsideCategoryDisjunction(t *testing.T) {
	repo := New(nil, fullSchema())

	q, err := repo.loanQuery(order.SourceFilter{Kit: "KIT A", Module: "MOD 1"})
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT code, qty_in, qty_out, in_type, out_type FROM stock_transactions "+
			"WHERE ((out_type IN ($1,$2) OR in_type IN ($3,$4)) AND kit = $5 AND module = $6)",
		sql)
	assert.Equal(t, []any{"Loan", "Return of Borrowing", "In Borrowing", "In Return of Loan", "KIT A", "MOD 1"}, args)
}

func TestLoanQuery_MatchEverythingScopeEqualsNoScope(t *testing.T) {
	repo := New(nil, fullSchema())

	unscoped, err := repo.loanQuery(order.SourceFilter{})
	require.NoError(t, err)
	matchAll, err := repo.loanQuery(order.SourceFilter{Kit: "All", Module: "all"})
	require.NoError(t, err)

	sqlA, argsA, err := unscoped.ToSql()
	require.NoError(t, err)
	sqlB, argsB, err := matchAll.ToSql()
	require.NoError(t, err)
	assert.Equal(t, sqlA, sqlB)
	assert.Equal(t, argsA, argsB)
}

func TestLoanQuery_MissingColumns(t *testing.T) {
	sc := schema.NewDatabase([]schema.Table{
		schema.NewTable(schema.TableTransactions, []string{"code", "qty_out"}),
	})
	repo := New(nil, sc)

	_, err := repo.loanQuery(order.SourceFilter{})
	require.Error(t, err)
	assert.True(t, apperror.IsMissingSchema(err))
}
