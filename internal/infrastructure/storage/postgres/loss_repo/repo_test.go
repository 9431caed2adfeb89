package loss_repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstock/internal/core/apperror"
	"medstock/internal/domain/losses"
	"medstock/internal/domain/schema"
)

func fullSchema() schema.Database {
	return schema.NewDatabase([]schema.Table{
		schema.NewTable(schema.TableTransactions, []string{
			"code", "out_type", "qty_out", "date",
			"scenario", "kit", "module", "expiry_date", "document_number", "remarks",
		}),
	})
}

func TestTransactionsQuery_DefaultsToAllLossCategories(t *testing.T) {
	repo := New(nil, fullSchema())

	q, err := repo.transactionsQuery(losses.Filter{})
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "out_type IN ($1,$2,$3,$4,$5,$6)")
	assert.Len(t, args, 6)
	assert.Contains(t, args, losses.CategoryExpired)
	assert.Contains(t, args, losses.CategoryOther)
}

func TestTransactionsQuery_SingleCategory(t *testing.T) {
	repo := New(nil, fullSchema())

	q, err := repo.transactionsQuery(losses.Filter{Category: losses.CategoryTheft})
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "out_type = $1")
	assert.Equal(t, []any{losses.CategoryTheft}, args)
}

func TestTransactionsQuery_UnknownCategoryFallsBackToAll(t *testing.T) {
	repo := New(nil, fullSchema())

	q, err := repo.transactionsQuery(losses.Filter{Category: "Distribution"})
	require.NoError(t, err)

	_, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Len(t, args, 6)
}

func TestTransactionsQuery_ScopeAndDateRange(t *testing.T) {
	repo := New(nil, fullSchema())

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	q, err := repo.transactionsQuery(losses.Filter{
		Scenario:  "Cholera Response",
		Kit:       "KIT A",
		DocSearch: "WB-20",
		DateFrom:  &from,
		DateTo:    &to,
	})
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "scenario = $7")
	assert.Contains(t, sql, "kit = $8")
	assert.NotContains(t, sql, "module =")
	assert.Contains(t, sql, "document_number ILIKE $9")
	assert.Contains(t, sql, "date >= $10")
	assert.Contains(t, sql, "date <= $11")
	assert.Contains(t, args, "%WB-20%")
	assert.Contains(t, args, "2026-03-01")
	assert.Contains(t, args, "2026-03-31")
}

func TestTransactionsQuery_MissingSideColumnsSelectNull(t *testing.T) {
	sc := schema.NewDatabase([]schema.Table{
		schema.NewTable(schema.TableTransactions, []string{"code", "out_type", "qty_out", "date"}),
	})
	repo := New(nil, sc)

	q, err := repo.transactionsQuery(losses.Filter{Scenario: "Cholera Response"})
	require.NoError(t, err)

	sql, _, err := q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "NULL AS scenario")
	assert.Contains(t, sql, "NULL AS document_number")
	assert.NotContains(t, sql, "scenario =", "filter on an absent column must be dropped")
}

func TestTransactionsQuery_MissingRegister(t *testing.T) {
	repo := New(nil, schema.NewDatabase(nil))

	_, err := repo.transactionsQuery(losses.Filter{})
	require.Error(t, err)
	assert.True(t, apperror.IsMissingSchema(err))
}
