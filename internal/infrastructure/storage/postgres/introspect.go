package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"medstock/internal/core/apperror"
	"medstock/internal/domain/schema"
	"medstock/pkg/logger"
)

// Introspector discovers which of the known tables and columns the
// connected database carries. Deployments run different schema
// revisions; the engines consult the result before touching a column.
type Introspector struct {
	db      Querier
	builder squirrel.StatementBuilderType
}

func NewIntrospector(db Querier) *Introspector {
	return &Introspector{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var knownTables = []string{
	schema.TableStandardQty,
	schema.TableStockData,
	schema.TableTransactions,
	schema.TableItemsList,
	schema.TableScenarios,
	schema.TableProjectDetails,
}

// Introspect reads information_schema once and builds the capability
// descriptor the repositories gate their queries on.
func (i *Introspector) Introspect(ctx context.Context) (schema.Database, error) {
	q := i.builder.
		Select("table_name", "column_name").
		From("information_schema.columns").
		Where(squirrel.Eq{
			"table_schema": "public",
			"table_name":   knownTables,
		}).
		OrderBy("table_name", "ordinal_position")

	sql, args, err := q.ToSql()
	if err != nil {
		return schema.Database{}, apperror.NewInternal(err)
	}

	var rows []struct {
		TableName  string `db:"table_name"`
		ColumnName string `db:"column_name"`
	}
	if err := pgxscan.Select(ctx, i.db, &rows, sql, args...); err != nil {
		return schema.Database{}, apperror.NewConnectionFailure(err)
	}

	byTable := make(map[string][]string)
	for _, r := range rows {
		byTable[r.TableName] = append(byTable[r.TableName], r.ColumnName)
	}
	tables := make([]schema.Table, 0, len(byTable))
	for name, cols := range byTable {
		tables = append(tables, schema.NewTable(name, cols))
	}

	logger.Debug(ctx, "schema introspected", "tables", len(tables))
	return schema.NewDatabase(tables), nil
}
