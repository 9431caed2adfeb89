// Package settings_repo reads the stored project configuration.
package settings_repo

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"medstock/internal/core/apperror"
	"medstock/internal/core/types"
	"medstock/internal/domain/schema"
	"medstock/internal/domain/settings"
	"medstock/internal/infrastructure/storage/postgres"
	"medstock/pkg/logger"
)

// SettingsRepo implements settings.Repository.
type SettingsRepo struct {
	db     postgres.Querier
	schema schema.Database
}

func New(db postgres.Querier, sc schema.Database) *SettingsRepo {
	return &SettingsRepo{db: db, schema: sc}
}

// Load reads the project details row. A store without the table or
// without a row yields a zero project so reporting still works; the
// month parameters come back clamped.
func (r *SettingsRepo) Load(ctx context.Context) (settings.Project, error) {
	t := r.schema.Table(schema.TableProjectDetails)
	if !t.Exists() {
		logger.Debug(ctx, "project details table absent, using defaults")
		return settings.Project{}, nil
	}

	col := func(name string) string {
		if t.Has(name) {
			return name
		}
		return "NULL AS " + name
	}
	q := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select(
			col("project_name"),
			col("project_code"),
			col("lead_time_months"),
			col("cover_period_months"),
			col("buffer_months"),
		).
		From(schema.TableProjectDetails).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return settings.Project{}, apperror.NewInternal(err)
	}

	var rows []struct {
		ProjectName       any `db:"project_name"`
		ProjectCode       any `db:"project_code"`
		LeadTimeMonths    any `db:"lead_time_months"`
		CoverPeriodMonths any `db:"cover_period_months"`
		BufferMonths      any `db:"buffer_months"`
	}
	if err := pgxscan.Select(ctx, r.db, &rows, sql, args...); err != nil {
		return settings.Project{}, apperror.NewDatabase("project details", err)
	}
	if len(rows) == 0 {
		return settings.Project{}, nil
	}

	p := settings.Project{
		Name:         types.CoerceString(rows[0].ProjectName),
		Code:         types.CoerceString(rows[0].ProjectCode),
		LeadMonths:   types.CoerceInt(rows[0].LeadTimeMonths),
		CoverMonths:  types.CoerceInt(rows[0].CoverPeriodMonths),
		BufferMonths: types.CoerceInt(rows[0].BufferMonths),
	}
	return p.Normalize(), nil
}
