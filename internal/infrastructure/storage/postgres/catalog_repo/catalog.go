// Package catalog_repo provides the PostgreSQL catalog reader: item
// descriptions in the configured language and the distinct value lists
// the filter pickers offer.
package catalog_repo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"medstock/internal/core/apperror"
	"medstock/internal/domain/item"
	"medstock/internal/domain/schema"
	"medstock/internal/infrastructure/storage/postgres"
	"medstock/pkg/logger"
)

// Designation language preference order. The configured language is
// consulted first, then the remaining designations, then the plain
// designation column.
var designationColumns = map[string]string{
	"en": "designation_en",
	"fr": "designation_fr",
	"sp": "designation_sp",
}

// Catalog implements item.Classifier on the items catalog table.
// Descriptions load once per process and are served from memory; a
// failed load retries on the next lookup.
type Catalog struct {
	db       postgres.Querier
	schema   schema.Database
	language string

	mu     sync.Mutex
	loaded bool
	byCode map[string]string
}

func New(db postgres.Querier, sc schema.Database, language string) *Catalog {
	if _, ok := designationColumns[language]; !ok {
		language = "en"
	}
	return &Catalog{db: db, schema: sc, language: language}
}

// Builder returns a squirrel builder with PostgreSQL placeholders.
func (c *Catalog) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Describe returns the catalog description for a code, falling back
// across languages and finally to the no-description marker.
func (c *Catalog) Describe(ctx context.Context, code string) string {
	descriptions, err := c.descriptions(ctx)
	if err != nil {
		logger.Warn(ctx, "catalog descriptions unavailable", "error", err)
		return item.NoDescription
	}
	if d, ok := descriptions[code]; ok && d != "" {
		return d
	}
	return item.NoDescription
}

// Classify resolves a code to Kit, Module or Item.
func (c *Catalog) Classify(code, description string) item.Type {
	return item.DetectType(code, description)
}

func (c *Catalog) descriptions(ctx context.Context) (map[string]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.byCode, nil
	}

	t := c.schema.Table(schema.TableItemsList)
	if !t.Has("code") {
		return nil, apperror.NewMissingSchema(schema.TableItemsList, "code")
	}

	// COALESCE across the language preference chain, skipping columns
	// this schema revision does not carry.
	chain := make([]string, 0, 5)
	appendCol := func(name string) {
		if t.Has(name) {
			chain = append(chain, fmt.Sprintf("NULLIF(%s, '')", name))
		}
	}
	appendCol(designationColumns[c.language])
	for _, lang := range []string{"en", "fr", "sp"} {
		if lang != c.language {
			appendCol(designationColumns[lang])
		}
	}
	appendCol("designation")

	descExpr := "''"
	if len(chain) > 0 {
		descExpr = "COALESCE(" + strings.Join(chain, ", ") + ", '')"
	}

	q := c.Builder().
		Select("code", descExpr+" AS description").
		From(schema.TableItemsList)
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var rows []struct {
		Code        string `db:"code"`
		Description string `db:"description"`
	}
	if err := pgxscan.Select(ctx, c.db, &rows, sql, args...); err != nil {
		return nil, apperror.NewDatabase("catalog descriptions", err)
	}

	byCode := make(map[string]string, len(rows))
	for _, r := range rows {
		if r.Code != "" {
			byCode[r.Code] = r.Description
		}
	}
	c.byCode = byCode
	c.loaded = true
	logger.Debug(ctx, "catalog descriptions loaded", "items", len(byCode))
	return c.byCode, nil
}

// Kits lists the distinct kit names known to the standard quantity
// helper, for the filter picker.
func (c *Catalog) Kits(ctx context.Context) ([]string, error) {
	return c.distinct(ctx, schema.TableStandardQty, "kit")
}

// Modules lists the distinct module names known to the standard
// quantity helper.
func (c *Catalog) Modules(ctx context.Context) ([]string, error) {
	return c.distinct(ctx, schema.TableStandardQty, "module")
}

// Scenarios lists the configured scenario names.
func (c *Catalog) Scenarios(ctx context.Context) ([]string, error) {
	return c.distinct(ctx, schema.TableScenarios, "name")
}

func (c *Catalog) distinct(ctx context.Context, table, column string) ([]string, error) {
	t := c.schema.Table(table)
	if !t.Has(column) {
		return []string{}, nil
	}

	q := c.Builder().
		Select("DISTINCT " + column + " AS value").
		From(table).
		Where(squirrel.NotEq{column: nil})
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var rows []struct {
		Value string `db:"value"`
	}
	if err := pgxscan.Select(ctx, c.db, &rows, sql, args...); err != nil {
		return nil, apperror.NewDatabase("distinct "+table+"."+column, err)
	}

	values := make([]string, 0, len(rows))
	for _, r := range rows {
		v := strings.TrimSpace(r.Value)
		if v == "" || v == "None" {
			continue
		}
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}
