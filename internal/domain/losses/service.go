package losses

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"medstock/internal/core/apperror"
	"medstock/internal/core/types"
	"medstock/internal/domain/item"
	"medstock/pkg/logger"
)

var tracer = otel.Tracer("medstock/losses")

// Service aggregates loss transactions into report records.
type Service struct {
	repo       Repository
	classifier item.Classifier
}

func NewService(repo Repository, classifier item.Classifier) *Service {
	return &Service{repo: repo, classifier: classifier}
}

type groupKey struct {
	date     string
	code     string
	category string
}

type group struct {
	qty  int
	sets [6]map[string]struct{}
}

// Indices into group.sets.
const (
	setScenario = iota
	setKit
	setModule
	setExpiry
	setDocument
	setRemarks
)

// Aggregate folds the filtered loss transactions into one record per
// (date, code, category), summing quantities and collecting the
// distinct side attributes. Unlike an order refresh, a driver failure
// aborts the whole aggregation: a partial loss report would understate
// losses silently.
func (s *Service) Aggregate(ctx context.Context, f Filter) ([]Record, error) {
	ctx, span := tracer.Start(ctx, "losses.Aggregate",
		trace.WithAttributes(attribute.String("category", f.Category)))
	defer span.End()

	normalizeDateRange(&f)

	rows, err := s.repo.LossTransactions(ctx, f)
	if err != nil {
		// A register that simply is not there yet yields an empty
		// report; anything else aborts.
		if apperror.IsMissingSchema(err) {
			logger.Warn(ctx, "transaction register missing, empty loss report", "error", err)
			return []Record{}, nil
		}
		// The aggregation result is empty either way; callers that
		// tolerate the failure can still render an empty report.
		return []Record{}, fmt.Errorf("loss transactions: %w", err)
	}

	groups := make(map[groupKey]*group)
	for i := range rows {
		row := &rows[i]
		if strings.TrimSpace(row.Code) == "" || !IsLossCategory(row.Category) {
			continue
		}
		key := groupKey{date: row.Date, code: row.Code, category: row.Category}
		g := groups[key]
		if g == nil {
			g = &group{}
			groups[key] = g
		}
		// Unparsable quantities coerce to zero and contribute nothing.
		g.qty += types.CoerceInt(row.QtyOut)
		g.collect(setScenario, row.Scenario)
		g.collect(setKit, row.Kit)
		g.collect(setModule, row.Module)
		g.collect(setExpiry, row.ExpiryDate)
		g.collect(setDocument, row.Document)
		g.collect(setRemarks, row.Remarks)
	}

	search := strings.ToLower(strings.TrimSpace(f.ItemSearch))
	records := make([]Record, 0, len(groups))
	for key, g := range groups {
		desc := s.classifier.Describe(ctx, key.code)
		itemType := s.classifier.Classify(key.code, desc)
		if !itemType.Matches(f.Type) {
			continue
		}
		if search != "" {
			// Free-text search targets plain items; kits and modules
			// are browsed through their own filters.
			if itemType != item.TypeItem {
				continue
			}
			if !strings.Contains(strings.ToLower(key.code), search) &&
				!strings.Contains(strings.ToLower(desc), search) {
				continue
			}
		}
		records = append(records, Record{
			Date:        key.date,
			Code:        key.code,
			Description: desc,
			Type:        string(itemType),
			Category:    key.category,
			Quantity:    g.qty,
			Scenarios:   g.joined(setScenario),
			Kits:        g.joined(setKit),
			Modules:     g.joined(setModule),
			ExpiryDates: g.joined(setExpiry),
			Documents:   g.joined(setDocument),
			Remarks:     g.joined(setRemarks),
		})
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := &records[i], &records[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.Category < b.Category
	})

	logger.Info(ctx, "loss report aggregated",
		"transactions", len(rows),
		"records", len(records),
	)
	span.SetAttributes(attribute.Int("records", len(records)))
	return records, nil
}

// collect adds a side attribute to a set, skipping nulls, blanks and
// the "None" sentinel carried over from legacy registers.
func (g *group) collect(set int, value *string) {
	if value == nil {
		return
	}
	v := strings.TrimSpace(*value)
	if v == "" || v == "None" {
		return
	}
	if g.sets[set] == nil {
		g.sets[set] = make(map[string]struct{})
	}
	g.sets[set][v] = struct{}{}
}

func (g *group) joined(set int) string {
	if len(g.sets[set]) == 0 {
		return ""
	}
	values := make([]string, 0, len(g.sets[set]))
	for v := range g.sets[set] {
		values = append(values, v)
	}
	sort.Strings(values)
	return strings.Join(values, ", ")
}

// normalizeDateRange swaps inverted bounds so a mis-ordered range
// still selects the interval the user meant.
func normalizeDateRange(f *Filter) {
	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		f.DateFrom, f.DateTo = f.DateTo, f.DateFrom
	}
}
