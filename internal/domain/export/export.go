// Package export defines the report sink and translation collaborators
// the engines hand their results to. Concrete spreadsheet or document
// writers live outside this module; the CLI ships a plain text writer.
package export

import (
	"context"
	"time"

	"medstock/internal/domain/losses"
	"medstock/internal/domain/order"
	"medstock/internal/domain/settings"
)

// Translator resolves a UI string for the active language, falling
// back to the given default when the key is untranslated.
type Translator interface {
	T(key, fallback string) string
}

// NopTranslator always returns the fallback.
type NopTranslator struct{}

func (NopTranslator) T(_, fallback string) string { return fallback }

// ReportMeta is the header context attached to every exported report.
type ReportMeta struct {
	Project     settings.Project
	GeneratedAt time.Time
	Filters     map[string]string
}

// OrderWriter renders an order-needs projection.
type OrderWriter interface {
	WriteOrderReport(ctx context.Context, meta ReportMeta, rows []order.OrderRow, totals order.Totals) error
}

// LossWriter renders a loss aggregation.
type LossWriter interface {
	WriteLossReport(ctx context.Context, meta ReportMeta, records []losses.Record) error
}
