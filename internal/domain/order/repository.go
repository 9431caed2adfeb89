package order

import (
	"context"
	"time"
)

// Repository fetches the per-source aggregates the order engine merges.
// Each quantity fetcher returns a map keyed by item code; a missing
// code simply contributes zero. Implementations report schema gaps as
// apperror MISSING_SCHEMA and driver failures as CONNECTION_FAILURE;
// the service decides the degradation policy.
type Repository interface {
	// StandardQuantities sums standing (target) quantities per code.
	StandardQuantities(ctx context.Context, f SourceFilter) (map[string]int, error)

	// CurrentStock sums on-hand quantities per code.
	CurrentStock(ctx context.Context, f SourceFilter) (map[string]int, error)

	// ExpiringQuantities sums on-hand quantities of lots expiring on or
	// before horizonEnd, per code.
	ExpiringQuantities(ctx context.Context, f SourceFilter, horizonEnd time.Time) (map[string]int, error)

	// LoanBalances nets loan movements per code: outbound loan
	// categories add, inbound return categories subtract. Balances may
	// be negative.
	LoanBalances(ctx context.Context, f SourceFilter) (map[string]int, error)

	// CommercialData loads pack and pricing metadata for the given
	// codes. Codes without catalog entries are absent from the result.
	CommercialData(ctx context.Context, codes []string) (map[string]Commercial, error)
}
