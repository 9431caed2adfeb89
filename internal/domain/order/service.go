package order

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"medstock/internal/domain/item"
	"medstock/pkg/logger"
)

var tracer = otel.Tracer("medstock/order")

// Service runs order-needs refreshes. A refresh pulls each quantity
// source independently, merges them by item code, joins commercial
// metadata and recomputes every row.
type Service struct {
	repo       Repository
	classifier item.Classifier
	now        func() time.Time
}

func NewService(repo Repository, classifier item.Classifier) *Service {
	return &Service{repo: repo, classifier: classifier, now: time.Now}
}

// FetchOrderRows rebuilds the full order projection for the given
// filters. A failing source degrades to an empty contribution rather
// than aborting the refresh; only context cancellation fails the call.
// Rows are returned sorted by item code.
//
// Sources are read in independent queries with no shared transaction,
// so the merged view is not point-in-time consistent against a store
// that mutates mid-refresh.
func (s *Service) FetchOrderRows(ctx context.Context, f Filters) ([]OrderRow, error) {
	refreshID := uuid.NewString()
	ctx, span := tracer.Start(ctx, "order.FetchOrderRows",
		trace.WithAttributes(
			attribute.String("refresh_id", refreshID),
			attribute.Int("horizon_months", f.HorizonMonths()),
		))
	defer span.End()

	log := logger.FromContext(ctx).With("refresh_id", refreshID)

	src := f.Source()
	std := s.fetchSource(ctx, log, "standard_qty", func() (map[string]int, error) {
		return s.repo.StandardQuantities(ctx, src)
	})
	stock := s.fetchSource(ctx, log, "current_stock", func() (map[string]int, error) {
		return s.repo.CurrentStock(ctx, src)
	})
	expiring := map[string]int{}
	if f.HorizonMonths() > 0 {
		horizonEnd := f.HorizonEnd(s.now())
		expiring = s.fetchSource(ctx, log, "expiring", func() (map[string]int, error) {
			return s.repo.ExpiringQuantities(ctx, src, horizonEnd)
		})
	}
	loans := s.fetchSource(ctx, log, "loan_balance", func() (map[string]int, error) {
		return s.repo.LoanBalances(ctx, src)
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	codes := mergeCodes(std, stock, expiring, loans)

	commercial, err := s.repo.CommercialData(ctx, codes)
	if err != nil {
		log.Warnw("commercial data unavailable, ordering without pricing", "error", err)
		commercial = map[string]Commercial{}
	}

	search := strings.TrimSpace(f.ItemSearch)
	rows := make([]OrderRow, 0, len(codes))
	for _, code := range codes {
		desc := s.classifier.Describe(ctx, code)
		itemType := s.classifier.Classify(code, desc)
		if !itemType.Matches(f.Type) {
			continue
		}
		if search != "" {
			// Free-text search targets plain items; kits and modules
			// are browsed through their own filters.
			if itemType != item.TypeItem || !matchesSearch(code, desc, search) {
				continue
			}
		}

		c := commercial[code]
		row := OrderRow{
			Code:             code,
			Description:      desc,
			Type:             itemType,
			StandardQty:      std[code],
			CurrentStock:     stock[code],
			QtyExpiring:      expiring[code],
			LoanBalance:      loans[code],
			PackSize:         c.PackSize,
			PricePerPack:     c.PricePerPack,
			WeightPerPack:    c.WeightPerPack,
			VolumePerPackDM3: c.VolumePerPackDM3,
			AccountCode:      c.AccountCode,
		}
		Recompute(&row)
		rows = append(rows, row)
	}

	log.Infow("order projection rebuilt",
		"codes", len(codes),
		"rows", len(rows),
	)
	span.SetAttributes(attribute.Int("rows", len(rows)))
	return rows, nil
}

// fetchSource applies the degradation policy: a failed source logs a
// warning and contributes nothing, keeping the refresh alive.
func (s *Service) fetchSource(ctx context.Context, log *logger.Logger, name string, fetch func() (map[string]int, error)) map[string]int {
	m, err := fetch()
	if err != nil {
		log.Warnw("source fetch failed, treating as empty", "source", name, "error", err)
		return map[string]int{}
	}
	if m == nil {
		return map[string]int{}
	}
	return m
}

func mergeCodes(sources ...map[string]int) []string {
	seen := make(map[string]struct{})
	for _, src := range sources {
		for code := range src {
			if code == "" {
				continue
			}
			seen[code] = struct{}{}
		}
	}
	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func matchesSearch(code, desc, search string) bool {
	search = strings.ToLower(search)
	return strings.Contains(strings.ToLower(code), search) ||
		strings.Contains(strings.ToLower(desc), search)
}
