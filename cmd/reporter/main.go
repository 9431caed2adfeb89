// Package main is the medstock reporting CLI: it connects to the
// project database, rebuilds the order-needs projection and the loss
// report, prints both and optionally snapshots the store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"medstock/internal/core/dateutil"
	"medstock/internal/domain/export"
	"medstock/internal/domain/losses"
	"medstock/internal/domain/order"
	"medstock/internal/infrastructure/storage/postgres"
	"medstock/internal/infrastructure/storage/postgres/catalog_repo"
	"medstock/internal/infrastructure/storage/postgres/loss_repo"
	"medstock/internal/infrastructure/storage/postgres/order_repo"
	"medstock/internal/infrastructure/storage/postgres/settings_repo"
	"medstock/pkg/logger"
)

func main() {
	var (
		kit         = flag.String("kit", "", "restrict to one kit (empty or All for no filter)")
		module      = flag.String("module", "", "restrict to one module")
		itemType    = flag.String("type", "", "restrict to Kit, Module or Item")
		itemSearch  = flag.String("item", "", "free-text item search (code or description)")
		scenario    = flag.String("scenario", "", "loss report scenario filter")
		category    = flag.String("category", "", "loss report category filter")
		docSearch   = flag.String("document", "", "loss report document search")
		dateFrom    = flag.String("from", "", "loss report start date")
		dateTo      = flag.String("to", "", "loss report end date")
		report      = flag.String("report", "order", "report to run: order, losses or both")
		snapshotDir = flag.String("snapshot", "", "write a table snapshot into this directory and exit")
	)
	flag.Parse()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)
	log.Info("starting medstock reporter")

	dsn := mustEnv("DATABASE_URL")
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	db, err := postgres.NewIntrospector(pool).Introspect(ctx)
	if err != nil {
		log.Fatalw("failed to introspect schema", "error", err)
	}

	if *snapshotDir != "" {
		path, err := postgres.NewSnapshotter(pool).SnapshotToFile(ctx, db, *snapshotDir)
		if err != nil {
			log.Fatalw("snapshot failed", "error", err)
		}
		fmt.Println(path)
		return
	}

	settingsRepo := settings_repo.New(pool, db)
	project, err := settingsRepo.Load(ctx)
	if err != nil {
		log.Warnw("project details unavailable, using defaults", "error", err)
	}

	catalog := catalog_repo.New(pool, db, getEnv("MEDSTOCK_LANGUAGE", "en"))
	writer := export.NewTextWriter(os.Stdout)
	meta := export.ReportMeta{Project: project, GeneratedAt: nowUTC()}

	runOrder := *report == "order" || *report == "both"
	runLosses := *report == "losses" || *report == "both"
	if !runOrder && !runLosses {
		log.Fatalw("unknown report", "report", *report)
	}

	if runOrder {
		svc := order.NewService(order_repo.New(pool, db), catalog)
		filters := order.Filters{
			Kit:          *kit,
			Module:       *module,
			Type:         *itemType,
			ItemSearch:   *itemSearch,
			LeadMonths:   project.LeadMonths,
			CoverMonths:  project.CoverMonths,
			BufferMonths: project.BufferMonths,
		}
		rows, err := svc.FetchOrderRows(ctx, filters)
		if err != nil {
			log.Fatalw("order refresh failed", "error", err)
		}
		meta.Filters = reportFilters(map[string]string{
			"Kit": *kit, "Module": *module, "Type": *itemType, "Item": *itemSearch,
		})
		if err := writer.WriteOrderReport(ctx, meta, rows, order.SummarizeTotals(rows)); err != nil {
			log.Fatalw("failed to write order report", "error", err)
		}
	}

	if runLosses {
		svc := losses.NewService(loss_repo.New(pool, db), catalog)
		filter := losses.Filter{
			Scenario:   *scenario,
			Kit:        *kit,
			Module:     *module,
			Type:       *itemType,
			Category:   *category,
			ItemSearch: *itemSearch,
			DocSearch:  *docSearch,
		}
		if from, ok := dateutil.ParseUserDate(*dateFrom, dateutil.RoleFrom); ok {
			filter.DateFrom = &from
		}
		if to, ok := dateutil.ParseUserDate(*dateTo, dateutil.RoleTo); ok {
			clamped := dateutil.ClampToToday(to, nowUTC())
			filter.DateTo = &clamped
		}
		records, err := svc.Aggregate(ctx, filter)
		if err != nil {
			log.Fatalw("loss aggregation failed", "error", err)
		}
		meta.Filters = reportFilters(map[string]string{
			"Scenario": *scenario, "Category": *category, "Document": *docSearch,
			"From": *dateFrom, "To": *dateTo,
		})
		if err := writer.WriteLossReport(ctx, meta, records); err != nil {
			log.Fatalw("failed to write loss report", "error", err)
		}
	}

	postgres.LogPoolStats(ctx, pool.Pool)
}

// reportFilters drops blank filter values from the report header.
func reportFilters(given map[string]string) map[string]string {
	out := make(map[string]string, len(given))
	for k, v := range given {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}
