// Package main provides the directory command: fetch, normalize, filter,
// and list saints or events from the configured document store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"santdir/internal/config"
	"santdir/internal/directory"
	"santdir/internal/docstore"
	"santdir/internal/formatter"
	"santdir/internal/logger"
	"santdir/internal/models"
	"santdir/internal/normalizer"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to YAML configuration file")
	kind := flag.String("kind", "saints", "Record kind to list: saints or events")
	near := flag.String("near", "", "Origin position as 'lat,lng' (enables distance sorting)")
	radius := flag.Float64("radius", 0, "Maximum distance in km (0 = no limit)")
	query := flag.String("query", "", "Free-text search filter")
	limit := flag.Int("limit", 0, "Maximum rows to print (0 = config default)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		printUsage()
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format)

	if *kind != "saints" && *kind != "events" {
		log.Error("unknown -kind, want saints or events", "kind", *kind)
		os.Exit(1)
	}

	// The origin string goes through the same coordinate normalizer the
	// store documents do, so "26.9, 75.8" and "26.9° N 75.8° E" both work.
	var origin *models.Coordinate

	if *near != "" {
		c, ok := normalizer.Coordinate(*near)
		if !ok {
			log.Error("could not parse -near position", "near", *near)
			os.Exit(1)
		}

		origin = &c
	}

	maxKm := cfg.Search.Radius()
	if *radius > 0 {
		maxKm = *radius
	}

	maxRows := cfg.Search.MaxResults
	if *limit > 0 {
		maxRows = *limit
	}

	ctx := context.Background()

	log.Info("🚀 Starting directory listing")
	log.Info("📍 Store backend", "backend", cfg.Store.Backend)

	store, err := docstore.Open(ctx, &cfg.Store, log)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Store open failed: %v", err))
		os.Exit(1)
	}

	defer func() {
		if closeErr := store.Close(ctx); closeErr != nil {
			log.Warn(fmt.Sprintf("⚠️  Store close failed: %v", closeErr))
		}
	}()

	start := time.Now()

	params := directory.Params{
		Origin:        origin,
		Query:         *query,
		MaxDistanceKm: maxKm,
	}

	var (
		table string
		total int
		shown int
	)

	switch *kind {
	case "saints":
		table, total, shown, err = listSaints(ctx, store, params, maxRows)
	case "events":
		table, total, shown, err = listEvents(ctx, store, params, maxRows)
	}

	if err != nil {
		log.Error(fmt.Sprintf("❌ Fetch failed: %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ %d of %d records matched in %v", shown, total, time.Since(start)))
	fmt.Print(table)
}

func listSaints(ctx context.Context, store docstore.Store, params directory.Params, maxRows int) (string, int, int, error) {
	docs, err := store.Saints(ctx)
	if err != nil {
		return "", 0, 0, err
	}

	saints := make([]models.Saint, 0, len(docs))
	for _, doc := range docs {
		saints = append(saints, normalizer.AssembleSaint(doc.ID, doc.Fields))
	}

	rows := directory.FilterSort(directory.Merge(saints), params)
	shown := clip(len(rows), maxRows)

	return formatter.SaintTable(rows[:shown]), len(docs), shown, nil
}

func listEvents(ctx context.Context, store docstore.Store, params directory.Params, maxRows int) (string, int, int, error) {
	docs, err := store.Events(ctx)
	if err != nil {
		return "", 0, 0, err
	}

	events := make([]models.Event, 0, len(docs))
	for _, doc := range docs {
		events = append(events, normalizer.AssembleEvent(doc.ID, doc.Fields))
	}

	rows := directory.FilterSort(directory.Merge(events), params)
	shown := clip(len(rows), maxRows)

	return formatter.EventTable(rows[:shown]), len(docs), shown, nil
}

func clip(n, limit int) int {
	if limit > 0 && n > limit {
		return limit
	}

	return n
}

func printUsage() {
	fmt.Println("Usage: directory -config <config.yaml> [-kind saints|events] [-near lat,lng] [-radius km] [-query text] [-limit n]")
	flag.PrintDefaults()
}
