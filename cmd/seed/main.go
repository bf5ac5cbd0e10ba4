// Package main provides the seed command: validate a fixture snapshot and
// upsert its documents into the configured Mongo database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"santdir/internal/config"
	"santdir/internal/docstore"
	"santdir/internal/logger"
	"santdir/internal/normalizer"
	"santdir/pkg/fixture"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to YAML configuration file")
	fixturePath := flag.String("fixture", "", "Fixture file to seed from (default: store.fixture_path)")
	stamp := flag.Bool("stamp", false, "Refresh the fixture checksum before seeding and rewrite the file")
	dryRun := flag.Bool("dry-run", false, "Validate and report without writing to the database")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		printUsage()
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format)

	path := *fixturePath
	if path == "" {
		path = cfg.Store.FixturePath
	}

	if path == "" {
		log.Error("no fixture path: pass -fixture or set store.fixture_path")
		os.Exit(1)
	}

	seeder := &seeder{cfg: cfg, log: log}
	if err := seeder.run(context.Background(), path, *stamp, *dryRun); err != nil {
		log.Error(fmt.Sprintf("❌ Seeding failed: %v", err))
		os.Exit(1)
	}
}

type seeder struct {
	cfg *config.Config
	log *logger.Logger
}

// batch is one collection's worth of validated documents ready to upsert.
type batch struct {
	collection string
	docs       []docstore.Document
}

func (s *seeder) run(ctx context.Context, path string, stamp, dryRun bool) error {
	s.log.Info("🚀 Starting directory seeding")
	s.log.Info("📂 Fixture", "path", path)

	// Phase 1: load and integrity-check the fixture.
	fileCfg := config.StoreConfig{
		FixturePath:    path,
		VerifyChecksum: s.cfg.Store.VerifyChecksum && !stamp,
	}

	fileStore, err := docstore.OpenFile(&fileCfg, s.log)
	if err != nil {
		return err
	}

	if stamp {
		if err := s.stampFixture(path); err != nil {
			return err
		}
	}

	// Phase 2: assemble and validate every document before touching the
	// database; a fixture with a broken record does not half-seed.
	s.log.Info("Phase 1: Validation...")

	batches, err := s.validate(ctx, fileStore)
	if err != nil {
		return err
	}

	total := 0
	for _, b := range batches {
		total += len(b.docs)
	}

	s.log.Info(fmt.Sprintf("✅ Validated %d documents", total))

	if dryRun {
		s.log.Info("🔎 Dry run, skipping upload")

		return nil
	}

	// Phase 3: upsert into Mongo.
	s.log.Info("Phase 2: Upload...")

	store, err := docstore.OpenMongo(ctx, &s.cfg.Store, s.log)
	if err != nil {
		return err
	}

	defer func() {
		_ = store.Close(ctx)
	}()

	start := time.Now()

	written, errs := s.upload(ctx, store, batches)
	if len(errs) > 0 {
		for _, uploadErr := range errs {
			s.log.Error(fmt.Sprintf("❌ Upsert failed: %v", uploadErr))
		}

		return fmt.Errorf("%d of %d upserts failed", len(errs), total)
	}

	s.log.Info(fmt.Sprintf("✅ Seeded %d documents in %v", written, time.Since(start)))

	return nil
}

func (s *seeder) stampFixture(path string) error {
	f, err := fixture.Load(path)
	if err != nil {
		return err
	}

	if err := f.Stamp(""); err != nil {
		return err
	}

	if err := f.Save(path); err != nil {
		return err
	}

	s.log.Info("🔏 Fixture checksum refreshed", "checksum", f.Checksum)

	return nil
}

// validate assembles every fixture document through the normalizer and
// rejects records a write path must not accept. Documents without ids get
// a fresh uuid when the configuration allows it.
func (s *seeder) validate(ctx context.Context, fileStore *docstore.FileStore) ([]batch, error) {
	processor := normalizer.NewProcessor()

	saints, err := fileStore.Saints(ctx)
	if err != nil {
		return nil, err
	}

	events, err := fileStore.Events(ctx)
	if err != nil {
		return nil, err
	}

	for i := range saints {
		saints[i] = s.ensureID(saints[i])
		if _, err := processor.ProcessSaint(saints[i].ID, saints[i].Fields); err != nil {
			return nil, fmt.Errorf("saint %s: %w", saints[i].ID, err)
		}
	}

	for i := range events {
		events[i] = s.ensureID(events[i])
		if _, err := processor.ProcessEvent(events[i].ID, events[i].Fields); err != nil {
			return nil, fmt.Errorf("event %s: %w", events[i].ID, err)
		}
	}

	return []batch{
		{collection: s.cfg.Store.SaintsCollection, docs: saints},
		{collection: s.cfg.Store.EventsCollection, docs: events},
	}, nil
}

func (s *seeder) ensureID(doc docstore.Document) docstore.Document {
	if doc.ID == "" && s.cfg.Seed.AssignMissingIDs {
		doc.ID = uuid.NewString()
	}

	return doc
}

// upload upserts all batches with bounded concurrency.
func (s *seeder) upload(ctx context.Context, store *docstore.MongoStore, batches []batch) (int, []error) {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		written int
		errs    []error
	)

	sem := make(chan struct{}, s.cfg.Seed.Concurrency)

	for _, b := range batches {
		for _, doc := range b.docs {
			wg.Add(1)

			go func(collection string, doc docstore.Document) {
				defer wg.Done()

				sem <- struct{}{}
				defer func() { <-sem }()

				err := store.Upsert(ctx, collection, doc.ID, doc.Fields)

				mu.Lock()
				defer mu.Unlock()

				if err != nil {
					errs = append(errs, err)

					return
				}

				written++
			}(b.collection, doc)
		}
	}

	wg.Wait()

	return written, errs
}

func printUsage() {
	fmt.Println("Usage: seed -config <config.yaml> [-fixture file.json] [-stamp] [-dry-run]")
	flag.PrintDefaults()
}
