package docstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"santdir/internal/config"
	"santdir/internal/logger"
	"santdir/internal/normalizer"
	"santdir/pkg/fixture"
)

// FileStore serves directory documents from a fixture snapshot on disk.
// It is the offline and development backend; writes stay in memory.
type FileStore struct {
	fixture *fixture.File
	logger  *logger.Logger
}

// OpenFile loads the configured fixture file, verifying its checksum when
// the configuration asks for it.
func OpenFile(cfg *config.StoreConfig, log *logger.Logger) (*FileStore, error) {
	f, err := fixture.Load(cfg.FixturePath)
	if err != nil {
		return nil, err
	}

	if cfg.VerifyChecksum {
		if err := f.Verify(); err != nil {
			return nil, fmt.Errorf("fixture %s: %w", cfg.FixturePath, err)
		}
	}

	saints, events, profiles := f.Count()
	log.Info("loaded fixture", "path", cfg.FixturePath,
		"saints", saints, "events", events, "profiles", profiles)

	return &FileStore{fixture: f, logger: log}, nil
}

// NewFileStore wraps an already-loaded fixture.
func NewFileStore(f *fixture.File, log *logger.Logger) *FileStore {
	return &FileStore{fixture: f, logger: log}
}

// Saints returns every raw saint document in the fixture.
func (s *FileStore) Saints(_ context.Context) ([]Document, error) {
	return collectionDocuments(s.fixture.Saints), nil
}

// Events returns every raw event document in the fixture.
func (s *FileStore) Events(_ context.Context) ([]Document, error) {
	return collectionDocuments(s.fixture.Events), nil
}

// Profile returns the raw sevak profile with the given id.
func (s *FileStore) Profile(_ context.Context, id string) (Document, error) {
	fields, ok := s.fixture.Profiles[id]
	if !ok {
		return Document{}, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}

	return Document{ID: id, Fields: fields}, nil
}

// SaveProfile stores the profile in the in-memory fixture. The file on
// disk is not rewritten; seeding owns persistence.
func (s *FileStore) SaveProfile(_ context.Context, doc Document) (string, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	if s.fixture.Profiles == nil {
		s.fixture.Profiles = make(map[string]map[string]any)
	}

	s.fixture.Profiles[doc.ID] = doc.Fields

	return doc.ID, nil
}

// Close is a no-op for the file backend.
func (s *FileStore) Close(_ context.Context) error {
	return nil
}

// collectionDocuments flattens a fixture collection map into documents
// sorted nowhere in particular; callers that care about order sort after
// assembly.
func collectionDocuments(collection map[string]map[string]any) []Document {
	docs := make([]Document, 0, len(collection))

	for id, fields := range collection {
		docs = append(docs, Document{ID: id, Fields: normalizer.RawDocument(fields)})
	}

	return docs
}
