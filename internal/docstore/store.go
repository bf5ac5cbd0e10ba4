// Package docstore provides the document store collaborators that feed
// raw directory documents to the normalizer. Three backends share one
// interface: the live Mongo database, a local fixture file, and an HTTP
// fixture export.
package docstore

import (
	"context"
	"errors"
	"fmt"

	"santdir/internal/config"
	"santdir/internal/logger"
	"santdir/internal/normalizer"
)

// Store errors.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUnknownBackend  = errors.New("unknown store backend")
)

// Document pairs a record identifier with its raw store fields. Fields is
// handed to the normalizer as-is; the store never reshapes field values
// beyond container conversion.
type Document struct {
	ID     string
	Fields normalizer.RawDocument
}

// Store is the read/write surface the directory tools need from a
// document backend.
type Store interface {
	// Saints returns every raw saint document.
	Saints(ctx context.Context) ([]Document, error)

	// Events returns every raw event document.
	Events(ctx context.Context) ([]Document, error)

	// Profile returns the raw sevak profile with the given id, or
	// ErrProfileNotFound.
	Profile(ctx context.Context, id string) (Document, error)

	// SaveProfile upserts a sevak profile document and returns its id.
	SaveProfile(ctx context.Context, doc Document) (string, error)

	// Close releases the backend connection.
	Close(ctx context.Context) error
}

// Open builds the store selected by the configuration.
func Open(ctx context.Context, cfg *config.StoreConfig, log *logger.Logger) (Store, error) {
	switch cfg.Backend {
	case config.BackendMongo:
		return OpenMongo(ctx, cfg, log)
	case config.BackendFile:
		return OpenFile(cfg, log)
	case config.BackendHTTP:
		return NewHTTPStore(cfg, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
