package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"santdir/internal/config"
	"santdir/internal/logger"
	"santdir/pkg/fixture"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

const userAgent = "santdir/1.0"

// maxExportBytes caps how much of a fixture export is read (16 MiB).
const maxExportBytes = 16 << 20

// HTTPStore serves directory documents from a fixture-shaped JSON export
// fetched over HTTP. The export is fetched once and cached for the life
// of the store.
type HTTPStore struct {
	endpoint string
	client   *http.Client
	retry    *config.RetryPolicy
	logger   *logger.Logger

	cached *FileStore
}

// NewHTTPStore creates a store for the configured export endpoint. The
// first read triggers the fetch.
func NewHTTPStore(cfg *config.StoreConfig, log *logger.Logger) *HTTPStore {
	retry := cfg.Retry

	return &HTTPStore{
		endpoint: cfg.Endpoint,
		client: &http.Client{
			Timeout: retry.GetTimeout(),
		},
		retry:  &retry,
		logger: log,
	}
}

// Saints returns every raw saint document in the export.
func (s *HTTPStore) Saints(ctx context.Context) ([]Document, error) {
	store, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	return store.Saints(ctx)
}

// Events returns every raw event document in the export.
func (s *HTTPStore) Events(ctx context.Context) ([]Document, error) {
	store, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	return store.Events(ctx)
}

// Profile returns the raw sevak profile with the given id.
func (s *HTTPStore) Profile(ctx context.Context, id string) (Document, error) {
	store, err := s.load(ctx)
	if err != nil {
		return Document{}, err
	}

	return store.Profile(ctx, id)
}

// SaveProfile is not supported: the export endpoint is read-only.
func (s *HTTPStore) SaveProfile(_ context.Context, _ Document) (string, error) {
	return "", errors.New("http store is read-only")
}

// Close drops the cached export.
func (s *HTTPStore) Close(_ context.Context) error {
	s.cached = nil

	return nil
}

func (s *HTTPStore) load(ctx context.Context) (*FileStore, error) {
	if s.cached != nil {
		return s.cached, nil
	}

	body, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	var f fixture.File
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, fmt.Errorf("failed to parse export JSON: %w", err)
	}

	saints, events, profiles := f.Count()
	s.logger.Info("fetched export", "endpoint", s.endpoint,
		"saints", saints, "events", events, "profiles", profiles)

	s.cached = NewFileStore(&f, s.logger)

	return s.cached, nil
}

// fetch retrieves the export with the configured retry policy.
func (s *HTTPStore) fetch(ctx context.Context) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= s.retry.MaxAttempts; attempt++ {
		if attempt > 1 {
			delay := s.retry.GetRetryDelay(attempt)
			if delay > 0 {
				select {
				case <-time.After(delay):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed (attempt %d/%d): %w", attempt, s.retry.MaxAttempts, err)

			continue
		}

		body, err := readBody(resp)
		if err != nil {
			lastErr = err

			if !isRetryableStatus(resp.StatusCode) {
				break
			}

			continue
		}

		return body, nil
	}

	return nil, lastErr
}

func readBody(resp *http.Response) ([]byte, error) {
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxExportBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

// isRetryableStatus reports whether a status code is worth retrying.
func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}

	return false
}
