package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"santdir/internal/config"
	"santdir/pkg/fixture"
)

func httpStoreConfig(endpoint string) *config.StoreConfig {
	return &config.StoreConfig{
		Backend:  config.BackendHTTP,
		Endpoint: endpoint,
		Retry: config.RetryPolicy{
			MaxAttempts:       3,
			InitialDelayMs:    1,
			MaxDelayMs:        5,
			BackoffMultiplier: 2.0,
			TimeoutSec:        5,
		},
	}
}

func TestHTTPStore_RetryThenSucceed(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		_ = json.NewEncoder(w).Encode(sampleFixture())
	}))
	defer server.Close()

	store := NewHTTPStore(httpStoreConfig(server.URL), testLogger())

	saints, err := store.Saints(context.Background())
	if err != nil {
		t.Fatalf("Saints failed: %v", err)
	}

	if len(saints) != 2 {
		t.Errorf("Expected 2 saints, got %d", len(saints))
	}

	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
}

func TestHTTPStore_NoRetryOnClientError(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	store := NewHTTPStore(httpStoreConfig(server.URL), testLogger())

	if _, err := store.Saints(context.Background()); !errors.Is(err, ErrUnexpectedStatusCode) {
		t.Fatalf("Expected ErrUnexpectedStatusCode, got %v", err)
	}

	if attempts != 1 {
		t.Errorf("Expected 1 attempt for 404, got %d", attempts)
	}
}

func TestHTTPStore_CachesExport(t *testing.T) {
	fetches := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fetches++

		_ = json.NewEncoder(w).Encode(sampleFixture())
	}))
	defer server.Close()

	store := NewHTTPStore(httpStoreConfig(server.URL), testLogger())
	ctx := context.Background()

	if _, err := store.Saints(ctx); err != nil {
		t.Fatalf("Saints failed: %v", err)
	}

	if _, err := store.Events(ctx); err != nil {
		t.Fatalf("Events failed: %v", err)
	}

	if fetches != 1 {
		t.Errorf("Expected 1 fetch across reads, got %d", fetches)
	}
}

func TestHTTPStore_UserAgentHeader(t *testing.T) {
	var gotAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")

		_ = json.NewEncoder(w).Encode(&fixture.File{})
	}))
	defer server.Close()

	store := NewHTTPStore(httpStoreConfig(server.URL), testLogger())

	if _, err := store.Saints(context.Background()); err != nil {
		t.Fatalf("Saints failed: %v", err)
	}

	if gotAgent != userAgent {
		t.Errorf("User-Agent = %q, want %q", gotAgent, userAgent)
	}
}

func TestHTTPStore_SaveProfileReadOnly(t *testing.T) {
	store := NewHTTPStore(httpStoreConfig("http://unused"), testLogger())

	if _, err := store.SaveProfile(context.Background(), Document{ID: "x"}); err == nil {
		t.Error("Expected error from read-only SaveProfile, got nil")
	}
}
