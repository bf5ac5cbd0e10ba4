package docstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"santdir/internal/config"
	"santdir/internal/logger"
	"santdir/pkg/fixture"
)

func testLogger() *logger.Logger {
	return logger.NewLogger("error", "text")
}

func sampleFixture() *fixture.File {
	return &fixture.File{
		Saints: map[string]map[string]any{
			"saint-1": {"name": "Sant Ramesh Das", "location": "Jaipur"},
			"saint-2": {"name": "Mata Anandi Devi", "location": "Vrindavan"},
		},
		Events: map[string]map[string]any{
			"event-1": {"title": "Ram Katha", "saintId": "saint-1"},
		},
		Profiles: map[string]map[string]any{
			"profile-1": {"name": "Asha Sharma", "email": "asha@example.org"},
		},
	}
}

func writeFixture(t *testing.T, f *fixture.File) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "directory.json")
	if err := f.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	return path
}

func TestOpenFile(t *testing.T) {
	path := writeFixture(t, sampleFixture())

	store, err := OpenFile(&config.StoreConfig{FixturePath: path}, testLogger())
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}

	ctx := context.Background()

	saints, err := store.Saints(ctx)
	if err != nil {
		t.Fatalf("Saints failed: %v", err)
	}

	if len(saints) != 2 {
		t.Errorf("Expected 2 saints, got %d", len(saints))
	}

	events, err := store.Events(ctx)
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}

	if len(events) != 1 {
		t.Errorf("Expected 1 event, got %d", len(events))
	}

	if events[0].ID != "event-1" {
		t.Errorf("Event ID = %s, want event-1", events[0].ID)
	}

	if events[0].Fields["title"] != "Ram Katha" {
		t.Errorf("Event title = %v, want Ram Katha", events[0].Fields["title"])
	}
}

func TestOpenFile_ChecksumVerification(t *testing.T) {
	f := sampleFixture()
	if err := f.Stamp("v1"); err != nil {
		t.Fatalf("Stamp failed: %v", err)
	}

	// Tamper after stamping.
	f.Saints["saint-1"]["name"] = "Someone Else"
	path := writeFixture(t, f)

	cfg := &config.StoreConfig{FixturePath: path, VerifyChecksum: true}

	if _, err := OpenFile(cfg, testLogger()); !errors.Is(err, fixture.ErrChecksumMismatch) {
		t.Errorf("Expected ErrChecksumMismatch, got %v", err)
	}

	// Verification off: tampered fixture still loads.
	cfg.VerifyChecksum = false
	if _, err := OpenFile(cfg, testLogger()); err != nil {
		t.Errorf("OpenFile without verification failed: %v", err)
	}
}

func TestFileStore_Profile(t *testing.T) {
	store := NewFileStore(sampleFixture(), testLogger())
	ctx := context.Background()

	doc, err := store.Profile(ctx, "profile-1")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	if doc.Fields["email"] != "asha@example.org" {
		t.Errorf("Profile email = %v, want asha@example.org", doc.Fields["email"])
	}

	if _, err := store.Profile(ctx, "missing"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("Expected ErrProfileNotFound, got %v", err)
	}
}

func TestFileStore_SaveProfile(t *testing.T) {
	store := NewFileStore(sampleFixture(), testLogger())
	ctx := context.Background()

	id, err := store.SaveProfile(ctx, Document{
		Fields: map[string]any{"name": "Vijay Kumar", "email": "vijay@example.org"},
	})
	if err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	if id == "" {
		t.Fatal("SaveProfile returned empty id")
	}

	doc, err := store.Profile(ctx, id)
	if err != nil {
		t.Fatalf("Profile after save failed: %v", err)
	}

	if doc.Fields["name"] != "Vijay Kumar" {
		t.Errorf("Saved profile name = %v, want Vijay Kumar", doc.Fields["name"])
	}
}
