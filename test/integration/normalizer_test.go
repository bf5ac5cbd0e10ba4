package integration

import (
	"context"
	"path/filepath"
	"testing"

	"santdir/internal/config"
	"santdir/internal/docstore"
	"santdir/internal/logger"
	"santdir/internal/models"
	"santdir/internal/normalizer"
)

func openFixtureStore(t *testing.T) *docstore.FileStore {
	t.Helper()

	cfg := &config.StoreConfig{
		FixturePath: filepath.Join("..", "fixtures", "directory.json"),
	}

	store, err := docstore.OpenFile(cfg, logger.NewLogger("error", "text"))
	if err != nil {
		t.Fatalf("Failed to open fixture store: %v", err)
	}

	return store
}

func assembleSaints(t *testing.T, store *docstore.FileStore) map[string]models.Saint {
	t.Helper()

	docs, err := store.Saints(context.Background())
	if err != nil {
		t.Fatalf("Saints failed: %v", err)
	}

	saints := make(map[string]models.Saint, len(docs))
	for _, doc := range docs {
		saints[doc.ID] = normalizer.AssembleSaint(doc.ID, doc.Fields)
	}

	return saints
}

func assembleEvents(t *testing.T, store *docstore.FileStore) map[string]models.Event {
	t.Helper()

	docs, err := store.Events(context.Background())
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}

	events := make(map[string]models.Event, len(docs))
	for _, doc := range docs {
		events[doc.ID] = normalizer.AssembleEvent(doc.ID, doc.Fields)
	}

	return events
}

func TestFixture_SaintEncodings(t *testing.T) {
	saints := assembleSaints(t, openFixtureStore(t))

	if len(saints) != 4 {
		t.Fatalf("Expected 4 saints, got %d", len(saints))
	}

	// Display-formatted coordinate string.
	jaipur := saints["saint-jaipur"]
	if jaipur.Coordinates == nil {
		t.Fatal("saint-jaipur coordinates absent")
	}

	if jaipur.Coordinates.Latitude != 26.9 || jaipur.Coordinates.Longitude != 75.8 {
		t.Errorf("saint-jaipur coordinates = %+v, want {26.9 75.8}", *jaipur.Coordinates)
	}

	if jaipur.Guru != "saint-vrindavan" {
		t.Errorf("saint-jaipur guru = %q, want saint-vrindavan", jaipur.Guru)
	}

	if jaipur.Gender != models.GenderMale {
		t.Errorf("saint-jaipur gender = %q, want male", jaipur.Gender)
	}

	if jaipur.Sampradaya != "sri" {
		t.Errorf("saint-jaipur sampradaya = %q, want sri", jaipur.Sampradaya)
	}

	if jaipur.DateOfBirth.IsZero() {
		t.Error("saint-jaipur dateOfBirth absent, want seconds map parsed")
	}

	// Abbreviated key-alias object coordinate.
	vrindavan := saints["saint-vrindavan"]
	if vrindavan.Coordinates == nil || vrindavan.Coordinates.Latitude != 27.58 {
		t.Errorf("saint-vrindavan coordinates = %v, want lat 27.58", vrindavan.Coordinates)
	}

	// Bare comma pair, all other fields defaulted.
	khajuraho := saints["saint-khajuraho"]
	if khajuraho.Coordinates == nil {
		t.Fatal("saint-khajuraho coordinates absent")
	}

	if khajuraho.Coordinates.Latitude != 24.8 || khajuraho.Coordinates.Longitude != 80.0 {
		t.Errorf("saint-khajuraho coordinates = %+v, want {24.8 80}", *khajuraho.Coordinates)
	}

	if khajuraho.About != "" {
		t.Errorf("saint-khajuraho about = %q, want default empty", khajuraho.About)
	}

	// No coordinate fields at all.
	if saints["saint-wandering"].Coordinates != nil {
		t.Error("saint-wandering coordinates present, want nil")
	}
}

func TestFixture_EventEncodings(t *testing.T) {
	events := assembleEvents(t, openFixtureStore(t))

	katha := events["event-katha"]
	bhandara := events["event-bhandara"]

	// Ten-digit seconds and thirteen-digit millis encode the same instant.
	if katha.ScheduledAt.UnixMilli() != bhandara.ScheduledAt.UnixMilli() {
		t.Errorf("Schedules disagree: katha=%d bhandara=%d",
			katha.ScheduledAt.UnixMilli(), bhandara.ScheduledAt.UnixMilli())
	}

	// Path-object and path-string references both reduce to bare ids.
	if katha.SaintID != "saint-jaipur" {
		t.Errorf("event-katha saintId = %q, want saint-jaipur", katha.SaintID)
	}

	if bhandara.SaintID != "saint-vrindavan" {
		t.Errorf("event-bhandara saintId = %q, want saint-vrindavan", bhandara.SaintID)
	}

	// Bracketed display string coordinate.
	if bhandara.Coordinates == nil || bhandara.Coordinates.Longitude != 77.70 {
		t.Errorf("event-bhandara coordinates = %v, want lng 77.7", bhandara.Coordinates)
	}

	// Type normalizes to lower case.
	if katha.Type != "katha" {
		t.Errorf("event-katha type = %q, want katha", katha.Type)
	}

	if events["event-online"].Coordinates != nil {
		t.Error("event-online coordinates present, want nil")
	}
}

func TestFixture_ProfileAssembly(t *testing.T) {
	store := openFixtureStore(t)

	doc, err := store.Profile(context.Background(), "profile-asha")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	profile := normalizer.AssembleProfile(doc.ID, doc.Fields)

	if profile.Email != "asha@example.org" {
		t.Errorf("Email = %q, want lower-cased asha@example.org", profile.Email)
	}

	if profile.JoinedAt.IsZero() {
		t.Error("JoinedAt absent, want ten-digit epoch parsed")
	}
}
