// Package fixture reads and writes the JSON snapshot files used to seed
// and serve the directory offline.
package fixture

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Fixture verification errors.
var (
	ErrNoChecksum       = errors.New("fixture has no checksum")
	ErrChecksumMismatch = errors.New("fixture checksum mismatch")
)

// File is a snapshot of the directory's raw documents, keyed by record
// identifier. The checksum covers the document payload so tampering and
// truncation are detectable before seeding.
type File struct {
	Version     string                    `json:"version,omitempty"`
	GeneratedAt time.Time                 `json:"generatedAt"`
	Checksum    string                    `json:"checksum,omitempty"`
	Saints      map[string]map[string]any `json:"saints"`
	Events      map[string]map[string]any `json:"events"`
	Profiles    map[string]map[string]any `json:"profiles,omitempty"`
}

// payload is the checksummed portion of a fixture file.
type payload struct {
	Saints   map[string]map[string]any `json:"saints"`
	Events   map[string]map[string]any `json:"events"`
	Profiles map[string]map[string]any `json:"profiles"`
}

// Load reads a fixture file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture JSON: %w", err)
	}

	return &f, nil
}

// Save writes the fixture to disk with stable formatting.
func (f *File) Save(path string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal fixture: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write fixture file: %w", err)
	}

	return nil
}

// ComputeChecksum returns the SHA-256 hex digest of the document payload.
// Map keys marshal in sorted order, so the digest is stable across runs.
func (f *File) ComputeChecksum() (string, error) {
	data, err := json.Marshal(payload{
		Saints:   f.Saints,
		Events:   f.Events,
		Profiles: f.Profiles,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:]), nil
}

// Stamp refreshes the checksum and generation time, and sets the version
// when one is given.
func (f *File) Stamp(version string) error {
	sum, err := f.ComputeChecksum()
	if err != nil {
		return err
	}

	f.Checksum = sum
	f.GeneratedAt = time.Now().UTC()

	if version != "" {
		f.Version = version
	}

	return nil
}

// Verify checks the stored checksum against the document payload.
func (f *File) Verify() error {
	if f.Checksum == "" {
		return ErrNoChecksum
	}

	sum, err := f.ComputeChecksum()
	if err != nil {
		return err
	}

	if sum != f.Checksum {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksumMismatch, f.Checksum, sum)
	}

	return nil
}

// Count returns the number of documents per collection.
func (f *File) Count() (saints, events, profiles int) {
	return len(f.Saints), len(f.Events), len(f.Profiles)
}
