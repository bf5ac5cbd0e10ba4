package normalizer

import (
	"strings"
	"time"

	"santdir/internal/models"
)

// RawDocument is an untyped field-to-value map as returned by the backing
// document store. Any field may be absent, null, or oddly encoded. The
// assembler never mutates it.
type RawDocument map[string]any

// pick returns the value under the first present key. Presence of a
// preferred key always wins, even when its value is null or unparseable.
func (d RawDocument) pick(keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := d[k]; ok {
			return v, true
		}
	}

	return nil, false
}

func (d RawDocument) text(def string, keys []string) string {
	v, ok := d.pick(keys)
	if !ok {
		return def
	}

	s, ok := v.(string)
	if !ok {
		return def
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}

	return s
}

func (d RawDocument) instant(keys []string) time.Time {
	v, ok := d.pick(keys)
	if !ok {
		return time.Time{}
	}

	t, ok := Instant(v)
	if !ok {
		return time.Time{}
	}

	return t
}

func (d RawDocument) coordinate(keys []string) *models.Coordinate {
	v, ok := d.pick(keys)
	if !ok {
		return nil
	}

	c, ok := Coordinate(v)
	if !ok {
		return nil
	}

	return &c
}

func (d RawDocument) reference(keys []string) string {
	v, ok := d.pick(keys)
	if !ok {
		return ""
	}

	id, ok := Reference(v)
	if !ok {
		return ""
	}

	return id
}

// AssembleSaint builds a canonical saint record from a raw store document.
// Fields resolve independently: an unparseable value falls back to that
// field's default and never invalidates the rest of the record.
func AssembleSaint(id string, raw RawDocument) models.Saint {
	return models.Saint{
		ID:          id,
		Name:        raw.text("", saintKeys.name),
		Designation: raw.text("", saintKeys.designation),
		Location:    raw.text("", saintKeys.location),
		Coordinates: raw.coordinate(saintKeys.coordinates),
		Guru:        raw.reference(saintKeys.guru),
		GroupLeader: raw.reference(saintKeys.groupLeader),
		About:       raw.text("", saintKeys.about),
		DateOfBirth: raw.instant(saintKeys.dateOfBirth),
		Gender:      genderOf(raw.text("", saintKeys.gender)),
		Sampradaya:  sampradayaOf(raw.text("", saintKeys.sampradaya)),
	}
}

// AssembleEvent builds a canonical event record from a raw store document.
func AssembleEvent(id string, raw RawDocument) models.Event {
	return models.Event{
		ID:          id,
		Title:       raw.text("", eventKeys.title),
		Type:        strings.ToLower(raw.text("", eventKeys.kind)),
		SaintID:     raw.reference(eventKeys.saintID),
		SaintName:   raw.text("", eventKeys.saintName),
		Description: raw.text("", eventKeys.description),
		ScheduledAt: raw.instant(eventKeys.scheduledAt),
		Address:     raw.text("", eventKeys.address),
		Coordinates: raw.coordinate(eventKeys.coordinates),
	}
}

// AssembleProfile builds a canonical sevak profile from a raw store
// document.
func AssembleProfile(id string, raw RawDocument) models.Profile {
	return models.Profile{
		ID:       id,
		Name:     raw.text("", profileKeys.name),
		Email:    strings.ToLower(raw.text("", profileKeys.email)),
		Phone:    raw.text("", profileKeys.phone),
		City:     raw.text("", profileKeys.city),
		Seva:     raw.text("", profileKeys.seva),
		JoinedAt: raw.instant(profileKeys.joinedAt),
	}
}
