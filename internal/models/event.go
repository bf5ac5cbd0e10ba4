package models

import "time"

// Event represents a gathering (satsang, bhandara, pravachan) hosted by a saint.
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Type        string      `json:"type"`
	SaintID     string      `json:"saintId"`
	SaintName   string      `json:"saintName"`
	Description string      `json:"description"`
	ScheduledAt time.Time   `json:"scheduledAt"`
	Address     string      `json:"address"`
	Coordinates *Coordinate `json:"coordinates,omitempty"`
}

// Key returns the identifier used for de-duplication.
func (e Event) Key() string { return e.ID }

// Coord returns the venue position, nil when unknown.
func (e Event) Coord() *Coordinate { return e.Coordinates }

// SearchFields returns the text fields matched by directory search.
func (e Event) SearchFields() []string {
	return []string{e.Title, e.SaintName, e.Address}
}
