package models

import "time"

// Gender is the normalized gender classification of a saint.
type Gender string

// Recognized gender values. Unrecognized input normalizes to GenderUnknown.
const (
	GenderUnknown Gender = ""
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
)

// Saint represents a spiritual teacher listed in the directory.
type Saint struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Designation string      `json:"designation"`
	Location    string      `json:"location"`
	Coordinates *Coordinate `json:"coordinates,omitempty"`
	Guru        string      `json:"guru,omitempty"`
	GroupLeader string      `json:"groupLeader,omitempty"`
	About       string      `json:"about"`
	DateOfBirth time.Time   `json:"dateOfBirth"`
	Gender      Gender      `json:"gender"`
	Sampradaya  string      `json:"sampradaya"`
}

// Key returns the identifier used for de-duplication.
func (s Saint) Key() string { return s.ID }

// Coord returns the saint's position, nil when unknown.
func (s Saint) Coord() *Coordinate { return s.Coordinates }

// SearchFields returns the text fields matched by directory search.
func (s Saint) SearchFields() []string {
	return []string{s.Name, s.Designation, s.Location}
}
