package normalizer

import (
	"strings"

	"santdir/internal/models"
)

// Field manifests list the accepted raw key names per canonical field,
// ordered newest schema first. Resolution is "first key present wins": a
// present key whose value fails to normalize falls back to the field
// default, never to a lower-priority key.

type saintManifest struct {
	name        []string
	designation []string
	location    []string
	coordinates []string
	guru        []string
	groupLeader []string
	about       []string
	dateOfBirth []string
	gender      []string
	sampradaya  []string
}

var saintKeys = saintManifest{
	name:        []string{"name", "saintName", "fullName"},
	designation: []string{"designation", "title", "post"},
	location:    []string{"location", "city", "place"},
	coordinates: []string{"coordinates", "geopoint", "latlong"},
	guru:        []string{"guru", "guruRef", "guruId"},
	groupLeader: []string{"groupLeader", "groupLeaderRef", "leader"},
	about:       []string{"about", "bio", "description"},
	dateOfBirth: []string{"dob", "dateOfBirth", "birthDate"},
	gender:      []string{"gender", "sex"},
	sampradaya:  []string{"sampradaya", "sect", "panth"},
}

type eventManifest struct {
	title       []string
	kind        []string
	saintID     []string
	saintName   []string
	description []string
	scheduledAt []string
	address     []string
	coordinates []string
}

var eventKeys = eventManifest{
	title:       []string{"title", "eventName", "name"},
	kind:        []string{"type", "eventType", "category"},
	saintID:     []string{"saintId", "saint", "saintRef"},
	saintName:   []string{"saintName", "hostName", "organizer"},
	description: []string{"description", "details", "about"},
	scheduledAt: []string{"date", "eventDate", "scheduledAt", "startTime"},
	address:     []string{"address", "venue", "location"},
	coordinates: []string{"coordinates", "geopoint", "latlong"},
}

type profileManifest struct {
	name     []string
	email    []string
	phone    []string
	city     []string
	seva     []string
	joinedAt []string
}

var profileKeys = profileManifest{
	name:     []string{"name", "fullName", "displayName"},
	email:    []string{"email", "emailId"},
	phone:    []string{"phone", "mobile", "contact"},
	city:     []string{"city", "location"},
	seva:     []string{"seva", "service", "role"},
	joinedAt: []string{"joinedAt", "createdAt", "joined"},
}

// genderAliases maps the raw gender spellings seen in the store onto the
// normalized set. Anything unlisted normalizes to GenderUnknown.
var genderAliases = map[string]models.Gender{
	"male":   models.GenderMale,
	"m":      models.GenderMale,
	"female": models.GenderFemale,
	"f":      models.GenderFemale,
}

func genderOf(s string) models.Gender {
	return genderAliases[strings.ToLower(strings.TrimSpace(s))]
}

// sampradayaCanon fixes alternate spellings that accumulated across
// document versions. Unlisted values pass through lower-cased.
var sampradayaCanon = map[string]string{
	"shri":        "sri",
	"shree":       "sri",
	"pushtimarg":  "vallabha",
	"kabirpanthi": "kabir panth",
}

func sampradayaOf(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if canon, ok := sampradayaCanon[s]; ok {
		return canon
	}

	return s
}
