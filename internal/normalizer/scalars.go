// Package normalizer converts the loosely-typed documents returned by the
// directory's backing store into canonical records. Store fields arrive in
// several historical encodings per scalar; each normalizer tries the
// recognized encodings in a fixed priority order and reports absence
// instead of failing.
package normalizer

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"santdir/internal/models"
)

// timeValuer matches store timestamp scalars that convert themselves to a
// calendar time (bson.DateTime among them).
type timeValuer interface {
	Time() time.Time
}

// hexValuer matches object-id scalars that expose their hex form
// (bson.ObjectID among them).
type hexValuer interface {
	Hex() string
}

// instantLayouts are tried in order for string timestamps. Strings are the
// least reliable encoding, so structured shapes are always tried first.
var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Jan 2, 2006",
}

// coordKeyPairs are the latitude/longitude key aliases seen across
// document versions, newest first. The first pair with both keys present
// wins.
var coordKeyPairs = [][2]string{
	{"latitude", "longitude"},
	{"lat", "lng"},
	{"_latitude", "_longitude"},
}

var (
	epochDigitsPattern = regexp.MustCompile(`^\d+$`)
	coordMarkerPattern = regexp.MustCompile(`(?i)[°nsew\[\]()]`)
	coordNumberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
)

// Instant recovers a point in time from any of the store's timestamp
// encodings. The zero time plus false means no encoding matched.
func Instant(v any) (time.Time, bool) {
	if v == nil {
		return time.Time{}, false
	}

	if t, ok := instantFromTimeValuer(v); ok {
		return t, true
	}

	if t, ok := instantFromSecondsMap(v); ok {
		return t, true
	}

	if t, ok := instantFromNumber(v); ok {
		return t, true
	}

	if t, ok := instantFromTime(v); ok {
		return t, true
	}

	return instantFromString(v)
}

// instantFromTimeValuer invokes the value's own calendar conversion. A
// panicking implementation counts as an unparseable value, not a crash.
func instantFromTimeValuer(v any) (t time.Time, ok bool) {
	tv, isValuer := v.(timeValuer)
	if !isValuer {
		return time.Time{}, false
	}

	defer func() {
		if recover() != nil {
			t, ok = time.Time{}, false
		}
	}()

	t = tv.Time()
	if t.IsZero() {
		return time.Time{}, false
	}

	return t, true
}

// instantFromSecondsMap handles the {seconds, nanoseconds} pair shape that
// serialized store timestamps arrive in, including the underscore-prefixed
// variant produced by older exports.
func instantFromSecondsMap(v any) (time.Time, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return time.Time{}, false
	}

	secs, ok := numeric(m["seconds"])
	if !ok {
		secs, ok = numeric(m["_seconds"])
		if !ok {
			return time.Time{}, false
		}
	}

	nanos, ok := numeric(m["nanoseconds"])
	if !ok {
		nanos, _ = numeric(m["_nanoseconds"])
	}

	ms := int64(secs)*1000 + int64(math.Round(nanos/1e6))

	return time.UnixMilli(ms).UTC(), true
}

func instantFromNumber(v any) (time.Time, bool) {
	n, ok := numeric(v)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return time.Time{}, false
	}

	return epochToTime(int64(n)), true
}

func instantFromTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}

		return *t, true
	}

	return time.Time{}, false
}

func instantFromString(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	// Bare epoch digits, as written by older dump scripts.
	if epochDigitsPattern.MatchString(s) {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return epochToTime(n), true
		}
	}

	return time.Time{}, false
}

// epochToTime applies the shared digit-count heuristic: a value with
// exactly ten digits is epoch seconds, anything else epoch milliseconds.
func epochToTime(n int64) time.Time {
	if digitCount(n) == 10 {
		return time.Unix(n, 0).UTC()
	}

	return time.UnixMilli(n).UTC()
}

func digitCount(n int64) int {
	if n < 0 {
		n = -n
	}

	return len(strconv.FormatInt(n, 10))
}

// Coordinate recovers a latitude/longitude pair from any of the store's
// position encodings. Pairs outside the valid domain are unparseable, not
// clamped.
func Coordinate(v any) (models.Coordinate, bool) {
	switch c := v.(type) {
	case models.Coordinate:
		return checkRange(c)
	case *models.Coordinate:
		if c == nil {
			return models.Coordinate{}, false
		}

		return checkRange(*c)
	case map[string]any:
		return coordinateFromMap(c)
	case string:
		return coordinateFromString(c)
	}

	return models.Coordinate{}, false
}

func coordinateFromMap(m map[string]any) (models.Coordinate, bool) {
	for _, pair := range coordKeyPairs {
		latRaw, hasLat := m[pair[0]]
		lngRaw, hasLng := m[pair[1]]
		if !hasLat || !hasLng {
			continue
		}

		// First pair with both keys present decides the outcome.
		lat, latOK := numeric(latRaw)
		lng, lngOK := numeric(lngRaw)
		if !latOK || !lngOK {
			return models.Coordinate{}, false
		}

		return checkRange(models.Coordinate{Latitude: lat, Longitude: lng})
	}

	return models.Coordinate{}, false
}

// coordinateFromString parses display-formatted positions such as
// "26.9° N, 75.8° E" or "[26.55° N, 76.49° E]". Degree and hemisphere
// markers are stripped, not interpreted as sign.
func coordinateFromString(s string) (models.Coordinate, bool) {
	cleaned := strings.TrimSpace(coordMarkerPattern.ReplaceAllString(s, " "))
	if cleaned == "" {
		return models.Coordinate{}, false
	}

	if c, ok := coordinateFromTokens(strings.Split(cleaned, ",")); ok {
		return c, true
	}

	if c, ok := coordinateFromTokens(strings.Fields(cleaned)); ok {
		return c, true
	}

	// Last resort: the first two numeric substrings anywhere in the input.
	return coordinateFromTokens(coordNumberPattern.FindAllString(cleaned, 2))
}

func coordinateFromTokens(tokens []string) (models.Coordinate, bool) {
	if len(tokens) != 2 {
		return models.Coordinate{}, false
	}

	lat, errLat := strconv.ParseFloat(strings.TrimSpace(tokens[0]), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(tokens[1]), 64)
	if errLat != nil || errLng != nil {
		return models.Coordinate{}, false
	}

	return checkRange(models.Coordinate{Latitude: lat, Longitude: lng})
}

func checkRange(c models.Coordinate) (models.Coordinate, bool) {
	if !c.InRange() {
		return models.Coordinate{}, false
	}

	return c, true
}

// Reference recovers a bare record identifier from any of the store's
// foreign-key encodings: object ids, {id}/{$id} wrappers, path strings, or
// bare strings. The result never contains a path separator.
func Reference(v any) (string, bool) {
	if v == nil {
		return "", false
	}

	if id, ok := referenceFromHex(v); ok {
		return id, true
	}

	if id, ok := referenceFromMap(v); ok {
		return id, true
	}

	if s, ok := v.(string); ok {
		return lastSegment(s)
	}

	return "", false
}

// referenceFromHex invokes the value's own hex rendering. A panicking
// implementation counts as an unparseable value, not a crash.
func referenceFromHex(v any) (id string, ok bool) {
	hv, isValuer := v.(hexValuer)
	if !isValuer {
		return "", false
	}

	defer func() {
		if recover() != nil {
			id, ok = "", false
		}
	}()

	id = strings.TrimSpace(hv.Hex())

	return id, id != ""
}

func referenceFromMap(v any) (string, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return "", false
	}

	if s, ok := m["id"].(string); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s), true
	}

	// DBRef shape: {$ref: collection, $id: identifier}.
	if id, ok := referenceFromHex(m["$id"]); ok {
		return id, true
	}

	if s, ok := m["$id"].(string); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s), true
	}

	if s, ok := m["path"].(string); ok {
		return lastSegment(s)
	}

	return "", false
}

// lastSegment returns the final non-empty path segment of a reference
// string such as "saints/abc123".
func lastSegment(s string) (string, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "/")
	if s == "" {
		return "", false
	}

	segments := strings.Split(s, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i], true
		}
	}

	return "", false
}

// numeric widens any of the numeric shapes a decoded document can hold.
func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}

		return f, true
	}

	return 0, false
}
