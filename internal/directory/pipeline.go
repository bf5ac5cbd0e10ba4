// Package directory implements the read-side pipeline that filters,
// sorts, and annotates canonical records for presentation.
package directory

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"santdir/internal/models"
)

// Record is the view of a canonical record the pipeline needs. Saint and
// Event records both satisfy it.
type Record interface {
	Key() string
	Coord() *models.Coordinate
	SearchFields() []string
}

// Params control one pipeline run.
type Params struct {
	// Origin is the user's position. Nil disables distance annotation.
	Origin *models.Coordinate

	// Query filters records by case-insensitive substring match against
	// their search fields. Blank (after trimming) disables the filter.
	Query string

	// MaxDistanceKm drops records whose distance exceeds the bound.
	// +Inf disables the filter. Records with no computable distance are
	// never dropped by this bound.
	MaxDistanceKm float64
}

// Annotated pairs a record with its computed distance from the origin.
// HasDistance is false when the origin or the record position is unknown.
type Annotated[T Record] struct {
	Record      T
	DistanceKm  float64
	HasDistance bool
}

// FilterSort runs the fixed pipeline over a record list: distance
// annotation, distance filter, text filter, then a stable ascending sort
// by distance with unknown-distance records last. The input slice is not
// modified.
func FilterSort[T Record](records []T, p Params) []Annotated[T] {
	annotated := annotate(records, p.Origin)

	if !math.IsInf(p.MaxDistanceKm, 1) {
		annotated = filterByDistance(annotated, p.MaxDistanceKm)
	}

	if query := strings.TrimSpace(p.Query); query != "" {
		annotated = filterByQuery(annotated, query)
	}

	slices.SortStableFunc(annotated, compareByDistance[T])

	return annotated
}

// Merge concatenates record lists and drops duplicate keys. The first
// occurrence wins and input order is preserved.
func Merge[T Record](lists ...[]T) []T {
	seen := make(map[string]struct{})

	var out []T

	for _, list := range lists {
		for _, r := range list {
			if _, ok := seen[r.Key()]; ok {
				continue
			}

			seen[r.Key()] = struct{}{}
			out = append(out, r)
		}
	}

	return out
}

func annotate[T Record](records []T, origin *models.Coordinate) []Annotated[T] {
	out := make([]Annotated[T], 0, len(records))

	for _, r := range records {
		a := Annotated[T]{Record: r}
		if origin != nil {
			if c := r.Coord(); c != nil {
				a.DistanceKm = Haversine(*origin, *c)
				a.HasDistance = true
			}
		}

		out = append(out, a)
	}

	return out
}

func filterByDistance[T Record](records []Annotated[T], maxKm float64) []Annotated[T] {
	out := make([]Annotated[T], 0, len(records))

	for _, a := range records {
		// Unknown distance is not grounds for exclusion.
		if a.HasDistance && a.DistanceKm > maxKm {
			continue
		}

		out = append(out, a)
	}

	return out
}

func filterByQuery[T Record](records []Annotated[T], query string) []Annotated[T] {
	needle := strings.ToLower(query)
	out := make([]Annotated[T], 0, len(records))

	for _, a := range records {
		if matchesQuery(a.Record, needle) {
			out = append(out, a)
		}
	}

	return out
}

func matchesQuery(r Record, needle string) bool {
	for _, field := range r.SearchFields() {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}

	return false
}

func compareByDistance[T Record](a, b Annotated[T]) int {
	switch {
	case a.HasDistance && b.HasDistance:
		return cmp.Compare(a.DistanceKm, b.DistanceKm)
	case a.HasDistance:
		return -1
	case b.HasDistance:
		return 1
	default:
		return 0
	}
}
