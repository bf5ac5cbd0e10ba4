package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"santdir/internal/directory"
	"santdir/internal/models"
)

func TestSaintTable_Alignment(t *testing.T) {
	rows := []directory.Annotated[models.Saint]{
		{
			Record: models.Saint{
				ID:          "saint-1",
				Name:        "Sant Ramesh Das",
				Designation: "Mahant",
				Location:    "Jaipur",
			},
			DistanceKm:  12.34,
			HasDistance: true,
		},
		{
			Record: models.Saint{
				ID:          "saint-2",
				Name:        "श्री अनुकूलचन्द्र",
				Designation: "Acharya",
				Location:    "Vrindavan",
			},
		},
	}

	out := SaintTable(rows)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines (header, separator, 2 rows), got %d", len(lines))
	}

	if !strings.HasPrefix(lines[0], "ID") {
		t.Errorf("Header = %q, want ID first", lines[0])
	}

	// Every line's NAME column must start at the same display offset.
	wantOffset := displayOffset(lines[0], "NAME")
	if wantOffset < 0 {
		t.Fatalf("Header missing NAME column: %q", lines[0])
	}

	for _, probe := range []struct{ line, col string }{
		{lines[2], "Sant Ramesh Das"},
		{lines[3], "श्री अनुकूलचन्द्र"},
	} {
		got := displayOffset(probe.line, probe.col)
		if got != wantOffset {
			t.Errorf("Column %q starts at display offset %d, want %d", probe.col, got, wantOffset)
		}
	}

	if !strings.Contains(lines[2], "12.3 km") {
		t.Errorf("Row = %q, want distance 12.3 km", lines[2])
	}

	if !strings.HasSuffix(lines[3], "-") {
		t.Errorf("Row = %q, want trailing - for unknown distance", lines[3])
	}
}

func TestEventTable(t *testing.T) {
	rows := []directory.Annotated[models.Event]{
		{
			Record: models.Event{
				ID:          "event-1",
				Title:       "Ram   Katha",
				SaintName:   "Sant Ramesh Das",
				ScheduledAt: time.Date(2026, 9, 12, 18, 30, 0, 0, time.UTC),
				Address:     "Ramganj Chowk, Jaipur",
			},
			DistanceKm:  3.2,
			HasDistance: true,
		},
		{
			Record: models.Event{ID: "event-2", Title: "Bhandara"},
		},
	}

	out := EventTable(rows)

	// Whitespace inside a cell collapses.
	if !strings.Contains(out, "Ram Katha") {
		t.Errorf("Output missing normalized title:\n%s", out)
	}

	if !strings.Contains(out, "2026-09-12 18:30") {
		t.Errorf("Output missing formatted schedule:\n%s", out)
	}

	if !strings.Contains(out, "3.2 km") {
		t.Errorf("Output missing distance:\n%s", out)
	}
}

func TestRenderTable_TruncatesLongCells(t *testing.T) {
	long := strings.Repeat("x", maxCellWidth+20)

	out := SaintTable([]directory.Annotated[models.Saint]{
		{Record: models.Saint{ID: "s", Name: long}},
	})

	if strings.Contains(out, long) {
		t.Error("Expected long name to be truncated")
	}

	if !strings.Contains(out, "...") {
		t.Error("Expected truncation ellipsis")
	}
}

// displayOffset returns the display-cell offset of the first occurrence
// of col in line, -1 when absent.
func displayOffset(line, col string) int {
	idx := strings.Index(line, col)
	if idx < 0 {
		return -1
	}

	return runewidth.StringWidth(line[:idx])
}
