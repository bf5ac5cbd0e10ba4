// Package formatter renders canonical directory records as aligned
// plain-text tables for the CLI front-ends. Column widths are computed in
// display cells so Devanagari and other wide scripts line up.
package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"santdir/internal/directory"
	"santdir/internal/models"
	"santdir/pkg/utils"
)

// maxCellWidth caps a single cell before truncation kicks in.
const maxCellWidth = 40

var helper = utils.NewStringHelper()

// SaintTable renders annotated saint records as an aligned table.
func SaintTable(rows []directory.Annotated[models.Saint]) string {
	table := make([][]string, 0, len(rows))

	for _, row := range rows {
		s := row.Record
		table = append(table, []string{
			s.ID,
			cell(s.Name),
			cell(s.Designation),
			cell(s.Location),
			formatDistance(row.DistanceKm, row.HasDistance),
		})
	}

	return renderTable([]string{"ID", "NAME", "DESIGNATION", "LOCATION", "DISTANCE"}, table)
}

// EventTable renders annotated event records as an aligned table.
func EventTable(rows []directory.Annotated[models.Event]) string {
	table := make([][]string, 0, len(rows))

	for _, row := range rows {
		e := row.Record
		table = append(table, []string{
			e.ID,
			cell(e.Title),
			cell(e.SaintName),
			formatInstant(e.ScheduledAt),
			cell(e.Address),
			formatDistance(row.DistanceKm, row.HasDistance),
		})
	}

	return renderTable([]string{"ID", "TITLE", "HOST", "WHEN", "ADDRESS", "DISTANCE"}, table)
}

// renderTable pads every column to its widest cell, measured in display
// cells rather than bytes.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}

	for _, row := range rows {
		for i, c := range row {
			if w := runewidth.StringWidth(c); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder

	writeRow(&sb, headers, widths)
	writeSeparator(&sb, widths)

	for _, row := range rows {
		writeRow(&sb, row, widths)
	}

	return sb.String()
}

func writeRow(sb *strings.Builder, cells []string, widths []int) {
	for i, c := range cells {
		if i > 0 {
			sb.WriteString("  ")
		}

		sb.WriteString(c)

		// Pad with spaces to the column width
		padding := widths[i] - runewidth.StringWidth(c)
		if i < len(cells)-1 && padding > 0 {
			sb.WriteString(strings.Repeat(" ", padding))
		}
	}

	sb.WriteString("\n")
}

func writeSeparator(sb *strings.Builder, widths []int) {
	for i, w := range widths {
		if i > 0 {
			sb.WriteString("  ")
		}

		sb.WriteString(strings.Repeat("-", w))
	}

	sb.WriteString("\n")
}

// cell normalizes whitespace and truncates to the display cap.
func cell(s string) string {
	return helper.TruncateDisplay(helper.NormalizeWhitespace(s), maxCellWidth)
}

// formatDistance renders a distance column value, "-" when unknown.
func formatDistance(km float64, ok bool) string {
	if !ok {
		return "-"
	}

	return fmt.Sprintf("%.1f km", km)
}

// formatInstant renders an event time, "-" when absent.
func formatInstant(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	return t.Format("2006-01-02 15:04")
}
