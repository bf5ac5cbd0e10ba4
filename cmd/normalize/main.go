// Package main provides the normalize command-line tool: read a fixture
// snapshot, assemble every document into canonical records, and write the
// result as JSON with a per-field absence report.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"santdir/internal/models"
	"santdir/internal/normalizer"
	"santdir/pkg/fixture"
)

// output is the JSON document the tool writes.
type output struct {
	Saints   []models.Saint   `json:"saints,omitempty"`
	Events   []models.Event   `json:"events,omitempty"`
	Profiles []models.Profile `json:"profiles,omitempty"`
	Report   report           `json:"report"`
}

// report counts how often each canonical field fell back to its default,
// which is how sparse or unparseable source data shows up.
type report struct {
	Documents      int            `json:"documents"`
	DefaultedField map[string]int `json:"defaultedFields"`
}

func main() {
	inputPath := flag.String("input", "", "Path to fixture JSON file")
	outputPath := flag.String("output", "", "Path to output JSON file (default: stdout)")
	kind := flag.String("kind", "all", "Record kind to normalize: saints, events, profiles, or all")
	pretty := flag.Bool("pretty", true, "Indent the output JSON")
	flag.Parse()

	if *inputPath == "" {
		fmt.Println("Usage: normalize -input <fixture.json> [-output out.json] [-kind saints|events|profiles|all] [-pretty]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	f, err := fixture.Load(*inputPath)
	if err != nil {
		log.Fatalf("Error reading fixture: %v\n", err)
	}

	saints, events, profiles := f.Count()
	fmt.Printf("📂 Reading: %s (%d saints, %d events, %d profiles)\n",
		*inputPath, saints, events, profiles)

	out := output{Report: report{DefaultedField: map[string]int{}}}

	if *kind == "all" || *kind == "saints" {
		for id, fields := range f.Saints {
			s := normalizer.AssembleSaint(id, fields)
			out.Saints = append(out.Saints, s)
			out.Report.Documents++
			countSaintDefaults(s, out.Report.DefaultedField)
		}
	}

	if *kind == "all" || *kind == "events" {
		for id, fields := range f.Events {
			e := normalizer.AssembleEvent(id, fields)
			out.Events = append(out.Events, e)
			out.Report.Documents++
			countEventDefaults(e, out.Report.DefaultedField)
		}
	}

	if *kind == "all" || *kind == "profiles" {
		for id, fields := range f.Profiles {
			out.Profiles = append(out.Profiles, normalizer.AssembleProfile(id, fields))
			out.Report.Documents++
		}
	}

	fmt.Printf("📊 Normalized %d documents\n", out.Report.Documents)

	for field, count := range out.Report.DefaultedField {
		fmt.Printf("⚠️  %s defaulted in %d documents\n", field, count)
	}

	var data []byte

	if *pretty {
		data, err = json.MarshalIndent(out, "", "  ")
	} else {
		data, err = json.Marshal(out)
	}

	if err != nil {
		log.Fatalf("Error marshaling output: %v\n", err)
	}

	if *outputPath == "" {
		fmt.Println(string(data))

		return
	}

	if err := os.WriteFile(*outputPath, append(data, '\n'), 0644); err != nil {
		log.Fatalf("Error writing output: %v\n", err)
	}

	fmt.Printf("✅ Wrote %s (%d bytes)\n", *outputPath, len(data))
}

func countSaintDefaults(s models.Saint, counts map[string]int) {
	if s.Name == "" {
		counts["saint.name"]++
	}

	if s.Location == "" {
		counts["saint.location"]++
	}

	if s.Coordinates == nil {
		counts["saint.coordinates"]++
	}

	if s.DateOfBirth.IsZero() {
		counts["saint.dateOfBirth"]++
	}

	if s.Gender == models.GenderUnknown {
		counts["saint.gender"]++
	}
}

func countEventDefaults(e models.Event, counts map[string]int) {
	if e.Title == "" {
		counts["event.title"]++
	}

	if e.SaintID == "" {
		counts["event.saintId"]++
	}

	if e.ScheduledAt.IsZero() {
		counts["event.scheduledAt"]++
	}

	if e.Coordinates == nil {
		counts["event.coordinates"]++
	}
}
