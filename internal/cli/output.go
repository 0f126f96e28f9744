package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mesh-intelligence/curate/internal/compose"
	"github.com/mesh-intelligence/curate/pkg/types"
)

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal JSON: %w", err))
	}
	fmt.Fprintln(w, string(out))
	return nil
}

func printPlaceLine(w io.Writer, p types.Place) {
	fmt.Fprintf(w, "%3d  %-34s %-22s %.1f  %s\n", p.ID, p.Name, p.Category, p.Rating, p.Address)
}

func printPlaces(w io.Writer, places []types.Place) {
	if len(places) == 0 {
		fmt.Fprintln(w, "No places found.")
		return
	}
	for _, p := range places {
		printPlaceLine(w, p)
	}
}

func printPlace(w io.Writer, p types.Place) {
	fmt.Fprintf(w, "ID:          %d\n", p.ID)
	fmt.Fprintf(w, "Name:        %s\n", p.Name)
	fmt.Fprintf(w, "Category:    %s\n", p.Category)
	fmt.Fprintf(w, "Rating:      %.1f\n", p.Rating)
	fmt.Fprintf(w, "Address:     %s\n", p.Address)
	if p.Website != "" {
		fmt.Fprintf(w, "Website:     %s\n", p.Website)
	}
	if p.Description != "" {
		fmt.Fprintf(w, "\n%s\n", p.Description)
	}
}

// printSteps renders the step list with 1-based numbering, which is also
// how compose ops address steps.
func printSteps(w io.Writer, steps []compose.StepView) {
	if len(steps) == 0 {
		fmt.Fprintln(w, "No steps.")
		return
	}
	for i, s := range steps {
		lock := " "
		if s.Locked {
			lock = "*"
		}
		name := "(no places in this category)"
		if s.Place != nil {
			name = s.Place.Name
		}
		fmt.Fprintf(w, "%2d. [%s] %-22s %s\n", i+1, lock, s.Category, name)
	}
}

func printExperience(w io.Writer, e *types.Experience) {
	fmt.Fprintf(w, "%s\n", e.DisplayTitle())
	fmt.Fprintf(w, "%s at %s\n", e.DisplayDate(), types.FormatHour(e.StartHour()))
	if e.Description != "" {
		fmt.Fprintf(w, "%s\n", e.Description)
	}
	if e.Empty() {
		fmt.Fprintln(w, "Add at least one place to create an experience.")
		return
	}
	for i, stop := range e.Itinerary() {
		fmt.Fprintf(w, "  %d. %-8s %s (%s)\n", i+1, stop.At, stop.Place.Name, stop.Place.Category)
	}
}

func printExperienceLine(w io.Writer, e *types.Experience) {
	id := e.ExperienceID
	if id == "" {
		id = "-"
	}
	fmt.Fprintf(w, "%-36s  %-28s %s\n", id, e.DisplayTitle(), strings.Join(e.PlaceNames(), " → "))
}
