package types

import (
	"strings"
	"time"
)

// UntitledLabel is shown for experiences saved without a title.
const UntitledLabel = "Untitled Experience"

// Experience is the finalized, ordered sequence of places produced from a
// step list. Title is stored as the user typed it; an empty title is
// resolved to UntitledLabel only when displayed.
type Experience struct {
	ExperienceID string    `json:"experience_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Places       []Place   `json:"places"`
	CreatedAt    time.Time `json:"created_at"`
}

// DisplayTitle returns the title, or UntitledLabel when it is blank.
func (e *Experience) DisplayTitle() string {
	if strings.TrimSpace(e.Title) == "" {
		return UntitledLabel
	}
	return e.Title
}

// Empty reports whether the experience resolved to no places at all.
// Callers treat this as "nothing to save" rather than an error.
func (e *Experience) Empty() bool {
	return len(e.Places) == 0
}

// PlaceNames returns the names of the places in order.
func (e *Experience) PlaceNames() []string {
	names := make([]string, len(e.Places))
	for i, p := range e.Places {
		names[i] = p.Name
	}
	return names
}

// Favorite records that the user liked a catalog place.
type Favorite struct {
	PlaceID   int       `json:"place_id"`
	CreatedAt time.Time `json:"created_at"`
}
