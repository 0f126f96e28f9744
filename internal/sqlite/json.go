package sqlite

import (
	"time"

	"github.com/mesh-intelligence/curate/pkg/types"
)

// JSONL file names in the data directory.
const (
	experiencesJSONL = "experiences.jsonl"
	favoritesJSONL   = "favorites.jsonl"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// experienceJSON represents an experience in experiences.jsonl. Places are
// stored inline as snapshots so a saved experience survives catalog edits.
type experienceJSON struct {
	ExperienceID string        `json:"experience_id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Date         string        `json:"date"`
	Time         string        `json:"time"`
	Places       []types.Place `json:"places"`
	CreatedAt    string        `json:"created_at"`
}

// favoriteJSON represents a liked place in favorites.jsonl.
type favoriteJSON struct {
	PlaceID   int    `json:"place_id"`
	CreatedAt string `json:"created_at"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime accepts the storage layout and any RFC 3339 variant, so files
// edited by hand still load.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
