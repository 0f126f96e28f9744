package types

import (
	"fmt"
	"strings"
	"time"
)

// Display defaults for experiences saved without a date or time.
const (
	TodayLabel       = "Today"
	DefaultStartHour = 19
)

// Stop is one entry of an itinerary: a place and its estimated arrival.
type Stop struct {
	Place Place  `json:"place"`
	At    string `json:"at"`
}

// DisplayDate returns the date, or TodayLabel when it is blank.
func (e *Experience) DisplayDate() string {
	if strings.TrimSpace(e.Date) == "" {
		return TodayLabel
	}
	return e.Date
}

// StartHour returns the hour of Time ("HH:MM" or "H:MM"), or
// DefaultStartHour when Time is blank or unreadable.
func (e *Experience) StartHour() int {
	for _, layout := range []string{"15:04", "3:04 PM", "3:04PM"} {
		if t, err := time.Parse(layout, strings.TrimSpace(e.Time)); err == nil {
			return t.Hour()
		}
	}
	return DefaultStartHour
}

// Itinerary spaces the places one hour apart starting at StartHour.
func (e *Experience) Itinerary() []Stop {
	start := e.StartHour()
	stops := make([]Stop, len(e.Places))
	for i, p := range e.Places {
		stops[i] = Stop{Place: p, At: FormatHour(start + i)}
	}
	return stops
}

// FormatHour renders an hour of the day on a 12-hour clock, e.g. "7:00 PM".
// Hours past midnight wrap.
func FormatHour(hour int) string {
	hour = ((hour % 24) + 24) % 24
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:00 %s", h, suffix)
}
