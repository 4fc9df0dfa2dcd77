package entity

import "time"

// Category classifies an event for badge rendering and calendar colors.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
	CategorySocial   Category = "social"
	CategoryOther    Category = "other"
)

// Categories lists every valid category value.
var Categories = []Category{CategoryWork, CategoryPersonal, CategoryHealth, CategorySocial, CategoryOther}

// ParseCategory normalizes a raw category string, falling back to
// CategoryOther for anything outside the fixed enumeration.
func ParseCategory(s string) Category {
	for _, c := range Categories {
		if string(c) == s {
			return c
		}
	}
	return CategoryOther
}

// EventDraft is an event description produced by extraction, before a
// client identifier has been assigned.
//
// Start and End are ISO-8601 local-format strings as returned by the
// model (e.g. "2026-09-02T10:00:00"). They are kept as strings: whether
// an end before its start should be rejected or corrected is an open
// question, so nothing here validates the pair.
type EventDraft struct {
	Title       string   `json:"title"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	Attendees   []string `json:"attendees,omitempty"`
	Category    Category `json:"category"`
}

// CalendarEvent is a draft with its client-assigned identifier. The ID
// is generated locally at creation time, independent of anything the
// extractor returned.
type CalendarEvent struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	Attendees   []string `json:"attendees,omitempty"`
	Category    Category `json:"category"`
}

// isoLayouts are the accepted shapes for Start/End strings, tried in
// order. The extractor asks for the first; RFC3339 covers models that
// insist on appending an offset.
var isoLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

// ParseEventTime parses an ISO-8601 event timestamp in the given
// location. ok is false when the string matches none of the accepted
// layouts.
func ParseEventTime(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// StartTime parses the event's start in the given location.
func (e *CalendarEvent) StartTime(loc *time.Location) (time.Time, bool) {
	return ParseEventTime(e.Start, loc)
}

// EndTime parses the event's end in the given location.
func (e *CalendarEvent) EndTime(loc *time.Location) (time.Time, bool) {
	return ParseEventTime(e.End, loc)
}
