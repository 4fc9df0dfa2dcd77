package view

import (
	"strings"
	"time"

	"github.com/smartschedule/smartschedule/internal/domain/entity"
)

const (
	cardDateLayout = "Mon, Jan 2"
	cardTimeLayout = "3:04 PM"
)

// EventCard is the render model for one event in grid or list mode.
// Formatting happens here so every client shows the same strings.
type EventCard struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	CategoryBadge string   `json:"category_badge"`
	Category      string   `json:"category"`
	Date          string   `json:"date"`
	TimeRange     string   `json:"time_range"`
	Location      string   `json:"location,omitempty"`
	Attendees     []string `json:"attendees,omitempty"`
	Description   string   `json:"description,omitempty"`
}

// Cards builds render models for an already-sorted event list. Events
// whose start cannot be parsed fall back to the raw stored string.
func Cards(events []entity.CalendarEvent, loc *time.Location) []EventCard {
	cards := make([]EventCard, 0, len(events))
	for _, e := range events {
		cards = append(cards, card(e, loc))
	}
	return cards
}

func card(e entity.CalendarEvent, loc *time.Location) EventCard {
	c := EventCard{
		ID:            e.ID,
		Title:         e.Title,
		Category:      string(e.Category),
		CategoryBadge: badge(e.Category),
		Location:      e.Location,
		Attendees:     e.Attendees,
		Description:   e.Description,
	}
	start, okStart := e.StartTime(loc)
	end, okEnd := e.EndTime(loc)
	if okStart {
		c.Date = start.Format(cardDateLayout)
		c.TimeRange = start.Format(cardTimeLayout)
	} else {
		c.Date = e.Start
		c.TimeRange = e.Start
	}
	if okEnd {
		c.TimeRange += " - " + end.Format(cardTimeLayout)
	} else if e.End != "" {
		c.TimeRange += " - " + e.End
	}
	return c
}

func badge(c entity.Category) string {
	s := string(c)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
