package view

import (
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/smartschedule/smartschedule/internal/domain/entity"
)

// ExportICS serializes the user's events as an iCalendar document so
// they can be imported into a regular calendar client. Events whose
// start does not parse are skipped rather than exported half-formed.
func ExportICS(events []entity.CalendarEvent, loc *time.Location) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//smartschedule//EN")

	for _, e := range events {
		start, ok := e.StartTime(loc)
		if !ok {
			continue
		}
		ev := cal.AddEvent(e.ID)
		ev.SetSummary(e.Title)
		ev.SetStartAt(start)
		if end, okEnd := e.EndTime(loc); okEnd {
			ev.SetEndAt(end)
		} else {
			ev.SetEndAt(start.Add(time.Hour))
		}
		if e.Location != "" {
			ev.SetLocation(e.Location)
		}
		desc := e.Description
		if len(e.Attendees) > 0 {
			if desc != "" {
				desc += "\n"
			}
			desc += "Attendees: " + strings.Join(e.Attendees, ", ")
		}
		if desc != "" {
			ev.SetDescription(desc)
		}
		ev.SetProperty(ical.ComponentPropertyCategories, string(e.Category))
	}

	return cal.Serialize()
}
