package view

import (
	"sort"
	"time"

	"github.com/smartschedule/smartschedule/internal/domain/entity"
)

// DayEvent is one event entry inside a calendar day cell.
type DayEvent struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Time     string `json:"time"`
	Category string `json:"category"`
}

// Day is one cell of the month grid. Blank cells pad the first week so
// the grid always starts on Sunday.
type Day struct {
	Day     int        `json:"day,omitempty"`
	Blank   bool       `json:"blank,omitempty"`
	IsToday bool       `json:"is_today,omitempty"`
	Events  []DayEvent `json:"events"`
}

// MonthCursor addresses a month for prev/next navigation.
type MonthCursor struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// MonthGrid is the render model for calendar mode: a 7-column grid of
// the selected month, Sunday first.
type MonthGrid struct {
	Year      int         `json:"year"`
	Month     time.Month  `json:"month"`
	MonthName string      `json:"month_name"`
	Weekdays  []string    `json:"weekdays"`
	Cells     []Day       `json:"cells"`
	Prev      MonthCursor `json:"prev"`
	Next      MonthCursor `json:"next"`
}

var weekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// BuildMonthGrid lays out the given month. Events are bucketed into day
// cells by the calendar day/month/year of their parsed start in loc;
// events with unparseable starts appear in no cell. Each cell's events
// are sorted by start time.
func BuildMonthGrid(year int, month time.Month, events []entity.CalendarEvent, loc *time.Location, now time.Time) MonthGrid {
	if loc == nil {
		loc = time.UTC
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	leading := int(first.Weekday())

	type bucketed struct {
		at time.Time
		ev entity.CalendarEvent
	}
	byDay := make(map[int][]bucketed)
	for _, e := range events {
		start, ok := e.StartTime(loc)
		if !ok {
			continue
		}
		if start.Year() == year && start.Month() == month {
			byDay[start.Day()] = append(byDay[start.Day()], bucketed{at: start, ev: e})
		}
	}

	now = now.In(loc)
	cells := make([]Day, 0, leading+daysInMonth)
	for i := 0; i < leading; i++ {
		cells = append(cells, Day{Blank: true, Events: []DayEvent{}})
	}
	for day := 1; day <= daysInMonth; day++ {
		bs := byDay[day]
		sort.SliceStable(bs, func(i, j int) bool { return bs[i].at.Before(bs[j].at) })
		dayEvents := make([]DayEvent, 0, len(bs))
		for _, b := range bs {
			dayEvents = append(dayEvents, DayEvent{
				ID:       b.ev.ID,
				Title:    b.ev.Title,
				Time:     b.at.Format(cardTimeLayout),
				Category: string(b.ev.Category),
			})
		}
		cells = append(cells, Day{
			Day:     day,
			IsToday: day == now.Day() && month == now.Month() && year == now.Year(),
			Events:  dayEvents,
		})
	}

	prevYear, prevMonth := year, month-1
	if prevMonth < time.January {
		prevYear, prevMonth = year-1, time.December
	}
	nextYear, nextMonth := year, month+1
	if nextMonth > time.December {
		nextYear, nextMonth = year+1, time.January
	}

	return MonthGrid{
		Year:      year,
		Month:     month,
		MonthName: month.String(),
		Weekdays:  weekdayNames,
		Cells:     cells,
		Prev:      MonthCursor{Year: prevYear, Month: prevMonth},
		Next:      MonthCursor{Year: nextYear, Month: nextMonth},
	}
}
