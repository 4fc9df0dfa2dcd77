package view

import (
	"strings"
	"testing"
	"time"

	"github.com/smartschedule/smartschedule/internal/domain/entity"
)

func TestExportICS(t *testing.T) {
	t.Parallel()

	events := []entity.CalendarEvent{
		{
			ID:       "uid-1",
			Title:    "Dentist",
			Start:    "2026-09-10T14:00:00",
			End:      "2026-09-10T14:30:00",
			Location: "Main St",
			Category: entity.CategoryHealth,
		},
		{ID: "uid-2", Title: "broken", Start: "???", Category: entity.CategoryOther},
	}
	out := ExportICS(events, time.UTC)

	if !strings.Contains(out, "BEGIN:VCALENDAR") || !strings.Contains(out, "END:VCALENDAR") {
		t.Fatalf("not a calendar document:\n%s", out)
	}
	if !strings.Contains(out, "SUMMARY:Dentist") {
		t.Fatalf("missing summary:\n%s", out)
	}
	if !strings.Contains(out, "uid-1") {
		t.Fatalf("missing uid:\n%s", out)
	}
	if strings.Contains(out, "broken") {
		t.Fatalf("event with unparseable start should be skipped:\n%s", out)
	}
}
