package view

import (
	"fmt"
	"strings"
	"time"
)

const datePrefixMarker = "On "

// ComposeDayPrompt folds a clicked calendar day into the current input
// text. An empty input, or one that already begins with a date prefix,
// is replaced by the new prefix; anything else gets the date clause
// appended.
func ComposeDayPrompt(current string, date time.Time) string {
	formatted := fmt.Sprintf("%s, %s %d", date.Weekday(), date.Month(), date.Day())
	prefix := datePrefixMarker + formatted + ", "
	if current == "" || strings.HasPrefix(current, datePrefixMarker) {
		return prefix
	}
	return current + " on " + formatted
}
