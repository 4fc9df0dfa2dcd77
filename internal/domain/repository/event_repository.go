package repository

import (
	"context"

	"github.com/smartschedule/smartschedule/internal/domain/entity"
)

// EventRepository persists one ordered event collection per user.
// Load returns the collection in stored order (newest extraction batch
// first); callers re-sort for display. A user with no stored collection,
// or with a collection that cannot be decoded, loads as empty.
type EventRepository interface {
	Load(ctx context.Context, userID string) ([]entity.CalendarEvent, error)
	// Replace writes the whole collection for the user, overwriting
	// whatever was stored before. Last writer wins.
	Replace(ctx context.Context, userID string, events []entity.CalendarEvent) error
}
