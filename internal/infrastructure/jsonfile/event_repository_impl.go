package jsonfile

import (
	"context"
	"encoding/json"

	"github.com/smartschedule/smartschedule/internal/domain/entity"
	"github.com/smartschedule/smartschedule/internal/domain/repository"
)

// EventRepository stores one event collection per user, keyed by the
// raw user identifier, inside the shared Store.
type EventRepository struct {
	store *Store
}

func NewEventRepository(store *Store) *EventRepository {
	return &EventRepository{store: store}
}

func (r *EventRepository) Load(ctx context.Context, userID string) ([]entity.CalendarEvent, error) {
	r.store.mu.RLock()
	raw, ok := r.store.data.Events[userID]
	r.store.mu.RUnlock()
	if !ok {
		return []entity.CalendarEvent{}, nil
	}
	var events []entity.CalendarEvent
	if err := json.Unmarshal(raw, &events); err != nil {
		if r.store.logger != nil {
			r.store.logger.WithError(err).WithField("user_id", userID).Warn("stored events undecodable, loading empty")
		}
		return []entity.CalendarEvent{}, nil
	}
	if events == nil {
		events = []entity.CalendarEvent{}
	}
	return events, nil
}

func (r *EventRepository) Replace(ctx context.Context, userID string, events []entity.CalendarEvent) error {
	if events == nil {
		events = []entity.CalendarEvent{}
	}
	raw, err := json.Marshal(events)
	if err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.data.Events[userID] = raw
	return r.store.saveLocked()
}

var _ repository.EventRepository = (*EventRepository)(nil)
