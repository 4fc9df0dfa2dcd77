package application

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/smartschedule/smartschedule/internal/domain/entity"
	repo "github.com/smartschedule/smartschedule/internal/domain/repository"
)

var (
	// ErrNoEventsRecognized is the soft condition: extraction worked but
	// produced zero drafts. The collection is never mutated in that case.
	ErrNoEventsRecognized = errors.New("no events recognized")
	// ErrSubmissionInFlight rejects a second extraction while one is
	// already outstanding for the same user.
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	// ErrEmptyPrompt rejects blank input before any external call.
	ErrEmptyPrompt = errors.New("prompt is empty")
)

// DraftExtractor is what the schedule service needs from the extractor.
type DraftExtractor interface {
	Extract(ctx context.Context, text, timezone string) ([]entity.EventDraft, error)
}

// ScheduleService owns the per-user event collections.
type ScheduleService struct {
	Events    repo.EventRepository
	Extractor DraftExtractor
	Logger    *logrus.Logger
	Location  *time.Location

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewScheduleService(events repo.EventRepository, ex DraftExtractor, logger *logrus.Logger, loc *time.Location) *ScheduleService {
	if loc == nil {
		loc = time.UTC
	}
	return &ScheduleService{
		Events:    events,
		Extractor: ex,
		Logger:    logger,
		Location:  loc,
		inFlight:  make(map[string]struct{}),
	}
}

// acquire marks an extraction as outstanding for the user. It reports
// false when one already is.
func (s *ScheduleService) acquire(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[userID]; busy {
		return false
	}
	s.inFlight[userID] = struct{}{}
	return true
}

func (s *ScheduleService) release(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, userID)
}

// Submit runs one extraction for the user and prepends the resulting
// events to their collection. Extraction errors propagate unchanged;
// zero drafts yield ErrNoEventsRecognized and leave the collection
// untouched.
func (s *ScheduleService) Submit(ctx context.Context, userID, text, timezone string) ([]entity.CalendarEvent, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyPrompt
	}
	if !s.acquire(userID) {
		return nil, ErrSubmissionInFlight
	}
	defer s.release(userID)

	if timezone == "" {
		timezone = s.Location.String()
	}
	drafts, err := s.Extractor.Extract(ctx, text, timezone)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Error("extraction failed")
		}
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, ErrNoEventsRecognized
	}
	return s.Add(ctx, userID, drafts)
}

// Add assigns each draft a fresh identifier and prepends the batch,
// preserving intra-batch order, then persists the whole collection.
func (s *ScheduleService) Add(ctx context.Context, userID string, drafts []entity.EventDraft) ([]entity.CalendarEvent, error) {
	existing, err := s.Events.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	batch := make([]entity.CalendarEvent, 0, len(drafts))
	for _, d := range drafts {
		batch = append(batch, entity.CalendarEvent{
			ID:          uuid.NewString(),
			Title:       d.Title,
			Start:       d.Start,
			End:         d.End,
			Description: d.Description,
			Location:    d.Location,
			Attendees:   d.Attendees,
			Category:    d.Category,
		})
	}
	combined := append(batch, existing...)
	if err := s.Events.Replace(ctx, userID, combined); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": userID, "added": len(batch)}).Info("events added")
	}
	return batch, nil
}

// Remove deletes the event with the given id; absent ids are a no-op.
func (s *ScheduleService) Remove(ctx context.Context, userID, eventID string) error {
	events, err := s.Events.Load(ctx, userID)
	if err != nil {
		return err
	}
	kept := events[:0]
	for _, e := range events {
		if e.ID != eventID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(events) {
		return nil
	}
	return s.Events.Replace(ctx, userID, kept)
}

// List returns the user's events sorted ascending by parsed start
// instant. Ties and unparseable starts keep their stored order;
// unparseable starts sort after everything else.
func (s *ScheduleService) List(ctx context.Context, userID string) ([]entity.CalendarEvent, error) {
	events, err := s.Events.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	sorted := make([]entity.CalendarEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, oki := sorted[i].StartTime(s.Location)
		tj, okj := sorted[j].StartTime(s.Location)
		if oki != okj {
			return oki
		}
		if !oki {
			return false
		}
		return ti.Before(tj)
	})
	return sorted, nil
}
