package application

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/smartschedule/smartschedule/internal/domain/entity"
	"github.com/smartschedule/smartschedule/internal/infrastructure/jsonfile"
)

type stubExtractor struct {
	drafts []entity.EventDraft
	err    error

	started  chan struct{}
	release  chan struct{}
	timezone string
}

func (s *stubExtractor) Extract(ctx context.Context, text, timezone string) ([]entity.EventDraft, error) {
	s.timezone = timezone
	if s.started != nil {
		close(s.started)
		<-s.release
	}
	return s.drafts, s.err
}

func newScheduleService(t *testing.T, ex DraftExtractor) *ScheduleService {
	t.Helper()
	store, err := jsonfile.NewStore(filepath.Join(t.TempDir(), "store.json"), quietLogger())
	require.NoError(t, err)
	return NewScheduleService(jsonfile.NewEventRepository(store), ex, quietLogger(), time.UTC)
}

func TestSubmitPrependsBatch(t *testing.T) {
	t.Parallel()

	ex := &stubExtractor{drafts: []entity.EventDraft{
		{Title: "Standup", Start: "2026-09-02T09:00:00", End: "2026-09-02T09:15:00", Category: entity.CategoryWork},
		{Title: "Review", Start: "2026-09-02T14:00:00", End: "2026-09-02T15:00:00", Category: entity.CategoryWork},
	}}
	svc := newScheduleService(t, ex)
	ctx := context.Background()

	first, err := svc.Submit(ctx, "u1", "standup and review tomorrow", "")
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.Equal(t, "Standup", first[0].Title)
	require.Equal(t, "Review", first[1].Title)
	require.NotEmpty(t, first[0].ID)
	require.NotEqual(t, first[0].ID, first[1].ID)

	ex.drafts = []entity.EventDraft{
		{Title: "Dentist", Start: "2026-09-03T16:00:00", End: "2026-09-03T17:00:00", Category: entity.CategoryHealth},
	}
	_, err = svc.Submit(ctx, "u1", "dentist thursday", "")
	require.NoError(t, err)

	stored, err := svc.Events.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, stored, 3)
	// Newest batch sits in front, intra-batch order preserved.
	require.Equal(t, "Dentist", stored[0].Title)
	require.Equal(t, "Standup", stored[1].Title)
	require.Equal(t, "Review", stored[2].Title)
}

func TestSubmitDefaultsTimezone(t *testing.T) {
	t.Parallel()

	ex := &stubExtractor{drafts: []entity.EventDraft{{Title: "X", Start: "2026-09-02T09:00:00"}}}
	svc := newScheduleService(t, ex)

	_, err := svc.Submit(context.Background(), "u1", "x", "")
	require.NoError(t, err)
	require.Equal(t, "UTC", ex.timezone)

	_, err = svc.Submit(context.Background(), "u1", "x", "Europe/Berlin")
	require.NoError(t, err)
	require.Equal(t, "Europe/Berlin", ex.timezone)
}

func TestSubmitNoEventsLeavesCollectionAlone(t *testing.T) {
	t.Parallel()

	ex := &stubExtractor{drafts: []entity.EventDraft{}}
	svc := newScheduleService(t, ex)
	ctx := context.Background()

	_, err := svc.Submit(ctx, "u1", "just saying hi", "")
	require.ErrorIs(t, err, ErrNoEventsRecognized)

	stored, err := svc.Events.Load(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestSubmitRejectsBlankPrompt(t *testing.T) {
	t.Parallel()

	svc := newScheduleService(t, &stubExtractor{})

	_, err := svc.Submit(context.Background(), "u1", "   \n\t", "")
	require.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestSubmitRejectsConcurrentSubmission(t *testing.T) {
	t.Parallel()

	ex := &stubExtractor{
		drafts:  []entity.EventDraft{{Title: "X", Start: "2026-09-02T09:00:00"}},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := newScheduleService(t, ex)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(ctx, "u1", "slow one", "")
		done <- err
	}()
	<-ex.started

	// Same user is rejected while the first extraction is outstanding.
	_, err := svc.Submit(ctx, "u1", "second one", "")
	require.ErrorIs(t, err, ErrSubmissionInFlight)

	close(ex.release)
	require.NoError(t, <-done)

	// Once released the user can submit again.
	ex.started = nil
	_, err = svc.Submit(ctx, "u1", "fast one", "")
	require.NoError(t, err)
}

func TestRemoveIsNoOpForUnknownID(t *testing.T) {
	t.Parallel()

	svc := newScheduleService(t, &stubExtractor{})
	ctx := context.Background()

	batch, err := svc.Add(ctx, "u1", []entity.EventDraft{{Title: "Keep", Start: "2026-09-02T09:00:00"}})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, "u1", "no-such-id"))
	stored, err := svc.Events.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, stored, 1)

	require.NoError(t, svc.Remove(ctx, "u1", batch[0].ID))
	stored, err = svc.Events.Load(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestListSortsByStart(t *testing.T) {
	t.Parallel()

	svc := newScheduleService(t, &stubExtractor{})
	ctx := context.Background()

	_, err := svc.Add(ctx, "u1", []entity.EventDraft{
		{Title: "Later", Start: "2026-09-05T10:00:00"},
		{Title: "Broken", Start: "whenever"},
		{Title: "Sooner", Start: "2026-09-01T10:00:00"},
		{Title: "AlsoBroken", Start: ""},
	})
	require.NoError(t, err)

	sorted, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sorted, 4)
	require.Equal(t, "Sooner", sorted[0].Title)
	require.Equal(t, "Later", sorted[1].Title)
	// Unparseable starts trail in their stored order.
	require.Equal(t, "Broken", sorted[2].Title)
	require.Equal(t, "AlsoBroken", sorted[3].Title)
}

func TestListDoesNotMutateStoredOrder(t *testing.T) {
	t.Parallel()

	svc := newScheduleService(t, &stubExtractor{})
	ctx := context.Background()

	_, err := svc.Add(ctx, "u1", []entity.EventDraft{
		{Title: "B", Start: "2026-09-05T10:00:00"},
		{Title: "A", Start: "2026-09-01T10:00:00"},
	})
	require.NoError(t, err)

	_, err = svc.List(ctx, "u1")
	require.NoError(t, err)

	stored, err := svc.Events.Load(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "B", stored[0].Title)
	require.Equal(t, "A", stored[1].Title)
}
