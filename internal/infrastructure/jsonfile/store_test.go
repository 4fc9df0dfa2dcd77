package jsonfile

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/smartschedule/smartschedule/internal/domain/entity"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestStoreSurvivesReload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data", "store.json")
	ctx := context.Background()

	store, err := NewStore(path, testLogger())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	users := NewUserRepository(store)
	u := &entity.User{ID: "u1", Email: "ana@example.com", Name: "Ana", Password: "hash", CreatedAt: time.Now().UTC()}
	if err := users.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	events := NewEventRepository(store)
	batch := []entity.CalendarEvent{{ID: "e1", Title: "Dentist", Start: "2026-09-03T16:00:00", Category: entity.CategoryHealth}}
	if err := events.Replace(ctx, "u1", batch); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	reopened, err := NewStore(path, testLogger())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := NewUserRepository(reopened).GetByEmail(ctx, "ana@example.com")
	if err != nil || got == nil {
		t.Fatalf("GetByEmail after reload = %v, %v", got, err)
	}
	if got.ID != "u1" || got.Password != "hash" {
		t.Fatalf("unexpected user after reload: %+v", got)
	}
	evs, err := NewEventRepository(reopened).Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load after reload: %v", err)
	}
	if len(evs) != 1 || evs[0].Title != "Dentist" {
		t.Fatalf("unexpected events after reload: %+v", evs)
	}
}

func TestStoreMissingFileStartsEmpty(t *testing.T) {
	t.Parallel()

	store, err := NewStore(filepath.Join(t.TempDir(), "nope.json"), testLogger())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	u, err := NewUserRepository(store).GetByID(context.Background(), "u1")
	if err != nil || u != nil {
		t.Fatalf("expected empty store, got %v, %v", u, err)
	}
}

func TestStoreCorruptFileStartsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	store, err := NewStore(path, testLogger())
	if err != nil {
		t.Fatalf("corrupt file must not be fatal: %v", err)
	}
	evs, err := NewEventRepository(store).Load(context.Background(), "u1")
	if err != nil || len(evs) != 0 {
		t.Fatalf("expected empty events, got %v, %v", evs, err)
	}
}

func TestCorruptEventCollectionReadsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "store.json")
	seed := `{"users":{},"sessions":{},"events":{"u1":"not an array","u2":[{"id":"e1","title":"Fine"}]}}`
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	store, err := NewStore(path, testLogger())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	events := NewEventRepository(store)
	ctx := context.Background()

	evs, err := events.Load(ctx, "u1")
	if err != nil || len(evs) != 0 {
		t.Fatalf("corrupt collection should read empty, got %v, %v", evs, err)
	}
	// An undamaged neighbor collection is unaffected.
	evs, err = events.Load(ctx, "u2")
	if err != nil || len(evs) != 1 || evs[0].Title != "Fine" {
		t.Fatalf("unexpected neighbor events: %v, %v", evs, err)
	}
}

func TestCorruptSessionReadsAbsent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "store.json")
	seed := `{"users":{},"sessions":{"s1":42,"s2":{"id":"s2","user_id":""}},"events":{}}`
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	store, err := NewStore(path, testLogger())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	sessions := NewSessionRepository(store)
	ctx := context.Background()

	for _, id := range []string{"s1", "s2", "s3"} {
		s, err := sessions.Get(ctx, id)
		if err != nil || s != nil {
			t.Fatalf("session %q should read absent, got %v, %v", id, s, err)
		}
	}
}

func TestEventCollectionsAreIsolatedPerUser(t *testing.T) {
	t.Parallel()

	store, err := NewStore(filepath.Join(t.TempDir(), "store.json"), testLogger())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	events := NewEventRepository(store)
	ctx := context.Background()

	if err := events.Replace(ctx, "u1", []entity.CalendarEvent{{ID: "e1", Title: "Mine"}}); err != nil {
		t.Fatalf("Replace u1: %v", err)
	}
	if err := events.Replace(ctx, "u2", []entity.CalendarEvent{{ID: "e2", Title: "Yours"}}); err != nil {
		t.Fatalf("Replace u2: %v", err)
	}

	mine, _ := events.Load(ctx, "u1")
	yours, _ := events.Load(ctx, "u2")
	if len(mine) != 1 || mine[0].Title != "Mine" {
		t.Fatalf("u1 events: %+v", mine)
	}
	if len(yours) != 1 || yours[0].Title != "Yours" {
		t.Fatalf("u2 events: %+v", yours)
	}

	// Clearing one user leaves the other intact.
	if err := events.Replace(ctx, "u1", nil); err != nil {
		t.Fatalf("clear u1: %v", err)
	}
	mine, _ = events.Load(ctx, "u1")
	yours, _ = events.Load(ctx, "u2")
	if len(mine) != 0 || len(yours) != 1 {
		t.Fatalf("isolation broken: mine=%v yours=%v", mine, yours)
	}
}
