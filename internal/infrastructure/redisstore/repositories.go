package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smartschedule/smartschedule/internal/domain/entity"
	"github.com/smartschedule/smartschedule/internal/domain/repository"
	"github.com/smartschedule/smartschedule/pkg/helpers"
)

// Key layout mirrors the file driver's namespaces: a user record per id,
// an email index for the case-sensitive lookup, one session record per
// session id, and one JSON-serialized event collection per user.
func userKey(id string) string       { return "user:" + id }
func emailKey(email string) string   { return "user:email:" + email }
func sessionKey(id string) string    { return "session:" + id }
func eventsKey(userID string) string { return "events:" + userID }

// UserRepository persists the user directory in redis.
type UserRepository struct {
	rdb *redis.Client
}

func NewUserRepository(rdb *redis.Client) *UserRepository {
	return &UserRepository{rdb: rdb}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if err := helpers.RedisSetJSON(ctx, r.rdb, userKey(u.ID), u, 0); err != nil {
		return err
	}
	return r.rdb.Set(ctx, emailKey(u.Email), u.ID, 0).Err()
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var u entity.User
	found, err := helpers.RedisGetJSON(ctx, r.rdb, userKey(id), &u)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	id, err := r.rdb.Get(ctx, emailKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// SessionRepository persists session records in redis with the
// configured TTL.
type SessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionRepository(rdb *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{rdb: rdb, ttl: ttl}
}

func (r *SessionRepository) Save(ctx context.Context, s *entity.Session) error {
	return helpers.RedisSetJSON(ctx, r.rdb, sessionKey(s.ID), s, r.ttl)
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*entity.Session, error) {
	var s entity.Session
	found, err := helpers.RedisGetJSON(ctx, r.rdb, sessionKey(id), &s)
	if err != nil {
		// Undecodable or unavailable records read as no session.
		return nil, nil
	}
	if !found || !s.Valid() {
		return nil, nil
	}
	return &s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return helpers.RedisDel(ctx, r.rdb, sessionKey(id))
}

// EventRepository persists one event collection per user in redis.
type EventRepository struct {
	rdb *redis.Client
}

func NewEventRepository(rdb *redis.Client) *EventRepository {
	return &EventRepository{rdb: rdb}
}

func (r *EventRepository) Load(ctx context.Context, userID string) ([]entity.CalendarEvent, error) {
	var events []entity.CalendarEvent
	found, err := helpers.RedisGetJSON(ctx, r.rdb, eventsKey(userID), &events)
	if err != nil || !found || events == nil {
		// Missing and undecodable collections both load as empty.
		return []entity.CalendarEvent{}, nil
	}
	return events, nil
}

func (r *EventRepository) Replace(ctx context.Context, userID string, events []entity.CalendarEvent) error {
	if events == nil {
		events = []entity.CalendarEvent{}
	}
	return helpers.RedisSetJSON(ctx, r.rdb, eventsKey(userID), events, 0)
}

var (
	_ repository.UserRepository    = (*UserRepository)(nil)
	_ repository.SessionRepository = (*SessionRepository)(nil)
	_ repository.EventRepository   = (*EventRepository)(nil)
)
