package jsonfile

import (
	"context"
	"encoding/json"
	"time"

	"github.com/smartschedule/smartschedule/internal/domain/entity"
	"github.com/smartschedule/smartschedule/internal/domain/repository"
)

// UserRepository stores the user directory inside the shared Store.
type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func toPersisted(u *entity.User) persistedUser {
	return persistedUser{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.Password,
		CreatedAt:    u.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromPersisted(pu persistedUser) *entity.User {
	createdAt, _ := time.Parse(time.RFC3339Nano, pu.CreatedAt)
	return &entity.User{
		ID:        pu.ID,
		Email:     pu.Email,
		Name:      pu.Name,
		Password:  pu.PasswordHash,
		CreatedAt: createdAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.data.Users[u.ID] = toPersisted(u)
	return r.store.saveLocked()
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	pu, ok := r.store.data.Users[id]
	if !ok {
		return nil, nil
	}
	return fromPersisted(pu), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, pu := range r.store.data.Users {
		if pu.Email == email {
			return fromPersisted(pu), nil
		}
	}
	return nil, nil
}

// SessionRepository stores session records inside the shared Store.
type SessionRepository struct {
	store *Store
}

func NewSessionRepository(store *Store) *SessionRepository {
	return &SessionRepository{store: store}
}

func (r *SessionRepository) Save(ctx context.Context, s *entity.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.data.Sessions[s.ID] = raw
	return r.store.saveLocked()
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*entity.Session, error) {
	r.store.mu.RLock()
	raw, ok := r.store.data.Sessions[id]
	r.store.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var s entity.Session
	if err := json.Unmarshal(raw, &s); err != nil || !s.Valid() {
		// Corrupt persisted session reads as absent.
		return nil, nil
	}
	return &s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.data.Sessions[id]; !ok {
		return nil
	}
	delete(r.store.data.Sessions, id)
	return r.store.saveLocked()
}

var (
	_ repository.UserRepository    = (*UserRepository)(nil)
	_ repository.SessionRepository = (*SessionRepository)(nil)
)
