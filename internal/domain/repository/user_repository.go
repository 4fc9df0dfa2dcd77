package repository

import (
	"context"

	"github.com/smartschedule/smartschedule/internal/domain/entity"
)

// UserRepository defines the interface for the persisted user directory.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail matches the stored email exactly (case-sensitive).
	// A nil user with nil error means no match.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// SessionRepository persists the current-session records.
type SessionRepository interface {
	Save(ctx context.Context, s *entity.Session) error
	// Get returns nil (no error) when the session is absent or the
	// persisted record cannot be decoded.
	Get(ctx context.Context, id string) (*entity.Session, error)
	// Delete is idempotent.
	Delete(ctx context.Context, id string) error
}
