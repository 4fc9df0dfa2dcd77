package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/smartschedule/smartschedule/internal/domain/entity"
	repo "github.com/smartschedule/smartschedule/internal/domain/repository"
	"github.com/smartschedule/smartschedule/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateUser      = errors.New("user already exists with this email")
)

// AuthService owns users and sessions. Presence of a persisted session
// is the sole authentication gate; the JWT in the cookie only locates
// the record.
type AuthService struct {
	Users    repo.UserRepository
	Sessions repo.SessionRepository
	JWT      *helpers.JWTManager
	Logger   *logrus.Logger
}

func NewAuthService(users repo.UserRepository, sessions repo.SessionRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Sessions: sessions, JWT: jwt, Logger: logger}
}

// SessionToken pairs a persisted session with its signed cookie value.
type SessionToken struct {
	Session *entity.Session
	Token   string
	Expiry  time.Time
}

func (s *AuthService) issueSession(ctx context.Context, u *entity.User) (*SessionToken, error) {
	sess := &entity.Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	token, exp, err := s.JWT.GenerateSessionToken(sess.ID, u.ID)
	if err != nil {
		return nil, err
	}
	return &SessionToken{Session: sess, Token: token, Expiry: exp}, nil
}

// Login validates email/password and writes a fresh session.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*SessionToken, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issueSession(ctx, u)
}

// Signup creates a new user and logs it in. The email must not collide
// with any stored user (case-sensitive exact match).
func (s *AuthService) Signup(ctx context.Context, email, password, name string) (*SessionToken, error) {
	existing, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateUser
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Password:  hash,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID}).Info("user created")
	}
	return s.issueSession(ctx, u)
}

// Logout deletes the session record; deleting an already-absent
// session is a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.Sessions.Delete(ctx, sessionID)
}

// CurrentSession returns the persisted session for the id, or nil when
// it is absent or corrupt.
func (s *AuthService) CurrentSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	if sessionID == "" {
		return nil, nil
	}
	return s.Sessions.Get(ctx, sessionID)
}
