package application

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/smartschedule/smartschedule/internal/infrastructure/jsonfile"
	"github.com/smartschedule/smartschedule/pkg/helpers"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	store, err := jsonfile.NewStore(filepath.Join(t.TempDir(), "store.json"), quietLogger())
	require.NoError(t, err)
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(
		jsonfile.NewUserRepository(store),
		jsonfile.NewSessionRepository(store),
		jwt,
		quietLogger(),
	)
}

func TestSignupThenLogin(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	ctx := context.Background()

	st, err := svc.Signup(ctx, "ana@example.com", "hunter2secret", "Ana")
	require.NoError(t, err)
	require.NotEmpty(t, st.Token)
	require.Equal(t, "Ana", st.Session.Name)

	// Signup logs the user in; the session must be retrievable.
	sess, err := svc.CurrentSession(ctx, st.Session.ID)
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.Equal(t, st.Session.UserID, sess.UserID)

	st2, err := svc.Login(ctx, "ana@example.com", "hunter2secret")
	require.NoError(t, err)
	require.Equal(t, st.Session.UserID, st2.Session.UserID)
	require.NotEqual(t, st.Session.ID, st2.Session.ID)
}

func TestSignupDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "ana@example.com", "hunter2secret", "Ana")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "ana@example.com", "otherpassword", "Ana Again")
	require.ErrorIs(t, err, ErrDuplicateUser)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "ana@example.com", "hunter2secret", "Ana")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ana@example.com", "wrongpassword")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email reads the same as a wrong password.
	_, err = svc.Login(ctx, "nobody@example.com", "hunter2secret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutIsIdempotent(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	ctx := context.Background()

	st, err := svc.Signup(ctx, "ana@example.com", "hunter2secret", "Ana")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, st.Session.ID))

	sess, err := svc.CurrentSession(ctx, st.Session.ID)
	require.NoError(t, err)
	require.Nil(t, sess)

	// A second logout of the same session is a no-op.
	require.NoError(t, svc.Logout(ctx, st.Session.ID))
	require.NoError(t, svc.Logout(ctx, ""))
}
