package services

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/teamtrack/modules/people/domain/entities/session"
	"github.com/iota-uz/teamtrack/modules/people/domain/hierarchy"
	"github.com/iota-uz/teamtrack/modules/people/infrastructure/persistence"
	"github.com/iota-uz/teamtrack/pkg/composables"
)

type memorySessionRepo struct {
	byToken map[string]*session.Session
	byEmp   map[string]string
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{
		byToken: map[string]*session.Session{},
		byEmp:   map[string]string{},
	}
}

func (m *memorySessionRepo) Save(_ context.Context, s *session.Session) error {
	if prev, ok := m.byEmp[s.EmpID]; ok && prev != s.Token {
		delete(m.byToken, prev)
	}
	copied := *s
	m.byToken[s.Token] = &copied
	m.byEmp[s.EmpID] = s.Token
	return nil
}

func (m *memorySessionRepo) FindByToken(_ context.Context, token string) (*session.Session, error) {
	s, ok := m.byToken[token]
	if !ok {
		return nil, persistence.ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *memorySessionRepo) DeleteByToken(_ context.Context, token string) error {
	if s, ok := m.byToken[token]; ok {
		delete(m.byEmp, s.EmpID)
		delete(m.byToken, token)
	}
	return nil
}

func newAuthFixture() (*memoryEmployeeRepo, *memorySessionRepo, *capturingPublisher, *AuthService) {
	repo := &memoryEmployeeRepo{}
	sessions := newMemorySessionRepo()
	publisher := &capturingPublisher{}
	engine := hierarchy.NewEngine(hierarchy.DefaultRankTable(), NewEmployeeDirectory(repo))
	employees := NewEmployeeService(repo, engine, publisher)
	return repo, sessions, publisher, NewAuthService(sessions, employees, publisher, time.Hour)
}

func requestContext() context.Context {
	return composables.WithParams(txContext(), &composables.Params{
		IP:        "10.1.2.3",
		UserAgent: "go-test",
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := requestContext()

	t.Run("unknown employee", func(t *testing.T) {
		_, _, _, auth := newAuthFixture()

		_, _, err := auth.Login(ctx, "ghost")
		requireCoded(t, err, "USER_NOT_FOUND", 400)
	})

	t.Run("issues a fresh hex token", func(t *testing.T) {
		repo, _, publisher, auth := newAuthFixture()
		seedEmployee(t, repo, "e1", "SE1", "")

		sess, u, err := auth.Login(ctx, "e1")
		require.NoError(t, err)
		require.Equal(t, "e1", u.EmpID())
		require.Len(t, sess.Token, 32)
		_, err = hex.DecodeString(sess.Token)
		require.NoError(t, err)
		require.Equal(t, "e1", sess.EmpID)
		require.Equal(t, "10.1.2.3", sess.IP)
		require.Equal(t, "go-test", sess.UserAgent)
		require.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, 5*time.Second)

		require.Len(t, publisher.events, 1)
		ev, ok := publisher.events[0].(session.CreatedEvent)
		require.True(t, ok)
		require.Equal(t, sess.Token, ev.Result.Token)

		authorized, err := auth.Authorize(ctx, sess.Token)
		require.NoError(t, err)
		require.Equal(t, "e1", authorized.EmpID)
	})

	t.Run("relogin displaces the previous session", func(t *testing.T) {
		repo, _, _, auth := newAuthFixture()
		seedEmployee(t, repo, "e1", "SE1", "")

		first, _, err := auth.Login(ctx, "e1")
		require.NoError(t, err)
		second, _, err := auth.Login(ctx, "e1")
		require.NoError(t, err)
		require.NotEqual(t, first.Token, second.Token)

		_, err = auth.Authorize(ctx, first.Token)
		require.ErrorIs(t, err, persistence.ErrSessionNotFound)
		_, err = auth.Authorize(ctx, second.Token)
		require.NoError(t, err)
	})
}

func TestAuthService_Authorize(t *testing.T) {
	ctx := requestContext()

	t.Run("unknown token", func(t *testing.T) {
		_, _, _, auth := newAuthFixture()

		_, err := auth.Authorize(ctx, "deadbeef")
		require.ErrorIs(t, err, persistence.ErrSessionNotFound)
	})

	t.Run("expired session rejected", func(t *testing.T) {
		repo, sessions, _, auth := newAuthFixture()
		seedEmployee(t, repo, "e1", "SE1", "")
		require.NoError(t, sessions.Save(ctx, &session.Session{
			Token:     "stale",
			EmpID:     "e1",
			ExpiresAt: time.Now().Add(-time.Minute),
			CreatedAt: time.Now().Add(-2 * time.Hour),
		}))

		_, err := auth.Authorize(ctx, "stale")
		require.ErrorIs(t, err, persistence.ErrSessionNotFound)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := requestContext()

	t.Run("removes the session and publishes", func(t *testing.T) {
		repo, _, publisher, auth := newAuthFixture()
		seedEmployee(t, repo, "e1", "SE1", "")

		sess, _, err := auth.Login(ctx, "e1")
		require.NoError(t, err)

		require.NoError(t, auth.Logout(ctx, sess.Token))
		_, err = auth.Authorize(ctx, sess.Token)
		require.ErrorIs(t, err, persistence.ErrSessionNotFound)

		require.Len(t, publisher.events, 2)
		ev, ok := publisher.events[1].(session.DeletedEvent)
		require.True(t, ok)
		require.Equal(t, sess.Token, ev.Result.Token)
	})

	t.Run("unknown token is tolerated", func(t *testing.T) {
		_, _, publisher, auth := newAuthFixture()

		require.NoError(t, auth.Logout(ctx, "deadbeef"))
		require.Empty(t, publisher.events)
	})

	t.Run("uses the session the middleware resolved", func(t *testing.T) {
		_, _, publisher, auth := newAuthFixture()

		sess := &session.Session{Token: "ctxtoken", EmpID: "e1"}
		sessCtx := composables.WithSession(ctx, sess)

		// The session only exists in the context; a store lookup would miss.
		require.NoError(t, auth.Logout(sessCtx, "ctxtoken"))
		require.Len(t, publisher.events, 1)
		ev, ok := publisher.events[0].(session.DeletedEvent)
		require.True(t, ok)
		require.Equal(t, "ctxtoken", ev.Result.Token)
	})
}
