package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/go-faster/errors"

	"github.com/iota-uz/teamtrack/modules/people/domain/aggregates/employee"
	"github.com/iota-uz/teamtrack/modules/people/domain/entities/session"
	"github.com/iota-uz/teamtrack/modules/people/infrastructure/persistence"
	"github.com/iota-uz/teamtrack/pkg/composables"
	"github.com/iota-uz/teamtrack/pkg/configuration"
	"github.com/iota-uz/teamtrack/pkg/eventbus"
	"github.com/iota-uz/teamtrack/pkg/serrors"
)

type AuthService struct {
	sessions  session.Repository
	employees *EmployeeService
	publisher eventbus.EventBus
	duration  time.Duration
}

func NewAuthService(sessions session.Repository, employees *EmployeeService, publisher eventbus.EventBus, duration time.Duration) *AuthService {
	return &AuthService{
		sessions:  sessions,
		employees: employees,
		publisher: publisher,
		duration:  duration,
	}
}

// Login verifies the employee exists and issues a fresh session token. Any
// previous session held by the same employee is displaced by the save.
func (s *AuthService) Login(ctx context.Context, empID string) (*session.Session, employee.Employee, error) {
	u, err := s.employees.GetByEmpID(ctx, empID)
	if errors.Is(err, persistence.ErrEmployeeNotFound) {
		return nil, nil, serrors.BadRequest("USER_NOT_FOUND", "user not found")
	}
	if err != nil {
		return nil, nil, err
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, nil, err
	}

	ip, ok := composables.UseIP(ctx)
	if !ok {
		configuration.Use().Logger().Warnf("login for %s without request params, IP unknown", empID)
		ip = "0.0.0.0"
	}
	userAgent, ok := composables.UseUserAgent(ctx)
	if !ok {
		userAgent = "Unknown"
	}

	sess := &session.Session{
		Token:     token,
		EmpID:     u.EmpID(),
		IP:        ip,
		UserAgent: userAgent,
		ExpiresAt: time.Now().Add(s.duration),
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, nil, err
	}
	s.publisher.Publish(session.CreatedEvent{Result: *sess})
	return sess, u, nil
}

// Authorize resolves a token to its live session.
func (s *AuthService) Authorize(ctx context.Context, token string) (*session.Session, error) {
	sess, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess.IsExpired() {
		return nil, persistence.ErrSessionNotFound
	}
	return sess, nil
}

// Logout drops the session behind token. Unknown tokens are not an error, so
// repeated logouts stay idempotent. The auth middleware already resolved the
// request's own session, so the context copy is used when it matches.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	sess, err := composables.UseSession(ctx)
	if err != nil || sess.Token != token {
		sess, err = s.sessions.FindByToken(ctx, token)
		if errors.Is(err, persistence.ErrSessionNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	if err := s.sessions.DeleteByToken(ctx, token); err != nil {
		return err
	}
	s.publisher.Publish(session.DeletedEvent{Result: *sess})
	return nil
}

func newSessionToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
