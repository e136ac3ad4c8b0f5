package composables

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/iota-uz/teamtrack/modules/people/domain/aggregates/employee"
	"github.com/iota-uz/teamtrack/modules/people/domain/entities/session"
	"github.com/iota-uz/teamtrack/pkg/constants"
)

var (
	ErrNoSessionFound = errors.New("no session found in context")
	ErrNoUserFound    = errors.New("no user found in context")
)

// WithSession returns a new context with the session.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, constants.SessionKey, sess)
}

// UseSession returns the session from the context.
func UseSession(ctx context.Context) (*session.Session, error) {
	sess, ok := ctx.Value(constants.SessionKey).(*session.Session)
	if !ok {
		return nil, ErrNoSessionFound
	}
	return sess, nil
}

// WithUser returns a new context with the authenticated employee.
func WithUser(ctx context.Context, u employee.Employee) context.Context {
	return context.WithValue(ctx, constants.UserKey, u)
}

// UseUser returns the authenticated employee from the context.
func UseUser(ctx context.Context) (employee.Employee, error) {
	u, ok := ctx.Value(constants.UserKey).(employee.Employee)
	if !ok {
		return nil, ErrNoUserFound
	}
	return u, nil
}
