package session

import "context"

type Repository interface {
	// Save stores the session and displaces any previous session held by the
	// same employee, so one token per employee stays live at a time.
	Save(ctx context.Context, s *Session) error
	FindByToken(ctx context.Context, token string) (*Session, error)
	DeleteByToken(ctx context.Context, token string) error
}
