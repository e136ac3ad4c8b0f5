package authlog

import (
	"context"
	"time"
)

const (
	EventLogin  = "login"
	EventLogout = "logout"
)

// Entry is one row of the authentication audit trail. A zero CreatedAt lets
// the repository stamp the insert time.
type Entry struct {
	ID        uint
	EmpID     string
	Event     string
	IP        string
	UserAgent string
	CreatedAt time.Time
}

// FindParams restricts audit listings. A nil EmpIDs means unrestricted; an
// empty non-nil slice matches nothing, mirroring the other scoped listings.
type FindParams struct {
	EmpIDs []string
	Event  string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

type Repository interface {
	List(ctx context.Context, params *FindParams) ([]*Entry, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	Create(ctx context.Context, entry *Entry) error
}
