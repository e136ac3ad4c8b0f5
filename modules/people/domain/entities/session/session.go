package session

import "time"

type Session struct {
	Token     string
	EmpID     string
	IP        string
	UserAgent string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s *Session) IsExpired() bool {
	return s.ExpiresAt.Before(time.Now())
}

type CreatedEvent struct {
	Result Session
}

type DeletedEvent struct {
	Result Session
}
