package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/teamtrack/modules/audit/domain/entities/authlog"
	"github.com/iota-uz/teamtrack/modules/people/domain/entities/session"
	"github.com/iota-uz/teamtrack/pkg/application"
	"github.com/iota-uz/teamtrack/pkg/eventbus"
)

type stubRecorder struct {
	entries []*authlog.Entry
}

func (s *stubRecorder) RecordAuthEvent(_ context.Context, entry *authlog.Entry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func TestSessionEventsHandler_RecordsLoginAndLogout(t *testing.T) {
	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(nil),
	})

	stub := &stubRecorder{}
	handler := NewSessionEventsHandler(app, stub)
	app.EventPublisher().Subscribe(handler.onSessionCreated)
	app.EventPublisher().Subscribe(handler.onSessionDeleted)

	createdAt := time.Now().Add(-time.Minute)
	sess := session.Session{
		Token:     "tok",
		EmpID:     "e1",
		IP:        "10.0.0.1",
		UserAgent: "agent",
		CreatedAt: createdAt,
	}

	app.EventPublisher().Publish(session.CreatedEvent{Result: sess})
	app.EventPublisher().Publish(session.DeletedEvent{Result: sess})

	require.Len(t, stub.entries, 2)

	login := stub.entries[0]
	require.Equal(t, authlog.EventLogin, login.Event)
	require.Equal(t, "e1", login.EmpID)
	require.Equal(t, "10.0.0.1", login.IP)
	require.Equal(t, "agent", login.UserAgent)
	require.Equal(t, createdAt, login.CreatedAt)

	logout := stub.entries[1]
	require.Equal(t, authlog.EventLogout, logout.Event)
	require.Equal(t, "e1", logout.EmpID)
	require.True(t, logout.CreatedAt.IsZero(), "logout entries are stamped at insert time")
}
