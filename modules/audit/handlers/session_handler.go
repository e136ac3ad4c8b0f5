package handlers

import (
	"context"
	"time"

	"github.com/iota-uz/teamtrack/modules/audit/domain/entities/authlog"
	"github.com/iota-uz/teamtrack/modules/audit/services"
	"github.com/iota-uz/teamtrack/modules/people/domain/entities/session"
	"github.com/iota-uz/teamtrack/pkg/application"
	"github.com/iota-uz/teamtrack/pkg/composables"
	"github.com/iota-uz/teamtrack/pkg/configuration"
)

// authEventRecorder is the slice of the audit service the handler needs;
// tests substitute it.
type authEventRecorder interface {
	RecordAuthEvent(ctx context.Context, entry *authlog.Entry) error
}

// SessionEventsHandler turns session lifecycle events into auth_logs rows.
// Recording is best effort: a failed insert is logged and never interrupts
// the login or logout that produced the event.
type SessionEventsHandler struct {
	app      application.Application
	recorder authEventRecorder
}

func NewSessionEventsHandler(app application.Application, recorder authEventRecorder) *SessionEventsHandler {
	return &SessionEventsHandler{
		app:      app,
		recorder: recorder,
	}
}

func RegisterSessionEventHandlers(app application.Application) {
	handler := NewSessionEventsHandler(app, app.Service(services.AuditService{}).(*services.AuditService))
	app.EventPublisher().Subscribe(handler.onSessionCreated)
	app.EventPublisher().Subscribe(handler.onSessionDeleted)
}

func (h *SessionEventsHandler) onSessionCreated(event session.CreatedEvent) {
	h.record(authlog.EventLogin, event.Result, event.Result.CreatedAt)
}

func (h *SessionEventsHandler) onSessionDeleted(event session.DeletedEvent) {
	// Sessions carry no deletion time; the repository stamps the insert.
	h.record(authlog.EventLogout, event.Result, time.Time{})
}

func (h *SessionEventsHandler) record(eventName string, sess session.Session, at time.Time) {
	ctx := composables.WithPool(context.Background(), h.app.DB())

	entry := &authlog.Entry{
		EmpID:     sess.EmpID,
		Event:     eventName,
		IP:        sess.IP,
		UserAgent: sess.UserAgent,
		CreatedAt: at,
	}
	if err := h.recorder.RecordAuthEvent(ctx, entry); err != nil {
		configuration.Use().Logger().WithError(err).
			WithField("emp_id", sess.EmpID).
			Warn("failed to persist auth log")
	}
}
