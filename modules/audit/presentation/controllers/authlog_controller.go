package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/iota-uz/teamtrack/modules/audit/domain/entities/authlog"
	"github.com/iota-uz/teamtrack/modules/audit/presentation/mappers"
	"github.com/iota-uz/teamtrack/modules/audit/services"
	"github.com/iota-uz/teamtrack/pkg/application"
	"github.com/iota-uz/teamtrack/pkg/composables"
	"github.com/iota-uz/teamtrack/pkg/httpapi"
	"github.com/iota-uz/teamtrack/pkg/middleware"
)

const (
	defaultAuthLogLimit = 50
	maxAuthLogLimit     = 500
)

type AuthLogsController struct {
	app   application.Application
	audit *services.AuditService
}

func NewAuthLogsController(app application.Application) application.Controller {
	return &AuthLogsController{
		app:   app,
		audit: app.Service(services.AuditService{}).(*services.AuditService),
	}
}

func (c *AuthLogsController) Key() string {
	return "/auth-logs"
}

func (c *AuthLogsController) Register(r *mux.Router) {
	router := r.PathPrefix("/auth-logs").Subrouter()
	router.Use(middleware.RequireAuthorization())
	router.HandleFunc("", c.List).Methods(http.MethodGet)
}

// List returns the auth trail for everyone inside the caller's view. An
// optional ?user_id= re-roots the view on another employee; targets outside
// the caller's scope come back as an empty list rather than an error.
// Additional filters: ?event=login|logout, ?from= and ?to= (YYYY-MM-DD),
// ?limit= and ?offset=.
func (c *AuthLogsController) List(w http.ResponseWriter, r *http.Request) {
	u, err := composables.UseUser(r.Context())
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, "INVALID_TOKEN", "invalid token")
		return
	}

	target := strings.TrimSpace(r.URL.Query().Get("user_id"))
	entries, total, err := c.audit.VisibleAuthEvents(r.Context(), u.EmpID(), target, buildAuthLogFilters(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteEnvelope(w, http.StatusOK, "Auth logs fetched successfully", map[string]any{
		"items": mappers.AuthLogsToViewModels(entries),
		"total": total,
	})
}

// buildAuthLogFilters parses the optional query filters. Unparseable values
// are dropped, not rejected.
func buildAuthLogFilters(r *http.Request) *authlog.FindParams {
	q := r.URL.Query()
	params := &authlog.FindParams{
		Event: strings.TrimSpace(q.Get("event")),
		Limit: defaultAuthLogLimit,
	}

	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		if limit > maxAuthLogLimit {
			limit = maxAuthLogLimit
		}
		params.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil && offset > 0 {
		params.Offset = offset
	}
	if from := strings.TrimSpace(q.Get("from")); from != "" {
		if parsed, err := time.Parse(time.DateOnly, from); err == nil {
			params.From = &parsed
		}
	}
	if to := strings.TrimSpace(q.Get("to")); to != "" {
		if parsed, err := time.Parse(time.DateOnly, to); err == nil {
			params.To = &parsed
		}
	}
	return params
}
