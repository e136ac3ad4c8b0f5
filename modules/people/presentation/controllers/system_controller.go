package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/iota-uz/teamtrack/pkg/application"
	"github.com/iota-uz/teamtrack/pkg/httpapi"
)

type SystemController struct {
	app application.Application
}

func NewSystemController(app application.Application) application.Controller {
	return &SystemController{app: app}
}

func (c *SystemController) Key() string {
	return "/"
}

func (c *SystemController) Register(r *mux.Router) {
	r.HandleFunc("/", c.Welcome).Methods(http.MethodGet)
	r.HandleFunc("/health", c.Health).Methods(http.MethodGet)
}

func (c *SystemController) Welcome(w http.ResponseWriter, r *http.Request) {
	_ = httpapi.WriteEnvelope(w, http.StatusOK, "Welcome to the Automation Backend", nil)
}

// Health pings both stores. Sessions live in Redis and everything else in
// Postgres, so the service is only as alive as the two of them together.
func (c *SystemController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{"postgres": "up", "redis": "up"}
	status := http.StatusOK
	if err := c.app.DB().Ping(ctx); err != nil {
		checks["postgres"] = "down"
		status = http.StatusServiceUnavailable
	}
	if err := c.app.RDB().Ping(ctx).Err(); err != nil {
		checks["redis"] = "down"
		status = http.StatusServiceUnavailable
	}

	message := "Health check passed"
	if status != http.StatusOK {
		message = "Health check failed"
	}
	_ = httpapi.WriteEnvelope(w, status, message, checks)
}
