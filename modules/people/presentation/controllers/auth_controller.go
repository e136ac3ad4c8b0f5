package controllers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/iota-uz/teamtrack/modules/people/presentation/mappers"
	"github.com/iota-uz/teamtrack/modules/people/services"
	"github.com/iota-uz/teamtrack/pkg/application"
	"github.com/iota-uz/teamtrack/pkg/composables"
	"github.com/iota-uz/teamtrack/pkg/httpapi"
)

type loginRequest struct {
	EmpID string `json:"emp_id"`
}

type AuthController struct {
	app  application.Application
	auth *services.AuthService
}

func NewAuthController(app application.Application) application.Controller {
	return &AuthController{
		app:  app,
		auth: app.Service(services.AuthService{}).(*services.AuthService),
	}
}

func (c *AuthController) Key() string {
	return "/login"
}

func (c *AuthController) Register(r *mux.Router) {
	r.HandleFunc("/login", c.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", c.Logout).Methods(http.MethodPost)
}

// Login swaps an emp_id for a session token. There is no password in this
// system; possession of the emp_id is the credential.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sess, u, err := c.auth.Login(r.Context(), strings.TrimSpace(req.EmpID))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	_ = httpapi.WriteEnvelope(w, http.StatusOK, "Login successful", map[string]any{
		"token":    sess.Token,
		"userData": mappers.EmployeeToViewModel(u),
	})
}

// Logout requires a token header but succeeds even when the token is unknown
// or already expired, so clients can always clear their state.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	token := ""
	if params, ok := composables.UseParams(r.Context()); ok {
		token = params.Token
	}
	if token == "" {
		writeError(w, r, http.StatusUnauthorized, "MISSING_TOKEN", "missing token")
		return
	}

	if err := c.auth.Logout(r.Context(), token); err != nil {
		writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteEnvelope(w, http.StatusOK, "Logout successful", nil)
}
