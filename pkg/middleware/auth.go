package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/iota-uz/teamtrack/modules/people/services"
	"github.com/iota-uz/teamtrack/pkg/application"
	"github.com/iota-uz/teamtrack/pkg/composables"
	"github.com/iota-uz/teamtrack/pkg/httpapi"
)

// TokenFromRequest extracts the session token from the Authorization header.
// Accepted forms: "Bearer <token>", "Token <token>", or the bare token.
func TokenFromRequest(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	fields := strings.Fields(raw)
	if len(fields) == 2 {
		switch strings.ToLower(fields[0]) {
		case "bearer", "token":
			return fields[1]
		}
	}
	return raw
}

// Authorize resolves the request token into a session and employee and makes
// them available through the context. Requests without a valid token pass
// through unauthenticated; each route decides whether that is acceptable.
func Authorize() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			app, err := application.UseApp(ctx)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			authService := app.Service(services.AuthService{}).(*services.AuthService)
			employeeService := app.Service(services.EmployeeService{}).(*services.EmployeeService)

			sess, err := authService.Authorize(ctx, token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			u, err := employeeService.GetByEmpID(ctx, sess.EmpID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx = composables.WithSession(ctx, sess)
			ctx = composables.WithUser(ctx, u)
			if params, ok := composables.UseParams(ctx); ok {
				params.Authenticated = true
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuthorization rejects requests that Authorize did not resolve into a
// session. A missing header and a stale token produce distinct codes so
// clients can tell "log in" apart from "log in again".
func RequireAuthorization() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if composables.UseAuthenticated(ctx) {
				next.ServeHTTP(w, r)
				return
			}

			meta := map[string]string{"request_id": httpapi.EnsureRequestID(w, r)}
			params, ok := composables.UseParams(ctx)
			if !ok || params.Token == "" {
				_ = httpapi.WriteError(w, http.StatusUnauthorized, "MISSING_TOKEN", "missing token", meta)
				return
			}
			_ = httpapi.WriteError(w, http.StatusUnauthorized, "INVALID_TOKEN", "invalid token", meta)
		})
	}
}
