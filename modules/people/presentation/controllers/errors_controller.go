package controllers

import (
	"net/http"

	"github.com/iota-uz/teamtrack/pkg/httpapi"
)

// NotFound and MethodNotAllowed are the router's fallback handlers. They sit
// outside controller registration, so the server wires them in directly.

func NotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "not found", map[string]string{
			"request_id": httpapi.EnsureRequestID(w, r),
			"path":       r.URL.Path,
		})
	}
}

func MethodNotAllowed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", map[string]string{
			"request_id": httpapi.EnsureRequestID(w, r),
			"method":     r.Method,
			"path":       r.URL.Path,
		})
	}
}
