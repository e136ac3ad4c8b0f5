package httpapi

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/iota-uz/teamtrack/pkg/configuration"
)

// EnsureRequestID returns the request id for error metadata. The logging
// middleware stamps the response header first, so errors correlate with log
// lines; without it the inbound header is honored, and a fresh uuid covers
// requests that arrived with neither.
func EnsureRequestID(w http.ResponseWriter, r *http.Request) string {
	header := strings.TrimSpace(configuration.Use().RequestIDHeader)
	if header == "" {
		header = "X-Request-ID"
	}

	if w != nil {
		if requestID := strings.TrimSpace(w.Header().Get(header)); requestID != "" {
			return requestID
		}
	}
	if r != nil {
		if requestID := strings.TrimSpace(r.Header.Get(header)); requestID != "" {
			return requestID
		}
	}

	requestID := uuid.NewString()
	if w != nil {
		w.Header().Set(header, requestID)
	}
	return requestID
}
