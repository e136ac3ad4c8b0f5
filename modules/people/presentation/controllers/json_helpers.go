package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/teamtrack/pkg/constants"
	"github.com/iota-uz/teamtrack/pkg/httpapi"
	"github.com/iota-uz/teamtrack/pkg/serrors"
)

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	_ = httpapi.WriteError(w, status, code, message, map[string]string{
		"request_id": httpapi.EnsureRequestID(w, r),
	})
}

// writeServiceError renders coded service errors with their own status and
// hides everything else behind a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if base, ok := serrors.AsBase(err); ok {
		writeError(w, r, base.Status, base.Code, base.Message)
		return
	}
	if logger, ok := r.Context().Value(constants.LoggerKey).(*logrus.Entry); ok {
		logger.WithError(err).Error("unhandled service error")
	}
	writeError(w, r, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return false
	}
	return true
}

// firstValidationMessage picks one message out of DTO validation errors in a
// stable field order, so responses do not flap between map iterations.
func firstValidationMessage(errs map[string]string, preferred ...string) string {
	for _, field := range preferred {
		if msg := errs[field]; msg != "" {
			return msg
		}
	}
	for _, msg := range errs {
		return msg
	}
	return "validation failed"
}
