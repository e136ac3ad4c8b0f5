package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestLogger() (*logrus.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(buf)
	log.SetLevel(logrus.InfoLevel)
	return log, buf
}

func TestWithLogger_RequestID(t *testing.T) {
	log, _ := newTestLogger()
	mw := WithLogger(log, DefaultLoggerOptions())

	var seen string
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = w.Header().Get("X-Request-Id")
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("echoes the inbound id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		r.Header.Set("X-Request-ID", "req-42")

		handler.ServeHTTP(rec, r)

		require.Equal(t, "req-42", rec.Header().Get("X-Request-Id"))
		require.Equal(t, "req-42", seen, "handler should observe the stamped header")
	})

	t.Run("mints one when absent", func(t *testing.T) {
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks", nil))

		require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	})
}

func TestWithLogger_PanicRecovery(t *testing.T) {
	log, buf := newTestLogger()
	mw := WithLogger(log, DefaultLoggerOptions())

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	r.Header.Set("X-Request-ID", "req-9")

	handler.ServeHTTP(rec, r)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Meta    map[string]string `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "INTERNAL_SERVER_ERROR", body.Code)
	require.Equal(t, "internal server error", body.Message)
	require.Equal(t, "req-9", body.Meta["request_id"])
	require.Equal(t, "/tasks", body.Meta["path"])

	require.Contains(t, buf.String(), "panic recovered in request handler")
}

func TestWithLogger_PanicAfterHeadersKeepsStatus(t *testing.T) {
	log, _ := newTestLogger()
	mw := WithLogger(log, DefaultLoggerOptions())

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		panic("late panic")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusAccepted, rec.Code, "a response already on the wire is left alone")
}
