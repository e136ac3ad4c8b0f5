package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/teamtrack/pkg/composables"
)

func TestTokenFromRequest(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer scheme", "Bearer tok-1", "tok-1"},
		{"token scheme", "Token tok-2", "tok-2"},
		{"scheme is case-insensitive", "bearer tok-3", "tok-3"},
		{"bare token", "tok-4", "tok-4"},
		{"unknown scheme passes through verbatim", "Basic dXNlcg==", "Basic dXNlcg=="},
		{"missing header", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			require.Equal(t, tc.want, TokenFromRequest(r))
		})
	}
}

func TestRequireAuthorization(t *testing.T) {
	handler := RequireAuthorization()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	serve := func(params *composables.Params) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		if params != nil {
			r = r.WithContext(composables.WithParams(r.Context(), params))
		}
		handler.ServeHTTP(rec, r)
		return rec
	}

	t.Run("authenticated request passes through", func(t *testing.T) {
		rec := serve(&composables.Params{Token: "tok", Authenticated: true})
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("no token yields MISSING_TOKEN", func(t *testing.T) {
		rec := serve(&composables.Params{})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "MISSING_TOKEN")
	})

	t.Run("unresolved token yields INVALID_TOKEN", func(t *testing.T) {
		rec := serve(&composables.Params{Token: "expired"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "INVALID_TOKEN")
	})

	t.Run("request without params is rejected", func(t *testing.T) {
		rec := serve(nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "MISSING_TOKEN")
	})
}
