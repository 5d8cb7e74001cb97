package requestid

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/robbyt/go-supervisor/runnables/httpserver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, m *RequestID, incoming string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var seen string
	route, err := httpserver.NewRouteFromHandlerFunc("test", "/test",
		func(w http.ResponseWriter, r *http.Request) {
			seen = r.Header.Get(HeaderName)
			w.WriteHeader(http.StatusOK)
		}, m.Middleware())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if incoming != "" {
		req.Header.Set(HeaderName, incoming)
	}
	rec := httptest.NewRecorder()
	route.ServeHTTP(rec, req)
	return rec, seen
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates a UUID", func(t *testing.T) {
		t.Parallel()
		rec, seen := run(t, New(), "")

		id := rec.Header().Get(HeaderName)
		parsed, err := uuid.FromString(id)
		require.NoError(t, err)
		assert.Equal(t, byte(uuid.V4), parsed.Version())
		assert.Equal(t, id, seen, "handler sees the same ID")
	})

	t.Run("echoes a valid incoming ID", func(t *testing.T) {
		t.Parallel()
		rec, seen := run(t, New(), "abc-123")
		assert.Equal(t, "abc-123", rec.Header().Get(HeaderName))
		assert.Equal(t, "abc-123", seen)
	})

	t.Run("replaces an oversized incoming ID", func(t *testing.T) {
		t.Parallel()
		rec, _ := run(t, New(WithGenerator(func() (string, error) { return "fresh", nil })), strings.Repeat("x", 200))
		assert.Equal(t, "fresh", rec.Header().Get(HeaderName))
	})

	t.Run("replaces an ID with spaces", func(t *testing.T) {
		t.Parallel()
		rec, _ := run(t, New(WithGenerator(func() (string, error) { return "fresh", nil })), "a b")
		assert.Equal(t, "fresh", rec.Header().Get(HeaderName))
	})

	t.Run("generator failure does not fail the request", func(t *testing.T) {
		t.Parallel()
		m := New(WithGenerator(func() (string, error) { return "", errors.New("entropy exhausted") }))
		rec, _ := run(t, m, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get(HeaderName))
	})
}
