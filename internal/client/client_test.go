package client

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/atlanticdynamic/frontdoor/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServerAddr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		addr    string
		want    string
		wantErr error
	}{
		{name: "host and port", addr: "127.0.0.1:8080", want: "http://127.0.0.1:8080/health"},
		{name: "url without path", addr: "http://localhost:8080", want: "http://localhost:8080/health"},
		{name: "url with root path", addr: "https://example.com/", want: "https://example.com/health"},
		{name: "url with custom path", addr: "http://localhost:8080/healthz", want: "http://localhost:8080/healthz"},
		{name: "empty", addr: " ", wantErr: ErrInvalidAddressFormat},
		{name: "unsupported scheme", addr: "tcp://localhost:8080", wantErr: ErrUnsupportedScheme},
		{name: "missing host", addr: "http://", wantErr: ErrInvalidAddressFormat},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			u, err := parseServerAddr(tc.addr)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, u.String())
		})
	}
}

func TestLocalAddr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "127.0.0.1:8080", LocalAddr(config.Default()))
	assert.Equal(t, "127.0.0.1:80", LocalAddr(&config.Config{Host: "", Port: 80}))
	assert.Equal(t, "[::1]:9000", LocalAddr(&config.Config{Host: "::", Port: 9000}))
	assert.Equal(t, "10.1.2.3:3000", LocalAddr(&config.Config{Host: "10.1.2.3", Port: 3000}))
}

func TestNew(t *testing.T) {
	t.Parallel()

	c, err := New(Config{ServerAddr: "localhost:8080"})
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)

	c, err = New(Config{ServerAddr: "localhost:8080", Timeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, time.Second, c.httpClient.Timeout)

	_, err = New(Config{})
	require.ErrorIs(t, err, ErrInvalidAddressFormat)
}

func TestClient_Check(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "healthy", status: http.StatusOK, body: `{"status":"healthy","message":"Bottle app is running"}`},
		{name: "wrong status code", status: http.StatusServiceUnavailable, body: `{"status":"healthy"}`, wantErr: ErrUnhealthy},
		{name: "unhealthy field", status: http.StatusOK, body: `{"status":"degraded"}`, wantErr: ErrUnhealthy},
		{name: "malformed body", status: http.StatusOK, body: `ok`, wantErr: ErrUnhealthy},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/health", r.URL.Path)
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c, err := New(Config{ServerAddr: srv.URL})
			require.NoError(t, err)

			hs, err := c.Check(t.Context())
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, hs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "healthy", hs.Status)
			assert.Equal(t, "Bottle app is running", hs.Message)
		})
	}

	t.Run("connection refused", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.NotFoundHandler())
		addr := srv.URL
		srv.Close()

		c, err := New(Config{ServerAddr: addr, Timeout: 500 * time.Millisecond})
		require.NoError(t, err)

		_, err = c.Check(t.Context())
		require.ErrorIs(t, err, ErrRequestFailed)
	})
}
