package main

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/atlanticdynamic/frontdoor/internal/client"
	"github.com/atlanticdynamic/frontdoor/internal/config"
	"github.com/atlanticdynamic/frontdoor/internal/server/httpserver"
	"github.com/atlanticdynamic/frontdoor/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv isolates a test from the caller's environment
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvPort, config.EnvHost, config.EnvDebug,
		config.EnvLogLevel, config.EnvWebConcurrency, "HEALTHCHECK_URL",
	} {
		t.Setenv(key, "")
	}
}

func runApp(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	originalDefault := slog.Default()
	t.Cleanup(func() { slog.SetDefault(originalDefault) })

	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(ctx, append([]string{"frontdoor"}, args...))
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runApp(t, t.Context(), "version")
	require.NoError(t, err)
	assert.Equal(t, "frontdoor version dev\n", out)
}

func TestConfigCommand(t *testing.T) {
	t.Run("prints resolved values", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "9123")
		t.Setenv("DEBUG", "true")

		out, err := runApp(t, t.Context(), "config")
		require.NoError(t, err)
		assert.Contains(t, out, "0.0.0.0:9123")
		assert.Contains(t, out, "Level: debug")
		assert.Contains(t, out, "Routes")
		assert.Contains(t, out, "GET, HEAD")
		assert.Contains(t, out, "/health")
	})

	t.Run("unknown log level is reported, not fatal", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LOG_LEVEL", "critical")

		out, err := runApp(t, t.Context(), "config")
		require.NoError(t, err)
		assert.Contains(t, out, "Level: info")
		assert.Contains(t, out, `"critical"`)
	})

	t.Run("invalid port", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "abc")

		_, err := runApp(t, t.Context(), "config")
		require.ErrorIs(t, err, config.ErrInvalidPort)
	})
}

func TestServe_InvalidPort(t *testing.T) {
	for _, args := range [][]string{{}, {"serve"}, {"production"}} {
		t.Run("args "+strconv.Itoa(len(args)), func(t *testing.T) {
			clearEnv(t)
			t.Setenv("PORT", "abc")

			_, err := runApp(t, t.Context(), args...)
			require.ErrorIs(t, err, config.ErrInvalidPort)
			assert.Contains(t, err.Error(), `"abc"`)
		})
	}
}

func TestServe_BindsConfiguredPort(t *testing.T) {
	tests := []struct {
		name     string
		sub      string
		logLevel string
	}{
		{name: "serve", sub: "serve", logLevel: "error"},
		{name: "production", sub: "production", logLevel: "error"},
		{name: "serve with unrecognized log level", sub: "serve", logLevel: "critical"},
		{name: "production with unrecognized log level", sub: "production", logLevel: "critical"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			port := testutil.GetRandomPort(t)
			t.Setenv("PORT", strconv.Itoa(port))
			t.Setenv("HOST", "127.0.0.1")
			t.Setenv("LOG_LEVEL", tc.logLevel)

			ctx, cancel := context.WithCancel(t.Context())
			errCh := make(chan error, 1)
			go func() {
				_, err := runApp(t, ctx, tc.sub)
				errCh <- err
			}()

			addr := "127.0.0.1:" + strconv.Itoa(port)
			require.True(t, testutil.WaitForHTTPStatus(t, "http://"+addr+"/health", http.StatusOK, 5*time.Second))

			c, err := client.New(client.Config{ServerAddr: addr})
			require.NoError(t, err)
			hs, err := c.Check(t.Context())
			require.NoError(t, err)
			assert.Equal(t, "healthy", hs.Status)

			cancel()
			select {
			case err := <-errCh:
				assert.NoError(t, err)
			case <-time.After(10 * time.Second):
				t.Fatal("server did not shut down")
			}
		})
	}
}

func TestServe_PortInUse(t *testing.T) {
	clearEnv(t)
	port := testutil.OccupyPort(t)
	t.Setenv("PORT", strconv.Itoa(port))
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("LOG_LEVEL", "error")

	_, err := runApp(t, t.Context(), "serve")
	require.ErrorIs(t, err, httpserver.ErrBindFailed)
}

func TestHealthcheckCommand(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		clearEnv(t)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"healthy","message":"Bottle app is running"}`))
		}))
		defer srv.Close()

		out, err := runApp(t, t.Context(), "healthcheck", "--url", srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "healthy: Bottle app is running\n", out)
	})

	t.Run("url from environment", func(t *testing.T) {
		clearEnv(t)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"healthy","message":"ok"}`))
		}))
		defer srv.Close()
		t.Setenv("HEALTHCHECK_URL", srv.URL)

		out, err := runApp(t, t.Context(), "healthcheck")
		require.NoError(t, err)
		assert.Contains(t, out, "healthy")
	})

	t.Run("unhealthy", func(t *testing.T) {
		clearEnv(t)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := runApp(t, t.Context(), "healthcheck", "--url", srv.URL, "--timeout", "500ms")
		require.ErrorIs(t, err, client.ErrUnhealthy)
	})

	t.Run("nothing listening on local port", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", strconv.Itoa(testutil.GetRandomPort(t)))

		_, err := runApp(t, t.Context(), "healthcheck", "--timeout", "500ms")
		require.ErrorIs(t, err, client.ErrRequestFailed)
	})
}
