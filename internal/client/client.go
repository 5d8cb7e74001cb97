// Package client probes a running frontdoor instance over HTTP.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atlanticdynamic/frontdoor/internal/config"
	"github.com/atlanticdynamic/frontdoor/internal/server/routes"
)

const (
	DefaultTimeout = 2 * time.Second

	maxBodySize = 64 << 10
)

// Client checks the /health endpoint of a server
type Client struct {
	logger     *slog.Logger
	baseURL    *url.URL
	httpClient *http.Client
}

// Config holds configuration options for creating a Client
type Config struct {
	Logger     *slog.Logger
	ServerAddr string
	Timeout    time.Duration
}

// New creates a new client instance. ServerAddr is either a URL or a
// host:port pair.
func New(cfg Config) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	base, err := parseServerAddr(cfg.ServerAddr)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		logger:     logger,
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// LocalAddr returns the address a probe running next to the server should
// dial. Wildcard hosts are replaced with loopback.
func LocalAddr(cfg *config.Config) string {
	host := cfg.Host
	switch host {
	case "", "0.0.0.0":
		host = "127.0.0.1"
	case "::":
		host = "::1"
	}
	return net.JoinHostPort(host, strconv.Itoa(cfg.Port))
}

func parseServerAddr(addr string) (*url.URL, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("%w: empty address", ErrInvalidAddressFormat)
	}
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}

	u, err := url.Parse(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddressFormat, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host in %q", ErrInvalidAddressFormat, addr)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = routes.PathHealth
	}
	return u, nil
}

// URL returns the probed URL
func (c *Client) URL() string {
	return c.baseURL.String()
}

// Check requests the health endpoint. It succeeds only on HTTP 200 with a
// status of "healthy".
func (c *Client) Check(ctx context.Context) (*routes.HealthStatus, error) {
	c.logger.Debug("Probing health endpoint", "url", c.URL())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Debug("Failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	var hs routes.HealthStatus
	if err := json.Unmarshal(body, &hs); err != nil {
		return nil, fmt.Errorf("%w: malformed body: %w", ErrUnhealthy, err)
	}
	if hs.Status != routes.StatusHealthy {
		return nil, fmt.Errorf("%w: status field %q", ErrUnhealthy, hs.Status)
	}

	c.logger.Debug("Health endpoint is healthy", "url", c.URL(), "message", hs.Message)
	return &hs, nil
}
