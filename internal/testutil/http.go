package testutil

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// WaitForHTTPStatus polls url until it answers with the wanted status or the
// timeout elapses.
func WaitForHTTPStatus(t *testing.T, url string, status int, timeout time.Duration) bool {
	t.Helper()
	client := &http.Client{Timeout: time.Second}

	return assert.Eventually(t, func() bool {
		resp, err := client.Get(url)
		if err != nil {
			return false
		}
		defer func() { _ = resp.Body.Close() }()
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode == status
	}, timeout, 20*time.Millisecond, "endpoint %s never returned %d", url, status)
}
