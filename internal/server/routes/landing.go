package routes

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Greeting is the fixed text of the landing page heading
const Greeting = "Hello from Bottle on Railway"

const landingPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>frontdoor</title></head>
<body>
<h1>` + Greeting + `! 🚄</h1>
<p>This is a minimal Python Bottle application template.</p>
<p>Deploy your own in minutes!</p>
<hr>
%s</body>
</html>
`

// renderLanding is computed once per Table, nothing in it changes per request.
func (t *Table) renderLanding() string {
	var diag strings.Builder
	if t.cfg.Debug {
		fmt.Fprintf(&diag, "<p>Port: %d</p>\n<p>Debug: %t</p>\n", t.cfg.Port, t.cfg.Debug)
	}
	return fmt.Sprintf(landingPage, diag.String())
}

func (t *Table) handleLanding(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.WriteString(w, t.landing); err != nil {
		t.logger.Debug("Failed to write landing response", "error", err)
	}
}
