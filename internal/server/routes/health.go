package routes

import (
	"encoding/json"
	"net/http"
)

const (
	StatusHealthy  = "healthy"
	HealthyMessage = "Bottle app is running"
)

// HealthStatus is the /health payload. The diagnostic fields are only filled
// when debugging is enabled.
type HealthStatus struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Port     int    `json:"port,omitempty"`
	PID      int    `json:"pid,omitempty"`
	LogLevel string `json:"log_level,omitempty"`
}

// healthStatus builds a fresh payload for every request.
func (t *Table) healthStatus() HealthStatus {
	hs := HealthStatus{
		Status:  StatusHealthy,
		Message: HealthyMessage,
	}
	if t.cfg.Debug {
		hs.Port = t.cfg.Port
		hs.PID = t.pid
		hs.LogLevel = t.cfg.LogLevel.String()
	}
	return hs
}

func (t *Table) handleHealth(w http.ResponseWriter, r *http.Request) {
	body, err := json.Marshal(t.healthStatus())
	if err != nil {
		// HealthStatus only holds strings and ints
		t.logger.Error("Failed to encode health status", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(body); err != nil {
		t.logger.Debug("Failed to write health response", "error", err)
	}
}
