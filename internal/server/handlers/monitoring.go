package handlers

import (
	"net/http"
	"time"

	"github.com/inkwell-sites/inkwell/internal/server/responses"
	"github.com/inkwell-sites/inkwell/internal/version"
)

// MonitoringHandlers serves the identity and health endpoints.
type MonitoringHandlers struct {
	startTime time.Time
}

func NewMonitoringHandlers() *MonitoringHandlers {
	return &MonitoringHandlers{startTime: time.Now()}
}

// HandleRoot serves GET /.
func (h *MonitoringHandlers) HandleRoot(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, responses.RootResponse{
		Message: "Inkwell blog API",
		Status:  "running",
		Version: version.Version,
	})
}

// HandleHealth serves GET /healthz.
func (h *MonitoringHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, responses.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
		Uptime:    time.Since(h.startTime).Seconds(),
	})
}
