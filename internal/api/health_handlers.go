package api

import (
	"encoding/json/v2"
	"net/http"
	"time"
)

// HealthResponse is the health endpoint body. It is written bare rather
// than in the response envelope so probes can parse it without unwrapping.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Uptime    string `json:"uptime,omitempty"`
	Error     string `json:"error,omitempty"`
}

// handleHealthCheck reports whether the service and its store are usable.
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()

	if err := s.waitlistService.Ping(r.Context()); err != nil {
		s.logger.Error("Health check failed", "error", err)
		writeHealth(w, http.StatusInternalServerError, HealthResponse{
			Status:    "unhealthy",
			Timestamp: now.Format(time.RFC3339),
			Error:     err.Error(),
		})
		return
	}

	writeHealth(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: now.Format(time.RFC3339),
		Uptime:    time.Since(s.startedAt).Round(time.Second).String(),
	})
}

// handleHealthProbe answers HEAD probes with a bare status code.
func (s *Server) handleHealthProbe(w http.ResponseWriter, r *http.Request) {
	if err := s.waitlistService.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func writeHealth(w http.ResponseWriter, status int, body HealthResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.MarshalWrite(w, body)
}
