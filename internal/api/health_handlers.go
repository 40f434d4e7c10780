package api

import (
	"net/http"

	"github.com/vytor/pokerdash/internal/logger"
)

// handleHealth is the liveness probe; it always returns 200 OK.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleReady returns 200 once a snapshot has been installed and the
// optional snapshot store answers, 503 otherwise.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	if !s.Snapshots.Ready() {
		log.Debug("readiness check failed - no snapshot loaded yet")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Snapshot not loaded"))
		return
	}

	if s.Store != nil {
		if err := s.Store.Ping(ctx); err != nil {
			log.Warn("readiness check failed - snapshot store: %v", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Snapshot store unavailable"))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}
