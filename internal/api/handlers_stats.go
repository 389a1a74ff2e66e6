package api

import (
	"net/http"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := s.coach.Stats()
	if stats == nil {
		jsonError(w, "review stats unavailable", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"version": s.cfg.ServiceVersion,
		"stats":   stats.Snapshot(),
	})
}
