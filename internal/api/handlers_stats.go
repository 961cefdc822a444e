package api

import (
	"net/http"
)

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	stats := s.orchestrator.Stats()
	if stats == nil {
		jsonError(w, "llm stats unavailable", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"generator":   s.orchestrator.GeneratorName(),
		"queue_depth": s.orchestrator.QueueDepth(),
		"stats":       stats.Snapshot(),
	})
}
