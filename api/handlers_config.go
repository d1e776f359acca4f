package api

import (
	"net/http"
)

// handleHealth returns the health status of the API
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{"status": "ok"}
	if s.broker != nil {
		status["clients"] = s.broker.ClientCount()
	}
	respondJSON(w, http.StatusOK, status)
}
