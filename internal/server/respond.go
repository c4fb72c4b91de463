package server

import (
	"encoding/json"
	"net/http"
)

func respondJSON(w http.ResponseWriter, status int, payload map[string]any) {
	payload["success"] = status < http.StatusBadRequest
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "status", status, "error", msg)
	} else {
		s.log.Debug("request rejected", "status", status, "error", msg)
	}
	respondJSON(w, status, map[string]any{"error": msg})
}
