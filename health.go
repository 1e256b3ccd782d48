package aidtrack

import (
	"net/http"

	"github.com/trailops/aidtrack/utils"
)

type healthResponse struct {
	Status          string `json:"status"`
	ActivityLogSize int    `json:"activity_log_size"`
	LastRecompute   string `json:"last_recompute,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:          "ok",
		ActivityLogSize: s.tracker.LogSize(),
	}
	if last := s.tracker.LastRecompute(); !last.IsZero() {
		resp.LastRecompute = utils.Iso8601(last)
	}
	writeJSON(w, http.StatusOK, resp)
}
