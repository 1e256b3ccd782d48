package aidtrack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trailops/aidtrack/event"
)

// Server exposes the tracker over a small JSON API. The core produces
// plain data; this is the UI/notification collaborator surface.
type Server struct {
	tracker *Tracker
	srv     *http.Server
}

// NewServer wires the HTTP routes over a tracker
func NewServer(port int, tracker *Tracker) *Server {
	s := &Server{tracker: tracker}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/etas", s.handleETAs)
	mux.HandleFunc("/api/paces", s.handlePaces)
	mux.HandleFunc("/api/participants", s.handleParticipants)
	mux.HandleFunc("/api/warnings", s.handleWarnings)
	mux.HandleFunc("/api/moves", s.handleMoves)
	mux.HandleFunc("/api/log", s.handleLog)
	mux.HandleFunc("/api/log/correct", s.handleCorrect)
	mux.HandleFunc("/api/log/delete", s.handleDelete)

	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Start begins serving in the background
func (s *Server) Start() {
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", s.srv.Addr)
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// HandleGracefulShutdown blocks until SIGINT/SIGTERM, then shuts the
// server down with a timeout
func HandleGracefulShutdown(s *Server) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	} else {
		log.Printf("server shut down successfully")
	}
}

func (s *Server) handleETAs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"etas":         s.tracker.ETAs(),
		"arrivalOrder": s.tracker.ArrivalOrder(),
	})
}

func (s *Server) handlePaces(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"paces": s.tracker.Paces()})
}

func (s *Server) handleWarnings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"warnings": s.tracker.Warnings()})
}

type participantView struct {
	event.Participant
	CurrentStationID string `json:"currentStationId,omitempty"`
}

func (s *Server) handleParticipants(w http.ResponseWriter, r *http.Request) {
	state := s.tracker.State()
	out := make([]participantView, 0, len(state.Participants))
	for _, p := range state.Participants {
		v := participantView{Participant: p}
		if cur, ok := state.Assignments.CurrentStation(p.ID); ok {
			v.CurrentStationID = cur
		}
		out = append(out, v)
	}
	writeJSON(w, http.StatusOK, map[string]any{"participants": out})
}

type moveRequest struct {
	ParticipantID string `json:"participantId"`
	StationID     string `json:"stationId"`
	UserTime      string `json:"userTime,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON request body", http.StatusBadRequest)
		return
	}
	userTime, err := parseUserTime(req.UserTime)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := s.tracker.ApplyMove(req.ParticipantID, req.StationID, userTime, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, ErrMoveRejected):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":          err.Error(),
				"classification": result.Classification,
			})
		case errors.Is(err, ErrUnknownParticipant), errors.Is(err, ErrUnknownStation):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type logRequest struct {
	Type          string `json:"type"` // departed|suspect|other
	ParticipantID string `json:"participantId,omitempty"`
	StationID     string `json:"stationId,omitempty"`
	UserTime      string `json:"userTime,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req logRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON request body", http.StatusBadRequest)
		return
	}
	userTime, err := parseUserTime(req.UserTime)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var entry event.LogEntry
	switch event.EntryType(req.Type) {
	case event.EntryDeparted:
		entry, err = s.tracker.LogDeparture(req.ParticipantID, userTime, req.Notes)
	case event.EntrySuspect:
		entry, err = s.tracker.LogSuspect(req.ParticipantID, userTime, req.Notes)
	case event.EntryOther:
		entry, err = s.tracker.LogNote(req.StationID, userTime, req.Notes)
	default:
		http.Error(w, "type must be departed, suspect, or other", http.StatusBadRequest)
		return
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownParticipant), errors.Is(err, ErrUnknownStation):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ErrNotAtStation):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": entry})
}

type correctRequest struct {
	IDs   []string `json:"ids"`
	Patch struct {
		UserTime       *string `json:"userTime,omitempty"`
		ParticipantID  *string `json:"participantId,omitempty"`
		Type           *string `json:"type,omitempty"`
		StationID      *string `json:"stationId,omitempty"`
		PriorStationID *string `json:"priorStationId,omitempty"`
		Notes          *string `json:"notes,omitempty"`
	} `json:"patch"`
}

func (s *Server) handleCorrect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req correctRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON request body", http.StatusBadRequest)
		return
	}
	patch := event.EntryPatch{
		ParticipantID:  req.Patch.ParticipantID,
		StationID:      req.Patch.StationID,
		PriorStationID: req.Patch.PriorStationID,
		Notes:          req.Patch.Notes,
	}
	if req.Patch.Type != nil {
		typ := event.EntryType(*req.Patch.Type)
		patch.Type = &typ
	}
	if req.Patch.UserTime != nil {
		t, err := time.Parse(time.RFC3339, *req.Patch.UserTime)
		if err != nil {
			http.Error(w, "userTime must be RFC3339", http.StatusBadRequest)
			return
		}
		patch.UserTime = &t
	}
	corrected := s.tracker.CorrectEntries(req.IDs, patch)
	writeJSON(w, http.StatusOK, map[string]any{"corrected": corrected})
}

type deleteRequest struct {
	IDs []string `json:"ids"`
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON request body", http.StatusBadRequest)
		return
	}
	deleted := s.tracker.DeleteEntries(req.IDs...)
	writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}

func parseUserTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("userTime must be RFC3339: %w", err)
	}
	return t, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
