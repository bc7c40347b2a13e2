// Package demoserver is a local stand-in for the remote time-tracking
// aggregation service: the same four endpoints and wire shapes, with sessions
// and commits generated as fixtures and time entries persisted in SQLite.
// It exists for offline use (`timeclerk serve --demo`) and as an integration
// target for the sync client.
package demoserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"timeclerk-cli/internal/syncapi/wire"
)

type Server struct {
	db   *DB
	days int
	now  func() time.Time
	mux  *http.ServeMux
}

type ServerOption func(*Server)

// WithDays sets the fixture window size.
func WithDays(n int) ServerOption {
	return func(s *Server) { s.days = n }
}

// WithClock overrides the fixture clock; tests pin it.
func WithClock(now func() time.Time) ServerOption {
	return func(s *Server) { s.now = now }
}

func NewServer(db *DB, opts ...ServerOption) *Server {
	s := &Server{db: db, days: 15, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("GET /sessions", s.handleSessions)
	s.mux.HandleFunc("POST /export", s.handleExport)
	s.mux.HandleFunc("POST /split", s.handleSplit)
	s.mux.HandleFunc("POST /delete", s.handleDelete)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	entries, err := s.db.ListEntries(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	days := s.days
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}
	now := s.now()
	writeJSON(w, wire.LoadPayload{
		Sessions:    fixtureSessions(now, days),
		TimeEntries: entries,
		Log:         fixtureLog(now, days),
		Projects:    demoProjects,
		Issues:      demoIssues,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req wire.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	if req.ID == nil {
		e, err := s.db.CreateEntry(r.Context(), req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, e)
		return
	}
	e, err := s.db.UpdateEntry(r.Context(), *req.ID, req)
	if err != nil {
		writeDBError(w, err)
		return
	}
	writeJSON(w, e)
}

func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	var req wire.SplitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	if req.SplitTime <= req.StartTime || req.SplitTime >= req.EndTime {
		http.Error(w, "split point outside span", http.StatusBadRequest)
		return
	}
	res, err := s.db.SplitEntry(r.Context(), req)
	if err != nil {
		writeDBError(w, err)
		return
	}
	writeJSON(w, res)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req wire.DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	if err := s.db.DeleteEntry(r.Context(), req.ID); err != nil {
		writeDBError(w, err)
		return
	}
	writeJSON(w, wire.DeleteResponse{OK: true})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeDBError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
