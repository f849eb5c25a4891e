package transporthttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"mindpulsebackend/internal/config"
	"mindpulsebackend/internal/pulse"
)

type Server struct {
	refresher       *pulse.Refresher
	store           *pulse.SnapshotStore
	defaultWindow   int
	defaultPlatform string
}

func NewServer(refresher *pulse.Refresher, store *pulse.SnapshotStore, cfg config.Config) *Server {
	return &Server{
		refresher:       refresher,
		store:           store,
		defaultWindow:   cfg.DefaultWindowDays,
		defaultPlatform: cfg.DefaultPlatform,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/healthz", s.health)
	mux.HandleFunc("/api/dashboard", s.handleDashboard)
	mux.HandleFunc("/api/dashboard/latest", s.handleLatest)
	mux.HandleFunc("/swagger/openapi.yaml", serveSwaggerYAML)
	mux.HandleFunc("/swagger", serveSwaggerUI)
	mux.HandleFunc("/swagger/", serveSwaggerUI)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "Mental Health Pulse API Running"})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	params, err := s.parseParams(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := s.refresher.Refresh(ctx, params)
	if err != nil {
		// Предыдущий снапшот остаётся на экране, не очищаем данные
		if prev := s.store.Latest(); prev != nil {
			s.writeJSON(w, http.StatusOK, prev)
			return
		}
		if errors.Is(err, pulse.ErrRefreshInFlight) {
			s.writeError(w, http.StatusServiceUnavailable, "refresh in progress")
			return
		}
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Latest()
	if snap == nil {
		s.writeError(w, http.StatusNotFound, "no snapshot generated yet")
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// nothing we can do; connection likely closed
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func (s *Server) parseParams(r *http.Request) (pulse.QueryParams, error) {
	values := r.URL.Query()

	now := time.Now().UTC()
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if v := values.Get("to"); v != "" {
		parsed, err := time.ParseInLocation(pulse.DateLayout, v, time.UTC)
		if err != nil {
			return pulse.QueryParams{}, fmt.Errorf("%w: to must be YYYY-MM-DD", pulse.ErrBadDateRange)
		}
		to = parsed
	}

	from := to.AddDate(0, 0, -(s.defaultWindow - 1))
	if v := values.Get("from"); v != "" {
		parsed, err := time.ParseInLocation(pulse.DateLayout, v, time.UTC)
		if err != nil {
			return pulse.QueryParams{}, fmt.Errorf("%w: from must be YYYY-MM-DD", pulse.ErrBadDateRange)
		}
		from = parsed
	}

	// Инвертированный диапазон не ошибка: генератор зажимает его в 1 день
	platform := values.Get("platform")
	if platform == "" {
		platform = s.defaultPlatform
	}

	return pulse.QueryParams{From: from, To: to, Platform: platform}, nil
}
