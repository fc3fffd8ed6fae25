// Package api exposes the dashboard's entity-linking operations over
// HTTP: point ingest, mission dispatch, explicit bind/unbind, linked
// entity queries and monitoring-event CRUD.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/seawatch/seawatch/internal/events"
	"github.com/seawatch/seawatch/internal/mission"
)

// Server represents the API server.
type Server struct {
	missions *mission.Manager
	events   *events.Store
	log      zerolog.Logger
	router   *mux.Router
}

// NewServer creates a new API server.
func NewServer(missions *mission.Manager, eventStore *events.Store, log zerolog.Logger) *Server {
	s := &Server{
		missions: missions,
		events:   eventStore,
		log:      log.With().Str("component", "api").Logger(),
		router:   mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Track point endpoints
	s.router.HandleFunc("/api/v1/trackpoints", s.handleListTrackPoints).Methods("GET")
	s.router.HandleFunc("/api/v1/trackpoints", s.handleCreateTrackPoint).Methods("POST")
	s.router.HandleFunc("/api/v1/trackpoints/{id}", s.handleGetTrackPoint).Methods("GET")
	s.router.HandleFunc("/api/v1/trackpoints/{id}/missions", s.handleLinkedMissions).Methods("GET")

	// Mission endpoints
	s.router.HandleFunc("/api/v1/missions", s.handleListMissions).Methods("GET")
	s.router.HandleFunc("/api/v1/missions", s.handleCreateMission).Methods("POST")
	s.router.HandleFunc("/api/v1/missions/{id}", s.handleGetMission).Methods("GET")
	s.router.HandleFunc("/api/v1/missions/{id}/trackpoints", s.handleLinkedTrackPoints).Methods("GET")
	s.router.HandleFunc("/api/v1/missions/{id}/status", s.handleAdvanceStatus).Methods("POST")
	s.router.HandleFunc("/api/v1/missions/{id}/progress", s.handleSetProgress).Methods("POST")

	// Link endpoints
	s.router.HandleFunc("/api/v1/links", s.handleBind).Methods("POST")
	s.router.HandleFunc("/api/v1/links", s.handleUnbindPair).Methods("DELETE")
	s.router.HandleFunc("/api/v1/links/mission/{id}", s.handleUnbindMission).Methods("DELETE")
	s.router.HandleFunc("/api/v1/links/point/{id}", s.handleUnbindPoint).Methods("DELETE")

	// Monitoring event endpoints
	s.router.HandleFunc("/api/v1/events", s.handleListEvents).Methods("GET")
	s.router.HandleFunc("/api/v1/events", s.handleSaveEvent).Methods("POST")
	s.router.HandleFunc("/api/v1/events/{id}", s.handleGetEvent).Methods("GET")
	s.router.HandleFunc("/api/v1/events/{id}/status", s.handleEventStatus).Methods("POST")
	s.router.HandleFunc("/api/v1/events/{id}", s.handleDeleteEvent).Methods("DELETE")

	// Add middleware
	s.router.Use(s.loggingMiddleware)
	s.router.Use(jsonMiddleware)
}

// Router returns the configured router.
func (s *Server) Router() *mux.Router {
	return s.router
}

// Serve blocks running the HTTP server on the given address.
func (s *Server) Serve(addr string) error {
	s.log.Info().Str("addr", addr).Msg("HTTP server listening")
	return http.ListenAndServe(addr, s.router)
}

// Middleware
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// Response helpers
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiResponse{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiResponse{Success: false, Error: message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
