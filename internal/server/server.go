// Package server provides the HTTP server for the form coaching service.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/formcoach/internal/pose"
	"github.com/ayusman/formcoach/internal/server/api"
	"github.com/ayusman/formcoach/internal/store"
	"github.com/ayusman/formcoach/internal/video"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Extractor pose.Extractor
	Source    video.Source
	Live      *LiveHandler
	// Coach controls the live analysis pipeline; registering it exposes
	// the live control endpoints.
	Coach api.Coach
	// FrameInterval is the default video sampling stride for uploads.
	FrameInterval int
}

// Server represents the HTTP server for the coaching application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.Handle("/api/exercises", api.NewExercisesHandler())

	plansHandler := api.NewPlansHandler()
	s.mux.Handle("/api/workout-plan", plansHandler)
	s.mux.Handle("/api/nutrition-advice", plansHandler)

	// Register analysis endpoints if an extractor is configured
	if s.config.Extractor != nil {
		analyzeHandler := api.NewAnalyzeHandler(s.config.Extractor, s.config.Store, s.config.FrameInterval)
		s.mux.Handle("/api/analyze", analyzeHandler)
		s.mux.Handle("/api/analyze/video", analyzeHandler)
	}

	// Register session endpoints if a store is configured
	if s.config.Store != nil {
		sessionsHandler := api.NewSessionsHandler(s.config.Store)
		s.mux.Handle("/api/sessions", sessionsHandler)
		s.mux.Handle("/api/sessions/", sessionsHandler)
	}

	// Register the live results WebSocket if configured
	if s.config.Live != nil {
		s.mux.Handle("/api/live", s.config.Live)
	}

	// Register live pipeline control if a coach is configured
	if s.config.Coach != nil {
		s.mux.Handle("/api/live/exercise", api.NewLiveControlHandler(s.config.Coach))
	}

	// Register the camera preview stream if a source is configured
	if s.config.Source != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Source))
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
