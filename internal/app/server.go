package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/afero"

	"github.com/klabast/wb-services/harmonogram/internal/schedule"
)

// Server serves a parsed collection sheet over HTTP.
type Server struct {
	fsys      afero.Fs
	inputPath string
	router    *chi.Mux
	server    *http.Server

	mu     sync.RWMutex
	sched  *schedule.Schedule
	events []schedule.Event
}

// NewServer parses the sheet at inputPath and builds the HTTP routes.
// The sheet must parse and expand cleanly before the server starts.
func NewServer(fsys afero.Fs, inputPath string) (*Server, error) {
	s := &Server{
		fsys:      fsys,
		inputPath: inputPath,
		router:    chi.NewRouter(),
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/config", s.handleConfig)
		r.Get("/events", s.handleEvents)
		r.Get("/download", s.handleDownload)
		r.Get("/subscribe", s.handleSubscribe)
		r.With(RequireAuth).Post("/reload", s.handleReload)
	})
}

// Reload re-parses the sheet and swaps the served snapshot. On failure
// the previous snapshot stays in place.
func (s *Server) Reload() error {
	sched, err := LoadSchedule(s.fsys, s.inputPath)
	if err != nil {
		return err
	}

	events, err := sched.Events()
	if err != nil {
		return fmt.Errorf("expanding %s: %w", s.inputPath, err)
	}
	SortEventsByDate(events)

	s.mu.Lock()
	s.sched = sched
	s.events = events
	s.mu.Unlock()
	return nil
}

// snapshot returns the currently served schedule and events.
func (s *Server) snapshot() (*schedule.Schedule, []schedule.Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sched, s.events
}

// Start begins listening on addr. Blocks until the server stops.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the HTTP handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}
