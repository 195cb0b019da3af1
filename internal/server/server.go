// Package server exposes the agent team over HTTP: idea generation,
// validation, PRD creation, workflows, and session inspection, plus the
// static frontend.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"

	"github.com/agentlab/ideaforge/internal/agents"
	"github.com/agentlab/ideaforge/internal/config"
	"github.com/agentlab/ideaforge/internal/llm"
	"github.com/agentlab/ideaforge/internal/orchestrator"
)

type Server struct {
	orch *orchestrator.Orchestrator

	// Standalone agents back the direct /api/validate and /api/prd
	// endpoints; they share the completer but not the orchestrator's team.
	validator *agents.Validator
	pm        *agents.ProductManager

	validate *validator.Validate
	static   afero.Fs
	server   *http.Server
}

// New builds the server and its agent team on top of one shared completer.
func New(cfg config.ServerConfig, completer llm.Completer, numIdeas int) *Server {
	s := &Server{
		orch:      orchestrator.New(completer, numIdeas),
		validator: agents.NewValidator(completer),
		pm:        agents.NewProductManager(completer),
		validate:  validator.New(),
		static:    afero.NewBasePathFs(afero.NewOsFs(), cfg.StaticDir),
	}

	s.server = &http.Server{
		Addr:    cfg.Addr(),
		Handler: s.registerRoutes(),
	}
	return s
}

// registerRoutes sets up all API endpoints.
func (s *Server) registerRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/ideas", s.handleGenerateIdeas)
	mux.HandleFunc("POST /api/validate", s.handleValidateIdea)
	mux.HandleFunc("POST /api/prd", s.handleCreatePRD)
	mux.HandleFunc("POST /api/workflows", s.handleWorkflow)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/sessions", s.handleListSessions)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)

	httpFs := afero.NewHttpFs(s.static)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(httpFs.Dir("/"))))
	mux.HandleFunc("GET /{$}", s.handleIndex)

	return corsMiddleware(mux)
}

func (s *Server) Start(wg *sync.WaitGroup, errChan chan<- error) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	f, err := s.static.Open("index.html")
	if err != nil {
		http.Error(w, "frontend not available", http.StatusNotFound)
		return
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		http.Error(w, "frontend not available", http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, r, "index.html", info.ModTime(), f)
}
