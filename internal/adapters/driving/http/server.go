package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lexico-labs/lexico-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	searchService driving.SearchService
	termService   driving.TermService
	authService   driving.AuthService
	ingestService driving.IngestService

	// Infrastructure
	db    Pinger // PostgreSQL health check
	cache Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	Version        string
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	searchService driving.SearchService,
	termService driving.TermService,
	authService driving.AuthService,
	ingestService driving.IngestService,
	db Pinger,
	cache Pinger, // can be nil
) *Server {
	s := &Server{
		router:        http.NewServeMux(),
		version:       cfg.Version,
		searchService: searchService,
		termService:   termService,
		authService:   authService,
		ingestService: ingestService,
		db:            db,
		cache:         cache,
	}

	// Recovery wraps logging so panics in handlers are still logged
	var handler http.Handler = s.router
	if len(cfg.AllowedOrigins) > 0 {
		handler = NewCORSMiddleware(cfg.AllowedOrigins).Handler(handler)
	}
	handler = NewRecoveryMiddleware().Handler(
		NewLoggingMiddleware().Handler(handler))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Create middleware
	authMiddleware := NewAuthMiddleware(s.authService)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Auth endpoint (public, exchanges admin key for a token)
	s.router.HandleFunc("POST /api/v1/auth/token", s.handleIssueToken)

	// Search endpoints (public)
	s.router.HandleFunc("GET /api/v1/search", s.handleSearch)

	// Term endpoints (public)
	s.router.HandleFunc("GET /api/v1/terms/{id}", s.handleGetTerm)
	s.router.HandleFunc("GET /api/v1/terms/by-name/{name}", s.handleGetTermByName)
	s.router.HandleFunc("GET /api/v1/categories", s.handleListCategories)

	// Admin endpoints (token required)
	s.router.Handle("POST /api/v1/admin/warm",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleWarm)))
	s.router.Handle("POST /api/v1/admin/import",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleImport)))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
