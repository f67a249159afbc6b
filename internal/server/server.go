// package server contains middleware & handlers for the moviemaze local API
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moviemaze/internal/accounts"
	"github.com/desertthunder/moviemaze/internal/favorites"
	"github.com/desertthunder/moviemaze/internal/session"
	"github.com/desertthunder/moviemaze/internal/shared"
	"github.com/desertthunder/moviemaze/internal/theme"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers that own their routes.
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// Deps groups the stores served by the API.
type Deps struct {
	Session   *session.Store
	Favorites *favorites.Store
	Theme     *theme.Store
	Accounts  *accounts.Registry // optional; enables email/password login
	Logger    *log.Logger
}

// Server is the local JSON API.
type Server struct {
	deps   Deps
	router *BasicRouter
	http   *http.Server
}

// New creates a [Server] with all routes and middleware registered.
func New(cfg shared.ServerConfig, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = shared.DiscardLogger()
	}

	s := &Server{deps: deps, router: NewBasicRouter()}
	s.router.Use(RequestID(), Recovery(deps.Logger), Logging(deps.Logger), RequireJSON())
	s.routes()

	s.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	s.router.Handler(healthHandler{})

	s.router.Handle(http.MethodGet, "/api/session", http.HandlerFunc(s.getSession))
	s.router.Handle(http.MethodPatch, "/api/session", http.HandlerFunc(s.updateSession))
	s.router.Handle(http.MethodPost, "/api/session/login", http.HandlerFunc(s.login))
	s.router.Handle(http.MethodPost, "/api/session/logout", http.HandlerFunc(s.logout))

	s.router.Handle(http.MethodGet, "/api/favorites", http.HandlerFunc(s.listFavorites))
	s.router.Handle(http.MethodPost, "/api/favorites", http.HandlerFunc(s.addFavorite))
	s.router.Handle(http.MethodDelete, "/api/favorites/{id}", http.HandlerFunc(s.removeFavorite))

	s.router.Handle(http.MethodGet, "/api/theme", http.HandlerFunc(s.getTheme))
	s.router.Handle(http.MethodPost, "/api/theme/toggle", http.HandlerFunc(s.toggleTheme))
}

// Handler returns the root handler, for use with [net/http/httptest].
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.http.Addr
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errs := make(chan error, 1)
	go func() {
		s.deps.Logger.Info("listening", "addr", s.http.Addr)
		errs <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.deps.Logger.Info("shutting down")
		return s.http.Shutdown(shutdownCtx)
	}
}
