// Package web provides the propwatch HTTP API: catalog search, proximity
// search, saved searches, and the live listing event stream.
package web

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/propwatch/propwatch/internal/listing"
	"github.com/propwatch/propwatch/internal/logging"
	"github.com/propwatch/propwatch/internal/savedsearch"
	"github.com/propwatch/propwatch/internal/stream"
)

// Server is the propwatch API server.
type Server struct {
	listingRepo *listing.Repository
	listingSvc  *listing.Service
	searchRepo  *savedsearch.Repository
	router      chi.Router

	// streamIntervals configures event stream timers; tests shorten them.
	streamIntervals stream.Intervals
}

// NewServer creates an API server over the given database.
func NewServer(db *sql.DB) *Server {
	listingRepo := listing.NewRepository(db)

	s := &Server{
		listingRepo:     listingRepo,
		listingSvc:      listing.NewService(listingRepo),
		searchRepo:      savedsearch.NewRepository(db),
		streamIntervals: stream.DefaultIntervals,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logging.RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-User-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/listings", s.handleSearchListings)
		r.Get("/listings/nearby", s.handleNearby)
		r.Get("/listings/{id}", s.handleGetListing)
		r.Get("/saved-searches", s.handleListSavedSearches)
		r.Post("/saved-searches", s.handleCreateSavedSearch)
		r.Get("/stream/listings", s.handleStream)
	})

	r.Get("/ws/listings", s.handleWebsocket)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully. Open stream connections are dropped at shutdown; clients
// reconnect on their own.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting API server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// handleHealth reports server liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
