// Package api exposes the LCA engine and the imputation surface over a
// JSON/HTTP API.
//
// The server owns no state beyond its wired collaborators; every handler is
// a thin decode/compute/encode shim around the core packages. Numeric wire
// formatting follows the convention the frontend expects: impact figures to
// three decimal places, score deltas to one.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/circulens/circulens/internal/config"
	"github.com/circulens/circulens/internal/imputation"
	"github.com/circulens/circulens/internal/lca"
	"github.com/circulens/circulens/internal/logging"
)

// Server is the HTTP front of the calculation engine.
type Server struct {
	cfg          *config.Config
	engine       *lca.Engine
	orchestrator *imputation.Orchestrator
	log          zerolog.Logger

	httpServer *http.Server
}

// NewServer wires a Server over a constructed engine and orchestrator.
func NewServer(cfg *config.Config, engine *lca.Engine, orchestrator *imputation.Orchestrator, log zerolog.Logger) *Server {
	return &Server{
		cfg:          cfg,
		engine:       engine,
		orchestrator: orchestrator,
		log:          logging.ComponentLogger(log, "api"),
	}
}

// Handler builds the route table wrapped in the request middleware. Exposed
// separately from Run so tests can drive it through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/api/v1/lca/calculate", s.handleCalculate)
	mux.HandleFunc("/api/v1/impute", s.handleImpute)
	mux.HandleFunc("/api/v1/compare", s.handleCompare)

	return s.requestMiddleware(mux)
}

// Run serves until ctx is cancelled, then drains in-flight requests within
// the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().
			Str("addr", s.cfg.Server.Addr).
			Msg("listening")
		if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
