package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"tradejournal/internal/adapters/config"
	"tradejournal/internal/api/health"
	"tradejournal/internal/metrics"
	"tradejournal/pkg/errors"
	"tradejournal/pkg/logger"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	CurrencyPair *CurrencyPairHandler
	Strategy     *StrategyHandler
	Trade        *TradeHandler
	Health       *health.Handler

	// TokenValidator backs the bearer-auth middleware
	TokenValidator tokenValidator
}

// Server wraps HTTP server with lifecycle management
type Server struct {
	httpServer *http.Server
	log        *logger.Logger
}

// NewServer creates and configures HTTP server with all routes
func NewServer(cfg config.HTTPConfig, h Handlers, log *logger.Logger) *Server {
	mux := http.NewServeMux()

	// Health check endpoints (Kubernetes probes)
	mux.HandleFunc("GET /health", h.Health.HandleHealth)
	mux.HandleFunc("GET /ready", h.Health.HandleReadiness)
	mux.HandleFunc("GET /live", h.Health.HandleLiveness)

	// Prometheus metrics endpoint
	mux.Handle("GET /metrics", metrics.Handler())

	// Auth endpoints, rate limited per client IP
	authLimiter := newIPRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst)
	mux.Handle("POST /api/auth/register", withRateLimit(authLimiter, http.HandlerFunc(h.Auth.HandleRegister)))
	mux.Handle("POST /api/auth/login", withRateLimit(authLimiter, http.HandlerFunc(h.Auth.HandleLogin)))

	// Everything below requires a bearer token
	authed := func(handlerFunc http.HandlerFunc) http.Handler {
		return withAuth(h.TokenValidator, handlerFunc)
	}

	mux.Handle("GET /api/users/me", authed(h.User.HandleGetMe))
	mux.Handle("PUT /api/users/me", authed(h.User.HandleUpdateMe))

	mux.Handle("POST /api/currency-pairs", authed(h.CurrencyPair.HandleCreate))
	mux.Handle("GET /api/currency-pairs", authed(h.CurrencyPair.HandleList))
	mux.Handle("GET /api/currency-pairs/{id}", authed(h.CurrencyPair.HandleGet))
	mux.Handle("DELETE /api/currency-pairs/{id}", authed(h.CurrencyPair.HandleDelete))

	mux.Handle("POST /api/strategies", authed(h.Strategy.HandleCreate))
	mux.Handle("GET /api/strategies", authed(h.Strategy.HandleList))
	mux.Handle("GET /api/strategies/{id}", authed(h.Strategy.HandleGet))
	mux.Handle("PUT /api/strategies/{id}", authed(h.Strategy.HandleUpdate))
	mux.Handle("DELETE /api/strategies/{id}", authed(h.Strategy.HandleDelete))
	mux.Handle("GET /api/strategies/{id}/trades", authed(h.Strategy.HandleTrades))
	mux.Handle("GET /api/strategies/{id}/stats", authed(h.Strategy.HandleStats))

	mux.Handle("POST /api/trades", authed(h.Trade.HandleCreate))
	mux.Handle("GET /api/trades", authed(h.Trade.HandleList))
	mux.Handle("GET /api/trades/stats", authed(h.Trade.HandleStats))
	mux.Handle("GET /api/trades/equity-curve/{period}", authed(h.Trade.HandleEquityCurve))
	mux.Handle("GET /api/trades/{id}", authed(h.Trade.HandleGet))
	mux.Handle("PUT /api/trades/{id}", authed(h.Trade.HandleUpdate))
	mux.Handle("DELETE /api/trades/{id}", authed(h.Trade.HandleDelete))

	handler := withRequestID(withLogging(log, mux))

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	log.Infof("HTTP server configured on port %d", cfg.Port)

	return &Server{
		httpServer: httpServer,
		log:        log,
	}
}

// Start begins listening for HTTP requests
// Blocks until server is stopped or encounters an error
func (s *Server) Start() error {
	s.log.Infof("Starting HTTP server on %s", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "http server failed")
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
// Waits for active connections to complete within timeout
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Stopping HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "http server shutdown failed")
	}

	s.log.Info("HTTP server stopped")
	return nil
}
