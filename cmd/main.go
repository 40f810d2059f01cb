package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tradejournal/internal/adapters/config"
	"tradejournal/internal/adapters/errors/noop"
	"tradejournal/internal/adapters/errors/sentry"
	"tradejournal/internal/adapters/postgres"
	"tradejournal/internal/api"
	"tradejournal/internal/api/health"
	"tradejournal/internal/domain/currencypair"
	"tradejournal/internal/domain/strategy"
	"tradejournal/internal/domain/trade"
	"tradejournal/internal/domain/user"
	"tradejournal/internal/metrics"
	pgrepo "tradejournal/internal/repository/postgres"
	authsvc "tradejournal/internal/services/auth"
	statssvc "tradejournal/internal/services/stats"
	"tradejournal/pkg/auth"
	"tradejournal/pkg/errors"
	"tradejournal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	metrics.Init()

	// Database
	pgClient, err := postgres.NewClient(cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer pgClient.Close()

	if err := pgrepo.Bootstrap(context.Background(), pgClient.DB()); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	// Repositories
	userRepo := pgrepo.NewUserRepository(pgClient.DB())
	tradeRepo := pgrepo.NewTradeRepository(pgClient.DB())
	strategyRepo := pgrepo.NewStrategyRepository(pgClient.DB())
	pairRepo := pgrepo.NewCurrencyPairRepository(pgClient.DB())

	// Services
	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTDuration)
	authService := authsvc.NewService(userRepo, jwtService, log)
	userService := user.NewService(userRepo)
	tradeService := trade.NewService(tradeRepo)
	strategyService := strategy.NewService(strategyRepo)
	pairService := currencypair.NewService(pairRepo)
	statsService := statssvc.NewService(tradeRepo, userRepo, strategyRepo, pairRepo, log)

	// HTTP server
	server := api.NewServer(cfg.HTTP, api.Handlers{
		Auth:           api.NewAuthHandler(authService),
		User:           api.NewUserHandler(userService),
		CurrencyPair:   api.NewCurrencyPairHandler(pairService),
		Strategy:       api.NewStrategyHandler(strategyService, tradeService, statsService),
		Trade:          api.NewTradeHandler(tradeService, statsService),
		Health:         health.New(log, pgClient.DB(), cfg.App.Name, cfg.App.Version),
		TokenValidator: authService,
	}, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	log.Info("System initialized successfully")

	waitForShutdown(cfg, server, errorTracker, log)
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

func waitForShutdown(cfg *config.Config, server *api.Server, errorTracker errors.Tracker, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Warnf("HTTP server shutdown: %v", err)
	}

	if errorTracker != nil {
		if err := errorTracker.Flush(ctx); err != nil {
			log.Warnf("Failed to flush error tracker: %v", err)
		}
	}

	log.Info("Shutdown complete")
}
