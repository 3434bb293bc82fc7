package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/DharmikCH/altscore-bfa-go/internal/config"
	"github.com/DharmikCH/altscore-bfa-go/internal/handler"
	"github.com/DharmikCH/altscore-bfa-go/internal/infra/client"
	"github.com/DharmikCH/altscore-bfa-go/internal/infra/memstore"
	"github.com/DharmikCH/altscore-bfa-go/internal/infra/observability"
	"github.com/DharmikCH/altscore-bfa-go/internal/infra/resilience"
	"github.com/DharmikCH/altscore-bfa-go/internal/service"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("scoring_api_url", cfg.ScoringAPIURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("session_ttl", cfg.SessionTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
	)

	// --- Tracing ---
	shutdownTracer, err := observability.InitTracer(cfg.OTLPEndpoint, "altscore-bfa")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdownTracer(context.Background())

	// --- Stores ---
	users := memstore.NewUserStore()
	sessions := memstore.NewSessionStore(cfg.SessionTTL)

	// --- Metrics ---
	metrics := observability.NewMetrics(sessions.Len)

	// --- Scoring client ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	cb := resilience.NewCircuitBreaker("scoring")
	scorer := client.NewScoringClient(httpClient, cfg.ScoringAPIURL, cb, cfg.MaxConcurrency)

	// --- Services ---
	workflowSvc := service.NewWorkflowService(users, sessions, cfg.JWTSecret, cfg.JWTAccessTTL, logger)
	scoringSvc := service.NewScoringService(scorer, metrics, logger)

	// --- Router ---
	router := handler.NewRouter(workflowSvc, scoringSvc, sessions, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	// Warmup probe: best effort, the server comes up either way.
	g.Go(func() error {
		probeCfg := resilience.Config{MaxRetries: cfg.MaxRetries, InitialBackoff: cfg.InitialBackoff}
		if err := resilience.RetryWithBackoff(gctx, probeCfg, func() error {
			return scorer.Ping(gctx)
		}); err != nil {
			logger.Warn("scoring service not reachable at startup", zap.Error(err))
			return nil
		}
		logger.Info("scoring service reachable")
		return nil
	})

	g.Go(func() error {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("server shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
