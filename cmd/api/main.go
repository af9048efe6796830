// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yembez/quittancesimple/internal/admin"
	"github.com/yembez/quittancesimple/internal/config"
	"github.com/yembez/quittancesimple/internal/confirmation"
	"github.com/yembez/quittancesimple/internal/core"
	"github.com/yembez/quittancesimple/internal/handoff"
	"github.com/yembez/quittancesimple/internal/health"
	"github.com/yembez/quittancesimple/internal/identity"
	"github.com/yembez/quittancesimple/internal/middleware"
	"github.com/yembez/quittancesimple/internal/notify"
	"github.com/yembez/quittancesimple/internal/owner"
	"github.com/yembez/quittancesimple/internal/payment"
	"github.com/yembez/quittancesimple/internal/server"
	"github.com/yembez/quittancesimple/internal/sessionmark"
	"github.com/yembez/quittancesimple/internal/signup"
	"github.com/yembez/quittancesimple/internal/tenant"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	generateKey := flag.String(
		"generate-handoff-key",
		"",
		"write a fresh handoff signing key to the given path and exit",
	)
	flag.Parse()

	if *generateKey != "" {
		if err := handoff.GenerateKeyPair(*generateKey); err != nil {
			slog.Error("key generation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("handoff key written", "path", *generateKey)
		return
	}

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	identityProvider, err := identity.NewFirebaseProvider(ctx, cfg.Firebase)
	if err != nil {
		return err
	}
	logger.Info("identity provider initialized",
		"project_id", cfg.Firebase.ProjectID,
	)

	handoffManager, err := handoff.NewManager(cfg.Handoff)
	if err != nil {
		return err
	}
	logger.Info("handoff token manager initialized", "algorithm", "ES256")

	resolver := payment.NewStripeResolver(cfg.Stripe.SecretKey, logger)
	dispatcher := notify.NewSendGridDispatcher(cfg.SendGrid, logger)
	resendSvc := notify.NewResendService(redis.Client, dispatcher, logger)
	markStore := sessionmark.NewStore(redis.Client)

	ownerRepo := owner.NewRepository(db.DB)
	ownerSvc := owner.NewService(ownerRepo)

	tenantRepo := tenant.NewRepository(db.DB)
	importer := tenant.NewImporter(tenantRepo)

	signupSvc := signup.NewService(
		ownerSvc,
		identityProvider,
		importer,
		dispatcher,
		cfg.Routes,
		logger,
	)
	signupHandler := signup.NewHandler(signupSvc)

	confirmationSvc := confirmation.NewService(
		resolver,
		ownerSvc,
		markStore,
		handoffManager,
		resendSvc,
		cfg.Routes,
		logger,
	)
	confirmationHandler := confirmation.NewHandler(confirmationSvc)

	healthHandler := health.NewHandler()
	healthHandler.AddCheck("database", db)
	healthHandler.AddCheck("redis", redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Stats:      admin.NewStatsRepository(db.DB),
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			KeyFunc:  middleware.KeyByIPAndEndpoint,
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	opsOnly := middleware.RequireOpsToken(cfg.Admin.OpsToken)

	router.Route("/v1", func(r chi.Router) {
		signupHandler.RegisterRoutes(r)
		confirmationHandler.RegisterRoutes(r)
		adminHandler.RegisterRoutes(r, opsOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
