// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/carterperez-dev/cms-blog/internal/admin"
	"github.com/carterperez-dev/cms-blog/internal/auth"
	"github.com/carterperez-dev/cms-blog/internal/comment"
	"github.com/carterperez-dev/cms-blog/internal/config"
	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/emoji"
	"github.com/carterperez-dev/cms-blog/internal/gate"
	"github.com/carterperez-dev/cms-blog/internal/health"
	"github.com/carterperez-dev/cms-blog/internal/media"
	"github.com/carterperez-dev/cms-blog/internal/middleware"
	"github.com/carterperez-dev/cms-blog/internal/moderation"
	"github.com/carterperez-dev/cms-blog/internal/post"
	"github.com/carterperez-dev/cms-blog/internal/reaction"
	"github.com/carterperez-dev/cms-blog/internal/server"
	"github.com/carterperez-dev/cms-blog/internal/settings"
	"github.com/carterperez-dev/cms-blog/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
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

	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		configPath = ""
	}

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

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		logger.Warn("failed to initialize telemetry, tracing disabled", "error", err)
		disabled := cfg.Otel
		disabled.Enabled = false
		telemetry, _ = core.NewTelemetry(ctx, disabled, cfg.App) //nolint:errcheck // disabled provider cannot fail
	} else if cfg.Otel.Enabled {
		logger.Info("OpenTelemetry tracer initialized",
			"endpoint", cfg.Otel.Endpoint,
		)
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		if err := core.Migrate(ctx, db.DB); err != nil {
			return err
		}
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	switch {
	case errors.Is(err, core.ErrRedisUnavailable):
		logger.Warn("redis unreachable, using local rate limits and uncached settings",
			"error", err,
		)
	case err != nil:
		return err
	default:
		logger.Info("redis connected",
			"pool_size", cfg.Redis.PoolSize,
		)
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.KeyID(),
	)

	userRepo := user.NewRepository(db.DB)
	ledger := moderation.NewService(moderation.NewRepository(db.DB), userRepo)
	userSvc := user.NewService(userRepo, ledger)

	siteSettings := settings.NewStore(
		settings.NewRepository(db.DB),
		redis.Client,
		cfg.Settings.CacheTTL,
	)

	authSvc := auth.NewService(userSvc, jwtManager, siteSettings)

	postSvc := post.NewService(post.NewRepository(db.DB))
	emojiSvc := emoji.NewService(emoji.NewRepository(db.DB))
	commentSvc := comment.NewService(comment.NewRepository(db.DB), postSvc)
	reactionSvc := reaction.NewService(reaction.NewRepository(db.DB), postSvc, emojiSvc)

	g := gate.New(jwtManager, userSvc, ledger)
	g.Chain(middleware.RoleRateLimiter(redis.Client, middleware.DefaultRoleTiers))

	deps := []health.Dependency{
		{Name: "database", Checker: db},
		{Name: "redis", Checker: redis, Optional: true},
	}

	var mediaHandler *media.Handler
	if cfg.Media.Enabled {
		store, storeErr := media.NewMinioStore(cfg.Media)
		if storeErr != nil {
			return storeErr
		}
		if err := store.EnsureBucket(ctx); err != nil {
			logger.Warn("media bucket unavailable", "error", err)
		}
		mediaHandler = media.NewHandler(
			media.NewService(store, cfg.Media.PublicURL, cfg.Media.MaxSizeMB<<20),
		)
		deps = append(deps, health.Dependency{Name: "media", Checker: store, Optional: true})
		logger.Info("media storage enabled", "bucket", cfg.Media.Bucket)
	}

	healthHandler := health.NewHandler(deps...)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Content:    admin.NewRepository(db.DB),
		Mutes:      ledger,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing(telemetry.Tracer))
	router.Use(middleware.Logger(logger))
	if cfg.Metrics.Enabled {
		router.Use(middleware.Metrics)
	}
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, middleware.MetricsHandler())
	}

	router.Get("/.well-known/jwks.json", jwtManager.JWKSHandler())

	authLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit: middleware.PerMinute(
			cfg.RateLimit.AuthRequests,
			cfg.RateLimit.AuthBurst,
		),
		KeyFunc:  middleware.KeyByIPAndEndpoint,
		FailOpen: true,
	}).Handler

	server.API{
		Gate:         g,
		Settings:     siteSettings,
		AuthLimiter:  authLimiter,
		Auth:         auth.NewHandler(authSvc),
		Users:        user.NewHandler(userSvc),
		Moderation:   moderation.NewHandler(ledger),
		Posts:        post.NewHandler(postSvc),
		Comments:     comment.NewHandler(commentSvc),
		Reactions:    reaction.NewHandler(reactionSvc),
		Emojis:       emoji.NewHandler(emojiSvc),
		SiteSettings: settings.NewHandler(siteSettings),
		Media:        mediaHandler,
		Admin:        adminHandler,
	}.Mount(router)

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
