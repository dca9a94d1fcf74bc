package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/secdash/internal/bootstrap"
	"github.com/MrSnakeDoc/secdash/internal/config"
	"github.com/MrSnakeDoc/secdash/internal/dashboard"
	"github.com/MrSnakeDoc/secdash/internal/graphql"
	"github.com/MrSnakeDoc/secdash/internal/httpserver"
	"github.com/MrSnakeDoc/secdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/secdash/internal/index"
	"github.com/MrSnakeDoc/secdash/internal/logger"
	"github.com/MrSnakeDoc/secdash/internal/presentation"
	"github.com/MrSnakeDoc/secdash/internal/redis"
	"github.com/MrSnakeDoc/secdash/internal/sources/dataset"
	redisstore "github.com/MrSnakeDoc/secdash/internal/store/redis"
	"github.com/MrSnakeDoc/secdash/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	loader      *bootstrap.Loader
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Redis is optional - but fail fast if configured and unavailable
	var redisClient *goredis.Client
	var store *redisstore.Store
	if cfg.RedisEnabled() {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(context.Background(), redis.OptionsFromConfig(cfg), loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")
		redisClient = client
		store = redisstore.NewStore(client)
	} else {
		loggerClient.Info("redis not configured, view cache and snapshot publishing disabled")
	}

	// Display texts
	ui := presentation.Default()
	if cfg.UIFile != "" {
		custom, err := presentation.LoadFile(cfg.UIFile)
		if err != nil {
			loggerClient.Errorf("Failed to load UI config: %v", err)
			os.Exit(1)
		}
		ui = custom
		loggerClient.Info("ui config loaded", logger.String("file", cfg.UIFile))
	}

	// Record store, filled once in Run
	memIndex := index.NewMemoryIndex()

	loader := bootstrap.NewLoader(selectSource(cfg, store), memIndex, loggerClient)
	if cfg.PublishSnapshot && store != nil {
		loader.WithPublisher(store)
	}

	// Dashboard service, with the redis view cache when available
	svc := dashboard.New(memIndex, loggerClient)
	if store != nil {
		svc.WithCache(store, cfg.ViewCacheTTL)
	}
	loggerClient.Info("view cache",
		logger.Bool("enabled", svc.CacheEnabled()),
		logger.Duration("ttl", cfg.ViewCacheTTL))

	schema, err := graphql.NewSchema(svc, ui)
	if err != nil {
		loggerClient.Errorf("Failed to build GraphQL schema: %v", err)
		os.Exit(1)
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Build:        version.Get(),
		TimeNow:      time.Now,
		AllowedHosts: cfg.AllowedHosts,
		AllowedNets:  cfg.AllowedNets,
		TrustProxy:   cfg.TrustProxy,
		RedisStore:   store,
		MemoryIndex:  memIndex,
		Dashboard:    svc,
		UI:           ui,
		Schema:       &schema,
		CORSOrigins:  cfg.CORSOrigins,
		RateLimit: deps.RateLimit{
			Burst:  cfg.RateLimitBurst,
			PerMin: cfg.RateLimitPerMin,
		},
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		loader:      loader,
	}
}

// selectSource picks the record source named by the configuration
func selectSource(cfg *config.Config, store *redisstore.Store) dataset.Source {
	switch cfg.Source {
	case config.SourceFile:
		return dataset.NewFileSource(cfg.DataFile)
	case config.SourceRedis:
		return store
	default:
		return dataset.NewEmbeddedSource()
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting %s on %s", version.Get(), a.cfg.ListenPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the record store before serving; /readyz answers 503 until then
	if err := a.loader.Load(ctx); err != nil {
		return fmt.Errorf("failed to load record store: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ secdash stopped cleanly")
	return nil
}
