package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/avelling/resman/internal/config"
	"github.com/avelling/resman/internal/httpserver"
	"github.com/avelling/resman/internal/httpserver/deps"
	"github.com/avelling/resman/internal/logger"
	"github.com/avelling/resman/internal/mongodb"
	"github.com/avelling/resman/internal/store/mongostore"
	"github.com/avelling/resman/internal/store/rediscache"
	"github.com/avelling/resman/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	mongoClient *mongo.Client
	redisClient *goredis.Client
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Connect Mongo early - fail fast if unavailable
	mongoClient, err := mongodb.Connect(mongodb.ConnectOptions{
		URI:            cfg.MongoURL,
		ConnectTimeout: cfg.MongoConnectTimeout,
		RetryInterval:  cfg.MongoRetryInterval,
		MaxWait:        cfg.MongoMaxWait,
		PingTimeout:    cfg.MongoPingTimeout,
		WarnThreshold:  cfg.MongoWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Mongo: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Mongo initialized successfully",
		logger.String("database", cfg.DBName))

	// Resource store over the configured database
	resourceStore := mongostore.NewStore(mongoClient.Database(cfg.DBName))

	// Optional Redis list cache
	var redisClient *goredis.Client
	var listCache *rediscache.ListCache
	if cfg.CacheEnabled() {
		redisClient = goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Username: cfg.RedisUser,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		listCache = rediscache.New(redisClient, cfg.CacheTTL)
		loggerClient.Info("redis list cache enabled",
			logger.String("addr", cfg.RedisAddr),
			logger.Duration("ttl", cfg.CacheTTL))
	} else {
		loggerClient.Info("redis list cache not configured, list reads go straight to mongo")
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		Store:          resourceStore,
		Cache:          listCache,
		MongoClient:    mongoClient,
		RedisClient:    redisClient,
		ImportMaxBytes: cfg.ImportMaxBytes,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		mongoClient: mongoClient,
		redisClient: redisClient,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting resman v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("resman %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer disconnectCancel()
	if err := a.mongoClient.Disconnect(disconnectCtx); err != nil {
		a.logger.Warnf("failed to disconnect mongo: %v", err)
	} else {
		a.logger.Info("✅ Mongo closed cleanly")
	}

	a.logger.Info("✅ resman stopped cleanly")
	return nil
}
