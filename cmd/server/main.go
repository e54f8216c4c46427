package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/resource-management-api/internal/auth"
	"github.com/yukikurage/resource-management-api/internal/config"
	"github.com/yukikurage/resource-management-api/internal/database"
	"github.com/yukikurage/resource-management-api/internal/events"
	"github.com/yukikurage/resource-management-api/internal/logger"
	"github.com/yukikurage/resource-management-api/internal/metrics"
	"github.com/yukikurage/resource-management-api/internal/repository"
	"github.com/yukikurage/resource-management-api/internal/server"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer func() { _ = appLog.Sync() }()

	gin.SetMode(cfg.GinMode)

	store, ping, closeStore, err := openStore(context.Background(), cfg, appLog)
	if err != nil {
		appLog.Fatal("Failed to open store", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer closeStore()

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.NATSURL != "" {
		natsPublisher, conn, err := events.Connect(cfg.NATSURL, cfg.NATSSubjectPrefix)
		if err != nil {
			appLog.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		defer conn.Drain()
		publisher = natsPublisher
		appLog.Info("Publishing assignment events", zap.String("url", cfg.NATSURL), zap.String("prefix", cfg.NATSSubjectPrefix))
	}

	var registry *metrics.Registry
	if cfg.MetricsEnabled {
		registry = metrics.NewRegistry()
	}

	srv := server.New(server.Dependencies{
		Config:    cfg,
		Logger:    appLog,
		Store:     store,
		Tokens:    auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiration),
		Publisher: publisher,
		Metrics:   registry,
		Ping:      ping,
	})

	go func() {
		appLog.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLog.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	appLog.Info("Server exited gracefully")
}

// openStore connects the configured backend and returns the store, a health
// probe for /health and a function releasing the connection.
func openStore(ctx context.Context, cfg *config.Config, appLog *zap.Logger) (*repository.Store, func(context.Context) error, func(), error) {
	if cfg.DBDriver == config.DriverMongo {
		client, db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.EnsureMongoIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, nil, err
		}
		appLog.Info("Database connection established", zap.String("driver", cfg.DBDriver), zap.String("database", cfg.MongoDatabase))

		ping := func(ctx context.Context) error { return client.Ping(ctx, nil) }
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				appLog.Warn("Failed to disconnect from mongo", zap.Error(err))
			}
		}
		return repository.NewMongoStore(db), ping, closeFn, nil
	}

	db, err := database.Connect(cfg, appLog)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, nil, err
	}

	closeFn := func() {
		if err := database.Close(db); err != nil {
			appLog.Warn("Failed to close database", zap.Error(err))
		}
	}
	return repository.NewGormStore(db), sqlDB.PingContext, closeFn, nil
}
