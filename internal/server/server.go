// Package server boots the backing services and runs the HTTP server until
// SIGINT or SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/app/repositories/memory"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/config"
	"github.com/shashiranjanraj/catalog/internal/kernel"
	"github.com/shashiranjanraj/catalog/pkg/cache"
	"github.com/shashiranjanraj/catalog/pkg/database"
	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/storage"
)

const shutdownTimeout = 15 * time.Second

// App is everything a booted process holds.
type App struct {
	Repos    *repositories.Set
	Services *services.Services
	Cache    cache.Store
	Disk     storage.Disk

	closers []func(context.Context) error
}

// Boot loads configuration and connects the store, the cache and the disk.
// A missing Redis falls back to the in-process cache with a warning.
func Boot(ctx context.Context) (*App, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	app := &App{}

	switch config.StoreDriver() {
	case "memory":
		logger.Warn("using the in-memory store; data is lost on exit")
		app.Repos = memory.NewSet()
	default:
		client, err := database.Connect(ctx)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, client.Disconnect)

		db := database.Database(client)
		if err := repositories.EnsureCollections(ctx, db); err != nil {
			app.Close(ctx)
			return nil, err
		}
		if err := repositories.EnsureIndexes(ctx, db); err != nil {
			app.Close(ctx)
			return nil, err
		}
		if config.LogToMongo() {
			app.logToMongo(db)
		}
		app.Repos = repositories.NewMongoSet(client, db)
	}

	if rdb, err := cache.Connect(ctx); err != nil {
		logger.Warn("redis unavailable, using in-process cache", "error", err)
		app.Cache = cache.NewMemoryStore()
	} else {
		app.closers = append(app.closers, func(context.Context) error { return rdb.Close() })
		app.Cache = cache.NewRedisStore(rdb, "catalog:")
	}

	disk, err := storage.FromConfig(ctx)
	if err != nil {
		app.Close(ctx)
		return nil, err
	}
	app.Disk = disk

	app.Services = services.New(app.Repos, app.Cache, app.Disk, config.UploadMaxBytes())
	return app, nil
}

func (a *App) logToMongo(db *mongo.Database) {
	sink := logger.NewMongoHandler(db.Collection("logs"), slog.LevelInfo)
	logger.Init(os.Stdout, sink)
	// Flushed before the client it writes through is disconnected.
	a.closers = append(a.closers, func(context.Context) error {
		sink.Close()
		return nil
	})
}

// Close releases connections in reverse order of acquisition.
func (a *App) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			logger.Warn("shutdown", "error", err)
		}
	}
	a.closers = nil
}

// Start boots the app and serves on APP_PORT until interrupted.
func Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.Load(); err != nil {
		return err
	}
	logger.Init(os.Stdout)

	app, err := Boot(ctx)
	if err != nil {
		return err
	}
	defer app.Close(context.Background())

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           kernel.NewHTTPKernel(app.Services, kernel.Options{Limiter: app.Cache, Disk: app.Disk}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("catalog listening", "addr", srv.Addr, "env", config.AppEnv(), "store", config.StoreDriver())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
