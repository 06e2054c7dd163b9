// @title        Shipment Tracker Dashboard API
// @version      1.0
// @description  Lists, filters, paginates and exports shipment trackers.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/tracker-dashboard/internal/api"
	"github.com/99minutos/tracker-dashboard/internal/core/ports"
	"github.com/99minutos/tracker-dashboard/internal/core/service"
	"github.com/99minutos/tracker-dashboard/internal/export"
	"github.com/99minutos/tracker-dashboard/internal/infrastructure/db/memory"
	mongostore "github.com/99minutos/tracker-dashboard/internal/infrastructure/db/mongo"
	redisstore "github.com/99minutos/tracker-dashboard/internal/infrastructure/db/redis"
	"github.com/99minutos/tracker-dashboard/internal/pkg/config"
	"github.com/99minutos/tracker-dashboard/pkg/logger"
)

const serviceName = "tracker-dashboard"

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
		Env:     cfg.Env,
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Tracker store ---
	var (
		repo ports.TrackerRepository
		db   *mongo.Database
	)
	switch cfg.Store.Kind {
	case config.StoreMemory:
		mem, err := openMemoryStore(cfg.Store.SeedFile)
		if err != nil {
			return err
		}
		log.Info().Int("trackers", mem.Len()).Msg("using in-memory store")
		if cfg.Store.WatchSeed && cfg.Store.SeedFile != "" {
			w := memory.NewSeedWatcher(mem, cfg.Store.SeedFile, log)
			go func() {
				if err := w.Run(ctx); err != nil {
					log.Error().Err(err).Msg("seed watcher stopped")
				}
			}()
		}
		repo = mem
	default:
		client, database, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  serviceName,
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect")
			}
		}()

		mr := mongostore.NewTrackerRepository(database, cfg.Mongo.TrackersCollection, cfg.Mongo.AddressesCollection)
		if err := mr.EnsureIndexes(ctx); err != nil {
			// Reads still work without the indexes, just slower.
			log.Warn().Err(err).Msg("failed to ensure tracker indexes")
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")
		repo, db = mr, database
	}

	// --- Detail cache ---
	opts := []service.Option{service.WithMaxLimit(cfg.MaxPageLimit)}
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, detail cache disabled")
		} else {
			defer client.Close()
			rdb = client
			opts = append(opts, service.WithCache(redisstore.NewTrackerCache(client, cfg.Redis.TTL)))
			log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.TTL).Msg("tracker detail cache enabled")
		}
	}

	// --- Service + HTTP ---
	writers := []ports.SheetWriter{export.NewXLSXWriter(), export.NewCSVWriter()}
	svc := service.NewTrackerService(repo, writers, log, opts...)

	e := api.NewRouter(api.RouterDeps{
		Trackers: svc,
		Mongo:    db,
		Redis:    rdb,
		Logger:   log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func openMemoryStore(seedFile string) (*memory.TrackerRepository, error) {
	if seedFile == "" {
		return memory.NewTrackerRepository(), nil
	}
	repo, err := memory.LoadFile(seedFile)
	if err != nil {
		return nil, fmt.Errorf("load seed file: %w", err)
	}
	return repo, nil
}
