package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gyansetu/internal/call"
	"gyansetu/internal/config"
	"gyansetu/internal/database"
	"gyansetu/internal/localstore"
	"gyansetu/internal/ratelimit"
	"gyansetu/internal/repository"
	"gyansetu/internal/seed"
	"gyansetu/internal/service"
	"gyansetu/internal/storage"
)

type App struct {
	Repo     *repository.Repository
	Services *service.Service
	Limiter  *ratelimit.LoginLimiter
	db       *database.DB
}

// New opens the configured backend and media storage, wires the services
// and seeds the owner account.
func New(ctx context.Context, cfg *config.Config, lg *zap.Logger) (*App, error) {
	// the local store also holds sessions, preferences and feedback for the postgres backend
	store, err := localstore.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open data dir: %w", err)
	}

	a := &App{}
	var seedStore localstore.Store

	switch cfg.StorageBackend {
	case config.BackendPostgres:
		db, err := database.ConnectDB(cfg, lg)
		if err != nil {
			return nil, err
		}
		ledger, err := database.ConnectLedger(db)
		if err != nil {
			db.CloseDB()
			return nil, err
		}
		a.db = db
		a.Repo = repository.NewPostgresRepository(db.DB, ledger, store, lg)
	case config.BackendLocal:
		a.Repo = repository.NewLocalRepository(store, lg)
		seedStore = store
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	media, err := newMedia(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Services = service.NewService(a.Repo, cfg, media, call.VirtualDevices{}, lg)
	a.Limiter = ratelimit.NewLoginLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst)

	if _, err := seed.NewSeeder(a.Repo.User, seedStore, cfg, lg).Run(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("seed: %w", err)
	}

	lg.Info("application ready",
		zap.String("storage", cfg.StorageBackend),
		zap.String("media", cfg.MediaBackend),
	)
	return a, nil
}

func newMedia(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.MediaBackend {
	case config.MediaMinIO:
		client, err := storage.NewMinIOClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("init minio: %w", err)
		}
		return client, nil
	case config.MediaPlaceholder:
		return storage.NewPlaceholder(), nil
	}
	return nil, fmt.Errorf("unknown media backend %q", cfg.MediaBackend)
}

// Close ends live calls and releases the database.
func (a *App) Close() error {
	if a.Services != nil {
		a.Services.Call.Shutdown(context.Background())
	}
	if a.db != nil {
		return a.db.CloseDB()
	}
	return nil
}
