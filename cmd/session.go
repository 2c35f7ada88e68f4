package cmd

import (
	"context"
	"fmt"

	"item-sync/core/config"
	"item-sync/core/database"
	"item-sync/core/logger"
	"item-sync/core/storage"
	"item-sync/feature/syncjob"

	"go.uber.org/zap"
)

// session holds the connections and wired components shared by the CLI commands.
type session struct {
	cfg        *config.Config
	logger     *zap.Logger
	deps       syncjob.Deps
	components *syncjob.Components
}

// openSession loads configuration, connects to both backends and wires a sync
// pass. override adjusts the sync configuration from command flags before wiring.
func openSession(ctx context.Context, override func(*syncjob.Config)) (*session, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	if override != nil {
		override(&cfg.Sync)
	}

	deps := syncjob.Deps{
		DB:     db,
		Client: client,
		Bucket: cfg.Storage.Bucket,
		Region: cfg.Storage.Region,
	}
	components, err := syncjob.Build(cfg.Sync, deps, l)
	if err != nil {
		return nil, fmt.Errorf("failed to wire sync components: %w", err)
	}
	if err := components.Prepare(ctx, deps); err != nil {
		return nil, fmt.Errorf("failed to prepare backends: %w", err)
	}

	return &session{cfg: cfg, logger: l, deps: deps, components: components}, nil
}

// service returns a sync service over the session's components.
func (s *session) service() *syncjob.Service {
	return syncjob.NewService(s.components.Engine, s.components.Store, s.logger)
}

func (s *session) close() {
	_ = s.logger.Sync()
	if sqlDB, err := s.deps.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
