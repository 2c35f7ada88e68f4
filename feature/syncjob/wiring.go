package syncjob

import (
	"context"
	"errors"

	"item-sync/core/mapstore"
	"item-sync/core/reconcile"
	"item-sync/core/storage"
	"item-sync/feature/bridge"
	"item-sync/feature/calendar"
	"item-sync/feature/tasks"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Deps are the connections a sync pass needs.
type Deps struct {
	DB     *gorm.DB
	Client storage.Client
	Bucket string
	Region string
}

// Components are the wired pieces of a sync pass.
type Components struct {
	Calendar *calendar.Side
	Tasks    *tasks.Side
	Store    mapstore.Store
	Engine   *reconcile.Engine
}

// Build wires both sides, the mapping store and the engine.
func Build(cfg Config, deps Deps, logger *zap.Logger) (*Components, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.DB == nil {
		return nil, errors.New("calendar side requires a database connection")
	}
	if deps.Client == nil {
		return nil, errors.New("task side requires a storage client")
	}

	c := &Components{
		Calendar: calendar.NewSide(deps.DB),
		Tasks:    tasks.NewSide(deps.Client, deps.Bucket, cfg.TasksPrefix),
	}

	if cfg.MappingBackend == BackendStorage {
		c.Store = mapstore.NewObjectStore(deps.Client, deps.Bucket, cfg.MappingObject)
	} else {
		c.Store = mapstore.NewSQLStore(deps.DB, cfg.MappingTable)
	}

	resolver, err := reconcile.NewResolver(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	c.Engine, err = reconcile.NewEngine(reconcile.Sides{
		A:   c.Calendar,
		B:   c.Tasks,
		ToA: bridge.TaskToEvent,
		ToB: bridge.EventToTask,
	}, reconcile.Options{
		Resolver:  resolver,
		Workers:   cfg.Workers,
		FailFast:  cfg.FailFast,
		Logger:    logger,
		SideNames: [2]string{cfg.SideAName, cfg.SideBName},
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Prepare creates the bucket concurrently with the schema migrations. Migrations
// share one connection pool and run in sequence.
func (c *Components) Prepare(ctx context.Context, deps Deps) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := c.Calendar.Migrate(gctx); err != nil {
			return err
		}
		if sqlStore, ok := c.Store.(*mapstore.SQLStore); ok {
			return sqlStore.Migrate(gctx)
		}
		return nil
	})
	g.Go(func() error {
		return storage.EnsureBucket(gctx, deps.Client, deps.Bucket, deps.Region)
	})

	return g.Wait()
}
