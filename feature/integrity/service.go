package integrity

import (
	"context"
	"fmt"
	"path"
	"sync"

	"item-sync/core/mapstore"
	"item-sync/core/reconcile"
	"item-sync/core/storage"
	"item-sync/feature/calendar"
	"item-sync/feature/integrity/checks"
	"item-sync/feature/syncjob"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the backends an integrity check inspects.
type Deps struct {
	Client storage.Client
	Bucket string
	// Prefixes must each hold at least one object.
	Prefixes []string

	DB     *gorm.DB
	Tables []checks.Table

	Store mapstore.Store
	A     reconcile.SideAdapter
	B     reconcile.SideAdapter
	// Lock is held while pruning so no sync pass rewrites the mapping meanwhile.
	Lock sync.Locker
}

// DepsFor derives the inspected backends from a wired sync pass.
func DepsFor(cfg syncjob.Config, deps syncjob.Deps, c *syncjob.Components, lock sync.Locker) Deps {
	d := Deps{
		Client:   deps.Client,
		Bucket:   deps.Bucket,
		Prefixes: []string{cfg.TasksPrefix},
		DB:       deps.DB,
		Tables:   []checks.Table{{Model: &calendar.Event{}}},
		Store:    c.Store,
		A:        c.Calendar,
		B:        c.Tasks,
		Lock:     lock,
	}
	if cfg.MappingBackend == syncjob.BackendStorage {
		if dir := path.Dir(cfg.MappingObject); dir != "." && dir != "/" {
			d.Prefixes = append(d.Prefixes, dir+"/")
		}
	} else {
		d.Tables = append(d.Tables, checks.Table{Name: cfg.MappingTable, Model: &mapstore.Record{}})
	}
	return d
}

// Service handles integrity checks.
type Service struct {
	deps    Deps
	workers int
	logger  *zap.Logger
}

// NewService creates a new integrity service.
func NewService(deps Deps, workers int, logger *zap.Logger) *Service {
	if deps.Lock == nil {
		deps.Lock = &sync.Mutex{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{deps: deps, workers: workers, logger: logger}
}

// CheckStructure returns the prefixes holding no object.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.deps.Client, s.deps.Bucket, s.deps.Prefixes)
}

// FixStructure creates the missing prefixes.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.deps.Client, s.deps.Bucket, s.logger, missing)
}

// CheckSchema verifies the event and mapping tables.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.deps.DB, s.deps.Tables...)
}

// CheckPairs reports stored pairs whose items no longer exist.
func (s *Service) CheckPairs(ctx context.Context) (*checks.PairReport, error) {
	mapping, err := s.deps.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load mapping: %w", err)
	}
	return checks.CheckPairs(ctx, mapping.Pairs(), s.deps.A, s.deps.B, s.workers)
}

// PrunePairs removes dangling pairs from the stored mapping and returns the
// check that found them along with the number removed.
func (s *Service) PrunePairs(ctx context.Context) (*checks.PairReport, int, error) {
	s.deps.Lock.Lock()
	defer s.deps.Lock.Unlock()

	mapping, err := s.deps.Store.Load(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load mapping: %w", err)
	}
	report, err := checks.CheckPairs(ctx, mapping.Pairs(), s.deps.A, s.deps.B, s.workers)
	if err != nil {
		return nil, 0, err
	}

	removed := checks.PrunePairs(mapping, report.Dangling)
	if removed == 0 {
		return report, 0, nil
	}
	if err := s.deps.Store.Save(ctx, mapping); err != nil {
		return report, 0, fmt.Errorf("failed to save mapping to %s: %w", s.deps.Store.Describe(), err)
	}
	s.logger.Info("Pruned dangling pairs",
		zap.Int("removed", removed),
		zap.String("store", s.deps.Store.Describe()),
	)
	return report, removed, nil
}
