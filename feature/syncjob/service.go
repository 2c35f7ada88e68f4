package syncjob

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"item-sync/core/mapstore"
	"item-sync/core/reconcile"

	"go.uber.org/zap"
)

// Request is the input of one pass.
type Request struct {
	// A and B are the change sets reported by each side since the previous pass.
	A reconcile.ChangeSet `json:"a"`
	B reconcile.ChangeSet `json:"b"`
	// DryRun computes the plan without writing anything.
	DryRun bool `json:"dry_run"`
}

// Service runs passes against one mapping store.
type Service struct {
	engine *reconcile.Engine
	store  mapstore.Store
	logger *zap.Logger

	// mu serializes passes: each one loads, mutates and saves the whole mapping.
	mu sync.Mutex
}

// NewService creates a new sync service.
func NewService(engine *reconcile.Engine, store mapstore.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{engine: engine, store: store, logger: logger}
}

// Run executes one pass. The returned report is nil only when the pass failed
// before planning completed. When a report is returned alongside an error (abort
// or cancellation) the mapping has still been saved.
func (s *Service) Run(ctx context.Context, req Request, logger *zap.Logger) (*reconcile.Report, error) {
	if logger == nil {
		logger = s.logger
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	mapping, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load mapping from %s: %w", s.store.Describe(), err)
	}

	if req.DryRun {
		plan, err := s.engine.Plan(ctx, req.A, req.B, mapping)
		if err != nil {
			return nil, err
		}
		report := plan.Report(s.engine.SideNames())
		logger.Info("Sync plan computed",
			zap.String("strategy", report.Strategy),
			zap.Int("processed", report.Summary.Processed),
			zap.Int("actions", report.ActionCount()),
		)
		return report, nil
	}

	report, syncErr := s.engine.Sync(ctx, req.A, req.B, mapping)
	if report == nil {
		return nil, syncErr
	}

	// Saved with a fresh context so a cancelled pass still records what it confirmed.
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()
	if err := s.store.Save(saveCtx, mapping); err != nil {
		return report, errors.Join(syncErr, fmt.Errorf("failed to save mapping to %s: %w", s.store.Describe(), err))
	}

	fields := []zap.Field{
		zap.String("strategy", report.Strategy),
		zap.Int("processed", report.Summary.Processed),
		zap.Int("applied", report.Summary.Applied),
		zap.Int("failed", report.Summary.Failed),
		zap.Int("skipped", report.Summary.Skipped),
		zap.Int("conflicts", report.Summary.Conflicts),
		zap.Int("unresolved", report.Summary.Unresolved),
		zap.Int("pairs", mapping.Len()),
		zap.Duration("duration", time.Since(start)),
	}
	switch {
	case syncErr != nil:
		logger.Error("Sync pass aborted", append(fields, zap.Error(syncErr))...)
	case report.HasFailures():
		logger.Warn("Sync pass finished with failures", fields...)
	default:
		logger.Info("Sync pass finished", fields...)
	}
	return report, syncErr
}

// Mappings returns every stored pair.
func (s *Service) Mappings(ctx context.Context) ([]reconcile.Pair, error) {
	mapping, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return mapping.Pairs(), nil
}

// Lookup returns the counterpart of id, which belongs to side.
func (s *Service) Lookup(ctx context.Context, side reconcile.Side, id string) (string, bool, error) {
	mapping, err := s.store.Load(ctx)
	if err != nil {
		return "", false, err
	}
	counterpart, ok := mapping.Lookup(side, id)
	return counterpart, ok, nil
}

// Locker returns the lock held for the duration of a pass. Maintenance that
// rewrites the mapping takes it to stay out of a running pass.
func (s *Service) Locker() sync.Locker {
	return &s.mu
}

// Strategy returns the name of the configured conflict strategy.
func (s *Service) Strategy() string {
	return s.engine.Resolver().Name()
}
