package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options controls engine behavior.
type Options struct {
	// Resolver decides conflicts. Defaults to PreferAResolver.
	Resolver Resolver

	// Workers bounds how many tasks are dispatched concurrently. Defaults to 1,
	// which dispatches tasks in plan order.
	Workers int

	// FailFast stops scheduling tasks after the first failure. Remaining tasks
	// are reported as skipped and Apply returns an error wrapping ErrAborted.
	FailFast bool

	// Logger receives conflict and failure logs. Defaults to a no-op logger.
	Logger *zap.Logger

	// SideNames are the display names used in summaries. Defaults to "A Side", "B Side".
	SideNames [2]string
}

// Engine runs synchronization passes. It holds no state between calls: the
// mapping, change sets and report are passed in and out explicitly.
type Engine struct {
	sides    Sides
	resolver Resolver
	workers  int
	failFast bool
	log      *zap.Logger
	names    [2]string
}

// NewEngine creates an engine for the given sides.
func NewEngine(sides Sides, opts Options) (*Engine, error) {
	if err := sides.validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		sides:    sides,
		resolver: opts.Resolver,
		workers:  opts.Workers,
		failFast: opts.FailFast,
		log:      opts.Logger,
		names:    opts.SideNames,
	}
	if e.resolver == nil {
		e.resolver = PreferAResolver{}
	}
	if e.workers <= 0 {
		e.workers = 1
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.names[0] == "" {
		e.names[0] = "A Side"
	}
	if e.names[1] == "" {
		e.names[1] = "B Side"
	}
	return e, nil
}

// Resolver returns the configured conflict strategy.
func (e *Engine) Resolver() Resolver {
	return e.resolver
}

// SideNames returns the display names of both sides.
func (e *Engine) SideNames() [2]string {
	return e.names
}

// Sync runs one full synchronization pass: Plan followed by Apply.
//
// The mapping is owned by the engine for the duration of the call and mutated
// in place; on return it reflects only confirmed cross-side operations.
func (e *Engine) Sync(ctx context.Context, changesA, changesB ChangeSet, mapping *Mapping) (*Report, error) {
	plan, err := e.Plan(ctx, changesA, changesB, mapping)
	if err != nil {
		return nil, err
	}
	return e.Apply(ctx, plan, mapping)
}

// Apply dispatches the plan's tasks and updates the mapping as each task is
// confirmed. Per-task failures are recorded in the report and never abort the
// run unless FailFast is set.
func (e *Engine) Apply(ctx context.Context, plan *Plan, mapping *Mapping) (*Report, error) {
	if mapping == nil {
		return nil, errors.New("mapping is required")
	}
	if plan.cache == nil {
		plan.cache = newItemCache(e.sides)
	}

	entries := make([]Entry, len(plan.Tasks))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, task := range plan.Tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				entry := newEntry(task)
				entry.Outcome = OutcomeSkipped
				entry.Error = err.Error()
				entries[i] = entry
				return nil
			}

			entry := e.execute(gctx, plan.cache, task, mapping, &mu)
			entries[i] = entry

			if e.failFast && entry.Outcome == OutcomeFailed {
				return fmt.Errorf("side %s id %q: %s", task.Side, task.ID, entry.Error)
			}
			return nil
		})
	}

	waitErr := g.Wait()
	report := newReport(plan.Strategy, entries, e.names)

	e.log.Debug("Sync pass applied",
		zap.Int("processed", report.Summary.Processed),
		zap.Int("applied", report.Summary.Applied),
		zap.Int("failed", report.Summary.Failed),
		zap.Int("skipped", report.Summary.Skipped),
	)

	if waitErr != nil {
		return report, fmt.Errorf("%w: %v", ErrAborted, waitErr)
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

// execute runs one task's actions in order, then applies its mapping mutation
// if every action was confirmed.
func (e *Engine) execute(ctx context.Context, cache *itemCache, task Task, mapping *Mapping, mu *sync.Mutex) Entry {
	entry := newEntry(task)

	if task.err != nil {
		entry.fail(task.err)
		e.logFailure(task, task.err)
		return entry
	}
	if isNoop(task) {
		entry.Outcome = OutcomeSkipped
		return entry
	}

	var (
		created    string
		recreateOn Side
		allOK      = true
		targetGone bool
		deleted    bool
		errs       []error
	)

	for _, action := range task.Actions {
		result := ActionResult{
			Type:     action.Type,
			TargetID: action.TargetID,
			SourceID: action.SourceID,
		}

		newID, note, err := e.dispatch(ctx, cache, action)
		if err != nil {
			allOK = false
			errs = append(errs, err)
			result.Outcome = OutcomeFailed
			result.Error = err.Error()
			e.logFailure(task, err)

			var opErr *OpError
			if errors.As(err, &opErr) && opErr.Op == OpUpdate && errors.Is(err, ErrNotFound) {
				targetGone = true
			}
		} else {
			result.Outcome = OutcomeApplied
			result.NewID = newID
			result.Note = note
			if action.Type.IsDelete() {
				deleted = true
			}
			if newID != "" {
				created = newID
				recreateOn = action.Type.Target()
			}
		}
		entry.Actions = append(entry.Actions, result)
	}

	mu.Lock()
	mutation, err := applyMutation(task, mapping, allOK, targetGone, deleted, created, recreateOn)
	mu.Unlock()

	entry.Mapping = mutation
	if err != nil {
		errs = append(errs, err)
		e.logFailure(task, err)
	}
	if created != "" {
		if recreateOn == SideA {
			entry.IDA = created
		} else {
			entry.IDB = created
		}
	}

	if len(errs) > 0 {
		entry.fail(errors.Join(errs...))
		return entry
	}
	entry.Outcome = OutcomeApplied
	return entry
}

// applyMutation updates the mapping for a finished task and returns the
// mutation actually applied. The caller holds the mapping lock.
func applyMutation(task Task, mapping *Mapping, allOK, targetGone, deleted bool, created string, createdOn Side) (Mutation, error) {
	if !allOK {
		// The counterpart of an update is confirmed gone, or one half of a
		// removal went through: either way the pair no longer names two items.
		if (targetGone && task.Mutation == MutationNone) || (deleted && task.Mutation == MutationRemove) {
			mapping.RemoveByA(task.IDA)
			mapping.RemoveByB(task.IDB)
			return MutationRemove, nil
		}
		return MutationNone, nil
	}

	switch task.Mutation {
	case MutationPut:
		var err error
		if createdOn == SideB {
			err = mapping.Put(task.IDA, created)
		} else {
			err = mapping.Put(created, task.IDB)
		}
		if err != nil {
			return MutationNone, err
		}
		return MutationPut, nil

	case MutationRemove:
		mapping.RemoveByA(task.IDA)
		mapping.RemoveByB(task.IDB)
		return MutationRemove, nil

	case MutationRepoint:
		var err error
		if createdOn == SideA {
			mapping.RemoveByB(task.IDB)
			err = mapping.Put(created, task.IDB)
		} else {
			mapping.RemoveByA(task.IDA)
			err = mapping.Put(task.IDA, created)
		}
		if err != nil {
			return MutationRemove, err
		}
		return MutationRepoint, nil
	}
	return MutationNone, nil
}

// dispatch performs a single action. It returns the created ID for creations
// and a note for deletions of items that were already absent.
func (e *Engine) dispatch(ctx context.Context, cache *itemCache, action Action) (string, string, error) {
	target := action.Type.Target()
	adapter := e.sides.adapter(target)

	switch action.Type {
	case ActionDeleteA, ActionDeleteB:
		err := adapter.Delete(ctx, action.TargetID)
		cache.Invalidate(target, action.TargetID)
		if errors.Is(err, ErrNotFound) {
			return "", "already absent", nil
		}
		if err != nil {
			return "", "", &OpError{Op: OpDelete, Side: target, ID: action.TargetID, Err: err}
		}
		return "", "", nil

	case ActionCreateA, ActionCreateB, ActionUpdateA, ActionUpdateB:
		source := target.Other()
		item := action.Item
		if item == nil {
			var err error
			item, err = cache.Get(ctx, source, action.SourceID)
			if err != nil {
				return "", "", err
			}
		}

		converted, err := e.sides.converterTo(target)(item)
		if err != nil {
			return "", "", &ConversionError{From: source, ID: action.SourceID, Err: err}
		}

		if action.Type == ActionCreateA || action.Type == ActionCreateB {
			newID, err := adapter.Create(ctx, converted)
			if err != nil {
				return "", "", &OpError{Op: OpCreate, Side: target, Err: err}
			}
			if newID == "" {
				return "", "", &OpError{Op: OpCreate, Side: target, Err: errors.New("adapter returned an empty id")}
			}
			return newID, "", nil
		}

		err = adapter.Update(ctx, action.TargetID, converted)
		cache.Invalidate(target, action.TargetID)
		if err != nil {
			return "", "", &OpError{Op: OpUpdate, Side: target, ID: action.TargetID, Err: err}
		}
		return "", "", nil
	}

	return "", "", nil
}

func (e *Engine) logFailure(task Task, err error) {
	e.log.Error("Sync task failed",
		zap.String("side", task.Side.String()),
		zap.String("id", task.ID),
		zap.String("id_a", task.IDA),
		zap.String("id_b", task.IDB),
		zap.String("state", string(task.State)),
		zap.Error(err),
	)
}
