// Package reconcile provides a bidirectional reconciliation engine that keeps two
// independently mutable collections of items (side A and side B) in sync.
//
// The engine owns only the decision logic. Callers supply the change sets for each
// side, the persisted Identifier Mapping between side-A and side-B IDs, and a
// SideAdapter per side that performs the actual create/update/delete/get calls.
//
// # Architecture
//
// The reconcile system consists of five components:
//
// 1. Mapping: a bijection between side-A IDs and side-B IDs. Each ID appears in at
//    most one pair; Put fails with a DuplicateMappingError otherwise.
//
// 2. ChangeSet: per side, the IDs inserted, updated and deleted since the previous run.
//    The three sets must be pairwise disjoint.
//
// 3. SideAdapter and Converter: the caller-provided operations for each side and the
//    pure functions translating an item from one side's format to the other's.
//
// 4. Resolver: a pluggable strategy deciding what to do with a pair changed on both
//    sides (or deleted on one side and updated on the other).
//
// 5. Engine: classifies every changed ID, consults the resolver, builds a Plan of
//    actions and applies it, updating the mapping only after confirmed operations.
//
// # Execution
//
// A run is split in two phases, mirroring a dry-run friendly plan/apply flow:
//
//   - Plan validates both change sets, classifies IDs, fetches the items a conflict
//     needs and resolves conflicts. It performs no writes.
//   - Apply dispatches the plan's tasks, optionally on a bounded worker pool, and
//     records one report entry per processed ID.
//
// A failure on one task never aborts the run unless Options.FailFast is set.
//
// # Usage Example
//
//	engine, err := reconcile.NewEngine(reconcile.Sides{
//	    A:   calendarSide,
//	    B:   taskSide,
//	    ToA: bridge.TaskToEvent,
//	    ToB: bridge.EventToTask,
//	}, reconcile.Options{Resolver: reconcile.NewMostRecentResolver(), Logger: log})
//
//	report, err := engine.Sync(ctx, changesA, changesB, mapping)
//	if err != nil {
//	    // validation failed, nothing was touched
//	}
//	for _, entry := range report.Failures() {
//	    log.Warn("sync failed", zap.String("id", entry.ID), zap.String("error", entry.Error))
//	}
package reconcile
