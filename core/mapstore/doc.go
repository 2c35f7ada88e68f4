// Package mapstore persists the identifier mapping between sync passes.
//
// The reconcile engine treats the mapping as an in-memory value owned by the
// caller; this package is that caller-side persistence. Two backends exist:
//
//   - SQLStore keeps one row per pair in a gorm-managed table with a unique
//     index on each column, so the database itself enforces the bijection.
//   - ObjectStore keeps a JSON snapshot in an object storage bucket.
//
// Both load a *reconcile.Mapping and save it back after a pass. Save writes the
// full mapping; SQLStore only touches rows that changed.
//
// # Usage
//
//	store := mapstore.NewSQLStore(db, "id_mappings")
//	if err := store.Migrate(ctx); err != nil { ... }
//	m, err := store.Load(ctx)
//	report, err := engine.Sync(ctx, changesA, changesB, m)
//	err = store.Save(ctx, m)
package mapstore
