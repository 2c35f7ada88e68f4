// Package integrity provides health checks over the backends of a sync pass.
//
// Sync passes only look at the items reported in change sets, so drift that
// happens outside them goes unnoticed. This package inspects the backends as a whole.
//
// # Checks Provided
//
//   - Structure: the task prefix (and, for the storage backend, the mapping snapshot folder) exist in the bucket.
//   - Schema: the event and mapping tables hold every column of their GORM models.
//   - Mappings: every stored pair still points to an existing item on both sides.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/schema : Runs schema check.
//   - GET /integrity/mappings : Runs pair check (supports ?fix=true to prune dangling pairs).
package integrity
