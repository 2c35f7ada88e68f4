// Package syncjob runs synchronization passes between the calendar side and the
// task side.
//
// A pass loads the identifier mapping from the configured store, hands it to the
// reconcile engine together with the caller's change sets, and saves the mapping
// back. The mapping is saved even when some actions failed: it only ever holds
// confirmed pairs. Passes are serialized inside one process.
//
// The package also exposes the pass over HTTP (Handler) and mounts it through the
// loader (Feature).
package syncjob
