package mapstore

import (
	"context"

	"item-sync/core/reconcile"
)

// Store loads and saves the identifier mapping.
type Store interface {
	// Load returns the persisted mapping. A store that was never saved yields an empty mapping.
	Load(ctx context.Context) (*reconcile.Mapping, error)
	// Save replaces the persisted mapping with m.
	Save(ctx context.Context, m *reconcile.Mapping) error
	// Check verifies the backing storage and returns the number of stored pairs.
	Check(ctx context.Context) (int, error)
	// Describe names the backend for logs.
	Describe() string
}

var (
	_ Store = (*SQLStore)(nil)
	_ Store = (*ObjectStore)(nil)
)
