package reconcile

import (
	"context"
	"errors"
	"time"
)

// SideAdapter defines the operations the engine performs against one side.
// Implementations own storage and I/O; every method may block or fail.
type SideAdapter interface {
	// Create stores a new item and returns its ID on this side.
	Create(ctx context.Context, item Item) (string, error)

	// Update replaces the content of the item identified by id.
	// Must return an error wrapping ErrNotFound if the item does not exist.
	Update(ctx context.Context, id string, item Item) error

	// Delete removes the item identified by id.
	// Must return an error wrapping ErrNotFound if the item does not exist.
	Delete(ctx context.Context, id string) error

	// Get returns the current content of the item identified by id.
	// Must return an error wrapping ErrNotFound if the item does not exist.
	Get(ctx context.Context, id string) (Item, error)
}

// Converter translates an item from one side's representation to the other's.
// It must be pure; malformed input should yield an error.
type Converter func(item Item) (Item, error)

// Sides bundles both adapters and both conversion directions.
type Sides struct {
	// A is the adapter for side A.
	A SideAdapter
	// B is the adapter for side B.
	B SideAdapter
	// ToA converts a side-B item into side A's format.
	ToA Converter
	// ToB converts a side-A item into side B's format.
	ToB Converter
}

func (s Sides) validate() error {
	if s.A == nil || s.B == nil {
		return errors.New("both side adapters are required")
	}
	if s.ToA == nil || s.ToB == nil {
		return errors.New("both converters are required")
	}
	return nil
}

func (s Sides) adapter(side Side) SideAdapter {
	if side == SideA {
		return s.A
	}
	return s.B
}

// converterTo returns the converter producing items for side.
func (s Sides) converterTo(side Side) Converter {
	if side == SideA {
		return s.ToA
	}
	return s.ToB
}

// Timestamped is implemented by items exposing a last-modified time.
// Recency strategies rely on it.
type Timestamped interface {
	ModifiedAt() time.Time
}
