package reconcile

import (
	"fmt"
	"sort"
	"time"
)

// Conflict carries what a Resolver may look at. ItemA or ItemB is nil when that
// side deleted the item.
type Conflict struct {
	State State
	IDA   string
	IDB   string
	ItemA Item
	ItemB Item
}

// Resolver decides the fate of a conflicting pair. Implementations must be pure
// and stateless across calls.
type Resolver interface {
	// Name returns the registry name of the strategy.
	Name() string
	// Resolve returns the resolution for c, or an error when the strategy cannot decide.
	Resolve(c Conflict) (Resolution, error)
}

// Strategy names accepted by NewResolver.
const (
	StrategyPreferA     = "prefer-a"
	StrategyPreferB     = "prefer-b"
	StrategyMostRecent  = "most-recent"
	StrategyLeastRecent = "least-recent"
	StrategyDeleteWins  = "delete-wins"
	StrategyManual      = "manual"
)

var (
	_ Resolver = PreferAResolver{}
	_ Resolver = PreferBResolver{}
	_ Resolver = (*RecencyResolver)(nil)
	_ Resolver = (*DeleteWinsResolver)(nil)
	_ Resolver = ManualResolver{}
)

var registry = map[string]func() Resolver{
	StrategyPreferA:     func() Resolver { return PreferAResolver{} },
	StrategyPreferB:     func() Resolver { return PreferBResolver{} },
	StrategyMostRecent:  func() Resolver { return NewMostRecentResolver() },
	StrategyLeastRecent: func() Resolver { return NewLeastRecentResolver() },
	StrategyDeleteWins:  func() Resolver { return NewDeleteWinsResolver(nil) },
	StrategyManual:      func() Resolver { return ManualResolver{} },
}

// NewResolver returns the built-in strategy registered under name.
func NewResolver(name string) (Resolver, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown resolution strategy %q (available: %v)", name, Strategies())
	}
	return factory(), nil
}

// Strategies lists the registered strategy names.
func Strategies() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PreferAResolver always keeps side A's state.
type PreferAResolver struct{}

func (PreferAResolver) Name() string { return StrategyPreferA }

func (PreferAResolver) Resolve(Conflict) (Resolution, error) { return PreferA, nil }

// PreferBResolver always keeps side B's state.
type PreferBResolver struct{}

func (PreferBResolver) Name() string { return StrategyPreferB }

func (PreferBResolver) Resolve(Conflict) (Resolution, error) { return PreferB, nil }

// ManualResolver skips every conflict so the caller can settle it out of band.
type ManualResolver struct{}

func (ManualResolver) Name() string { return StrategyManual }

func (ManualResolver) Resolve(Conflict) (Resolution, error) { return Skip, nil }

// RecencyResolver picks a side by comparing modification times.
// A surviving item always wins over a deleted one. Ties go to side A.
type RecencyResolver struct {
	name string
	// preferA reports whether side A wins given both timestamps.
	preferA func(a, b time.Time) bool

	// DateA and DateB extract the modification time of an item. They default to
	// the Timestamped interface; ok=false means the item carries no timestamp.
	DateA func(Item) (time.Time, bool)
	DateB func(Item) (time.Time, bool)
}

// NewMostRecentResolver keeps the most recently modified item.
func NewMostRecentResolver() *RecencyResolver {
	return &RecencyResolver{
		name:    StrategyMostRecent,
		preferA: func(a, b time.Time) bool { return !a.Before(b) },
	}
}

// NewLeastRecentResolver keeps the least recently modified item.
func NewLeastRecentResolver() *RecencyResolver {
	return &RecencyResolver{
		name:    StrategyLeastRecent,
		preferA: func(a, b time.Time) bool { return !a.After(b) },
	}
}

func (r *RecencyResolver) Name() string { return r.name }

func (r *RecencyResolver) Resolve(c Conflict) (Resolution, error) {
	switch {
	case c.ItemA == nil && c.ItemB == nil:
		return PreferA, nil
	case c.ItemA == nil:
		return PreferB, nil
	case c.ItemB == nil:
		return PreferA, nil
	}

	dateA, okA := dateOf(r.DateA, c.ItemA)
	if !okA {
		return ResolutionNone, fmt.Errorf("%s: side a item %q has no modification time", r.name, c.IDA)
	}
	dateB, okB := dateOf(r.DateB, c.ItemB)
	if !okB {
		return ResolutionNone, fmt.Errorf("%s: side b item %q has no modification time", r.name, c.IDB)
	}

	if r.preferA(dateA, dateB) {
		return PreferA, nil
	}
	return PreferB, nil
}

func dateOf(getter func(Item) (time.Time, bool), item Item) (time.Time, bool) {
	if getter != nil {
		return getter(item)
	}
	ts, ok := item.(Timestamped)
	if !ok {
		return time.Time{}, false
	}
	t := ts.ModifiedAt()
	return t, !t.IsZero()
}

// DeleteWinsResolver resolves any partial deletion to DeleteBoth and delegates
// pairs updated on both sides to Fallback.
type DeleteWinsResolver struct {
	Fallback Resolver
}

// NewDeleteWinsResolver returns a DeleteWinsResolver; a nil fallback means prefer-a.
func NewDeleteWinsResolver(fallback Resolver) *DeleteWinsResolver {
	if fallback == nil {
		fallback = PreferAResolver{}
	}
	return &DeleteWinsResolver{Fallback: fallback}
}

func (r *DeleteWinsResolver) Name() string { return StrategyDeleteWins }

func (r *DeleteWinsResolver) Resolve(c Conflict) (Resolution, error) {
	if c.State.IsPartialDeletion() {
		return DeleteBoth, nil
	}
	return r.Fallback.Resolve(c)
}
