package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testItem is the item type stored by memSide.
type testItem struct {
	Val      string
	Modified time.Time
}

func (i testItem) ModifiedAt() time.Time {
	return i.Modified
}

// memSide is an in-memory SideAdapter recording every write.
type memSide struct {
	side Side

	mu    sync.Mutex
	items map[string]Item
	seq   int
	// errs injects failures, keyed by "<op>:<id>" ("create:<val>" for creations).
	errs   map[string]error
	writes []string
	gets   int
}

func newMemSide(side Side, vals ...string) *memSide {
	m := &memSide{
		side:  side,
		items: make(map[string]Item),
		errs:  make(map[string]error),
	}
	for _, v := range vals {
		m.items[v] = testItem{Val: v}
	}
	return m
}

func (m *memSide) Create(ctx context.Context, item Item) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ti := item.(testItem)
	m.writes = append(m.writes, "create:"+ti.Val)
	if err := m.errs["create:"+ti.Val]; err != nil {
		return "", err
	}
	m.seq++
	id := fmt.Sprintf("%s-new-%d", m.side, m.seq)
	m.items[id] = item
	return id, nil
}

func (m *memSide) Update(ctx context.Context, id string, item Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writes = append(m.writes, "update:"+id)
	if err := m.errs["update:"+id]; err != nil {
		return err
	}
	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	m.items[id] = item
	return nil
}

func (m *memSide) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writes = append(m.writes, "delete:"+id)
	if err := m.errs["delete:"+id]; err != nil {
		return err
	}
	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.items, id)
	return nil
}

func (m *memSide) Get(ctx context.Context, id string) (Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gets++
	if err := m.errs["get:"+id]; err != nil {
		return nil, err
	}
	item, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return item, nil
}

func (m *memSide) set(id, val string, modified time.Time) {
	m.items[id] = testItem{Val: val, Modified: modified}
}

func (m *memSide) val(id string) string {
	item, ok := m.items[id]
	if !ok {
		return ""
	}
	return item.(testItem).Val
}

// passThrough converts by copying; "malformed" items fail.
func passThrough(item Item) (Item, error) {
	ti := item.(testItem)
	if ti.Val == "malformed" {
		return nil, errors.New("malformed item")
	}
	return ti, nil
}

func newTestEngine(t *testing.T, a, b *memSide, opts Options) *Engine {
	t.Helper()
	e, err := NewEngine(Sides{A: a, B: b, ToA: passThrough, ToB: passThrough}, opts)
	require.NoError(t, err)
	return e
}

func mappingOf(t *testing.T, pairs ...string) *Mapping {
	t.Helper()
	require.Equal(t, 0, len(pairs)%2, "pairs must be given as a,b,a,b...")
	m := NewMapping()
	for i := 0; i < len(pairs); i += 2 {
		require.NoError(t, m.Put(pairs[i], pairs[i+1]))
	}
	return m
}

// countingResolver counts Resolve calls per pair.
type countingResolver struct {
	inner Resolver
	mu    sync.Mutex
	calls map[string]int
}

func newCountingResolver(inner Resolver) *countingResolver {
	return &countingResolver{inner: inner, calls: make(map[string]int)}
}

func (r *countingResolver) Name() string { return r.inner.Name() }

func (r *countingResolver) Resolve(c Conflict) (Resolution, error) {
	r.mu.Lock()
	r.calls[c.IDA+"|"+c.IDB]++
	r.mu.Unlock()
	return r.inner.Resolve(c)
}

// assertBijection checks both projections agree.
func assertBijection(t *testing.T, m *Mapping) {
	t.Helper()
	seenB := make(map[string]string)
	for _, p := range m.Pairs() {
		if prev, dup := seenB[p.B]; dup {
			t.Fatalf("side b id %q mapped twice (%q, %q)", p.B, prev, p.A)
		}
		seenB[p.B] = p.A
		a, ok := m.LookupByB(p.B)
		require.True(t, ok)
		require.Equal(t, p.A, a)
	}
}
