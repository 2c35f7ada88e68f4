package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noChanges = ChangeSet{}

func TestEngine_UpdateOnA(t *testing.T) {
	a := newMemSide(SideA, "A1")
	b := newMemSide(SideB, "B1")
	a.set("A1", "renamed", time.Time{})
	mapping := mappingOf(t, "A1", "B1")

	e := newTestEngine(t, a, b, Options{})
	report, err := e.Sync(context.Background(), NewChangeSet(nil, []string{"A1"}, nil), noChanges, mapping)
	require.NoError(t, err)

	assert.Equal(t, []string{"update:B1"}, b.writes)
	assert.Empty(t, a.writes)
	assert.Equal(t, "renamed", b.val("B1"))
	assert.Equal(t, []Pair{{"A1", "B1"}}, mapping.Pairs())

	require.Len(t, report.Entries, 1)
	assert.Equal(t, StateChangedA, report.Entries[0].State)
	assert.Equal(t, OutcomeApplied, report.Entries[0].Outcome)
	assert.Equal(t, 1, report.Summary.B.Updated)
}

func TestEngine_InsertOnA(t *testing.T) {
	a := newMemSide(SideA, "A9")
	b := newMemSide(SideB)
	mapping := NewMapping()

	e := newTestEngine(t, a, b, Options{})
	report, err := e.Sync(context.Background(), NewChangeSet([]string{"A9"}, nil, nil), noChanges, mapping)
	require.NoError(t, err)

	assert.Equal(t, []string{"create:A9"}, b.writes)
	idB, ok := mapping.LookupByA("A9")
	require.True(t, ok)
	assert.Equal(t, "b-new-1", idB)
	assert.Equal(t, "A9", b.val(idB))

	require.Len(t, report.Entries, 1)
	entry := report.Entries[0]
	assert.Equal(t, StateNewA, entry.State)
	assert.Equal(t, MutationPut, entry.Mapping)
	assert.Equal(t, "b-new-1", entry.IDB)
	require.Len(t, entry.Actions, 1)
	assert.Equal(t, ActionCreateB, entry.Actions[0].Type)
	assert.Equal(t, "b-new-1", entry.Actions[0].NewID)
	assert.Equal(t, 1, report.Summary.B.Created)
}

func TestEngine_InsertOnB(t *testing.T) {
	a := newMemSide(SideA)
	b := newMemSide(SideB, "x")
	mapping := NewMapping()

	e := newTestEngine(t, a, b, Options{})
	report, err := e.Sync(context.Background(), noChanges, NewChangeSet([]string{"x"}, nil, nil), mapping)
	require.NoError(t, err)

	assert.Equal(t, []string{"create:x"}, a.writes)
	assert.Empty(t, b.writes)
	idA, ok := mapping.LookupByB("x")
	require.True(t, ok)
	assert.Equal(t, "a-new-1", idA)
	assert.Equal(t, 1, report.ActionCount())
}

func TestEngine_DeleteWinsOverUpdate(t *testing.T) {
	a := newMemSide(SideA)
	b := newMemSide(SideB, "B1")
	mapping := mappingOf(t, "A1", "B1")

	e := newTestEngine(t, a, b, Options{Resolver: NewDeleteWinsResolver(nil)})
	report, err := e.Sync(context.Background(),
		NewChangeSet(nil, nil, []string{"A1"}),
		NewChangeSet(nil, []string{"B1"}, nil),
		mapping,
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"delete:A1"}, a.writes)
	assert.Equal(t, []string{"delete:B1"}, b.writes)
	assert.Equal(t, 0, mapping.Len())

	require.Len(t, report.Entries, 1, "the pair is processed once")
	entry := report.Entries[0]
	assert.Equal(t, StateDeletedAChangedB, entry.State)
	assert.Equal(t, DeleteBoth, entry.Resolution)
	assert.Equal(t, MutationRemove, entry.Mapping)
	assert.Equal(t, OutcomeApplied, entry.Outcome)
	require.Len(t, entry.Actions, 2)
	assert.Equal(t, "already absent", entry.Actions[0].Note)
}

func TestEngine_DeletePropagation(t *testing.T) {
	a := newMemSide(SideA, "A2")
	b := newMemSide(SideB, "B2")
	mapping := mappingOf(t, "A1", "B1", "A2", "B2")
	b.items["B1"] = testItem{Val: "B1"}

	e := newTestEngine(t, a, b, Options{})
	_, err := e.Sync(context.Background(), NewChangeSet(nil, nil, []string{"A1"}), NewChangeSet(nil, nil, []string{"B2"}), mapping)
	require.NoError(t, err)

	assert.Equal(t, []string{"delete:B1"}, b.writes)
	assert.Equal(t, []string{"delete:A2"}, a.writes)
	assert.Equal(t, 0, mapping.Len())
}

func TestEngine_DeletedBoth(t *testing.T) {
	a := newMemSide(SideA)
	b := newMemSide(SideB)
	mapping := mappingOf(t, "A1", "B1")
	resolver := newCountingResolver(PreferAResolver{})

	e := newTestEngine(t, a, b, Options{Resolver: resolver})
	report, err := e.Sync(context.Background(), NewChangeSet(nil, nil, []string{"A1"}), NewChangeSet(nil, nil, []string{"B1"}), mapping)
	require.NoError(t, err)

	assert.Empty(t, a.writes)
	assert.Empty(t, b.writes)
	assert.Equal(t, map[string]int{"A1|B1": 1}, resolver.calls)
	assert.Equal(t, 0, mapping.Len())
	assert.Equal(t, StateDeletedBoth, report.Entries[0].State)
	assert.Equal(t, ResolutionNone, report.Entries[0].Resolution)
}

// failingResolver cannot decide anything.
type failingResolver struct{}

func (failingResolver) Name() string { return "failing" }

func (failingResolver) Resolve(Conflict) (Resolution, error) {
	return ResolutionNone, errors.New("no opinion")
}

func TestEngine_DeletedBothIgnoresDecision(t *testing.T) {
	tests := []struct {
		name     string
		resolver Resolver
	}{
		{name: "manual skip", resolver: ManualResolver{}},
		{name: "most recent without items", resolver: NewMostRecentResolver()},
		{name: "resolver error", resolver: failingResolver{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newMemSide(SideA)
			b := newMemSide(SideB)
			mapping := mappingOf(t, "A1", "B1")
			resolver := newCountingResolver(tt.resolver)

			e := newTestEngine(t, a, b, Options{Resolver: resolver})
			report, err := e.Sync(context.Background(), NewChangeSet(nil, nil, []string{"A1"}), NewChangeSet(nil, nil, []string{"B1"}), mapping)
			require.NoError(t, err)

			assert.Equal(t, 1, resolver.calls["A1|B1"])
			assert.Equal(t, 0, mapping.Len())
			assert.Equal(t, OutcomeApplied, report.Entries[0].Outcome)
			assert.Zero(t, report.Summary.Unresolved)
			assert.Zero(t, report.Summary.Conflicts)
		})
	}
}

func TestEngine_UnmappedDeletionIsNoop(t *testing.T) {
	a := newMemSide(SideA)
	b := newMemSide(SideB)
	mapping := NewMapping()

	e := newTestEngine(t, a, b, Options{})
	report, err := e.Sync(context.Background(), NewChangeSet(nil, nil, []string{"ghost"}), noChanges, mapping)
	require.NoError(t, err)

	assert.Empty(t, b.writes)
	require.Len(t, report.Entries, 1)
	assert.Equal(t, StateUnmappedDeleted, report.Entries[0].State)
	assert.Equal(t, OutcomeSkipped, report.Entries[0].Outcome)
}

func TestEngine_MalformedChangeSet(t *testing.T) {
	a := newMemSide(SideA, "A1")
	b := newMemSide(SideB)
	mapping := NewMapping()

	e := newTestEngine(t, a, b, Options{})
	report, err := e.Sync(context.Background(), NewChangeSet([]string{"A1"}, nil, []string{"A1"}), noChanges, mapping)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidChangeSet))
	assert.Nil(t, report)
	assert.Empty(t, a.writes)
	assert.Empty(t, b.writes)
	assert.Equal(t, 0, a.gets+b.gets)
	assert.Equal(t, 0, mapping.Len())
}

func TestEngine_Idempotence(t *testing.T) {
	a := newMemSide(SideA, "A1", "A2", "A3")
	b := newMemSide(SideB, "B7")
	mapping := NewMapping()

	e := newTestEngine(t, a, b, Options{})
	_, err := e.Sync(context.Background(), NewChangeSet([]string{"A1", "A2", "A3"}, nil, nil), NewChangeSet([]string{"B7"}, nil, nil), mapping)
	require.NoError(t, err)
	require.Equal(t, 4, mapping.Len())

	before := mapping.Pairs()
	writesA, writesB := len(a.writes), len(b.writes)

	report, err := e.Sync(context.Background(), noChanges, noChanges, mapping)
	require.NoError(t, err)

	assert.Equal(t, 0, report.ActionCount())
	assert.Empty(t, report.Entries)
	assert.Equal(t, before, mapping.Pairs())
	assert.Len(t, a.writes, writesA)
	assert.Len(t, b.writes, writesB)
}

func TestEngine_ConflictResolution(t *testing.T) {
	older := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	newer := older.Add(time.Minute)

	tests := []struct {
		name       string
		resolver   Resolver
		modifiedA  time.Time
		modifiedB  time.Time
		wantWrites [2][]string
		wantVal    string
	}{
		{"prefer a", PreferAResolver{}, older, newer, [2][]string{nil, {"update:B1"}}, "from-a"},
		{"prefer b", PreferBResolver{}, older, newer, [2][]string{{"update:A1"}, nil}, "from-b"},
		{"most recent", NewMostRecentResolver(), older, newer, [2][]string{{"update:A1"}, nil}, "from-b"},
		{"least recent", NewLeastRecentResolver(), older, newer, [2][]string{nil, {"update:B1"}}, "from-a"},
		{"delete wins falls back to prefer a", NewDeleteWinsResolver(nil), older, newer, [2][]string{nil, {"update:B1"}}, "from-a"},
		{"manual skips", ManualResolver{}, older, newer, [2][]string{nil, nil}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newMemSide(SideA)
			b := newMemSide(SideB)
			a.set("A1", "from-a", tt.modifiedA)
			b.set("B1", "from-b", tt.modifiedB)
			mapping := mappingOf(t, "A1", "B1")
			resolver := newCountingResolver(tt.resolver)

			e := newTestEngine(t, a, b, Options{Resolver: resolver})
			report, err := e.Sync(context.Background(),
				NewChangeSet(nil, []string{"A1"}, nil),
				NewChangeSet(nil, []string{"B1"}, nil),
				mapping,
			)
			require.NoError(t, err)

			assert.Equal(t, map[string]int{"A1|B1": 1}, resolver.calls, "resolver is invoked exactly once per pair")
			assert.Equal(t, tt.wantWrites[0], a.writes)
			assert.Equal(t, tt.wantWrites[1], b.writes)
			if tt.wantVal != "" {
				assert.Equal(t, tt.wantVal, a.val("A1"))
				assert.Equal(t, tt.wantVal, b.val("B1"))
			}
			assert.Equal(t, []Pair{{"A1", "B1"}}, mapping.Pairs())

			require.Len(t, report.Entries, 1)
			assert.Equal(t, StateChangedBoth, report.Entries[0].State)
			assert.Equal(t, 1, report.Summary.Conflicts)
			if tt.resolver.Name() == StrategyManual {
				assert.Equal(t, 1, report.Summary.Unresolved)
				assert.Len(t, report.Unresolved(), 1)
			}
		})
	}
}

func TestEngine_PartialDeletion(t *testing.T) {
	tests := []struct {
		name        string
		resolver    Resolver
		wantWritesA []string
		wantWritesB []string
		wantPairs   []Pair
		mutation    Mutation
	}{
		{
			name:        "deleting side wins",
			resolver:    PreferAResolver{},
			wantWritesB: []string{"delete:B1"},
			wantPairs:   []Pair{},
			mutation:    MutationRemove,
		},
		{
			name:        "surviving side wins",
			resolver:    PreferBResolver{},
			wantWritesA: []string{"create:survivor"},
			wantPairs:   []Pair{{"a-new-1", "B1"}},
			mutation:    MutationRepoint,
		},
		{
			name:        "most recent keeps the survivor",
			resolver:    NewMostRecentResolver(),
			wantWritesA: []string{"create:survivor"},
			wantPairs:   []Pair{{"a-new-1", "B1"}},
			mutation:    MutationRepoint,
		},
		{
			name:      "manual",
			resolver:  ManualResolver{},
			wantPairs: []Pair{{"A1", "B1"}},
			mutation:  MutationNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newMemSide(SideA)
			b := newMemSide(SideB)
			b.set("B1", "survivor", time.Time{})
			mapping := mappingOf(t, "A1", "B1")

			e := newTestEngine(t, a, b, Options{Resolver: tt.resolver})
			report, err := e.Sync(context.Background(),
				NewChangeSet(nil, nil, []string{"A1"}),
				NewChangeSet(nil, []string{"B1"}, nil),
				mapping,
			)
			require.NoError(t, err)

			assert.Equal(t, tt.wantWritesA, a.writes)
			assert.Equal(t, tt.wantWritesB, b.writes)
			assert.Equal(t, tt.wantPairs, mapping.Pairs())
			assert.Equal(t, tt.mutation, report.Entries[0].Mapping)
			assertBijection(t, mapping)
		})
	}
}

func TestEngine_UpdatedButGoneBecomesDeletion(t *testing.T) {
	// B reports B1 updated but it no longer exists: treated as deleted on both.
	a := newMemSide(SideA)
	b := newMemSide(SideB)
	mapping := mappingOf(t, "A1", "B1")
	resolver := newCountingResolver(PreferAResolver{})

	e := newTestEngine(t, a, b, Options{Resolver: resolver})
	report, err := e.Sync(context.Background(),
		NewChangeSet(nil, nil, []string{"A1"}),
		NewChangeSet(nil, []string{"B1"}, nil),
		mapping,
	)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"A1|B1": 1}, resolver.calls)
	assert.Equal(t, StateDeletedBoth, report.Entries[0].State)
	assert.Equal(t, 0, mapping.Len())
}

func TestEngine_UndecidableConflictFailsRun(t *testing.T) {
	a := newMemSide(SideA, "A1", "A5")
	b := newMemSide(SideB, "B1")
	mapping := mappingOf(t, "A1", "B1")

	e := newTestEngine(t, a, b, Options{Resolver: NewMostRecentResolver()})
	_, err := e.Sync(context.Background(),
		NewChangeSet([]string{"A5"}, []string{"A1"}, nil),
		NewChangeSet(nil, []string{"B1"}, nil),
		mapping,
	)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidChangeSet))
	assert.Empty(t, a.writes)
	assert.Empty(t, b.writes, "no write happens, not even for unrelated items")
	assert.Equal(t, 1, mapping.Len())
}

func TestEngine_FailureIsolation(t *testing.T) {
	a := newMemSide(SideA, "A1", "A2", "A3")
	b := newMemSide(SideB)
	b.errs["create:A2"] = errors.New("quota exceeded")
	mapping := NewMapping()

	e := newTestEngine(t, a, b, Options{})
	report, err := e.Sync(context.Background(), NewChangeSet([]string{"A1", "A2", "A3"}, nil, nil), noChanges, mapping)
	require.NoError(t, err)

	assert.Equal(t, 2, mapping.Len())
	_, mapped := mapping.LookupByA("A2")
	assert.False(t, mapped, "failed creation is never mapped")

	assert.True(t, report.HasFailures())
	failures := report.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "A2", failures[0].ID)
	assert.Contains(t, failures[0].Error, "quota exceeded")

	var opErr *OpError
	require.True(t, errors.As(failures[0].Err, &opErr))
	assert.Equal(t, OpCreate, opErr.Op)
	assert.Equal(t, SideB, opErr.Side)

	assert.Equal(t, 2, report.Summary.B.Created)
	assert.Equal(t, 1, report.Summary.B.Errors)
	assert.Equal(t, 2, report.Summary.Applied)
	assert.Equal(t, 1, report.Summary.Failed)
}

func TestEngine_ConversionError(t *testing.T) {
	a := newMemSide(SideA)
	b := newMemSide(SideB)
	a.set("A1", "malformed", time.Time{})
	mapping := NewMapping()

	e := newTestEngine(t, a, b, Options{})
	report, err := e.Sync(context.Background(), NewChangeSet([]string{"A1"}, nil, nil), noChanges, mapping)
	require.NoError(t, err)

	assert.Empty(t, b.writes)
	assert.Equal(t, 0, mapping.Len())
	require.Len(t, report.Failures(), 1)
	assert.True(t, errors.Is(report.Failures()[0].Err, ErrConversion))
}

func TestEngine_DuplicateMappingIsReported(t *testing.T) {
	a := newMemSide(SideA, "A1")
	b := newMemSide(SideB)
	// The created ID is already taken by another pair.
	mapping := mappingOf(t, "A0", "b-new-1")

	e := newTestEngine(t, a, b, Options{})
	report, err := e.Sync(context.Background(), NewChangeSet([]string{"A1"}, nil, nil), noChanges, mapping)
	require.NoError(t, err)

	require.Len(t, report.Failures(), 1)
	assert.True(t, errors.Is(report.Failures()[0].Err, ErrDuplicateMapping))
	assert.Equal(t, []Pair{{"A0", "b-new-1"}}, mapping.Pairs())
}

func TestEngine_UpdateTargetGoneDropsPair(t *testing.T) {
	a := newMemSide(SideA, "A1")
	b := newMemSide(SideB)
	mapping := mappingOf(t, "A1", "B1")

	e := newTestEngine(t, a, b, Options{})
	report, err := e.Sync(context.Background(), NewChangeSet(nil, []string{"A1"}, nil), noChanges, mapping)
	require.NoError(t, err)

	assert.Equal(t, 0, mapping.Len())
	entry := report.Entries[0]
	assert.Equal(t, OutcomeFailed, entry.Outcome)
	assert.Equal(t, MutationRemove, entry.Mapping)
	assert.True(t, errors.Is(entry.Err, ErrNotFound))
}

func TestEngine_DeleteFailureKeepsPair(t *testing.T) {
	a := newMemSide(SideA)
	b := newMemSide(SideB, "B1")
	b.errs["delete:B1"] = errors.New("permission denied")
	mapping := mappingOf(t, "A1", "B1")

	e := newTestEngine(t, a, b, Options{})
	report, err := e.Sync(context.Background(), NewChangeSet(nil, nil, []string{"A1"}), noChanges, mapping)
	require.NoError(t, err)

	assert.Equal(t, 1, mapping.Len())
	assert.Equal(t, OutcomeFailed, report.Entries[0].Outcome)
	assert.Equal(t, 1, report.Summary.B.Errors)
}

func TestEngine_PartialDeleteDropsPair(t *testing.T) {
	a := newMemSide(SideA, "A1")
	b := newMemSide(SideB)
	a.errs["delete:A1"] = errors.New("permission denied")
	mapping := mappingOf(t, "A1", "B1")

	e := newTestEngine(t, a, b, Options{Resolver: NewDeleteWinsResolver(nil)})
	report, err := e.Sync(context.Background(),
		NewChangeSet(nil, []string{"A1"}, nil),
		NewChangeSet(nil, nil, []string{"B1"}),
		mapping,
	)
	require.NoError(t, err)

	entry := report.Entries[0]
	assert.Equal(t, StateChangedADeletedB, entry.State)
	assert.Equal(t, DeleteBoth, entry.Resolution)
	assert.Equal(t, OutcomeFailed, entry.Outcome)
	assert.Equal(t, MutationRemove, entry.Mapping)

	_, ok := mapping.LookupByB("B1")
	assert.False(t, ok)
	assert.Equal(t, 0, mapping.Len())
	assert.Equal(t, "A1", a.val("A1"), "the failed side keeps its item")
	assertBijection(t, mapping)
}

func TestEngine_FailFast(t *testing.T) {
	a := newMemSide(SideA, "A1", "A2", "A3")
	b := newMemSide(SideB)
	b.errs["create:A1"] = errors.New("boom")
	mapping := NewMapping()

	e := newTestEngine(t, a, b, Options{FailFast: true})
	report, err := e.Sync(context.Background(), NewChangeSet([]string{"A1", "A2", "A3"}, nil, nil), noChanges, mapping)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAborted))
	require.NotNil(t, report)
	assert.Equal(t, []string{"create:A1"}, b.writes)
	assert.Equal(t, 1, report.Summary.Failed)
	assert.Equal(t, 2, report.Summary.Skipped)
	assert.Equal(t, 0, mapping.Len())
}

func TestEngine_ConcurrentWorkers(t *testing.T) {
	const n = 200

	a := newMemSide(SideA)
	b := newMemSide(SideB)
	inserted := make([]string, n)
	for i := range inserted {
		inserted[i] = fmt.Sprintf("A%03d", i)
		a.set(inserted[i], inserted[i], time.Time{})
	}
	mapping := NewMapping()

	e := newTestEngine(t, a, b, Options{Workers: 16})
	report, err := e.Sync(context.Background(), NewChangeSet(inserted, nil, nil), noChanges, mapping)
	require.NoError(t, err)

	assert.Equal(t, n, mapping.Len())
	assert.Equal(t, n, report.Summary.Applied)
	assertBijection(t, mapping)

	// Entries keep plan order regardless of completion order.
	for i, entry := range report.Entries {
		assert.Equal(t, inserted[i], entry.ID)
		idB, _ := mapping.LookupByA(entry.ID)
		assert.Equal(t, idB, entry.IDB)
		assert.Equal(t, entry.ID, b.val(idB))
	}
}

func TestEngine_CancelledContext(t *testing.T) {
	a := newMemSide(SideA, "A1", "A2")
	b := newMemSide(SideB)
	mapping := NewMapping()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := newTestEngine(t, a, b, Options{})
	report, err := e.Sync(ctx, NewChangeSet([]string{"A1", "A2"}, nil, nil), noChanges, mapping)

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	require.NotNil(t, report)
	assert.Equal(t, 2, report.Summary.Skipped)
	assert.Empty(t, b.writes)
	assert.Equal(t, 0, mapping.Len())
}

func TestEngine_PlanIsSideEffectFree(t *testing.T) {
	a := newMemSide(SideA, "A9")
	b := newMemSide(SideB, "B1")
	mapping := mappingOf(t, "A1", "B1")

	e := newTestEngine(t, a, b, Options{})
	plan, err := e.Plan(context.Background(),
		NewChangeSet([]string{"A9"}, nil, []string{"A1"}),
		noChanges,
		mapping,
	)
	require.NoError(t, err)

	assert.Empty(t, a.writes)
	assert.Empty(t, b.writes)
	assert.Equal(t, 1, mapping.Len())

	actions := plan.Actions()
	require.Len(t, actions, 2)
	assert.Equal(t, ActionDeleteB, actions[0].Type)
	assert.Equal(t, "B1", actions[0].TargetID)
	assert.Equal(t, ActionCreateB, actions[1].Type)
	assert.Equal(t, "A9", actions[1].SourceID)

	report := plan.Report(e.SideNames())
	assert.True(t, report.DryRun)
	assert.Equal(t, 2, report.Summary.Planned)
	assert.Equal(t, 2, report.ActionCount())

	// Applying the same plan performs exactly the planned actions.
	applied, err := e.Apply(context.Background(), plan, mapping)
	require.NoError(t, err)
	assert.Equal(t, 2, applied.Summary.Applied)
	assert.Equal(t, []string{"delete:B1", "create:A9"}, b.writes)
	_, ok := mapping.LookupByA("A9")
	assert.True(t, ok)
}

func TestEngine_MappedInsertIsUpdate(t *testing.T) {
	a := newMemSide(SideA, "A1")
	b := newMemSide(SideB, "B1")
	mapping := mappingOf(t, "A1", "B1")

	e := newTestEngine(t, a, b, Options{})
	report, err := e.Sync(context.Background(), NewChangeSet([]string{"A1"}, nil, nil), noChanges, mapping)
	require.NoError(t, err)

	assert.Equal(t, StateChangedA, report.Entries[0].State)
	assert.Equal(t, []string{"update:B1"}, b.writes)
}

func TestEngine_SideNamesInSummary(t *testing.T) {
	e := newTestEngine(t, newMemSide(SideA), newMemSide(SideB), Options{SideNames: [2]string{"Calendar", "Tasks"}})
	report, err := e.Sync(context.Background(), noChanges, noChanges, NewMapping())
	require.NoError(t, err)

	out := report.Summary.String()
	assert.Contains(t, out, "Calendar\n--------")
	assert.Contains(t, out, "Tasks\n-----")
	assert.Contains(t, out, "* Items created: 0")
}

func TestNewEngine_RequiresSides(t *testing.T) {
	_, err := NewEngine(Sides{A: newMemSide(SideA)}, Options{})
	assert.Error(t, err)
}
