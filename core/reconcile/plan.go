package reconcile

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Mutation describes how a task changes the mapping once its actions are confirmed.
type Mutation string

const (
	// MutationNone leaves the mapping untouched.
	MutationNone Mutation = ""
	// MutationPut records the pair made of the source ID and the created ID.
	MutationPut Mutation = "put"
	// MutationRemove drops the pair.
	MutationRemove Mutation = "remove"
	// MutationRepoint replaces the pair's deleted half with a recreated item.
	MutationRepoint Mutation = "repoint"
)

// Task is the unit of work for one processed ID: its classification, the
// resolver's decision and the actions to dispatch, in order.
type Task struct {
	// Side is the side that reported ID.
	Side Side `json:"side"`
	// ID is the reported ID.
	ID string `json:"id"`
	// IDA and IDB hold the pair as known at plan time. One of them is empty for
	// unmapped IDs.
	IDA string `json:"id_a,omitempty"`
	IDB string `json:"id_b,omitempty"`

	State      State      `json:"state"`
	Resolution Resolution `json:"resolution,omitempty"`
	Actions    []Action   `json:"actions"`
	Mutation   Mutation   `json:"mutation,omitempty"`

	// err is set when the task cannot be executed (e.g. a conflict item could not be read).
	err error
	// items read while resolving.
	itemA Item
	itemB Item
}

// Plan contains the tasks computed for one run. It performs nothing until applied.
type Plan struct {
	// Strategy is the name of the resolver used.
	Strategy string `json:"strategy"`
	// Tasks holds one task per processed ID, side A IDs first, each side sorted.
	Tasks []Task `json:"tasks"`

	cache *itemCache
}

// Actions returns every planned action, flattened in task order.
func (p *Plan) Actions() []Action {
	var actions []Action
	for _, t := range p.Tasks {
		actions = append(actions, t.Actions...)
	}
	return actions
}

// Report renders the plan as a dry-run report.
func (p *Plan) Report(names [2]string) *Report {
	entries := make([]Entry, len(p.Tasks))
	for i, t := range p.Tasks {
		entry := newEntry(t)
		switch {
		case t.err != nil:
			entry.fail(t.err)
		case isNoop(t):
			entry.Outcome = OutcomeSkipped
		default:
			entry.Outcome = OutcomePlanned
			entry.Mapping = t.Mutation
			for _, a := range t.Actions {
				entry.Actions = append(entry.Actions, ActionResult{
					Type:     a.Type,
					TargetID: a.TargetID,
					SourceID: a.SourceID,
					Outcome:  OutcomePlanned,
				})
			}
		}
		entries[i] = entry
	}
	report := newReport(p.Strategy, entries, names)
	report.DryRun = true
	return report
}

func isNoop(t Task) bool {
	return len(t.Actions) == 0 && t.Mutation == MutationNone
}

// Plan validates both change sets, classifies every reported ID against the
// mapping, resolves conflicts and returns the actions to perform. It only reads
// from the side adapters, and only for conflicting pairs.
//
// A validation failure, or a conflict the resolver cannot decide, fails the
// whole run before any write.
func (e *Engine) Plan(ctx context.Context, changesA, changesB ChangeSet, mapping *Mapping) (*Plan, error) {
	if mapping == nil {
		return nil, errors.New("mapping is required")
	}
	if err := changesA.Validate(SideA); err != nil {
		return nil, err
	}
	if err := changesB.Validate(SideB); err != nil {
		return nil, err
	}

	plan := &Plan{
		Strategy: e.resolver.Name(),
		cache:    newItemCache(e.sides),
	}

	// Pairs touched on both sides are handled once, from side A.
	handledB := make(map[string]struct{})
	for _, id := range changesA.ids() {
		task := classify(SideA, id, changesA, changesB, mapping)
		if task.IDB != "" {
			handledB[task.IDB] = struct{}{}
		}
		plan.Tasks = append(plan.Tasks, task)
	}
	for _, id := range changesB.ids() {
		if _, done := handledB[id]; done {
			continue
		}
		plan.Tasks = append(plan.Tasks, classify(SideB, id, changesB, changesA, mapping))
	}

	for i := range plan.Tasks {
		t := &plan.Tasks[i]
		if t.State.IsConflict() || t.State == StateDeletedBoth {
			if err := e.resolve(ctx, plan.cache, t); err != nil {
				return nil, err
			}
			if t.err != nil {
				continue
			}
		}
		t.Actions, t.Mutation = buildActions(t)
	}

	return plan, nil
}

// classify computes the state of id, reported by side, against the mapping.
func classify(side Side, id string, own, other ChangeSet, mapping *Mapping) Task {
	t := Task{Side: side, ID: id}
	ownKind := own.kindOf(id)
	counterpart, mapped := mapping.Lookup(side, id)

	if side == SideA {
		t.IDA, t.IDB = id, counterpart
	} else {
		t.IDA, t.IDB = counterpart, id
	}

	if !mapped {
		// Updated but unmapped means a previous propagation never happened.
		if ownKind == kindDeleted {
			t.State = StateUnmappedDeleted
		} else if side == SideA {
			t.State = StateNewA
		} else {
			t.State = StateNewB
		}
		return t
	}

	otherKind := other.kindOf(counterpart)
	if side == SideA {
		t.State = pairState(normalize(ownKind), normalize(otherKind))
	} else {
		t.State = pairState(normalize(otherKind), normalize(ownKind))
	}
	return t
}

// normalize treats an insertion reported for an already mapped ID as an update.
func normalize(k kind) kind {
	if k == kindInserted {
		return kindUpdated
	}
	return k
}

func pairState(a, b kind) State {
	switch {
	case a == kindUpdated && b == kindNone:
		return StateChangedA
	case a == kindNone && b == kindUpdated:
		return StateChangedB
	case a == kindUpdated && b == kindUpdated:
		return StateChangedBoth
	case a == kindDeleted && b == kindNone:
		return StateDeletedA
	case a == kindNone && b == kindDeleted:
		return StateDeletedB
	case a == kindDeleted && b == kindDeleted:
		return StateDeletedBoth
	case a == kindDeleted && b == kindUpdated:
		return StateDeletedAChangedB
	case a == kindUpdated && b == kindDeleted:
		return StateChangedADeletedB
	default:
		return StateUnchanged
	}
}

// resolve reads the surviving items of a conflicting pair and asks the resolver.
// An item reported updated but confirmed gone is treated as deleted.
//
// A pair gone on both sides is still shown to the resolver, with no items, but
// the only possible outcome is dropping the pair: its decision (or error) is discarded.
func (e *Engine) resolve(ctx context.Context, cache *itemCache, t *Task) error {
	presentA := t.State != StateDeletedAChangedB && t.State != StateDeletedBoth
	presentB := t.State != StateChangedADeletedB && t.State != StateDeletedBoth

	if presentA {
		item, err := cache.Get(ctx, SideA, t.IDA)
		switch {
		case errors.Is(err, ErrNotFound):
			presentA = false
		case err != nil:
			t.err = err
			return nil
		default:
			t.itemA = item
		}
	}
	if presentB {
		item, err := cache.Get(ctx, SideB, t.IDB)
		switch {
		case errors.Is(err, ErrNotFound):
			presentB = false
		case err != nil:
			t.err = err
			return nil
		default:
			t.itemB = item
		}
	}

	switch {
	case presentA && presentB:
		t.State = StateChangedBoth
	case presentA:
		t.State = StateChangedADeletedB
	case presentB:
		t.State = StateDeletedAChangedB
	default:
		t.State = StateDeletedBoth
	}

	resolution, err := e.resolver.Resolve(Conflict{
		State: t.State,
		IDA:   t.IDA,
		IDB:   t.IDB,
		ItemA: t.itemA,
		ItemB: t.itemB,
	})
	if t.State == StateDeletedBoth {
		return nil
	}
	if err != nil {
		return &InvalidChangeSetError{Side: t.Side, ID: t.ID, Reason: "conflict cannot be resolved", Err: err}
	}
	t.Resolution = resolution

	e.log.Debug("Conflict resolved",
		zap.String("id_a", t.IDA),
		zap.String("id_b", t.IDB),
		zap.String("state", string(t.State)),
		zap.String("strategy", e.resolver.Name()),
		zap.String("resolution", string(resolution)),
	)
	return nil
}

// buildActions translates a classified (and resolved) task into actions.
func buildActions(t *Task) ([]Action, Mutation) {
	switch t.State {
	case StateNewA:
		return []Action{createFrom(SideA, t.IDA, nil, "new on side a")}, MutationPut
	case StateNewB:
		return []Action{createFrom(SideB, t.IDB, nil, "new on side b")}, MutationPut
	case StateChangedA:
		return []Action{updateFrom(SideA, t.IDA, t.IDB, nil, "changed on side a")}, MutationNone
	case StateChangedB:
		return []Action{updateFrom(SideB, t.IDB, t.IDA, nil, "changed on side b")}, MutationNone
	case StateDeletedA:
		return []Action{deleteOf(SideB, t.IDB, "deleted on side a")}, MutationRemove
	case StateDeletedB:
		return []Action{deleteOf(SideA, t.IDA, "deleted on side b")}, MutationRemove
	case StateDeletedBoth:
		return nil, MutationRemove
	case StateChangedBoth:
		switch t.Resolution {
		case PreferA:
			return []Action{updateFrom(SideA, t.IDA, t.IDB, t.itemA, "conflict resolved to side a")}, MutationNone
		case PreferB:
			return []Action{updateFrom(SideB, t.IDB, t.IDA, t.itemB, "conflict resolved to side b")}, MutationNone
		case DeleteBoth:
			return deleteBoth(t), MutationRemove
		}
	case StateDeletedAChangedB:
		switch t.Resolution {
		case PreferA:
			return []Action{deleteOf(SideB, t.IDB, "deletion on side a wins")}, MutationRemove
		case PreferB:
			return []Action{createFrom(SideB, t.IDB, t.itemB, "update on side b wins, recreating on side a")}, MutationRepoint
		case DeleteBoth:
			return deleteBoth(t), MutationRemove
		}
	case StateChangedADeletedB:
		switch t.Resolution {
		case PreferA:
			return []Action{createFrom(SideA, t.IDA, t.itemA, "update on side a wins, recreating on side b")}, MutationRepoint
		case PreferB:
			return []Action{deleteOf(SideA, t.IDA, "deletion on side b wins")}, MutationRemove
		case DeleteBoth:
			return deleteBoth(t), MutationRemove
		}
	}
	return nil, MutationNone
}

// createFrom creates on the opposite side an item copied from source.
func createFrom(source Side, sourceID string, item Item, reason string) Action {
	return Action{Type: createOn(source.Other()), SourceID: sourceID, Reason: reason, Item: item}
}

// updateFrom overwrites targetID, on the opposite side, with the content of sourceID.
func updateFrom(source Side, sourceID, targetID string, item Item, reason string) Action {
	return Action{Type: updateOn(source.Other()), TargetID: targetID, SourceID: sourceID, Reason: reason, Item: item}
}

func deleteOf(target Side, targetID, reason string) Action {
	return Action{Type: deleteOn(target), TargetID: targetID, Reason: reason}
}

func deleteBoth(t *Task) []Action {
	return []Action{
		deleteOf(SideA, t.IDA, "conflict resolved to delete both"),
		deleteOf(SideB, t.IDB, "conflict resolved to delete both"),
	}
}
