package reconcile

import (
	"fmt"
	"strings"
)

// Side identifies one of the two synchronized systems.
type Side int

const (
	// SideA is the first synchronized system (e.g. a calendar).
	SideA Side = iota
	// SideB is the second synchronized system (e.g. a task manager).
	SideB
)

// String returns "a" or "b".
func (s Side) String() string {
	if s == SideB {
		return "b"
	}
	return "a"
}

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// MarshalText encodes the side as "a" or "b".
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes "a" or "b" (case-insensitive).
func (s *Side) UnmarshalText(text []byte) error {
	side, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = side
	return nil
}

// ParseSide parses "a" or "b" (case-insensitive).
func ParseSide(value string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "a":
		return SideA, nil
	case "b":
		return SideB, nil
	default:
		return SideA, fmt.Errorf("unknown side %q, expected a or b", value)
	}
}

// Item is the side-specific representation of a synchronized entity.
// The engine never inspects it except through Timestamped for recency strategies.
type Item any

// State is the per-run classification of a changed ID.
type State string

const (
	// StateUnchanged means neither side reported a change for the pair.
	StateUnchanged State = "unchanged"
	// StateChangedA means the pair was updated on side A only.
	StateChangedA State = "changed-a-only"
	// StateChangedB means the pair was updated on side B only.
	StateChangedB State = "changed-b-only"
	// StateChangedBoth means the pair was updated on both sides.
	StateChangedBoth State = "changed-both"
	// StateNewA means an unmapped item appeared on side A.
	StateNewA State = "new-on-a"
	// StateNewB means an unmapped item appeared on side B.
	StateNewB State = "new-on-b"
	// StateDeletedA means the side-A item of a mapped pair vanished.
	StateDeletedA State = "deleted-on-a"
	// StateDeletedB means the side-B item of a mapped pair vanished.
	StateDeletedB State = "deleted-on-b"
	// StateDeletedBoth means both items of a mapped pair vanished.
	StateDeletedBoth State = "deleted-both"
	// StateDeletedAChangedB means side A deleted the item while side B updated it.
	StateDeletedAChangedB State = "deleted-a-changed-b"
	// StateChangedADeletedB means side A updated the item while side B deleted it.
	StateChangedADeletedB State = "changed-a-deleted-b"
	// StateUnmappedDeleted means a deletion was reported for an ID with no counterpart.
	StateUnmappedDeleted State = "unmapped-deleted"
)

// IsConflict reports whether the state requires a Resolver decision.
func (s State) IsConflict() bool {
	switch s {
	case StateChangedBoth, StateDeletedAChangedB, StateChangedADeletedB:
		return true
	default:
		return false
	}
}

// IsPartialDeletion reports whether one side deleted the item while the other updated it.
func (s State) IsPartialDeletion() bool {
	return s == StateDeletedAChangedB || s == StateChangedADeletedB
}

// Resolution is the Resolver's decision for a conflicting pair.
type Resolution string

const (
	// ResolutionNone is used for states whose outcome needs no decision.
	ResolutionNone Resolution = ""
	// PreferA keeps side A's state (content or deletion).
	PreferA Resolution = "prefer-a"
	// PreferB keeps side B's state (content or deletion).
	PreferB Resolution = "prefer-b"
	// DeleteBoth removes the item from both sides.
	DeleteBoth Resolution = "delete-both"
	// Skip leaves the pair untouched for out-of-band resolution.
	Skip Resolution = "skip"
)

// ActionType represents the type of operation dispatched to a SideAdapter.
type ActionType string

const (
	// ActionCreateA creates an item on side A from side-B content.
	ActionCreateA ActionType = "create_a"
	// ActionCreateB creates an item on side B from side-A content.
	ActionCreateB ActionType = "create_b"
	// ActionUpdateA updates a side-A item from side-B content.
	ActionUpdateA ActionType = "update_a"
	// ActionUpdateB updates a side-B item from side-A content.
	ActionUpdateB ActionType = "update_b"
	// ActionDeleteA deletes a side-A item.
	ActionDeleteA ActionType = "delete_a"
	// ActionDeleteB deletes a side-B item.
	ActionDeleteB ActionType = "delete_b"
	// ActionNoop performs nothing.
	ActionNoop ActionType = "noop"
)

// Target returns the side the action writes to.
func (t ActionType) Target() Side {
	switch t {
	case ActionCreateB, ActionUpdateB, ActionDeleteB:
		return SideB
	default:
		return SideA
	}
}

// IsDelete reports whether the action removes an item.
func (t ActionType) IsDelete() bool {
	return t == ActionDeleteA || t == ActionDeleteB
}

func createOn(side Side) ActionType {
	if side == SideA {
		return ActionCreateA
	}
	return ActionCreateB
}

func updateOn(side Side) ActionType {
	if side == SideA {
		return ActionUpdateA
	}
	return ActionUpdateB
}

func deleteOn(side Side) ActionType {
	if side == SideA {
		return ActionDeleteA
	}
	return ActionDeleteB
}

// Action represents one planned operation against a SideAdapter.
type Action struct {
	// Type specifies the operation to perform.
	Type ActionType `json:"type"`

	// TargetID is the ID written to. Empty for creations.
	TargetID string `json:"target_id,omitempty"`

	// SourceID is the ID on the opposite side whose content is propagated.
	// Only populated for create and update actions.
	SourceID string `json:"source_id,omitempty"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Item stores the prefetched source content, when the planner already read it.
	Item Item `json:"-"`
}

// Outcome is the result of a dispatched action or task.
type Outcome string

const (
	// OutcomeApplied means every operation was confirmed.
	OutcomeApplied Outcome = "applied"
	// OutcomeFailed means at least one operation or mapping mutation failed.
	OutcomeFailed Outcome = "failed"
	// OutcomeSkipped means nothing was attempted.
	OutcomeSkipped Outcome = "skipped"
	// OutcomePlanned is used by dry-run reports.
	OutcomePlanned Outcome = "planned"
)
