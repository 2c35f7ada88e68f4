package reconcile

import (
	"sort"

	"github.com/goccy/go-json"
)

// IDSet is a set of item IDs.
type IDSet map[string]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the IDs in lexical order.
func (s IDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ChangeSet holds the IDs inserted, updated and deleted on one side since the
// previous run. IDs absent from all three sets are unchanged.
type ChangeSet struct {
	Inserted IDSet
	Updated  IDSet
	Deleted  IDSet
}

// NewChangeSet builds a change set from slices. Nil slices are fine.
func NewChangeSet(inserted, updated, deleted []string) ChangeSet {
	return ChangeSet{
		Inserted: NewIDSet(inserted...),
		Updated:  NewIDSet(updated...),
		Deleted:  NewIDSet(deleted...),
	}
}

// Len returns the total number of reported IDs.
func (c ChangeSet) Len() int {
	return len(c.Inserted) + len(c.Updated) + len(c.Deleted)
}

// IsEmpty reports whether no change was reported.
func (c ChangeSet) IsEmpty() bool {
	return c.Len() == 0
}

// Validate checks that the three sets are pairwise disjoint and hold no empty IDs.
func (c ChangeSet) Validate(side Side) error {
	for _, id := range c.Inserted.Sorted() {
		if id == "" {
			return &InvalidChangeSetError{Side: side, ID: id, Reason: "empty id in inserted"}
		}
		if c.Updated.Has(id) {
			return &InvalidChangeSetError{Side: side, ID: id, Reason: "reported both inserted and updated"}
		}
		if c.Deleted.Has(id) {
			return &InvalidChangeSetError{Side: side, ID: id, Reason: "reported both inserted and deleted"}
		}
	}
	for _, id := range c.Updated.Sorted() {
		if id == "" {
			return &InvalidChangeSetError{Side: side, ID: id, Reason: "empty id in updated"}
		}
		if c.Deleted.Has(id) {
			return &InvalidChangeSetError{Side: side, ID: id, Reason: "reported both updated and deleted"}
		}
	}
	if c.Deleted.Has("") {
		return &InvalidChangeSetError{Side: side, Reason: "empty id in deleted"}
	}
	return nil
}

// kind is how a single ID was reported on its side.
type kind int

const (
	kindNone kind = iota
	kindInserted
	kindUpdated
	kindDeleted
)

func (c ChangeSet) kindOf(id string) kind {
	switch {
	case c.Inserted.Has(id):
		return kindInserted
	case c.Updated.Has(id):
		return kindUpdated
	case c.Deleted.Has(id):
		return kindDeleted
	default:
		return kindNone
	}
}

// ids returns every reported ID, sorted.
func (c ChangeSet) ids() []string {
	all := make(IDSet, c.Len())
	for _, set := range []IDSet{c.Inserted, c.Updated, c.Deleted} {
		for id := range set {
			all[id] = struct{}{}
		}
	}
	return all.Sorted()
}

type changeSetJSON struct {
	Inserted []string `json:"inserted"`
	Updated  []string `json:"updated"`
	Deleted  []string `json:"deleted"`
}

// MarshalJSON encodes the change set as three sorted lists.
func (c ChangeSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(changeSetJSON{
		Inserted: c.Inserted.Sorted(),
		Updated:  c.Updated.Sorted(),
		Deleted:  c.Deleted.Sorted(),
	})
}

// UnmarshalJSON decodes {"inserted":[...],"updated":[...],"deleted":[...]}.
// Disjointness is checked by Validate, not here.
func (c *ChangeSet) UnmarshalJSON(data []byte) error {
	var raw changeSetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = NewChangeSet(raw.Inserted, raw.Updated, raw.Deleted)
	return nil
}
