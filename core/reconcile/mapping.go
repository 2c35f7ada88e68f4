package reconcile

import (
	"sort"

	"github.com/goccy/go-json"
)

// Pair is one entry of the Identifier Mapping.
type Pair struct {
	A string `json:"a"`
	B string `json:"b"`
}

// Mapping is a bijection between side-A and side-B IDs. Both projections are
// kept in lockstep so every lookup is O(1).
//
// A Mapping is not safe for concurrent use; the engine serializes its own writes.
type Mapping struct {
	aToB map[string]string
	bToA map[string]string
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{
		aToB: make(map[string]string),
		bToA: make(map[string]string),
	}
}

// MappingFromPairs builds a mapping, failing on the first pair that breaks the bijection.
func MappingFromPairs(pairs []Pair) (*Mapping, error) {
	m := NewMapping()
	for _, p := range pairs {
		if err := m.Put(p.A, p.B); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// LookupByA returns the side-B counterpart of idA.
func (m *Mapping) LookupByA(idA string) (string, bool) {
	idB, ok := m.aToB[idA]
	return idB, ok
}

// LookupByB returns the side-A counterpart of idB.
func (m *Mapping) LookupByB(idB string) (string, bool) {
	idA, ok := m.bToA[idB]
	return idA, ok
}

// Lookup returns the counterpart of id, which belongs to side.
func (m *Mapping) Lookup(side Side, id string) (string, bool) {
	if side == SideA {
		return m.LookupByA(id)
	}
	return m.LookupByB(id)
}

// Put records idA <-> idB. Re-putting an identical pair is a no-op; mapping either
// ID to a different counterpart fails with a DuplicateMappingError.
func (m *Mapping) Put(idA, idB string) error {
	existingB, hasA := m.aToB[idA]
	existingA, hasB := m.bToA[idB]

	if hasA && existingB == idB {
		return nil
	}
	if hasA {
		return &DuplicateMappingError{IDA: idA, IDB: idB, Existing: Pair{A: idA, B: existingB}}
	}
	if hasB {
		return &DuplicateMappingError{IDA: idA, IDB: idB, Existing: Pair{A: existingA, B: idB}}
	}

	m.aToB[idA] = idB
	m.bToA[idB] = idA
	return nil
}

// RemoveByA drops the pair holding idA. No-op if absent.
func (m *Mapping) RemoveByA(idA string) {
	if idB, ok := m.aToB[idA]; ok {
		delete(m.aToB, idA)
		delete(m.bToA, idB)
	}
}

// RemoveByB drops the pair holding idB. No-op if absent.
func (m *Mapping) RemoveByB(idB string) {
	if idA, ok := m.bToA[idB]; ok {
		delete(m.bToA, idB)
		delete(m.aToB, idA)
	}
}

// Len returns the number of pairs.
func (m *Mapping) Len() int {
	return len(m.aToB)
}

// Pairs returns all pairs sorted by side-A ID.
func (m *Mapping) Pairs() []Pair {
	pairs := make([]Pair, 0, len(m.aToB))
	for a, b := range m.aToB {
		pairs = append(pairs, Pair{A: a, B: b})
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].A < pairs[j].A
	})
	return pairs
}

// Clone returns an independent copy.
func (m *Mapping) Clone() *Mapping {
	c := &Mapping{
		aToB: make(map[string]string, len(m.aToB)),
		bToA: make(map[string]string, len(m.bToA)),
	}
	for a, b := range m.aToB {
		c.aToB[a] = b
		c.bToA[b] = a
	}
	return c
}

// MarshalJSON encodes the mapping as a sorted list of pairs.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Pairs())
}

// UnmarshalJSON decodes a list of pairs, rejecting input that is not a bijection.
func (m *Mapping) UnmarshalJSON(data []byte) error {
	var pairs []Pair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	decoded, err := MappingFromPairs(pairs)
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}
