package reconcile

import (
	"errors"
	"fmt"
	"strings"
)

// ActionResult records the outcome of one dispatched action.
type ActionResult struct {
	Type     ActionType `json:"type"`
	TargetID string     `json:"target_id,omitempty"`
	SourceID string     `json:"source_id,omitempty"`
	// NewID is the ID returned by a successful creation.
	NewID   string  `json:"new_id,omitempty"`
	Outcome Outcome `json:"outcome"`
	Error   string  `json:"error,omitempty"`
	Note    string  `json:"note,omitempty"`
}

// Entry is the report line for one processed ID.
type Entry struct {
	Side Side   `json:"side"`
	ID   string `json:"id"`
	// IDA and IDB describe the pair after the run (including created IDs).
	IDA string `json:"id_a,omitempty"`
	IDB string `json:"id_b,omitempty"`

	State      State          `json:"state"`
	Resolution Resolution     `json:"resolution,omitempty"`
	Actions    []ActionResult `json:"actions"`
	// Mapping is the mapping mutation that was applied.
	Mapping Mutation `json:"mapping,omitempty"`
	Outcome Outcome  `json:"outcome"`
	Error   string   `json:"error,omitempty"`

	// Err is the underlying error of a failed entry.
	Err error `json:"-"`
}

func newEntry(t Task) Entry {
	return Entry{
		Side:       t.Side,
		ID:         t.ID,
		IDA:        t.IDA,
		IDB:        t.IDB,
		State:      t.State,
		Resolution: t.Resolution,
		Actions:    []ActionResult{},
	}
}

func (e *Entry) fail(err error) {
	e.Outcome = OutcomeFailed
	e.Err = err
	e.Error = err.Error()
}

// Unresolved reports whether the entry is a conflict left for manual resolution.
func (e Entry) Unresolved() bool {
	return e.Resolution == Skip
}

// SideStats counts operations performed on one side.
type SideStats struct {
	Name    string `json:"name"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
	Deleted int    `json:"deleted"`
	Errors  int    `json:"errors"`
}

func (s SideStats) String() string {
	return fmt.Sprintf(
		"%s\n%s\n\t* Items created: %d\n\t* Items updated: %d\n\t* Items deleted: %d\n\t* Errors:        %d\n",
		s.Name, strings.Repeat("-", len(s.Name)), s.Created, s.Updated, s.Deleted, s.Errors,
	)
}

// Summary provides aggregate statistics for a run.
type Summary struct {
	Processed  int `json:"processed"`
	Applied    int `json:"applied"`
	Failed     int `json:"failed"`
	Skipped    int `json:"skipped"`
	Planned    int `json:"planned"`
	Conflicts  int `json:"conflicts"`
	Unresolved int `json:"unresolved"`

	A SideStats `json:"a"`
	B SideStats `json:"b"`
}

// String renders the per-side statistics.
func (s Summary) String() string {
	return s.A.String() + "\n" + s.B.String()
}

func (s *Summary) side(side Side) *SideStats {
	if side == SideA {
		return &s.A
	}
	return &s.B
}

// Report is the result of a run: one entry per processed ID.
type Report struct {
	Strategy string  `json:"strategy"`
	DryRun   bool    `json:"dry_run"`
	Entries  []Entry `json:"entries"`
	Summary  Summary `json:"summary"`
}

func newReport(strategy string, entries []Entry, names [2]string) *Report {
	r := &Report{Strategy: strategy, Entries: entries}
	r.Summary.A.Name = names[0]
	r.Summary.B.Name = names[1]

	for _, entry := range entries {
		r.Summary.Processed++
		switch entry.Outcome {
		case OutcomeApplied:
			r.Summary.Applied++
		case OutcomeFailed:
			r.Summary.Failed++
		case OutcomeSkipped:
			r.Summary.Skipped++
		case OutcomePlanned:
			r.Summary.Planned++
		}
		if entry.Resolution != ResolutionNone {
			r.Summary.Conflicts++
		}
		if entry.Unresolved() {
			r.Summary.Unresolved++
		}

		if entry.Outcome == OutcomeFailed && len(entry.Actions) == 0 {
			// Failed before dispatch: charge the side the error came from.
			side := entry.Side
			var opErr *OpError
			if errors.As(entry.Err, &opErr) {
				side = opErr.Side
			}
			r.Summary.side(side).Errors++
		}

		for _, a := range entry.Actions {
			stats := r.Summary.side(a.Type.Target())
			switch a.Outcome {
			case OutcomeApplied:
				switch a.Type {
				case ActionCreateA, ActionCreateB:
					stats.Created++
				case ActionUpdateA, ActionUpdateB:
					stats.Updated++
				case ActionDeleteA, ActionDeleteB:
					stats.Deleted++
				}
			case OutcomeFailed:
				stats.Errors++
			}
		}
	}
	return r
}

// Failures returns the entries that failed.
func (r *Report) Failures() []Entry {
	return r.filter(func(e Entry) bool { return e.Outcome == OutcomeFailed })
}

// Unresolved returns the conflicts left for manual resolution.
func (r *Report) Unresolved() []Entry {
	return r.filter(Entry.Unresolved)
}

// HasFailures reports whether the run was only partially successful.
func (r *Report) HasFailures() bool {
	return r.Summary.Failed > 0
}

// ActionCount returns the number of dispatched (or planned) actions.
func (r *Report) ActionCount() int {
	n := 0
	for _, e := range r.Entries {
		n += len(e.Actions)
	}
	return n
}

func (r *Report) filter(keep func(Entry) bool) []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
