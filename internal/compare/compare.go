// Package compare implements the roster comparator: set math over the
// normalized keys of two rosters, parameterized by comparison mode.
package compare

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/aanand-mishra/roster-diff/internal/roster"
	"github.com/aanand-mishra/roster-diff/internal/types"
)

// InvariantViolation means the comparator was handed input that upstream
// loading should have made impossible. It indicates a bug, not bad user
// input.
type InvariantViolation struct {
	Reason string
}

func (e *InvariantViolation) Error() string {
	return "invariant violation: " + e.Reason
}

// Compare runs mode over rosters a (file 1) and b (file 2).
//
// Both rosters must have been built by the roster loader with the key kind
// the mode matches on.
func Compare(a, b roster.Roster, mode types.Mode) (types.ComparisonResult, error) {
	if _, err := types.ParseMode(string(mode)); err != nil {
		return types.ComparisonResult{}, &InvariantViolation{Reason: err.Error()}
	}
	want := roster.KindFor(mode)
	if err := check(a, want, "file 1"); err != nil {
		return types.ComparisonResult{}, err
	}
	if err := check(b, want, "file 2"); err != nil {
		return types.ComparisonResult{}, err
	}

	keysA, keysB := a.Keys(), b.Keys()

	res := types.ComparisonResult{
		Mode:    mode,
		OnlyInA: exclusive(a, keysB),
		OnlyInB: exclusive(b, keysA),
	}
	for k := range keysA {
		if _, ok := keysB[k]; ok {
			res.InBoth++
		}
	}
	res.OnlyInACount = len(keysA) - res.InBoth
	res.OnlyInBCount = len(keysB) - res.InBoth

	if mode == types.ModeNameKeyed {
		res.Mismatched = mismatches(a, b)
	}
	return res, nil
}

func check(r roster.Roster, want roster.KeyKind, label string) error {
	if r.Kind != want {
		return &InvariantViolation{Reason: fmt.Sprintf("%s roster keyed by %s, want %s", label, r.Kind, want)}
	}
	for _, e := range r.Entries {
		if e.Key == "" {
			return &InvariantViolation{Reason: fmt.Sprintf("%s row %d has no key", label, e.Index)}
		}
	}
	return nil
}

// exclusive returns the records of r whose key is not in other, sorted
// for presentation.
func exclusive(r roster.Roster, other map[string]struct{}) []types.StudentRecord {
	var entries []roster.Entry
	for _, e := range r.Entries {
		if _, ok := other[e.Key]; !ok {
			entries = append(entries, e)
		}
	}
	sortEntries(entries)

	out := make([]types.StudentRecord, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Record)
	}
	return out
}

// firstByKey picks the first row in upload order for each key.
// Rosters with repeated names lose the later rows here.
func firstByKey(r roster.Roster) map[string]roster.Entry {
	first := make(map[string]roster.Entry, len(r.Entries))
	for _, e := range r.Entries {
		if _, ok := first[e.Key]; !ok {
			first[e.Key] = e
		}
	}
	return first
}

func mismatches(a, b roster.Roster) []types.Mismatch {
	repB := firstByKey(b)

	var pairs [][2]roster.Entry
	for key, ea := range firstByKey(a) {
		eb, ok := repB[key]
		if !ok || ea.NormalizedEmail() == eb.NormalizedEmail() {
			continue
		}
		pairs = append(pairs, [2]roster.Entry{ea, eb})
	}
	slices.SortStableFunc(pairs, func(x, y [2]roster.Entry) int {
		return compareEntries(x[0], y[0])
	})

	out := make([]types.Mismatch, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, types.Mismatch{
			FirstName: p[0].Record.FirstName,
			LastName:  p[0].Record.LastName,
			EmailA:    p[0].Record.Email,
			EmailB:    p[1].Record.Email,
		})
	}
	return out
}

// compareEntries orders by raw first name, then raw last name, then
// upload position.
func compareEntries(x, y roster.Entry) int {
	if c := cmp.Compare(x.Record.FirstName, y.Record.FirstName); c != 0 {
		return c
	}
	if c := cmp.Compare(x.Record.LastName, y.Record.LastName); c != 0 {
		return c
	}
	return cmp.Compare(x.Index, y.Index)
}

func sortEntries(entries []roster.Entry) {
	slices.SortStableFunc(entries, compareEntries)
}
