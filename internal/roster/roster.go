// Package roster turns uploaded tabular files into normalized rosters
// ready for comparison.
//
// The flow for one comparison is:
//
//	ReadTable (CSV / XLSX)  →  Table
//	LoadPair(Table, Table)  →  Roster, Roster   (column checks, normalization)
//
// Nothing here is kept between calls; every Roster is built fresh.
package roster

import (
	"strings"

	"github.com/aanand-mishra/roster-diff/internal/types"
)

// Column names every roster must contain. Matching ignores surrounding
// whitespace in the header but is otherwise exact.
const (
	ColFirstName = "First Name"
	ColLastName  = "Last Name"
	ColEmail     = "Email"
)

// RequiredColumns is the ordered list used for validation and messages.
var RequiredColumns = []string{ColFirstName, ColLastName, ColEmail}

// KeyKind decides which normalized key identifies a record.
type KeyKind int

const (
	KeyEmail KeyKind = iota
	KeyName
)

func (k KeyKind) String() string {
	switch k {
	case KeyEmail:
		return "email"
	case KeyName:
		return "name"
	default:
		return "unknown"
	}
}

// KindFor returns the key kind a comparison mode matches on.
func KindFor(mode types.Mode) KeyKind {
	if mode == types.ModeNameKeyed {
		return KeyName
	}
	return KeyEmail
}

// Table is a materialized upload: a header row and data rows.
// Rows may be shorter than Header; missing cells read as "".
type Table struct {
	Header []string
	Rows   [][]string
}

// Entry is one kept row with its normalized key.
type Entry struct {
	Record types.StudentRecord
	Key    string
	// Index is the row's zero-based position in the upload, used to break
	// ordering ties.
	Index int
}

// NormalizedEmail is the entry's email in comparison form.
func (e Entry) NormalizedEmail() string {
	return NormalizeEmail(e.Record.Email)
}

// Roster is the normalized, filtered content of one upload.
// No entry has an empty key.
type Roster struct {
	Kind    KeyKind
	Entries []Entry
}

// Len returns the number of kept rows.
func (r Roster) Len() int { return len(r.Entries) }

// Keys returns the distinct keys of the roster.
func (r Roster) Keys() map[string]struct{} {
	keys := make(map[string]struct{}, len(r.Entries))
	for _, e := range r.Entries {
		keys[e.Key] = struct{}{}
	}
	return keys
}

// columnIndex maps trimmed header names to their first position.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	return idx
}

// MissingColumns lists the required columns absent from t, in
// RequiredColumns order. It returns nil when all are present.
func MissingColumns(t Table) []string {
	idx := columnIndex(t.Header)
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// LoadPair validates both tables and builds their rosters.
// Column problems in either file are collected into one
// *MissingColumnsError rather than stopping at the first file.
func LoadPair(a, b Table, kind KeyKind) (Roster, Roster, error) {
	missingA := MissingColumns(a)
	missingB := MissingColumns(b)
	if missingA != nil || missingB != nil {
		return Roster{}, Roster{}, &MissingColumnsError{File1: missingA, File2: missingB}
	}

	ra, err := Load(a, kind)
	if err != nil {
		return Roster{}, Roster{}, err
	}
	rb, err := Load(b, kind)
	if err != nil {
		return Roster{}, Roster{}, err
	}
	return ra, rb, nil
}

// Load validates one table and builds its roster, dropping rows whose
// normalized key is empty.
func Load(t Table, kind KeyKind) (Roster, error) {
	if missing := MissingColumns(t); missing != nil {
		return Roster{}, &MissingColumnsError{File1: missing}
	}

	idx := columnIndex(t.Header)
	cell := func(row []string, col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	r := Roster{Kind: kind, Entries: make([]Entry, 0, len(t.Rows))}
	for i, row := range t.Rows {
		rec := types.StudentRecord{
			FirstName: cell(row, ColFirstName),
			LastName:  cell(row, ColLastName),
			Email:     cell(row, ColEmail),
		}

		var key string
		switch kind {
		case KeyName:
			key = NormalizeNameKey(rec.FirstName, rec.LastName)
			if IsEmptyNameKey(key) {
				continue
			}
		default:
			key = NormalizeEmail(rec.Email)
			if key == "" {
				continue
			}
		}

		r.Entries = append(r.Entries, Entry{Record: rec, Key: key, Index: i})
	}
	return r, nil
}
