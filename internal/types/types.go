// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// the roster loader, the comparator, the report formatter, handlers and
// storage can all import types without depending on each other.
package types

import (
	"fmt"
	"time"
)

// StudentRecord is one row of an uploaded roster, exactly as uploaded.
// Values are never normalized in place; normalized keys live alongside
// the record in the roster package.
type StudentRecord struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Mode selects which comparison the comparator runs.
//
// The three values correspond to the three report flavours:
//
//	email_symmetric        — emails only in file 1 / only in file 2
//	email_one_directional  — students in file 2 that file 1 is missing
//	name_keyed             — match by name, flag differing emails
type Mode string

const (
	ModeEmailSymmetric      Mode = "email_symmetric"
	ModeEmailOneDirectional Mode = "email_one_directional"
	ModeNameKeyed           Mode = "name_keyed"
)

// Modes lists every supported mode in display order.
var Modes = []Mode{ModeEmailSymmetric, ModeEmailOneDirectional, ModeNameKeyed}

// ParseMode converts user input into a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown comparison mode %q", s)
}

// Description is a one-line human explanation of the mode.
func (m Mode) Description() string {
	switch m {
	case ModeEmailSymmetric:
		return "Emails that appear in only one of the two files"
	case ModeEmailOneDirectional:
		return "Students in file 2 whose email is missing from file 1"
	case ModeNameKeyed:
		return "Match students by name and flag differing emails"
	default:
		return ""
	}
}

// Mismatch is a student present in both rosters under the same name
// whose emails disagree after normalization. Both emails are raw.
type Mismatch struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	EmailA    string `json:"email_file1"`
	EmailB    string `json:"email_file2"`
}

// ComparisonResult is the output of one comparator run.
//
// InBoth, OnlyInACount and OnlyInBCount count distinct keys.
// OnlyInA and OnlyInB list every row whose key is exclusive to its roster,
// so a duplicated email contributes one to the count but two rows.
type ComparisonResult struct {
	Mode         Mode            `json:"mode"`
	OnlyInA      []StudentRecord `json:"only_in_file1"`
	OnlyInB      []StudentRecord `json:"only_in_file2"`
	InBoth       int             `json:"in_both"`
	OnlyInACount int             `json:"only_in_file1_count"`
	OnlyInBCount int             `json:"only_in_file2_count"`
	Mismatched   []Mismatch      `json:"mismatched,omitempty"`
}

// Metric is one summary count shown above the report tables.
type Metric struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Table is a named report table. Rows hold cell values in Columns order.
// Text is the copyable plain-text rendering; empty for tables that do not
// offer one.
type Table struct {
	Name         string     `json:"name"`
	Title        string     `json:"title"`
	Columns      []string   `json:"columns"`
	Rows         [][]string `json:"rows"`
	EmptyMessage string     `json:"empty_message,omitempty"`
	Text         string     `json:"text,omitempty"`
}

// Report is what the presentation layer consumes.
type Report struct {
	Mode    Mode     `json:"mode"`
	Summary []Metric `json:"summary"`
	Tables  []Table  `json:"tables"`
}

// CompareRequest carries the non-file inputs of a comparison request.
// Struct tags are checked by go-playground/validator; the oneof list must
// match Modes.
type CompareRequest struct {
	Mode string `validate:"required,oneof=email_symmetric email_one_directional name_keyed"`
}

// RunSummary is what gets persisted about a comparison: counts only,
// never the uploaded rows.
type RunSummary struct {
	ID         int64     `json:"id"`
	Mode       Mode      `json:"mode"`
	File1Name  string    `json:"file1_name"`
	File2Name  string    `json:"file2_name"`
	InBoth     int       `json:"in_both"`
	OnlyInA    int       `json:"only_in_file1"`
	OnlyInB    int       `json:"only_in_file2"`
	Mismatched int       `json:"mismatched"`
	CreatedAt  time.Time `json:"created_at"`
}
