// Package report turns a comparison result into what the user sees:
// summary counts, named tables and copyable plain-text blocks.
//
// It holds no comparison logic. Every value here is derived from the
// types.ComparisonResult it is given, in the order the comparator chose.
package report

import (
	"fmt"
	"strings"

	"github.com/aanand-mishra/roster-diff/internal/types"
)

// Table names, stable across releases so clients can address them.
const (
	TableOnlyInFile1      = "only_in_file1"
	TableOnlyInFile2      = "only_in_file2"
	TableMissingFromFile1 = "missing_from_file1"
	TableMismatched       = "mismatched"
)

var (
	recordColumns   = []string{"First Name", "Last Name", "Email"}
	mismatchColumns = []string{"First Name", "Last Name", "Email (File 1)", "Email (File 2)"}
)

// Build produces the report for res according to res.Mode.
func Build(res types.ComparisonResult) types.Report {
	switch res.Mode {
	case types.ModeEmailOneDirectional:
		return oneDirectional(res)
	case types.ModeNameKeyed:
		return nameKeyed(res)
	default:
		return symmetric(res)
	}
}

func symmetric(res types.ComparisonResult) types.Report {
	return types.Report{
		Mode: res.Mode,
		Summary: []types.Metric{
			{Label: "Emails in Both Files", Value: res.InBoth},
			{Label: "Emails Only in File 1", Value: res.OnlyInACount},
			{Label: "Emails Only in File 2", Value: res.OnlyInBCount},
		},
		Tables: []types.Table{
			recordTable(TableOnlyInFile1, "Emails Only in File 1", res.OnlyInA,
				"No unique emails in File 1! All emails from File 1 are also in File 2.", true),
			recordTable(TableOnlyInFile2, "Emails Only in File 2", res.OnlyInB,
				"No unique emails in File 2! All emails from File 2 are also in File 1.", true),
		},
	}
}

// oneDirectional lists only what file 1 has to add; file 1's extras are
// counted but not listed.
func oneDirectional(res types.ComparisonResult) types.Report {
	return types.Report{
		Mode: res.Mode,
		Summary: []types.Metric{
			{Label: "Emails in Both Files", Value: res.InBoth},
			{Label: "Emails Only in File 1", Value: res.OnlyInACount},
			{Label: "Missing from File 1", Value: res.OnlyInBCount},
		},
		Tables: []types.Table{
			recordTable(TableMissingFromFile1, "Students to Add to File 1", res.OnlyInB,
				"Nothing to add! Every email in File 2 is already in File 1.", true),
		},
	}
}

func nameKeyed(res types.ComparisonResult) types.Report {
	mm := types.Table{
		Name:         TableMismatched,
		Title:        "Same Student, Different Email",
		Columns:      mismatchColumns,
		Rows:         make([][]string, 0, len(res.Mismatched)),
		EmptyMessage: "No email mismatches! Every student in both files has the same email.",
	}
	for _, m := range res.Mismatched {
		mm.Rows = append(mm.Rows, []string{m.FirstName, m.LastName, m.EmailA, m.EmailB})
	}

	return types.Report{
		Mode: res.Mode,
		Summary: []types.Metric{
			{Label: "Students in Both Files", Value: res.InBoth},
			{Label: "Students Only in File 1", Value: res.OnlyInACount},
			{Label: "Students Only in File 2", Value: res.OnlyInBCount},
		},
		Tables: []types.Table{
			recordTable(TableOnlyInFile1, "Students Only in File 1", res.OnlyInA,
				"No unique students in File 1! Everyone in File 1 is also in File 2.", false),
			recordTable(TableOnlyInFile2, "Students Only in File 2", res.OnlyInB,
				"No unique students in File 2! Everyone in File 2 is also in File 1.", false),
			mm,
		},
	}
}

func recordTable(name, title string, recs []types.StudentRecord, empty string, withText bool) types.Table {
	t := types.Table{
		Name:         name,
		Title:        title,
		Columns:      recordColumns,
		Rows:         make([][]string, 0, len(recs)),
		EmptyMessage: empty,
	}
	for _, r := range recs {
		t.Rows = append(t.Rows, []string{r.FirstName, r.LastName, r.Email})
	}
	if withText && len(recs) > 0 {
		t.Text = Text(title, recs)
	}
	return t
}

// Text renders records as a copyable block:
//
//	<header>:
//
//	First Last - email
//	...
func Text(header string, recs []types.StudentRecord) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString(":\n\n")
	for _, r := range recs {
		fmt.Fprintf(&b, "%s %s - %s\n", r.FirstName, r.LastName, r.Email)
	}
	return b.String()
}

// RenderText lays out a whole report as plain text for terminals.
func RenderText(rep types.Report) string {
	var b strings.Builder
	for _, m := range rep.Summary {
		fmt.Fprintf(&b, "%s: %d\n", m.Label, m.Value)
	}
	for _, t := range rep.Tables {
		fmt.Fprintf(&b, "\n== %s (%d) ==\n", t.Title, len(t.Rows))
		if len(t.Rows) == 0 {
			b.WriteString(t.EmptyMessage)
			b.WriteString("\n")
			continue
		}
		if t.Text != "" {
			// The copyable block already starts with the title.
			_, body, _ := strings.Cut(t.Text, "\n\n")
			b.WriteString(body)
			continue
		}
		for _, row := range t.Rows {
			b.WriteString(strings.Join(row, "\t"))
			b.WriteString("\n")
		}
	}
	return b.String()
}
