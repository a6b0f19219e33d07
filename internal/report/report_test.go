package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/roster-diff/internal/types"
)

func sample(mode types.Mode) types.ComparisonResult {
	return types.ComparisonResult{
		Mode: mode,
		OnlyInA: []types.StudentRecord{
			{FirstName: "Ann", LastName: "Lee", Email: "Ann@x.com"},
			{FirstName: "Bo", LastName: "Kim", Email: "bo@x.com"},
		},
		OnlyInB:      []types.StudentRecord{{FirstName: "Cy", LastName: "Wu", Email: "cy@x.com"}},
		InBoth:       5,
		OnlyInACount: 2,
		OnlyInBCount: 1,
	}
}

func TestBuildSymmetric(t *testing.T) {
	rep := Build(sample(types.ModeEmailSymmetric))

	assert.Equal(t, []types.Metric{
		{Label: "Emails in Both Files", Value: 5},
		{Label: "Emails Only in File 1", Value: 2},
		{Label: "Emails Only in File 2", Value: 1},
	}, rep.Summary)

	require.Len(t, rep.Tables, 2)
	a := rep.Tables[0]
	assert.Equal(t, TableOnlyInFile1, a.Name)
	assert.Equal(t, []string{"First Name", "Last Name", "Email"}, a.Columns)
	assert.Equal(t, [][]string{{"Ann", "Lee", "Ann@x.com"}, {"Bo", "Kim", "bo@x.com"}}, a.Rows)
	assert.Equal(t, "Emails Only in File 1:\n\nAnn Lee - Ann@x.com\nBo Kim - bo@x.com\n", a.Text)
	assert.Equal(t, "Emails Only in File 2:\n\nCy Wu - cy@x.com\n", rep.Tables[1].Text)
}

func TestBuildSymmetricEmptyTable(t *testing.T) {
	res := sample(types.ModeEmailSymmetric)
	res.OnlyInB = nil
	res.OnlyInBCount = 0

	rep := Build(res)
	b := rep.Tables[1]
	assert.Empty(t, b.Rows)
	assert.Empty(t, b.Text)
	assert.Contains(t, b.EmptyMessage, "No unique emails in File 2")
}

func TestBuildOneDirectionalListsOnlyFile2(t *testing.T) {
	rep := Build(sample(types.ModeEmailOneDirectional))

	require.Len(t, rep.Tables, 1)
	assert.Equal(t, TableMissingFromFile1, rep.Tables[0].Name)
	assert.Equal(t, [][]string{{"Cy", "Wu", "cy@x.com"}}, rep.Tables[0].Rows)
	assert.Equal(t, "Students to Add to File 1:\n\nCy Wu - cy@x.com\n", rep.Tables[0].Text)

	// File 1's extras are still counted.
	assert.Equal(t, 2, rep.Summary[1].Value)
	assert.Equal(t, 1, rep.Summary[2].Value)
}

func TestBuildNameKeyed(t *testing.T) {
	res := sample(types.ModeNameKeyed)
	res.Mismatched = []types.Mismatch{{FirstName: "Cy", LastName: "Wu", EmailA: "cy@x.com", EmailB: "cy2@x.com"}}

	rep := Build(res)
	require.Len(t, rep.Tables, 3)
	mm := rep.Tables[2]
	assert.Equal(t, TableMismatched, mm.Name)
	assert.Equal(t, []string{"First Name", "Last Name", "Email (File 1)", "Email (File 2)"}, mm.Columns)
	assert.Equal(t, [][]string{{"Cy", "Wu", "cy@x.com", "cy2@x.com"}}, mm.Rows)
	for _, tbl := range rep.Tables {
		assert.Empty(t, tbl.Text, "table %s", tbl.Name)
	}
	assert.Equal(t, "Students in Both Files", rep.Summary[0].Label)
}

func TestRenderText(t *testing.T) {
	res := sample(types.ModeEmailSymmetric)
	res.OnlyInB = nil

	out := RenderText(Build(res))
	assert.Equal(t, "Emails in Both Files: 5\n"+
		"Emails Only in File 1: 2\n"+
		"Emails Only in File 2: 1\n"+
		"\n== Emails Only in File 1 (2) ==\n"+
		"Ann Lee - Ann@x.com\nBo Kim - bo@x.com\n"+
		"\n== Emails Only in File 2 (0) ==\n"+
		"No unique emails in File 2! All emails from File 2 are also in File 1.\n", out)
}

func TestRenderTextMismatchRows(t *testing.T) {
	res := types.ComparisonResult{
		Mode:       types.ModeNameKeyed,
		Mismatched: []types.Mismatch{{FirstName: "Cy", LastName: "Wu", EmailA: "a@x.com", EmailB: "b@x.com"}},
	}
	out := RenderText(Build(res))
	assert.Contains(t, out, "== Same Student, Different Email (1) ==\nCy\tWu\ta@x.com\tb@x.com\n")
}
