package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/roster-diff/internal/types"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRunCompareText(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "First Name,Last Name,Email\nAnn,Lee,ann@x.com\nBo,Kim,bo@x.com\n")
	b := writeFile(t, dir, "b.csv", "First Name,Last Name,Email\nAnn,Lee,ANN@x.com\n")

	var out bytes.Buffer
	err := runCompare(&out, a, b, compareFlags{Mode: "email_symmetric", Format: "text"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Emails in Both Files: 1\n")
	assert.Contains(t, out.String(), "Bo Kim - bo@x.com\n")
}

func TestRunCompareJSON(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "First Name,Last Name,Email\nCy,Wu,cy@x.com\n")
	b := writeFile(t, dir, "b.csv", "First Name,Last Name,Email\nCy,Wu,cy2@x.com\n")

	var out bytes.Buffer
	err := runCompare(&out, a, b, compareFlags{Mode: "name_keyed", Format: "json"})
	require.NoError(t, err)

	var rep types.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &rep))
	assert.Equal(t, types.ModeNameKeyed, rep.Mode)
	require.Len(t, rep.Tables, 3)
	assert.Len(t, rep.Tables[2].Rows, 1)
}

func TestRunCompareMissingColumns(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "First Name,Last Name\nAnn,Lee\n")
	b := writeFile(t, dir, "b.csv", "First Name,Last Name,Email\n")

	err := runCompare(&bytes.Buffer{}, a, b, compareFlags{Mode: "email_symmetric", Format: "text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "File 1 is missing: Email")
	assert.NotContains(t, err.Error(), "File 2 is missing")
	assert.Contains(t, err.Error(), "Required columns: First Name, Last Name, Email")
}

func TestRunCompareInvalidFlags(t *testing.T) {
	err := runCompare(&bytes.Buffer{}, "a.csv", "b.csv", compareFlags{Mode: "fuzzy", Format: "text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid flags")
}
