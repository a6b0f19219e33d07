package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/roster-diff/internal/storage"
	"github.com/aanand-mishra/roster-diff/internal/types"
)

func newTestDB(t *testing.T) *SQLite {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "nested", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateAndGetRun(t *testing.T) {
	db := newTestDB(t)
	before := time.Now().UTC().Add(-time.Second)

	id, err := db.CreateRun(types.RunSummary{
		Mode:       types.ModeNameKeyed,
		File1Name:  "class.csv",
		File2Name:  "attendance.xlsx",
		InBoth:     10,
		OnlyInA:    2,
		OnlyInB:    3,
		Mismatched: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	run, err := db.GetRunByID(id)
	require.NoError(t, err)
	assert.Equal(t, id, run.ID)
	assert.Equal(t, types.ModeNameKeyed, run.Mode)
	assert.Equal(t, "class.csv", run.File1Name)
	assert.Equal(t, "attendance.xlsx", run.File2Name)
	assert.Equal(t, 10, run.InBoth)
	assert.Equal(t, 2, run.OnlyInA)
	assert.Equal(t, 3, run.OnlyInB)
	assert.Equal(t, 1, run.Mismatched)
	assert.False(t, run.CreatedAt.Before(before.Truncate(time.Second)))
}

func TestGetRunByIDNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetRunByID(42)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetRunsNewestFirst(t *testing.T) {
	db := newTestDB(t)

	runs, err := db.GetRuns()
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)

	for _, name := range []string{"a.csv", "b.csv", "c.csv"} {
		_, err := db.CreateRun(types.RunSummary{Mode: types.ModeEmailSymmetric, File1Name: name, File2Name: "x.csv"})
		require.NoError(t, err)
	}

	runs, err = db.GetRuns()
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "c.csv", runs[0].File1Name)
	assert.Equal(t, "a.csv", runs[2].File1Name)
}

var _ storage.Storage = (*SQLite)(nil)
