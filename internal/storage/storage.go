// Package storage defines the Storage interface — the contract any
// backend keeping comparison run history must satisfy.
//
// Only run summaries (mode, file names, counts) are stored. Uploaded rows
// never reach this layer.
//
// Handlers depend on this interface, not on SQLite, so tests can pass a
// fake and the backend can change without touching the HTTP layer.
package storage

import (
	"errors"

	"github.com/aanand-mishra/roster-diff/internal/types"
)

// ErrNotFound is returned when a run with the requested ID does not exist.
var ErrNotFound = errors.New("comparison run not found")

// Storage is the persistence contract for comparison run summaries.
type Storage interface {
	// CreateRun inserts a run summary and returns its generated ID.
	// The ID and CreatedAt fields of run are ignored.
	CreateRun(run types.RunSummary) (int64, error)

	// GetRunByID fetches one run. Returns an error wrapping ErrNotFound
	// if there is no such run.
	GetRunByID(id int64) (types.RunSummary, error)

	// GetRuns returns every stored run, newest first.
	// Returns an empty slice (not nil) if there are none.
	GetRuns() ([]types.RunSummary, error)
}
