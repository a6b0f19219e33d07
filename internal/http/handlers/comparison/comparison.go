// Package comparison contains the HTTP handlers for roster comparisons.
//
// HANDLER PATTERN — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────
// The router expects func(http.ResponseWriter, *http.Request). Dependencies
// (storage, metrics, options) are injected by a factory that runs once at
// startup and returns the handler that runs on every request:
//
//	router.HandleFunc("POST /api/comparisons", comparison.New(storage, m, opts))
//
// Uploaded files live only for the duration of one request. Nothing but
// the summary counts is handed to storage.
package comparison

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/roster-diff/internal/compare"
	"github.com/aanand-mishra/roster-diff/internal/metrics"
	"github.com/aanand-mishra/roster-diff/internal/report"
	"github.com/aanand-mishra/roster-diff/internal/roster"
	"github.com/aanand-mishra/roster-diff/internal/storage"
	"github.com/aanand-mishra/roster-diff/internal/types"
	"github.com/aanand-mishra/roster-diff/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// Options configures the comparison handler.
type Options struct {
	// DefaultMode is used when the form has no "mode" field.
	DefaultMode types.Mode
	// MaxUploadBytes caps the whole multipart body.
	MaxUploadBytes int64
}

// Result is the success body of POST /api/comparisons.
type Result struct {
	// ID is the stored run's ID, 0 if the run could not be recorded.
	ID     int64        `json:"id"`
	Report types.Report `json:"report"`
}

// multipartMemory is how much of the form is buffered in memory before
// spilling to temp files.
const multipartMemory = 8 << 20

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/comparisons
// Compares two uploaded rosters.
//
// Request: multipart/form-data with
//
//	file1  — roster A (CSV or XLSX)
//	file2  — roster B (CSV or XLSX)
//	mode   — optional: email_symmetric | email_one_directional | name_keyed
//
// Query: format=text returns the plain-text report instead of JSON.
//
// Responses:
//
//	200 OK                    — { "id": 7, "report": { ... } }
//	400 Bad Request           — missing file, unreadable file, invalid mode
//	413 Request Entity Too Large
//	422 Unprocessable Entity  — required columns missing (per file)
//	500 Internal              — comparator defect
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage, m *metrics.Metrics, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("comparing rosters")

		if opts.MaxUploadBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, opts.MaxUploadBytes)
		}
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				m.ObserveError(metrics.KindBadRequest)
				response.WriteJSON(w, http.StatusRequestEntityTooLarge,
					response.GeneralError(fmt.Errorf("upload exceeds %d bytes", tooBig.Limit)))
				return
			}
			m.ObserveError(metrics.KindBadRequest)
			response.WriteJSON(w, http.StatusBadRequest,
				response.UploadError(fmt.Errorf("expected a multipart form with file1 and file2: %w", err),
					roster.RequiredColumns, roster.ExpectedShape))
			return
		}
		defer r.MultipartForm.RemoveAll()

		// ── Step 1: mode ──────────────────────────────────────────────
		req := types.CompareRequest{Mode: r.FormValue("mode")}
		if req.Mode == "" {
			req.Mode = string(opts.DefaultMode)
		}
		if err := validator.New().Struct(req); err != nil {
			m.ObserveError(metrics.KindBadRequest)
			var validateErrs validator.ValidationErrors
			if errors.As(err, &validateErrs) {
				response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(validateErrs))
				return
			}
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		mode := types.Mode(req.Mode)

		// ── Step 2: read both uploads ─────────────────────────────────
		tableA, nameA, err := readUpload(r, "file1")
		if err != nil {
			writeUploadError(w, m, err)
			return
		}
		tableB, nameB, err := readUpload(r, "file2")
		if err != nil {
			writeUploadError(w, m, err)
			return
		}

		// ── Step 3: load, compare, format ─────────────────────────────
		compareTables(w, r, store, m, mode, tableA, tableB, nameA, nameB)
	}
}

func compareTables(w http.ResponseWriter, r *http.Request, store storage.Storage, m *metrics.Metrics,
	mode types.Mode, tableA, tableB roster.Table, nameA, nameB string) {
	ra, rb, err := roster.LoadPair(tableA, tableB, roster.KindFor(mode))
	if err != nil {
		writeUploadError(w, m, err)
		return
	}

	res, err := compare.Compare(ra, rb, mode)
	if err != nil {
		slog.Error("comparator failed",
			slog.String("mode", string(mode)),
			slog.String("error", err.Error()))
		m.ObserveError(metrics.KindInternal)
		response.WriteJSON(w, http.StatusInternalServerError,
			response.GeneralError(errors.New("internal error while comparing rosters")))
		return
	}
	m.ObserveComparison(string(mode), ra.Len(), rb.Len())

	rep := report.Build(res)

	id, err := store.CreateRun(types.RunSummary{
		Mode:       mode,
		File1Name:  nameA,
		File2Name:  nameB,
		InBoth:     res.InBoth,
		OnlyInA:    res.OnlyInACount,
		OnlyInB:    res.OnlyInBCount,
		Mismatched: len(res.Mismatched),
	})
	if err != nil {
		// The report is still useful without a history entry.
		slog.Error("failed to record comparison run", slog.String("error", err.Error()))
		id = 0
	}

	slog.Info("rosters compared",
		slog.Int64("id", id),
		slog.String("mode", string(mode)),
		slog.Int("in_both", res.InBoth),
		slog.Int("only_in_file1", res.OnlyInACount),
		slog.Int("only_in_file2", res.OnlyInBCount),
		slog.Int("mismatched", len(res.Mismatched)))

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, report.RenderText(rep))
		return
	}
	response.WriteJSON(w, http.StatusOK, Result{ID: id, Report: rep})
}

func readUpload(r *http.Request, field string) (roster.Table, string, error) {
	f, hdr, err := r.FormFile(field)
	if err != nil {
		return roster.Table{}, "", fmt.Errorf("%s: %w", field, err)
	}
	defer f.Close()

	t, err := roster.ReadTable(f, hdr.Filename)
	if err != nil {
		return roster.Table{}, "", err
	}
	return t, hdr.Filename, nil
}

// writeUploadError maps expected input errors to user guidance.
func writeUploadError(w http.ResponseWriter, m *metrics.Metrics, err error) {
	var (
		missing  *roster.MissingColumnsError
		parseErr *roster.ParseError
	)
	switch {
	case errors.As(err, &missing):
		slog.Info("upload rejected: missing columns",
			slog.Any("file1", missing.File1),
			slog.Any("file2", missing.File2))
		m.ObserveError(metrics.KindMissingColumns)
		response.WriteJSON(w, http.StatusUnprocessableEntity,
			response.MissingColumnsError(missing.File1, missing.File2, roster.RequiredColumns))
	case errors.As(err, &parseErr):
		slog.Info("upload rejected: unreadable file",
			slog.String("file", parseErr.File),
			slog.String("error", parseErr.Err.Error()))
		m.ObserveError(metrics.KindParse)
		response.WriteJSON(w, http.StatusBadRequest,
			response.UploadError(err, roster.RequiredColumns, roster.ExpectedShape))
	case errors.Is(err, http.ErrMissingFile):
		m.ObserveError(metrics.KindBadRequest)
		response.WriteJSON(w, http.StatusBadRequest,
			response.UploadError(fmt.Errorf("please upload both files: %w", err),
				roster.RequiredColumns, roster.ExpectedShape))
	default:
		slog.Error("error reading upload", slog.String("error", err.Error()))
		m.ObserveError(metrics.KindBadRequest)
		response.WriteJSON(w, http.StatusBadRequest,
			response.UploadError(err, roster.RequiredColumns, roster.ExpectedShape))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/comparisons
// Returns all recorded comparison runs, newest first.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("listing comparison runs")

		runs, err := store.GetRuns()
		if err != nil {
			slog.Error("error listing runs", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}
		response.WriteJSON(w, http.StatusOK, runs)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/comparisons/{id}
//
//	400 Bad Request — id is not an integer
//	404 Not Found   — no such run
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a comparison run", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		run, err := store.GetRunByID(intID)
		if errors.Is(err, storage.ErrNotFound) {
			response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
			return
		}
		if err != nil {
			slog.Error("error getting run",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}
		response.WriteJSON(w, http.StatusOK, run)
	}
}

// ModeInfo describes one comparison mode for GET /api/modes.
type ModeInfo struct {
	Name        types.Mode `json:"name"`
	Description string     `json:"description"`
	Default     bool       `json:"default"`
}

// Modes handles GET /api/modes.
func Modes(defaultMode types.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]ModeInfo, 0, len(types.Modes))
		for _, mode := range types.Modes {
			out = append(out, ModeInfo{
				Name:        mode,
				Description: mode.Description(),
				Default:     mode == defaultMode,
			})
		}
		response.WriteJSON(w, http.StatusOK, out)
	}
}
