// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is the standard envelope returned for error cases.
//
//	{ "status": "error", "error": "File 1 is missing: Email" }
//
// Upload problems additionally carry the per-file missing columns and the
// required column list so a client can show re-upload guidance.
type Response struct {
	Status          string              `json:"status"`
	Error           string              `json:"error"`
	MissingColumns  map[string][]string `json:"missing_columns,omitempty"`
	RequiredColumns []string            `json:"required_columns,omitempty"`
	Hint            string              `json:"hint,omitempty"`
}

// Status string constants — use these instead of raw string literals so
// a typo is caught by the compiler.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into our standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// UploadError is GeneralError plus the expected-shape hint, for input the
// user has to fix and re-upload.
func UploadError(err error, required []string, hint string) Response {
	return Response{
		Status:          StatusError,
		Error:           err.Error(),
		RequiredColumns: required,
		Hint:            hint,
	}
}

// MissingColumnsError reports which required columns each file lacks.
// Files with nothing missing are left out of the map.
func MissingColumnsError(file1, file2, required []string) Response {
	missing := make(map[string][]string, 2)
	var parts []string
	if len(file1) > 0 {
		missing["file1"] = file1
		parts = append(parts, fmt.Sprintf("File 1 is missing: %s", strings.Join(file1, ", ")))
	}
	if len(file2) > 0 {
		missing["file2"] = file2
		parts = append(parts, fmt.Sprintf("File 2 is missing: %s", strings.Join(file2, ", ")))
	}
	return Response{
		Status:          StatusError,
		Error:           "Missing required columns! " + strings.Join(parts, "; "),
		MissingColumns:  missing,
		RequiredColumns: required,
		Hint:            "Required columns: " + strings.Join(required, ", "),
	}
}

// ValidationError converts a slice of validator.FieldError values into
// a single human-readable Response.
//
//	{ "status": "error", "error": "field Mode must be one of: email_symmetric ..." }
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "oneof":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be one of: %s", e.Field(), strings.ReplaceAll(e.Param(), " ", ", ")))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
	}
}
