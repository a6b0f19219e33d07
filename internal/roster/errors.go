package roster

import (
	"fmt"
	"strings"
)

// ExpectedShape is the guidance shown to users whenever an upload cannot
// be used.
const ExpectedShape = "Please make sure your files are properly formatted with columns: First Name, Last Name, Email"

// MissingColumnsError reports the required columns absent from each file.
// Both files are checked before this error is returned, so a nil slice
// means that file is fine.
type MissingColumnsError struct {
	File1 []string
	File2 []string
}

func (e *MissingColumnsError) Error() string {
	var parts []string
	if len(e.File1) > 0 {
		parts = append(parts, fmt.Sprintf("File 1 is missing: %s", strings.Join(e.File1, ", ")))
	}
	if len(e.File2) > 0 {
		parts = append(parts, fmt.Sprintf("File 2 is missing: %s", strings.Join(e.File2, ", ")))
	}
	return "missing required columns: " + strings.Join(parts, "; ")
}

// ParseError wraps a failure to read an upload as a table.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
