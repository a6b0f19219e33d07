package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, http.StatusTeapot, map[string]int{"n": 1}))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"n":1}`, rec.Body.String())
}

func TestMissingColumnsError(t *testing.T) {
	resp := MissingColumnsError(nil, []string{"Email"}, []string{"First Name", "Last Name", "Email"})

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "Missing required columns! File 2 is missing: Email", resp.Error)
	assert.NotContains(t, resp.MissingColumns, "file1")
	assert.Equal(t, "Required columns: First Name, Last Name, Email", resp.Hint)

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"missing_columns":{"file2":["Email"]}`)
}

func TestValidationError(t *testing.T) {
	type req struct {
		Mode string `validate:"required,oneof=a b"`
		Name string `validate:"required"`
	}
	err := validator.New().Struct(req{Mode: "c"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	resp := ValidationError(verrs)
	assert.Equal(t, "field Mode must be one of: a, b, field Name is required", resp.Error)
}
