package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := New()
	m.ObserveComparison("name_keyed", 30, 28)
	m.ObserveComparison("name_keyed", 1, 2)
	m.ObserveError(KindMissingColumns)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ComparisonsTotal.WithLabelValues("name_keyed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ErrorsTotal.WithLabelValues(KindMissingColumns)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ErrorsTotal.WithLabelValues(KindParse)))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveComparison("email_symmetric", 5, 5)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `roster_diff_comparisons_total{mode="email_symmetric"} 1`)
	assert.Contains(t, string(body), "roster_diff_rows_bucket")
}
