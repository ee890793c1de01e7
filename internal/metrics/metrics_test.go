package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginRecordsRequest(t *testing.T) {
	m := New()

	done := m.Begin(http.MethodGet, "/v1/cards/:id")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.inFlight))
	done(http.StatusOK)
	m.Begin(http.MethodGet, "/v1/cards/:id")(http.StatusInternalServerError)

	assert.Equal(t, float64(0), testutil.ToFloat64(m.inFlight))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("GET", "/v1/cards/:id", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("GET", "/v1/cards/:id", "500")))

	snap := m.GetSnapshot()
	assert.Equal(t, int64(2), snap.RequestsTotal)
	assert.Equal(t, int64(1), snap.ErrorsTotal)
	assert.Equal(t, m.StartTime, snap.StartTime)
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.Begin(http.MethodPost, "/v1/boards")(http.StatusCreated)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `tablero_http_requests_total{code="201",method="POST",route="/v1/boards"} 1`))
	assert.Contains(t, body, "tablero_http_request_duration_seconds_bucket")
	assert.Contains(t, body, "go_goroutines")
}

func TestRegistryIsPrivate(t *testing.T) {
	a, b := New(), New()
	a.Begin(http.MethodGet, "/healthz")(http.StatusOK)

	n, err := testutil.GatherAndCount(a.Registry(), "tablero_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = testutil.GatherAndCount(b.Registry(), "tablero_http_requests_total")
	require.NoError(t, err)
	assert.Zero(t, n)
}
