package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := New()

	r.ObserveRequest("discover", OutcomeOK, 120*time.Millisecond)
	r.ObserveRequest("discover", OutcomeOK, 80*time.Millisecond)
	r.ObserveRequest("genres", OutcomeUnavailable, time.Second)
	r.ObserveSession("start", OutcomeOK, 20)
	r.ObserveSession("extend", OutcomeEmpty, 20)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.APIRequests.WithLabelValues("discover", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.APIRequests.WithLabelValues("genres", OutcomeUnavailable)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.SessionOps.WithLabelValues("extend", OutcomeEmpty)))
	assert.Equal(t, 20.0, testutil.ToFloat64(r.MoviesDisplayed))
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder

	assert.NotPanics(t, func() {
		r.ObserveRequest("genres", OutcomeOK, time.Second)
		r.ObserveSession("start", OutcomeOK, 1)
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler(t *testing.T) {
	r := New()
	r.ObserveSession("start", OutcomeOK, 3)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "marquee_browse_operations_total")
	assert.Contains(t, rec.Body.String(), "marquee_browse_movies_accumulated 3")
}
