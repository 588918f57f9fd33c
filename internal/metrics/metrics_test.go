package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/lawyers/{id}", RouteLabel("/lawyers/42"))
	assert.Equal(t, "/lawyers", RouteLabel("/lawyers"))
	assert.Equal(t, "/", RouteLabel("/"))
	assert.Equal(t, "/case-results/{id}/", RouteLabel("/case-results/7/"))
}

func TestPrometheusMiddlewareCountsRequests(t *testing.T) {
	handler := PrometheusMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"lawyer not found"}`))
	}))

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/lawyers/{id}", "404")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/lawyers/999", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestBusinessCounters(t *testing.T) {
	before := testutil.ToFloat64(contactMessagesTotal)
	RecordContactMessage()
	assert.Equal(t, before+1, testutil.ToFloat64(contactMessagesTotal))

	mutation := entityMutationsTotal.WithLabelValues("lawyer", "delete")
	before = testutil.ToFloat64(mutation)
	RecordMutation("lawyer", "delete")
	assert.Equal(t, before+1, testutil.ToFloat64(mutation))
}

func TestRecordDBQueryStatus(t *testing.T) {
	failed := dbQueriesTotal.WithLabelValues("query", "error")
	before := testutil.ToFloat64(failed)

	RecordDBQuery("query", time.Millisecond, errors.New("boom"))

	assert.Equal(t, before+1, testutil.ToFloat64(failed))
}
