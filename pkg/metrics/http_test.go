package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	assert.Equal(t, "success", Result(http.StatusOK))
	assert.Equal(t, "client_error", Result(http.StatusBadRequest))
	assert.Equal(t, "client_error", Result(http.StatusConflict))
	assert.Equal(t, "server_error", Result(http.StatusInternalServerError))
}

func TestInstrument_CountsByResult(t *testing.T) {
	before := testutil.ToFloat64(requestsTotal.WithLabelValues("test-endpoint", "client_error"))

	handler := Instrument("test-endpoint", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(requestsTotal.WithLabelValues("test-endpoint", "client_error")))
}

func TestPrometheusController_ServesMetrics(t *testing.T) {
	Instrument("scraped-endpoint", func(w http.ResponseWriter, r *http.Request) {}).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	r := mux.NewRouter()
	NewPrometheusController(PrometheusControllerOptions{}).Register(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/prometheus", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "catalog_api_requests_total")
}

func TestPrometheusController_CustomGatherer(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "catalog_seed_rows_total", Help: "Seeded rows."})
	reg.MustRegister(counter)
	counter.Add(3)

	r := mux.NewRouter()
	NewPrometheusController(PrometheusControllerOptions{Path: "/metrics", Gatherer: reg}).Register(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "catalog_seed_rows_total 3")
	assert.NotContains(t, rec.Body.String(), "catalog_api_requests_total")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/metrics", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
