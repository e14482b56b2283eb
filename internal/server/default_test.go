package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/usecase-catalog/modules"
	"github.com/iota-uz/usecase-catalog/modules/catalog"
	"github.com/iota-uz/usecase-catalog/pkg/application"
	"github.com/iota-uz/usecase-catalog/pkg/configuration"
)

func testConfig() *configuration.Configuration {
	conf := &configuration.Configuration{
		RequestIDHeader: "X-Request-ID",
		RealIPHeader:    "X-Real-IP",
	}
	conf.CORS.AllowedOrigins = []string{"https://catalog.example.com"}
	conf.RateLimit = configuration.RateLimitOptions{Enabled: true, SubmitRate: "1-M", Storage: "memory"}
	return conf
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger, _ := test.NewNullLogger()
	sqlxDB := sqlx.NewDb(db, "pgx")
	conf := testConfig()
	app := application.New(&application.ApplicationOptions{DB: sqlxDB, Logger: logger})

	limiter, err := SubmitLimiter(conf, logger)
	require.NoError(t, err)
	require.NotNil(t, limiter)
	require.NoError(t, modules.Load(app, modules.BuiltInModules(&catalog.ModuleOptions{
		SubmitLimiter: limiter,
		Registerer:    prometheus.NewRegistry(),
	})...))

	srv, err := Default(&DefaultOptions{Logger: logger, Configuration: conf, Application: app, DB: sqlxDB})
	require.NoError(t, err)
	return srv.Handler()
}

func TestDefault_NotFoundIsJSON(t *testing.T) {
	h := newTestServer(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestDefault_MethodNotAllowedIsJSON(t *testing.T) {
	h := newTestServer(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/filters", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, rec.Body.String())
}

func TestDefault_CorsPreflight(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/submit-suggestion", nil)
	req.Header.Set("Origin", "https://catalog.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://catalog.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestDefault_SubmissionsAreRateLimited(t *testing.T) {
	h := newTestServer(t)
	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/submit-suggestion", nil)
		req.Header.Set("X-Real-IP", "203.0.113.7")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusBadRequest, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestSubmitLimiter_Disabled(t *testing.T) {
	logger, _ := test.NewNullLogger()
	conf := testConfig()
	conf.RateLimit.Enabled = false

	mw, err := SubmitLimiter(conf, logger)
	require.NoError(t, err)
	assert.Nil(t, mw)
}

func TestSubmitLimiter_RedisFallsBackToMemory(t *testing.T) {
	logger, hook := test.NewNullLogger()
	conf := testConfig()
	conf.RateLimit.Storage = "redis"
	conf.RateLimit.RedisURL = "not a url"

	mw, err := SubmitLimiter(conf, logger)
	require.NoError(t, err)
	assert.NotNil(t, mw)
	require.NotNil(t, hook.LastEntry())
	assert.Contains(t, hook.LastEntry().Message, "falling back to memory")
}
