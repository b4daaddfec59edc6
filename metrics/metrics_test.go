package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krisalay/ttl-cache/metrics"
	"github.com/krisalay/ttl-cache/types"
)

func TestPrometheusCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewPrometheus(reg, "ttlcache", "test")

	m.Hit()
	m.Hit()
	m.Miss()
	m.Renew()
	m.Populate(nil)
	m.Populate(errors.New("boom"))
	m.Eviction()
	m.Expire()
	m.Sweep(types.SweepStats{Deleted: 2, Scanned: 5}, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Hits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Misses))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Renewals))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Populates))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PopulateFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Evictions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Expirations))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Sweeps))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Entries))
}

func TestTwoCachesShareARegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() {
		metrics.NewPrometheus(reg, "ttlcache", "users")
		metrics.NewPrometheus(reg, "ttlcache", "sessions")
	})
}

func TestServerEndpoints(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewPrometheus(reg, "ttlcache", "test")
	m.Hit()

	srv := metrics.NewServer(":0", reg, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `ttlcache_hits_total{cache="test"} 1`))
}
