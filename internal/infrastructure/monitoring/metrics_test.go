package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordToolCall(t *testing.T) {
	m := NewMetrics()

	m.RecordToolCall("math.add", "decimal", "", time.Millisecond)
	m.RecordToolCall("math.divide", "double", "DivisionByZeroError", time.Millisecond)
	m.RecordToolCall("math.divide", "double", "DivisionByZeroError", time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ToolCalls.WithLabelValues("math.add", "decimal", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ToolCalls.WithLabelValues("math.divide", "double", "failure")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ToolErrors.WithLabelValues("math.divide", "double", "DivisionByZeroError")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.NumericErrors.WithLabelValues("DivisionByZeroError")))

	s := m.Snapshot()
	assert.Equal(t, int64(3), s.ToolCalls)
	assert.Equal(t, int64(2), s.ToolFailures)
}

func TestTimer(t *testing.T) {
	m := NewMetrics()
	elapsed := NewTimer(m, "math.sqrt", "complex").Stop("")
	assert.GreaterOrEqual(t, elapsed, time.Duration(0))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ToolCalls.WithLabelValues("math.sqrt", "complex", "success")))

	// A timer without metrics still measures
	assert.NotPanics(t, func() { NewTimer(nil, "math.sqrt", "double").Stop("") })
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	for _, path := range []string{"/health", "/health", "/missing"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))

	s := m.Snapshot()
	assert.Equal(t, int64(3), s.TotalRequests)
	assert.Equal(t, int64(1), s.TotalErrors)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "numerics_http_requests_total")
	assert.Contains(t, w.Body.String(), "numerics_uptime_seconds")
}
