package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/GriffinCanCode/numerics/internal/api/http"
	"github.com/GriffinCanCode/numerics/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/numerics/internal/providers/math"
	"github.com/GriffinCanCode/numerics/internal/service"
	"github.com/GriffinCanCode/numerics/internal/types"
	"github.com/GriffinCanCode/numerics/pkg/numeric"
)

func newNumericsServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := service.NewRegistry()
	require.NoError(t, registry.Register(math.NewProvider(nil, numeric.KindDecimal)))

	r := gin.New()
	api.NewHandlers(registry, nil, nil, nil, numeric.KindDecimal).RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func fastConfig(url string) Config {
	cfg := DefaultConfig(url)
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = 5 * time.Millisecond
	return cfg
}

func TestEvaluate(t *testing.T) {
	c := New(fastConfig(newNumericsServer(t).URL))
	ctx := context.Background()

	res, err := c.Evaluate(ctx, types.EvaluateRequest{Expression: "0.1 + 0.2"})
	require.NoError(t, err)
	assert.Equal(t, "0.3", res.Result)
	assert.Equal(t, "decimal", res.Kind)

	res, err = c.Evaluate(ctx, types.EvaluateRequest{
		Expression: "x * 2",
		Kind:       "double",
		Variables:  map[string]interface{}{"x": "1.5"},
	})
	require.NoError(t, err)
	assert.Equal(t, "3", res.Result)
	assert.Equal(t, []string{"x"}, res.Variables)

	_, err = c.Evaluate(ctx, types.EvaluateRequest{Expression: "1 / 0"})
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusBadRequest, remote.Status)
	assert.Equal(t, "DivisionByZeroError", remote.Type)

	// Rejected input does not count against the server.
	assert.Equal(t, resilience.StateClosed, c.BreakerState())
}

func TestConvertAndExecute(t *testing.T) {
	c := New(fastConfig(newNumericsServer(t).URL))
	ctx := context.Background()

	conv, err := c.Convert(ctx, types.ConvertRequest{Value: "1+2i", From: "complex", To: "double", Lossy: true})
	require.NoError(t, err)
	assert.Equal(t, "1", conv.Result)
	assert.False(t, conv.Exact)
	assert.NotEmpty(t, conv.Warning)

	data, err := c.Execute(ctx, "math.format", map[string]interface{}{"x": "12345.678", "style": "engineering"})
	require.NoError(t, err)
	assert.Equal(t, "12.345678e+3", data["result"])

	_, err = c.Execute(ctx, "math.sqrt", map[string]interface{}{"x": "abc"})
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "ParseError", remote.Type)

	health, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", health["status"])
}

func TestRetriesServerErrors(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result": "4.75", "kind": "decimal"}`))
	}))
	defer srv.Close()

	c := New(fastConfig(srv.URL))
	res, err := c.Evaluate(context.Background(), types.EvaluateRequest{Expression: "3.50 + 1.25"})
	require.NoError(t, err)
	assert.Equal(t, "4.75", res.Result)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestBreakerOpensOnServerFailures(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := fastConfig(srv.URL)
	cfg.RetryMax = 0
	cfg.TripAfter = 2
	c := New(cfg)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := c.Evaluate(ctx, types.EvaluateRequest{Expression: "1"})
		var remote *RemoteError
		require.ErrorAs(t, err, &remote)
		assert.Equal(t, http.StatusInternalServerError, remote.Status)
	}
	assert.Equal(t, resilience.StateOpen, c.BreakerState())

	_, err := c.Evaluate(ctx, types.EvaluateRequest{Expression: "1"})
	assert.True(t, errors.Is(err, resilience.ErrCircuitOpen))
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestCancelledContext(t *testing.T) {
	c := New(fastConfig(newNumericsServer(t).URL))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Evaluate(ctx, types.EvaluateRequest{Expression: "1"})
	assert.Error(t, err)
}
