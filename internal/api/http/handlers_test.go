package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/GriffinCanCode/numerics/internal/api/middleware"
	"github.com/GriffinCanCode/numerics/internal/infrastructure/logging"
	"github.com/GriffinCanCode/numerics/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/numerics/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/numerics/internal/providers/math"
	"github.com/GriffinCanCode/numerics/internal/service"
	"github.com/GriffinCanCode/numerics/internal/types"
	"github.com/GriffinCanCode/numerics/pkg/numeric"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (*gin.Engine, *monitoring.Metrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := service.NewRegistry()
	require.NoError(t, registry.Register(math.NewProvider(nil, numeric.KindDecimal)))
	metrics := monitoring.NewMetrics()
	tracer := tracing.New("test", nil)
	t.Cleanup(tracer.Close)

	r := gin.New()
	r.Use(middleware.RequestID())
	NewHandlers(registry, metrics, tracer, logging.NewNop(), numeric.KindDecimal).RegisterRoutes(r)
	return r, metrics
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestNewHandlersConcurrently(t *testing.T) {
	assert.True(t, binding.EnableDecoderUseNumber)

	registry := service.NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			NewHandlers(registry, nil, nil, nil, numeric.KindDouble).RegisterRoutes(gin.New())
		}()
	}
	wg.Wait()
	assert.True(t, binding.EnableDecoderUseNumber)
}

func TestHealth(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, Version, body["version"])
	assert.Equal(t, float64(1), body["services"])
}

func TestListServices(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(t, r, http.MethodGet, "/services", nil)
	require.Equal(t, http.StatusOK, w.Code)
	services := decode(t, w)["services"].([]interface{})
	require.Len(t, services, 1)
	assert.Equal(t, "math", services[0].(map[string]interface{})["id"])

	w = do(t, r, http.MethodGet, "/services?category=expression", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode(t, w)["services"])

	w = do(t, r, http.MethodGet, "/services?category=weather", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDiscoverServices(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(t, r, http.MethodPost, "/services/discover", types.DiscoverRequest{Query: "math"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["services"])

	w = do(t, r, http.MethodPost, "/services/discover", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExecuteService(t *testing.T) {
	r, metrics := setupRouter(t)

	t.Run("Decimal addition keeps digits", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/services/execute", types.ExecuteRequest{
			ToolID: "math.add",
			Params: map[string]interface{}{"a": 0.1, "b": 0.2},
		})
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "0.3", data["result"])
		assert.Equal(t, "decimal", data["kind"])
	})

	t.Run("Tool failure is a result", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/services/execute", types.ExecuteRequest{
			ToolID: "math.divide",
			Params: map[string]interface{}{"a": 1, "b": 0},
		})
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "DivisionByZeroError", body["data"].(map[string]interface{})["error_type"])
	})

	t.Run("Unknown service", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/services/execute", types.ExecuteRequest{ToolID: "weather.today"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Malformed tool ID", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/services/execute", types.ExecuteRequest{ToolID: "nodot"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Missing tool ID", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/services/execute", map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	snap := metrics.Snapshot()
	assert.Equal(t, int64(4), snap.ToolCalls)
	assert.Equal(t, int64(3), snap.ToolFailures)
}

func TestEvaluate(t *testing.T) {
	r, _ := setupRouter(t)

	tests := []struct {
		name string
		req  types.EvaluateRequest
		want string
		kind string
	}{
		{
			name: "decimal with variables",
			req:  types.EvaluateRequest{Expression: "2 * x + 1", Variables: map[string]interface{}{"x": 3}},
			want: "7",
			kind: "decimal",
		},
		{
			name: "double",
			req:  types.EvaluateRequest{Expression: "0.1 + 0.2", Kind: "double"},
			want: "0.30000000000000004",
			kind: "double",
		},
		{
			name: "precision and rounding",
			req:  types.EvaluateRequest{Expression: "2 / 3", Precision: 5, Rounding: "down"},
			want: "0.66666",
			kind: "decimal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/evaluate", tt.req)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			body := decode(t, w)
			assert.Equal(t, tt.want, body["result"])
			assert.Equal(t, tt.kind, body["kind"])
		})
	}

	t.Run("Errors map to 400 with a type", func(t *testing.T) {
		cases := map[string]string{
			"1 +":   "SyntaxError",
			"y * 2": "UndefinedVariableError",
			"1 / 0": "DivisionByZeroError",
		}
		for expression, errorType := range cases {
			w := do(t, r, http.MethodPost, "/evaluate", types.EvaluateRequest{Expression: expression})
			require.Equal(t, http.StatusBadRequest, w.Code, expression)

			var resp types.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, errorType, resp.ErrorType, expression)
			assert.NotEmpty(t, resp.Error)
		}
	})
}

func TestConvert(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(t, r, http.MethodPost, "/convert", types.ConvertRequest{Value: "2.5", To: "complex"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "complex", body["kind"])
	assert.Equal(t, true, body["exact"])

	w = do(t, r, http.MethodPost, "/convert", types.ConvertRequest{Value: "1+2i", From: "complex", To: "double"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "LossyConversionError", resp.ErrorType)

	w = do(t, r, http.MethodPost, "/convert", types.ConvertRequest{Value: "1+2i", From: "complex", To: "double", Lossy: true})
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, "1", body["result"])
	assert.Equal(t, false, body["exact"])
	assert.NotEmpty(t, body["warning"])
}

func TestMetricsSummary(t *testing.T) {
	r, _ := setupRouter(t)
	do(t, r, http.MethodPost, "/evaluate", types.EvaluateRequest{Expression: "1 + 1"})

	w := do(t, r, http.MethodGet, "/metrics/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["tool_calls"])
}
