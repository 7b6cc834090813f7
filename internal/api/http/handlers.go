package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/GriffinCanCode/numerics/internal/api/middleware"
	"github.com/GriffinCanCode/numerics/internal/infrastructure/logging"
	"github.com/GriffinCanCode/numerics/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/numerics/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/numerics/internal/service"
	"github.com/GriffinCanCode/numerics/internal/types"
	"github.com/GriffinCanCode/numerics/pkg/numeric"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Version is reported by /health.
const Version = "1.0.0"

// Handlers contains HTTP request handlers
type Handlers struct {
	registry *service.Registry
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer
	logger   *logging.Logger
	kind     numeric.Kind
}

func init() {
	// Numbers inside params stay json.Number so decimal digits survive.
	binding.EnableDecoderUseNumber = true
}

// NewHandlers creates handlers over a registry. metrics and tracer may be
// nil. kind labels tools called without an explicit kind.
func NewHandlers(registry *service.Registry, metrics *monitoring.Metrics, tracer *tracing.Tracer, logger *logging.Logger, kind numeric.Kind) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		registry: registry,
		metrics:  metrics,
		tracer:   tracer,
		logger:   logger,
		kind:     kind,
	}
}

// RegisterRoutes mounts every JSON endpoint on r.
func (h *Handlers) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.GET("/metrics/summary", h.MetricsSummary)

	services := r.Group("/services")
	services.GET("", h.ListServices)
	services.POST("/discover", h.DiscoverServices)
	services.POST("/execute", h.ExecuteService)

	r.POST("/evaluate", h.Evaluate)
	r.POST("/convert", h.Convert)
}

func badRequest(c *gin.Context, msg, errorType string) {
	c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: msg, ErrorType: errorType})
}

// Health returns service health
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":   "healthy",
		"version":  Version,
		"services": h.registry.Stats()["total_services"],
	}
	if h.metrics != nil {
		body["uptime_seconds"] = h.metrics.Snapshot().UptimeSeconds
	}
	c.JSON(http.StatusOK, body)
}

// ListServices lists registered services, optionally by category
func (h *Handlers) ListServices(c *gin.Context) {
	var category *types.Category
	if s := c.Query("category"); s != "" {
		cat := types.Category(s)
		if cat != types.CategoryMath && cat != types.CategoryExpression {
			badRequest(c, "unknown category: "+s, "InvalidParamsError")
			return
		}
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

// DiscoverServices finds services relevant to a free-text query
func (h *Handlers) DiscoverServices(c *gin.Context) {
	var req types.DiscoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error(), "InvalidParamsError")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":    req.Query,
		"services": h.registry.Discover(req.Query, req.Limit),
	})
}

// ExecuteService runs a tool and returns its Result; tool-level failures
// still answer 200 with success false.
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error(), "InvalidParamsError")
		return
	}

	result, err := h.execute(c, req.ToolID, req.Params)
	if err != nil {
		h.registryError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Evaluate evaluates an expression
func (h *Handlers) Evaluate(c *gin.Context) {
	var req types.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error(), "InvalidParamsError")
		return
	}

	h.respond(c, "math.evaluate", req.Params())
}

// Convert converts a value between kinds
func (h *Handlers) Convert(c *gin.Context) {
	var req types.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error(), "InvalidParamsError")
		return
	}

	h.respond(c, "math.convert", req.Params())
}

// MetricsSummary returns request and tool totals as JSON
func (h *Handlers) MetricsSummary(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{Error: "metrics disabled"})
		return
	}
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}

// respond executes a tool and maps a failed Result to 400.
func (h *Handlers) respond(c *gin.Context, toolID string, params map[string]interface{}) {
	result, err := h.execute(c, toolID, params)
	if err != nil {
		h.registryError(c, err)
		return
	}
	if !result.Success {
		msg := "execution failed"
		if result.Error != nil {
			msg = *result.Error
		}
		badRequest(c, msg, result.ErrorType())
		return
	}
	c.JSON(http.StatusOK, result.Data)
}

func (h *Handlers) execute(c *gin.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	appCtx := &types.Context{
		RequestID: middleware.GetRequestID(c),
		ClientIP:  c.ClientIP(),
	}
	return h.Run(c.Request.Context(), appCtx, toolID, params)
}

// Run executes one tool inside a span, recording metrics and a log line.
// The stream handler shares it so both transports report alike.
func (h *Handlers) Run(ctx context.Context, appCtx *types.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	kind := h.kind.String()
	if s, ok := params["kind"].(string); ok && s != "" {
		if k, err := numeric.ParseKind(s); err == nil {
			kind = k.String()
		}
	}

	span, ctx := h.tracer.StartSpan(ctx, toolID)
	span.SetTag("kind", kind)
	span.SetTag("request_id", appCtx.RequestID)

	timer := monitoring.NewTimer(h.metrics, toolID, kind)
	result, err := h.registry.Execute(ctx, toolID, params, appCtx)

	errorType := ""
	switch {
	case err != nil:
		errorType = "RegistryError"
	case !result.Success:
		errorType = result.ErrorType()
		if errorType == "" {
			errorType = "Error"
		}
	}
	elapsed := timer.Stop(errorType)
	if errorType != "" {
		span.SetTag("error_type", errorType)
	}
	if err != nil {
		span.SetError(err)
	}
	span.Finish()
	h.tracer.Submit(span)
	h.logger.ToolCall(appCtx.RequestID, toolID, kind, elapsed, errorType == "", errorType)

	return result, err
}

// RegistryErrorType classifies an error returned by Run.
func RegistryErrorType(err error) (status int, errorType string) {
	switch {
	case errors.Is(err, service.ErrServiceNotFound):
		return http.StatusNotFound, "NotFoundError"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout, ""
	default:
		return http.StatusBadRequest, "InvalidParamsError"
	}
}

func (h *Handlers) registryError(c *gin.Context, err error) {
	status, errorType := RegistryErrorType(err)
	c.JSON(status, types.ErrorResponse{Error: err.Error(), ErrorType: errorType})
}
