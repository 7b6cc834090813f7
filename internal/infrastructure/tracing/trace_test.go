package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStartSpan(t *testing.T) {
	tracer := New("test", zap.NewNop())
	defer tracer.Close()

	root, ctx := tracer.StartSpan(context.Background(), "root")
	require.NotEmpty(t, root.TraceID)
	assert.Empty(t, root.ParentID)
	assert.Equal(t, root.TraceID, GetTraceID(ctx))
	assert.Equal(t, root.SpanID, GetSpanID(ctx))

	child, _ := tracer.StartSpan(ctx, "child")
	assert.Equal(t, root.TraceID, child.TraceID)
	assert.Equal(t, root.SpanID, child.ParentID)
	assert.NotEqual(t, root.SpanID, child.SpanID)
}

func TestSubmitLogsSpans(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tracer := New("test", zap.New(core))

	ok, _ := tracer.StartSpan(context.Background(), "math.add")
	ok.SetTag("kind", "decimal")
	ok.Finish()
	tracer.Submit(ok)

	failed, _ := tracer.StartSpan(context.Background(), "math.divide")
	failed.SetError(errors.New("division by zero"))
	failed.Finish()
	tracer.Submit(failed)

	tracer.Close()

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "decimal", entries[0].ContextMap()["kind"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "math.divide", entries[1].ContextMap()["operation"])
}

func TestNilTracer(t *testing.T) {
	var tracer *Tracer
	span, ctx := tracer.StartSpan(context.Background(), "noop")
	assert.Nil(t, span)
	assert.Empty(t, GetTraceID(ctx))

	assert.NotPanics(t, func() {
		span.SetTag("k", "v")
		span.SetError(errors.New("x"))
		span.Finish()
		tracer.Submit(span)
		tracer.Close()
	})
}

func TestHTTPMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tracer := New("test", zap.NewNop())
	defer tracer.Close()

	var seen TraceID
	r := gin.New()
	r.Use(HTTPMiddleware(tracer))
	r.GET("/health", func(c *gin.Context) {
		seen = GetTraceID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	t.Run("Continues incoming trace", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(TraceHeader, "trace-123")
		req.Header.Set(SpanHeader, "span-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, TraceID("trace-123"), seen)
		assert.Equal(t, "trace-123", w.Header().Get(TraceHeader))
		assert.NotEqual(t, "span-1", w.Header().Get(SpanHeader))
	})

	t.Run("Starts a new trace", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.NotEmpty(t, w.Header().Get(TraceHeader))
		assert.Equal(t, TraceID(w.Header().Get(TraceHeader)), seen)
	})
}

func TestFormatTrace(t *testing.T) {
	assert.Equal(t, "[trace:a span:b]", FormatTrace("a", "b"))
}
