package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		reqSize := c.Request.ContentLength
		if reqSize < 0 {
			reqSize = 0
		}

		c.Next()

		// Label by route template so unmatched paths cannot explode cardinality.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		respSize := int64(c.Writer.Size())
		if respSize < 0 {
			respSize = 0
		}

		metrics.RecordHTTPRequest(method, path, status, time.Since(start), reqSize, respSize)
	}
}

// Timer measures one tool call
type Timer struct {
	start   time.Time
	metrics *Metrics
	tool    string
	kind    string
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics, tool, kind string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		tool:    tool,
		kind:    kind,
	}
}

// Stop records the call; errorType is empty on success. It returns the
// elapsed time for logging.
func (t *Timer) Stop(errorType string) time.Duration {
	elapsed := time.Since(t.start)
	if t.metrics != nil {
		t.metrics.RecordToolCall(t.tool, t.kind, errorType, elapsed)
	}
	return elapsed
}
