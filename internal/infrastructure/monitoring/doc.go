/*
Package monitoring provides Prometheus metrics for the numerics server.

# Metrics

- HTTP requests (count, latency, sizes) by method, route and status
- Tool calls and durations by tool and numeric kind
- Tool failures by tool, kind and error type
- Numeric failures by error type (DivisionByZeroError, ParseError, ...)
- Uptime

Each Metrics value owns a private registry.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "math.divide", "decimal")
	// ... execute tool ...
	timer.Stop(result.ErrorType())
*/
package monitoring
