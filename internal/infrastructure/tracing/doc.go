/*
Package tracing provides lightweight request tracing on top of zap.

Spans carry a trace ID shared by every operation of one request and a span
ID of their own. The HTTP middleware continues traces named by the
X-Trace-ID and X-Span-ID headers and echoes the IDs back. Tool executions
open child spans so one evaluation can be followed from request to result.

Finished spans are buffered (1000) and logged by a background collector;
when the buffer is full new spans are dropped with a warning.

# Usage

	tracer := tracing.New("numerics", logger.Logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "math.evaluate")
	span.SetTag("kind", "decimal")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

A nil *Tracer is valid and records nothing.
*/
package tracing
