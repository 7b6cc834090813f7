// Package client is a resty-based client for the numerics HTTP API.
//
// Requests go through a rate limiter, then a circuit breaker, then a
// retryablehttp transport that retries connection errors, 429 and 5xx
// replies with backoff. Error bodies come back as *RemoteError carrying the
// server's error_type.
//
// Example Usage:
//
//	c := client.New(client.DefaultConfig("http://localhost:8000"))
//	res, err := c.Evaluate(ctx, types.EvaluateRequest{Expression: "0.1 + 0.2"})
package client
