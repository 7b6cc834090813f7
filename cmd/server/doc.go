// Package main is the entry point for the numerics HTTP service.
//
// The server exposes the math tool registry over JSON: expression
// evaluation, conversion between DOUBLE, DECIMAL and COMPLEX, and every
// arithmetic, statistics and special-function tool. The same calls are
// available frame by frame on the /stream WebSocket. Responses are gzipped
// for clients that accept it.
//
// Configuration is layered: defaults, then the file named by
// NUMERICS_CONFIG (yaml, toml or json), then environment variables, then
// the flags below.
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -kind decimal
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
