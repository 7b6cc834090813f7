// Package ws serves the evaluation stream: a WebSocket on which clients send
// numeric requests and receive one reply per frame, in order.
//
// Message Types (Client → Server):
//   - evaluate: expression, kind, variables, precision, rounding, style
//   - convert: value, from, to, lossy
//   - execute: tool_id, params
//   - ping: keep-alive
//
// Message Types (Server → Client):
//   - result: data holds the tool output
//   - error: error and error_type describe the failure
//   - pong: reply to ping
//
// Every reply echoes the id of the frame it answers.
//
// Example Usage:
//
//	stream := ws.NewHandler(handlers, logger)
//	router.GET("/stream", stream.HandleConnection)
package ws
