package ws

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handlers "github.com/GriffinCanCode/numerics/internal/api/http"
	"github.com/GriffinCanCode/numerics/internal/api/middleware"
	"github.com/GriffinCanCode/numerics/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/numerics/internal/providers/math"
	"github.com/GriffinCanCode/numerics/internal/service"
	"github.com/GriffinCanCode/numerics/internal/types"
	"github.com/GriffinCanCode/numerics/pkg/numeric"
)

func dial(t *testing.T) (*websocket.Conn, *monitoring.Metrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := service.NewRegistry()
	require.NoError(t, registry.Register(math.NewProvider(nil, numeric.KindDecimal)))
	metrics := monitoring.NewMetrics()
	h := handlers.NewHandlers(registry, metrics, nil, nil, numeric.KindDecimal)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/stream", NewHandler(h, nil).HandleConnection)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/stream", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn, metrics
}

func roundTrip(t *testing.T, conn *websocket.Conn, frame string) types.StreamReply {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(frame)))
	var reply types.StreamReply
	require.NoError(t, conn.ReadJSON(&reply))
	return reply
}

func data(t *testing.T, reply types.StreamReply) map[string]interface{} {
	t.Helper()
	require.Equal(t, "result", reply.Type, reply.Error)
	m, ok := reply.Data.(map[string]interface{})
	require.True(t, ok, "data is %T", reply.Data)
	return m
}

func TestPing(t *testing.T) {
	conn, _ := dial(t)

	reply := roundTrip(t, conn, `{"type":"ping","id":"p1"}`)
	assert.Equal(t, "pong", reply.Type)
	assert.Equal(t, "p1", reply.ID)
}

func TestEvaluate(t *testing.T) {
	conn, metrics := dial(t)

	// Bare JSON numbers keep their decimal digits.
	reply := roundTrip(t, conn, `{"type":"evaluate","id":"1","expression":"x + 0.2","variables":{"x":0.1}}`)
	assert.Equal(t, "1", reply.ID)
	assert.Equal(t, "0.3", data(t, reply)["result"])

	reply = roundTrip(t, conn, `{"type":"evaluate","id":"2","expression":"0.1 + 0.2","kind":"double"}`)
	assert.Equal(t, "0.30000000000000004", data(t, reply)["result"])

	reply = roundTrip(t, conn, `{"type":"evaluate","id":"3","expression":"2 / 3","precision":5,"rounding":"down"}`)
	assert.Equal(t, "0.66666", data(t, reply)["result"])

	reply = roundTrip(t, conn, `{"type":"evaluate","id":"4","expression":"1 / 0"}`)
	assert.Equal(t, "error", reply.Type)
	assert.Equal(t, "4", reply.ID)
	assert.Equal(t, "DivisionByZeroError", reply.ErrorType)
	assert.NotEmpty(t, reply.Error)

	snap := metrics.Snapshot()
	assert.Equal(t, int64(4), snap.ToolCalls)
	assert.Equal(t, int64(1), snap.ToolFailures)
}

func TestConvert(t *testing.T) {
	conn, _ := dial(t)

	reply := roundTrip(t, conn, `{"type":"convert","id":"c1","value":"2.5","to":"complex"}`)
	out := data(t, reply)
	assert.Equal(t, "complex", out["kind"])
	assert.Equal(t, true, out["exact"])

	reply = roundTrip(t, conn, `{"type":"convert","id":"c2","value":"1+2i","from":"complex","to":"double"}`)
	assert.Equal(t, "error", reply.Type)
	assert.Equal(t, "LossyConversionError", reply.ErrorType)

	reply = roundTrip(t, conn, `{"type":"convert","id":"c3","value":"1+2i","from":"complex","to":"double","lossy":true}`)
	out = data(t, reply)
	assert.Equal(t, "1", out["result"])
	assert.Equal(t, false, out["exact"])
}

func TestExecute(t *testing.T) {
	conn, _ := dial(t)

	reply := roundTrip(t, conn, `{"type":"execute","id":"e1","tool_id":"math.add","params":{"numbers":["0.1","0.2"]}}`)
	result := data(t, reply)
	assert.Equal(t, true, result["success"])
	assert.Equal(t, "0.3", result["data"].(map[string]interface{})["result"])

	// Tool failures arrive as a result with success false.
	reply = roundTrip(t, conn, `{"type":"execute","id":"e2","tool_id":"math.divide","params":{"a":"1","b":"0"}}`)
	result = data(t, reply)
	assert.Equal(t, false, result["success"])

	reply = roundTrip(t, conn, `{"type":"execute","id":"e3","tool_id":"nope.tool"}`)
	assert.Equal(t, "error", reply.Type)
	assert.Equal(t, "NotFoundError", reply.ErrorType)
}

func TestInvalidFrames(t *testing.T) {
	conn, _ := dial(t)

	tests := []struct {
		name  string
		frame string
	}{
		{"malformed json", `{"type":`},
		{"unknown type", `{"type":"subscribe","id":"x"}`},
		{"missing expression", `{"type":"evaluate","id":"x"}`},
		{"missing target", `{"type":"convert","id":"x","value":"1"}`},
		{"missing tool", `{"type":"execute","id":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := roundTrip(t, conn, tt.frame)
			assert.Equal(t, "error", reply.Type)
			assert.Equal(t, "InvalidParamsError", reply.ErrorType)
		})
	}

	// The connection survives bad frames.
	reply := roundTrip(t, conn, `{"type":"ping"}`)
	assert.Equal(t, "pong", reply.Type)
}
