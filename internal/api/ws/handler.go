package ws

import (
	"context"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	handlers "github.com/GriffinCanCode/numerics/internal/api/http"
	"github.com/GriffinCanCode/numerics/internal/api/middleware"
	"github.com/GriffinCanCode/numerics/internal/infrastructure/logging"
	"github.com/GriffinCanCode/numerics/internal/shared/id"
	"github.com/GriffinCanCode/numerics/internal/types"
)

// MaxMessageSize bounds one inbound frame.
const MaxMessageSize = 64 << 10

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS middleware governs browsers
	},
}

// Numbers stay json.Number so decimal digits survive decoding.
var codec = sonic.Config{UseNumber: true}.Froze()

// Runner executes one tool call. *handlers.Handlers satisfies it.
type Runner interface {
	Run(ctx context.Context, appCtx *types.Context, toolID string, params map[string]interface{}) (*types.Result, error)
}

// Handler manages evaluation stream connections
type Handler struct {
	runner Runner
	logger *logging.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(runner Runner, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{runner: runner, logger: logger}
}

// HandleConnection upgrades the request and answers frames in order until
// the client disconnects.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(MaxMessageSize)

	ctx := c.Request.Context()
	streamID := id.NewStreamID()
	log := h.logger.With(zap.Stringer("stream_id", streamID))
	log.Debug("Stream opened", zap.String("request_id", middleware.GetRequestID(c)))

	frames := 0
	defer func() { log.Debug("Stream closed", zap.Int("frames", frames)) }()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}
		frames++

		appCtx := &types.Context{
			RequestID: streamID.Frame(frames),
			ClientIP:  c.ClientIP(),
		}
		reply := h.handle(ctx, appCtx, data)
		if err := h.send(conn, reply); err != nil {
			log.Warn("WebSocket write error", zap.Error(err))
			return
		}
	}
}

func (h *Handler) handle(ctx context.Context, appCtx *types.Context, data []byte) types.StreamReply {
	var msg types.StreamMessage
	if err := codec.Unmarshal(data, &msg); err != nil {
		return errorReply("", "malformed message: "+err.Error(), "InvalidParamsError")
	}

	switch msg.Type {
	case "ping":
		return types.StreamReply{Type: "pong", ID: msg.ID}
	case "evaluate":
		if msg.Expression == "" {
			return errorReply(msg.ID, "expression is required", "InvalidParamsError")
		}
		return h.run(ctx, appCtx, msg.ID, "math.evaluate", msg.EvaluateRequest.Params(), false)
	case "convert":
		if msg.Value == nil || msg.To == "" {
			return errorReply(msg.ID, "value and to are required", "InvalidParamsError")
		}
		return h.run(ctx, appCtx, msg.ID, "math.convert", msg.ConvertRequest.Params(), false)
	case "execute":
		if msg.ToolID == "" {
			return errorReply(msg.ID, "tool_id is required", "InvalidParamsError")
		}
		return h.run(ctx, appCtx, msg.ID, msg.ToolID, msg.ExecuteRequest.Params, true)
	default:
		return errorReply(msg.ID, "unknown message type: "+msg.Type, "InvalidParamsError")
	}
}

// run executes a tool. raw replies carry the whole Result, as
// /services/execute does; otherwise a failed Result becomes an error frame.
func (h *Handler) run(ctx context.Context, appCtx *types.Context, id, toolID string, params map[string]interface{}, raw bool) types.StreamReply {
	result, err := h.runner.Run(ctx, appCtx, toolID, params)
	if err != nil {
		_, errorType := handlers.RegistryErrorType(err)
		return errorReply(id, err.Error(), errorType)
	}
	if raw {
		return types.StreamReply{Type: "result", ID: id, Data: result}
	}
	if !result.Success {
		msg := "execution failed"
		if result.Error != nil {
			msg = *result.Error
		}
		return errorReply(id, msg, result.ErrorType())
	}
	return types.StreamReply{Type: "result", ID: id, Data: result.Data}
}

func (h *Handler) send(conn *websocket.Conn, reply types.StreamReply) error {
	data, err := sonic.Marshal(reply)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

func errorReply(id, msg, errorType string) types.StreamReply {
	return types.StreamReply{Type: "error", ID: id, Error: msg, ErrorType: errorType}
}
