package types

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID string                 `json:"tool_id" binding:"required"`
	Params map[string]interface{} `json:"params"`
}

// DiscoverRequest asks the registry for services matching an intent
type DiscoverRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit"`
}

// EvaluateRequest evaluates an expression. Variables map names to numbers
// or numeric strings; empty fields fall back to the server defaults.
type EvaluateRequest struct {
	Expression string                 `json:"expression" binding:"required"`
	Kind       string                 `json:"kind"`
	Variables  map[string]interface{} `json:"variables"`
	Precision  uint32                 `json:"precision"`
	Rounding   string                 `json:"rounding"`
	Style      string                 `json:"style"`
}

// ConvertRequest converts a value between kinds
type ConvertRequest struct {
	Value interface{} `json:"value" binding:"required"`
	From  string      `json:"from"`
	To    string      `json:"to" binding:"required"`
	Lossy bool        `json:"lossy"`
}

// ErrorResponse is the body of every 4xx/5xx reply
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorType string `json:"error_type,omitempty"`
}

// Params maps the request onto math.evaluate parameters.
func (r EvaluateRequest) Params() map[string]interface{} {
	params := map[string]interface{}{"expression": r.Expression}
	setIf(params, "kind", r.Kind)
	setIf(params, "rounding", r.Rounding)
	setIf(params, "style", r.Style)
	if r.Precision != 0 {
		params["precision"] = int(r.Precision)
	}
	if r.Variables != nil {
		params["variables"] = r.Variables
	}
	return params
}

// Params maps the request onto math.convert parameters.
func (r ConvertRequest) Params() map[string]interface{} {
	params := map[string]interface{}{"x": r.Value, "to": r.To, "lossy": r.Lossy}
	setIf(params, "from", r.From)
	return params
}

// StreamMessage is one client frame on the evaluation stream. Type selects
// which embedded request applies: evaluate, convert, execute or ping.
type StreamMessage struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
	ExecuteRequest
	EvaluateRequest
	ConvertRequest
}

// StreamReply answers one StreamMessage, echoing its ID.
type StreamReply struct {
	Type      string      `json:"type"`
	ID        string      `json:"id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	ErrorType string      `json:"error_type,omitempty"`
}

func setIf(params map[string]interface{}, key, value string) {
	if value != "" {
		params[key] = value
	}
}
