package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/numerics/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/numerics/internal/types"
)

// Config tunes the remote client.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// RateLimit caps requests per second; zero means unlimited.
	RateLimit float64
	// TripAfter opens the breaker after this many consecutive transport
	// or server failures.
	TripAfter uint32
	// CoolDown is how long the breaker stays open.
	CoolDown time.Duration
}

// DefaultConfig returns settings suited to an interactive CLI.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:      baseURL,
		Timeout:      30 * time.Second,
		RetryMax:     3,
		RetryWaitMin: 200 * time.Millisecond,
		RetryWaitMax: 5 * time.Second,
		TripAfter:    5,
		CoolDown:     30 * time.Second,
	}
}

// Client calls a numerics server over HTTP. Retries happen in the
// transport; the breaker sees one outcome per call.
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
}

// RemoteError is an error the server answered with a status code.
type RemoteError struct {
	Status  int
	Type    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// EvaluateResponse is the body of a successful /evaluate call.
type EvaluateResponse struct {
	Result     string   `json:"result"`
	Kind       string   `json:"kind"`
	Expression string   `json:"expression"`
	Variables  []string `json:"variables"`
}

// ConvertResponse is the body of a successful /convert call.
type ConvertResponse struct {
	Result  string `json:"result"`
	Kind    string `json:"kind"`
	Exact   bool   `json:"exact"`
	Warning string `json:"warning,omitempty"`
}

// New creates a client for the server at cfg.BaseURL.
func New(cfg Config) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.Logger = nil // Disable logging
	// Hand the final response back instead of a "giving up" error so the
	// server's error body still reaches the caller.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	restyClient := resty.NewWithClient(retryClient.StandardClient()).
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", "numcalc/1.0").
		SetHeader("Accept", "application/json")

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	breaker := resilience.New("numerics-remote", resilience.Settings{
		Timeout: cfg.CoolDown,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return cfg.TripAfter > 0 && counts.ConsecutiveFailures >= cfg.TripAfter
		},
		// A 4xx is the server rejecting the input, not the server failing.
		IsSuccessful: func(err error) bool {
			var remote *RemoteError
			return err == nil || errors.As(err, &remote) && remote.Status < http.StatusInternalServerError
		},
	})

	return &Client{
		resty:   restyClient,
		limiter: rate.NewLimiter(limit, 1),
		breaker: breaker,
	}
}

// Evaluate evaluates an expression remotely.
func (c *Client) Evaluate(ctx context.Context, req types.EvaluateRequest) (*EvaluateResponse, error) {
	var out EvaluateResponse
	if err := c.call(ctx, http.MethodPost, "/evaluate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Convert converts a value remotely.
func (c *Client) Convert(ctx context.Context, req types.ConvertRequest) (*ConvertResponse, error) {
	var out ConvertResponse
	if err := c.call(ctx, http.MethodPost, "/convert", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Execute runs any registered tool. A tool-level failure comes back as a
// RemoteError carrying the tool's error type.
func (c *Client) Execute(ctx context.Context, toolID string, params map[string]interface{}) (map[string]interface{}, error) {
	var out types.Result
	req := types.ExecuteRequest{ToolID: toolID, Params: params}
	if err := c.call(ctx, http.MethodPost, "/services/execute", req, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		msg := "execution failed"
		if out.Error != nil {
			msg = *out.Error
		}
		return nil, &RemoteError{Status: http.StatusOK, Type: out.ErrorType(), Message: msg}
	}
	return out.Data, nil
}

// Health reports the server status.
func (c *Client) Health(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.call(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BreakerState exposes the breaker for diagnostics.
func (c *Client) BreakerState() resilience.State {
	return c.breaker.State()
}

func (c *Client) call(ctx context.Context, method, path string, body, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit error: %w", err)
	}

	err := c.breaker.Execute(func() error {
		var apiErr types.ErrorResponse
		req := c.resty.R().SetContext(ctx).SetResult(out).SetError(&apiErr)
		if body != nil {
			req.SetBody(body)
		}

		resp, err := req.Execute(method, path)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		if resp.IsError() {
			msg := apiErr.Error
			if msg == "" {
				msg = resp.Status()
			}
			return &RemoteError{Status: resp.StatusCode(), Type: apiErr.ErrorType, Message: msg}
		}
		return nil
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return fmt.Errorf("numerics server unavailable: %w", err)
	}
	return err
}
