// Package mock is a deterministic TextGenerator for local development and tests.
package mock

import (
	"context"
	_ "embed"
	"log/slog"
	"sync"

	"nutriplan"
)

//go:embed plan.json
var cannedPlan string

// CannedPlan returns the embedded week plan JSON.
func CannedPlan() string {
	return cannedPlan
}

// FencedPlan returns the embedded plan wrapped in a json code fence, the way
// chat models commonly answer.
func FencedPlan() string {
	return "```json\n" + cannedPlan + "```"
}

// Client replays queued responses and then falls back to Default.
type Client struct {
	mu        sync.Mutex
	Default   string
	Err       error
	responses []string
	requests  []nutriplan.GenerationRequest
}

func NewClient() *Client {
	return &Client{Default: FencedPlan()}
}

// NewClientWithResponses queues responses returned in order.
func NewClientWithResponses(responses ...string) *Client {
	c := NewClient()
	c.responses = responses
	return c
}

// NewClientWithError returns a client whose every call fails with err.
func NewClientWithError(err error) *Client {
	c := NewClient()
	c.Err = err
	return c
}

func (c *Client) Generate(ctx context.Context, req nutriplan.GenerationRequest) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	slog.Info("LLM_CLIENT: Invoked", "provider", "mock", "messages_len", len(req.Messages))
	c.requests = append(c.requests, req)

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.Err != nil {
		return "", c.Err
	}
	if len(c.responses) > 0 {
		out := c.responses[0]
		c.responses = c.responses[1:]
		return out, nil
	}
	return c.Default, nil
}

// Requests returns a copy of every request received so far.
func (c *Client) Requests() []nutriplan.GenerationRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]nutriplan.GenerationRequest(nil), c.requests...)
}

func (c *Client) ModelID() string {
	return "mock"
}
