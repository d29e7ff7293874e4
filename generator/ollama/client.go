package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"nutriplan"
)

type options struct {
	Temperature   float32 `json:"temperature,omitempty"`
	TopP          float32 `json:"top_p,omitempty"`
	RepeatPenalty float64 `json:"repeat_penalty,omitempty"`
	NumCtx        int     `json:"num_ctx,omitempty"`
	NumPredict    int32   `json:"num_predict,omitempty"`
}

type Client struct {
	endpoint   string
	model      string
	httpClient nutriplan.HTTPClient
	options    options
}

type ClientOpts struct {
	BaseEndpoint string
	ModelID      string
	TopP         float32
	HTTPClient   nutriplan.HTTPClient
}

func NewClient(opts ClientOpts) (*Client, error) {
	if strings.TrimSpace(opts.ModelID) == "" {
		return nil, fmt.Errorf("ollama: model id is required")
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.TopP == 0 {
		opts.TopP = 0.9
	}

	return &Client{
		model:      opts.ModelID,
		httpClient: opts.HTTPClient,
		endpoint:   strings.TrimRight(opts.BaseEndpoint, "/") + "/api/chat",
		options: options{
			TopP:          opts.TopP,
			RepeatPenalty: 1.05,
			NumCtx:        16384, // room for the prompt plus a full week of meals
		},
	}, nil
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireResponse struct {
	Message    wireMessage `json:"message"`
	DoneReason string      `json:"done_reason,omitempty"`
}

type wireRequest struct {
	Model    string          `json:"model"`
	Messages []wireMessage   `json:"messages"`
	Stream   bool            `json:"stream"`
	Format   json.RawMessage `json:"format,omitempty"`
	Options  options         `json:"options"`
}

// Generate posts a non-streaming chat request. When the request carries a
// schema it is sent as the structured output format.
func (c *Client) Generate(ctx context.Context, req nutriplan.GenerationRequest) (string, error) {
	slog.Info("LLM_CLIENT: Invoked", "provider", "ollama", "messages_len", len(req.Messages))

	body, err := c.buildRequest(req)
	if err != nil {
		return "", err
	}
	reqBytes, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(reqBytes))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("LLM_CLIENT: %s: %s", resp.Status, string(respBody))
	}

	var wr wireResponse
	if err := json.Unmarshal(respBody, &wr); err != nil {
		slog.Warn("LLM_CLIENT: decode failed, returning raw", "err", err, "body_len", len(respBody))
		return string(respBody), nil
	}
	if wr.DoneReason == "length" {
		slog.Warn("LLM_CLIENT: Model hit num_predict limit; completion is likely truncated")
	}

	return wr.Message.Content, nil
}

func (c *Client) buildRequest(req nutriplan.GenerationRequest) (wireRequest, error) {
	msgs := make([]wireMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case "system", "user", "assistant":
			msgs = append(msgs, wireMessage{Role: m.Role, Content: m.Content})
		default:
			slog.Warn("ollama: unknown role, coercing to user", "role", m.Role)
			msgs = append(msgs, wireMessage{Role: "user", Content: m.Content})
		}
	}

	opts := c.options
	opts.Temperature = req.Temperature
	opts.NumPredict = req.MaxTokens

	wr := wireRequest{
		Model:    c.model,
		Messages: msgs,
		Stream:   false,
		Options:  opts,
	}

	if req.Schema != nil {
		format, err := json.Marshal(req.Schema)
		if err != nil {
			return wireRequest{}, fmt.Errorf("ollama: failed to marshal output schema: %w", err)
		}
		wr.Format = format
	}
	return wr, nil
}

func (c *Client) ModelID() string {
	return c.model
}
