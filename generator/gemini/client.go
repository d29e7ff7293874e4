package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"nutriplan"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModelID = "gemini-1.5-flash"

var (
	ErrNoContent = errors.New("no content generated")
	ErrBlocked   = errors.New("response blocked by Gemini safety settings")
)

// settings is the per-request model configuration.
type settings struct {
	model       string
	temperature float32
	maxTokens   int32
	topP        float32
	system      string
	jsonOutput  bool
}

type backend interface {
	send(ctx context.Context, s settings, history []*genai.Content, msg string) (*genai.GenerateContentResponse, error)
}

type sdkBackend struct {
	client *genai.Client
}

func (b *sdkBackend) send(ctx context.Context, s settings, history []*genai.Content, msg string) (*genai.GenerateContentResponse, error) {
	model := b.client.GenerativeModel(s.model)
	model.SetTemperature(s.temperature)
	model.SetMaxOutputTokens(s.maxTokens)
	model.SetTopP(s.topP)
	if s.system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(s.system)}}
	}
	if s.jsonOutput {
		model.ResponseMIMEType = "application/json"
	}

	cs := model.StartChat()
	cs.History = history
	return cs.SendMessage(ctx, genai.Text(msg))
}

type Options struct {
	APIKey  string
	ModelID string
	TopP    float32
}

type Client struct {
	backend backend
	closer  func() error
	modelID string
	topP    float32
}

// NewClient creates a Gemini API client.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c := newClient(&sdkBackend{client: client}, opts)
	c.closer = client.Close
	return c, nil
}

func newClient(b backend, opts Options) *Client {
	if opts.ModelID == "" {
		opts.ModelID = defaultModelID
	}
	if opts.TopP == 0 {
		opts.TopP = 0.9
	}
	return &Client{backend: b, modelID: opts.ModelID, topP: opts.TopP, closer: func() error { return nil }}
}

// Generate sends the final user message with earlier turns as chat history.
func (c *Client) Generate(ctx context.Context, req nutriplan.GenerationRequest) (string, error) {
	slog.Info("LLM_CLIENT: Invoked", "provider", "gemini", "messages_len", len(req.Messages))

	var system []string
	var turns []nutriplan.Message
	for _, m := range req.Messages {
		if m.Role == "system" {
			system = append(system, m.Content)
			continue
		}
		turns = append(turns, m)
	}
	if len(turns) == 0 || turns[len(turns)-1].Role == "assistant" {
		return "", fmt.Errorf("gemini: request must end with a user message")
	}

	history := make([]*genai.Content, 0, len(turns)-1)
	for _, m := range turns[:len(turns)-1] {
		role := "user"
		if m.Role == "assistant" {
			role = "model"
		}
		history = append(history, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Content)}})
	}

	resp, err := c.backend.send(ctx, settings{
		model:       c.modelID,
		temperature: req.Temperature,
		maxTokens:   req.MaxTokens,
		topP:        c.topP,
		system:      strings.Join(system, "\n\n"),
		jsonOutput:  req.Schema != nil,
	}, history, turns[len(turns)-1].Content)
	if err != nil {
		slog.Error("LLM_CLIENT: Gemini invoke failed", "error", err, "model", c.modelID)
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return textFromResponse(resp)
}

func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrNoContent
	}
	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonSafety {
		return "", ErrBlocked
	}
	if cand.FinishReason == genai.FinishReasonMaxTokens {
		slog.Warn("LLM_CLIENT: Gemini hit max output tokens; completion is likely truncated")
	}
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", ErrNoContent
	}

	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("generated content is not text")
	}
	return b.String(), nil
}

func (c *Client) ModelID() string {
	return c.modelID
}

// Close closes the underlying Gemini client.
func (c *Client) Close() error {
	return c.closer()
}
