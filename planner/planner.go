// Package planner requests week plans from a text generation model, repairs
// or replaces what comes back, and relays freeform chat.
package planner

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"nutriplan"
)

const (
	defaultPlanTemperature = 0.3
	defaultPlanMaxTokens   = 3000
	defaultChatTemperature = 0.7
	defaultChatMaxTokens   = 1000
)

type Config struct {
	ModelID         string
	PlanTemperature float32
	PlanMaxTokens   int32
	ChatTemperature float32
	ChatMaxTokens   int32
	Detailed        bool
}

// ConfigFrom maps environment configuration onto planner settings.
func ConfigFrom(mc nutriplan.ModelConfig, pc nutriplan.PlannerConfig) Config {
	return Config{
		ModelID:         mc.ModelID,
		PlanTemperature: mc.PlanTemperature,
		PlanMaxTokens:   mc.PlanMaxTokens,
		ChatTemperature: mc.ChatTemperature,
		ChatMaxTokens:   mc.ChatMaxTokens,
		Detailed:        pc.DetailedPlan,
	}
}

type Planner struct {
	gen    nutriplan.TextGenerator
	cfg    Config
	logger nutriplan.GenerationLogger
}

func New(gen nutriplan.TextGenerator, cfg Config, logger nutriplan.GenerationLogger) *Planner {
	if cfg.PlanTemperature == 0 {
		cfg.PlanTemperature = defaultPlanTemperature
	}
	if cfg.PlanMaxTokens == 0 {
		cfg.PlanMaxTokens = defaultPlanMaxTokens
	}
	if cfg.ChatTemperature == 0 {
		cfg.ChatTemperature = defaultChatTemperature
	}
	if cfg.ChatMaxTokens == 0 {
		cfg.ChatMaxTokens = defaultChatMaxTokens
	}
	if logger == nil {
		logger = nutriplan.NewNoOpGenerationLogger()
	}
	return &Planner{gen: gen, cfg: cfg, logger: logger}
}

// PlanRequest builds the generation request for a profile.
func (p *Planner) PlanRequest(profile nutriplan.UserProfile) nutriplan.GenerationRequest {
	return nutriplan.GenerationRequest{
		Messages: []nutriplan.Message{{
			Role:    "user",
			Content: BuildPlanPrompt(profile, PromptOptions{Detailed: p.cfg.Detailed}),
		}},
		Temperature: p.cfg.PlanTemperature,
		MaxTokens:   p.cfg.PlanMaxTokens,
		Schema:      OutputSchema(),
	}
}

// RequestPlan makes one model call with no retry. Failures are returned as *TransportError.
func (p *Planner) RequestPlan(ctx context.Context, profile nutriplan.UserProfile) (string, error) {
	req := p.PlanRequest(profile)
	raw, err := p.gen.Generate(ctx, req)
	if err != nil {
		return "", &TransportError{Op: opPlan, Err: err}
	}
	return raw, nil
}

// Generate runs request, parse and fallback for one profile. It never returns
// an error; failures are described by the result.
func (p *Planner) Generate(ctx context.Context, profile nutriplan.UserProfile) Result {
	start := time.Now()
	slog.Info("PLANNER: Requesting plan", "diet_type", profile.DietType, "detailed", p.cfg.Detailed)

	attempt := nutriplan.AttemptLog{
		Kind:      "plan",
		Timestamp: start,
		Model:     p.cfg.ModelID,
		Prompt:    p.PlanRequest(profile).Messages[0].Content,
	}

	var res Result
	raw, err := p.RequestPlan(ctx, profile)
	if err != nil {
		slog.Error("PLANNER: Model invocation failed", "error", err)
		res = failed(KindTransport, err.Error(), "")
	} else {
		res = p.Interpret(profile, raw)
	}

	attempt.Response = raw
	attempt.State = string(res.State)
	attempt.DurationMS = time.Since(start).Milliseconds()
	if res.Error != nil {
		attempt.Error = res.Error.Message
	} else if res.Warning != nil {
		attempt.Error = res.Warning.Message
	}
	if lerr := p.logger.LogAttempt(attempt); lerr != nil {
		slog.Error("PLANNER: Failed to log generation attempt", "error", lerr)
	}

	slog.Info("PLANNER: Plan generated", "state", res.State, "duration_ms", attempt.DurationMS)
	return res
}

// Interpret classifies a raw completion into a well-formed, fallback or failed result.
func (p *Planner) Interpret(profile nutriplan.UserProfile, raw string) Result {
	plan, err := Parse(raw)
	if err == nil {
		if missing := plan.MissingDays(); len(missing) > 0 {
			slog.Warn("PLANNER: Plan is missing days", "missing", missing)
		}
		return Result{State: StateWellFormed, Plan: &plan}
	}

	if errors.Is(err, ErrNoJSONObject) {
		slog.Warn("PLANNER: No JSON object in completion", "raw_len", len(raw))
		return failed(KindSchema, err.Error(), raw)
	}

	slog.Warn("PLANNER: Completion failed to decode; building fallback", "error", err)
	fb := BuildFallback(profile, raw, err.Error())
	return Result{
		State:   StateFallback,
		Plan:    &fb,
		Warning: &GenerationError{Kind: KindParse, Message: err.Error(), RawResponse: Truncate(raw)},
	}
}

// Chat relays a freeform conversation with the profile as system context.
func (p *Planner) Chat(ctx context.Context, profile nutriplan.UserProfile, history []nutriplan.Message) (string, error) {
	start := time.Now()
	msgs := make([]nutriplan.Message, 0, len(history)+1)
	msgs = append(msgs, nutriplan.Message{Role: "system", Content: ChatSystemPrompt(profile)})
	for _, m := range history {
		if m.Role == "system" {
			continue
		}
		msgs = append(msgs, m)
	}

	reply, err := p.gen.Generate(ctx, nutriplan.GenerationRequest{
		Messages:    msgs,
		Temperature: p.cfg.ChatTemperature,
		MaxTokens:   p.cfg.ChatMaxTokens,
	})

	attempt := nutriplan.AttemptLog{
		Kind:       "chat",
		Timestamp:  start,
		Model:      p.cfg.ModelID,
		Response:   reply,
		DurationMS: time.Since(start).Milliseconds(),
	}
	if len(history) > 0 {
		attempt.Prompt = history[len(history)-1].Content
	}
	if err != nil {
		attempt.Error = err.Error()
	}
	if lerr := p.logger.LogAttempt(attempt); lerr != nil {
		slog.Error("PLANNER: Failed to log chat attempt", "error", lerr)
	}

	if err != nil {
		return "", &TransportError{Op: opChat, Err: err}
	}
	return reply, nil
}
