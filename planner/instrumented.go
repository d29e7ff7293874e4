package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"nutriplan"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentedPlanner wraps a Planner with spans and generation metrics.
type InstrumentedPlanner struct {
	inner  *Planner
	tracer trace.Tracer

	generations     metric.Int64Counter
	fallbacks       metric.Int64Counter
	transportErrors metric.Int64Counter
	schemaErrors    metric.Int64Counter
	chats           metric.Int64Counter
	duration        metric.Float64Histogram
	completionSize  metric.Int64Histogram
}

func NewInstrumentedPlanner(inner *Planner, tracer trace.Tracer, meter metric.Meter) (*InstrumentedPlanner, error) {
	ip := &InstrumentedPlanner{inner: inner, tracer: tracer}

	var err error
	if ip.generations, err = meter.Int64Counter("plan_generations_total",
		metric.WithDescription("Total number of plan generation attempts by outcome state")); err != nil {
		return nil, fmt.Errorf("plan_generations_total: %w", err)
	}
	if ip.fallbacks, err = meter.Int64Counter("plan_fallbacks_total",
		metric.WithDescription("Total number of generations that used the fallback plan")); err != nil {
		return nil, fmt.Errorf("plan_fallbacks_total: %w", err)
	}
	if ip.transportErrors, err = meter.Int64Counter("plan_transport_errors_total",
		metric.WithDescription("Total number of failed model invocations")); err != nil {
		return nil, fmt.Errorf("plan_transport_errors_total: %w", err)
	}
	if ip.schemaErrors, err = meter.Int64Counter("plan_schema_errors_total",
		metric.WithDescription("Total number of completions without a JSON object")); err != nil {
		return nil, fmt.Errorf("plan_schema_errors_total: %w", err)
	}
	if ip.chats, err = meter.Int64Counter("chat_requests_total",
		metric.WithDescription("Total number of freeform chat requests")); err != nil {
		return nil, fmt.Errorf("chat_requests_total: %w", err)
	}
	if ip.duration, err = meter.Float64Histogram("plan_generation_duration_seconds",
		metric.WithDescription("Duration of plan generation including parsing in seconds")); err != nil {
		return nil, fmt.Errorf("plan_generation_duration_seconds: %w", err)
	}
	if ip.completionSize, err = meter.Int64Histogram("plan_completion_size_bytes",
		metric.WithDescription("Size of the raw completion diagnostic kept for failed or fallback plans")); err != nil {
		return nil, fmt.Errorf("plan_completion_size_bytes: %w", err)
	}
	return ip, nil
}

func (ip *InstrumentedPlanner) Generate(ctx context.Context, profile nutriplan.UserProfile) Result {
	ctx, span := ip.tracer.Start(ctx, "Planner.Generate", trace.WithAttributes(
		attribute.String("profile.diet_type", profile.DietType),
		attribute.Bool("planner.detailed", ip.inner.cfg.Detailed),
		attribute.String("model.id", ip.inner.cfg.ModelID),
	))
	defer span.End()

	start := time.Now()
	res := ip.inner.Generate(ctx, profile)
	elapsed := time.Since(start)

	stateAttr := metric.WithAttributes(attribute.String("state", string(res.State)))
	ip.generations.Add(ctx, 1, stateAttr)
	ip.duration.Record(ctx, elapsed.Seconds(), stateAttr)
	span.SetAttributes(attribute.String("plan.state", string(res.State)))

	switch res.State {
	case StateFallback:
		ip.fallbacks.Add(ctx, 1)
		ip.completionSize.Record(ctx, int64(len(res.Warning.RawResponse)))
		span.AddEvent("Fallback plan used", trace.WithAttributes(
			attribute.String("parse_error", res.Warning.Message),
		))

	case StateFailed:
		switch res.Error.Kind {
		case KindTransport:
			ip.transportErrors.Add(ctx, 1)
		case KindSchema:
			ip.schemaErrors.Add(ctx, 1)
			ip.completionSize.Record(ctx, int64(len(res.Error.RawResponse)))
		}
		span.SetStatus(codes.Error, res.Error.Message)
		span.RecordError(res.Error)

	default:
		span.SetAttributes(attribute.Int("plan.missing_days", len(res.Plan.MissingDays())))
	}

	slog.Info("PLANNER: Instrumented generation finished", "state", res.State, "duration_ms", elapsed.Milliseconds())
	return res
}

func (ip *InstrumentedPlanner) Chat(ctx context.Context, profile nutriplan.UserProfile, history []nutriplan.Message) (string, error) {
	ctx, span := ip.tracer.Start(ctx, "Planner.Chat", trace.WithAttributes(
		attribute.Int("chat.history_len", len(history)),
	))
	defer span.End()

	reply, err := ip.inner.Chat(ctx, profile, history)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.SetStatus(codes.Error, "chat failed")
		span.RecordError(err)
	}
	ip.chats.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	return reply, err
}
