package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joeshaw/envdecode"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"nutriplan"
	"nutriplan/generator"
	"nutriplan/planner"
	"nutriplan/prep"
	"nutriplan/profile"
	"nutriplan/session"
	"nutriplan/slack"
)

func main() {
	dump := flag.Bool("dump", false, "dump the full session snapshot")
	flag.Parse()

	ctx := context.Background()

	var modelConfig nutriplan.ModelConfig
	if err := envdecode.Decode(&modelConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	var providerConfig nutriplan.ProviderConfig
	if err := envdecode.Decode(&providerConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	var plannerConfig nutriplan.PlannerConfig
	if err := envdecode.Decode(&plannerConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	var profileConfig nutriplan.ProfileConfig
	if err := envdecode.Decode(&profileConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	var serverConfig nutriplan.ServerConfig
	if err := envdecode.Decode(&serverConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	src, err := profileSource(ctx, profileConfig)
	if err != nil {
		slog.Error("SETUP: Failed to create profile source", "error", err)
		return
	}
	userProfile, err := profile.Load(ctx, src)
	if err != nil {
		slog.Error("SETUP: Failed to load profile", "error", err)
		return
	}
	slog.Info("SETUP: Profile loaded", "diet_type", userProfile.DietType, "goals", userProfile.HealthGoals)

	gen, err := generator.New(ctx, modelConfig, providerConfig)
	if err != nil {
		slog.Error("SETUP: Failed to create text generator", "error", err)
		return
	}
	defer gen.Close()

	logger, cleanup, err := newGenerationLogger(plannerConfig.GenerationLogDir, gen.ModelID)
	if err != nil {
		slog.Error("SETUP: Failed to create generation logger", "error", err)
		return
	}
	defer func() {
		if err := cleanup(); err != nil {
			slog.Error("Failed to flush generation log", "error", err)
		}
	}()

	tracerProvider, meterProvider, otelShutdown, err := nutriplan.InitOtel(ctx)
	if err != nil {
		slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
		return
	}
	defer func() {
		if err := otelShutdown(ctx); err != nil {
			slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
		}
	}()

	tracer := tracerProvider.Tracer(nutriplan.TracerNamePlanner)
	ctx, span := tracer.Start(ctx, "nutriplan-local", trace.WithAttributes(
		attribute.String("model.provider", gen.Provider),
		attribute.String("model.id", gen.ModelID),
		attribute.Float64("model.temperature", float64(modelConfig.PlanTemperature)),
		attribute.Int("model.max_tokens", int(modelConfig.PlanMaxTokens)),
	))
	defer span.End()

	cfg := planner.ConfigFrom(modelConfig, plannerConfig)
	cfg.ModelID = gen.ModelID
	instrumented, err := planner.NewInstrumentedPlanner(
		planner.New(gen, cfg, logger),
		tracer,
		meterProvider.Meter(nutriplan.TracerNamePlanner),
	)
	if err != nil {
		slog.Error("SETUP: Failed to instrument planner", "error", err)
		return
	}

	svc := session.NewService(instrumented, session.NewMemoryStore(0))
	snap, err := svc.Start(ctx, userProfile)
	if err != nil {
		slog.Error("RESULT: Failed to start session", "error", err)
		return
	}

	digest := session.NewDigest(snap)
	fmt.Print(render(snap, digest))
	if *dump {
		nutriplan.Dump(snap)
	}

	webhook := serverConfig.SlackWebhookURL
	if webhook == "" {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body := new(bytes.Buffer)
			body.ReadFrom(r.Body) // nolint: errcheck
			slog.Info("FINAL: Received request",
				"method", r.Method,
				"path", r.URL.Path,
				"body", body.String(),
			)
			w.WriteHeader(http.StatusOK)
		}))
		defer testServer.Close()
		webhook = testServer.URL
	}

	slackClient := slack.NewClient(webhook, http.DefaultClient)
	if err := slackClient.PostDigest(ctx, serverConfig.SlackChannel, digest); err != nil {
		slog.Error("Failed to post digest to Slack", "error", err)
	}
}

func profileSource(ctx context.Context, pc nutriplan.ProfileConfig) (profile.Source, error) {
	if pc.S3Bucket == "" {
		return profile.NewFileSource(pc.Path), nil
	}
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return profile.NewS3Source(s3.NewFromConfig(awsCfg), pc.S3Bucket, pc.S3Key), nil
}

func newGenerationLogger(dir, modelID string) (nutriplan.GenerationLogger, func() error, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, func() error { return err }, fmt.Errorf("failed to create log dir: %w", err)
	}
	logFilePath := nutriplan.NewGenerationLogFilePath(dir, modelID)
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, func() error { return err }, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := nutriplan.NewFileGenerationLogger(logFile)
	cleanup := func() error {
		return errors.Join(logger.Flush(), logFile.Close())
	}
	return logger, cleanup, nil
}

func render(snap session.Snapshot, digest session.Digest) string {
	var b strings.Builder
	b.WriteString(digest.Text())

	if snap.Result.HasPlan() {
		b.WriteString("\n== Plan ==\n")
		for _, day := range nutriplan.Weekdays {
			d, ok := snap.Result.Plan.Day(day)
			if !ok {
				fmt.Fprintf(&b, "%s: unavailable\n", day)
				continue
			}
			fmt.Fprintf(&b, "%s (%.0f kcal)\n", day, d.Totals().Calories)
			for _, slot := range nutriplan.MealSlots {
				m, ok := d.Meal(slot)
				if !ok {
					fmt.Fprintf(&b, "  %-10s unavailable\n", nutriplan.SlotLabel(slot))
					continue
				}
				fmt.Fprintf(&b, "  %-10s %s (%.0f kcal)\n", nutriplan.SlotLabel(slot), m.Meal, m.Calories)
			}
		}
	}

	if sections := snap.Grocery.Sections(); len(sections) > 0 {
		b.WriteString("\n== Grocery list ==\n")
		for _, sec := range sections {
			fmt.Fprintf(&b, "%s: %s\n", sec.Category, strings.Join(sec.Items, ", "))
		}
	}

	if days := snap.Prep.Days(); len(days) > 0 {
		b.WriteString("\n== Prep schedule ==\n")
		for _, day := range days {
			fmt.Fprintf(&b, "%s evening\n", day)
			for i, task := range snap.Prep[day] {
				fmt.Fprintf(&b, "  [%s] %s %s (%s): %s\n",
					prep.TaskKey(day, i), task.ForDay, task.MealSlotLabel, task.MealName, task.Instruction)
			}
		}
	}

	if snap.Result.Error != nil && snap.Result.Error.RawResponse != "" {
		fmt.Fprintf(&b, "\nRaw response: %s\n", snap.Result.Error.RawResponse)
	}
	return b.String()
}
