package main

import (
	"context"
	"fmt"
	"log/slog"

	"nutriplan"
	"nutriplan/generator"
	"nutriplan/planner"
	"nutriplan/profile"
	"nutriplan/session"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joeshaw/envdecode"
)

// Params carries an inline profile. When it is absent the profile is read
// from PROFILE_S3_BUCKET/PROFILE_S3_KEY.
type Params struct {
	Profile *nutriplan.UserProfile `json:"profile"`
}

type Results struct {
	Status   string           `json:"status"`
	Digest   session.Digest   `json:"digest"`
	Snapshot session.Snapshot `json:"snapshot"`
}

func main() {
	fn := func(ctx context.Context, params Params) (Results, error) {
		var modelConfig nutriplan.ModelConfig
		if err := envdecode.Decode(&modelConfig); err != nil {
			return Results{}, fmt.Errorf("failed to decode model config: %w", err)
		}

		var providerConfig nutriplan.ProviderConfig
		if err := envdecode.Decode(&providerConfig); err != nil {
			return Results{}, fmt.Errorf("failed to decode provider config: %w", err)
		}

		var plannerConfig nutriplan.PlannerConfig
		if err := envdecode.Decode(&plannerConfig); err != nil {
			return Results{}, fmt.Errorf("failed to decode planner config: %w", err)
		}

		userProfile, err := resolveProfile(ctx, params)
		if err != nil {
			slog.Error("SETUP: Failed to resolve profile", "error", err)
			return Results{}, err
		}

		gen, err := generator.New(ctx, modelConfig, providerConfig)
		if err != nil {
			slog.Error("SETUP: Failed to create text generator", "error", err)
			return Results{}, err
		}
		defer gen.Close()

		tracerProvider, meterProvider, otelShutdown, err := nutriplan.InitOtel(ctx)
		if err != nil {
			slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
			return Results{}, err
		}
		defer func() {
			if err := otelShutdown(ctx); err != nil {
				slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
			}
		}()

		cfg := planner.ConfigFrom(modelConfig, plannerConfig)
		cfg.ModelID = gen.ModelID
		instrumented, err := planner.NewInstrumentedPlanner(
			planner.New(gen, cfg, nutriplan.NewStdoutGenerationLogger()),
			tracerProvider.Tracer(nutriplan.TracerNameLambda),
			meterProvider.Meter(nutriplan.TracerNameLambda),
		)
		if err != nil {
			return Results{}, err
		}

		snap, err := session.NewService(instrumented, session.NewMemoryStore(0)).Start(ctx, userProfile)
		if err != nil {
			slog.Error("RESULT: Failed to start session", "error", err)
			return Results{}, err
		}

		slog.Info("RESULT: Plan generated", "state", snap.Result.State, "grocery_items", snap.Grocery.Count(), "prep_tasks", snap.Prep.Count())
		return Results{Status: snap.Status(), Digest: session.NewDigest(snap), Snapshot: snap}, nil
	}

	lambda.Start(fn)
}

func resolveProfile(ctx context.Context, params Params) (nutriplan.UserProfile, error) {
	if params.Profile != nil {
		return *params.Profile, profile.Validate(*params.Profile)
	}

	var profileConfig nutriplan.ProfileConfig
	if err := envdecode.Decode(&profileConfig); err != nil {
		return nutriplan.UserProfile{}, fmt.Errorf("failed to decode profile config: %w", err)
	}
	if profileConfig.S3Bucket == "" || profileConfig.S3Key == "" {
		return nutriplan.UserProfile{}, fmt.Errorf("missing profile: pass one in the event or set PROFILE_S3_BUCKET and PROFILE_S3_KEY")
	}

	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nutriplan.UserProfile{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	src := profile.NewS3Source(s3.NewFromConfig(awsCfg), profileConfig.S3Bucket, profileConfig.S3Key)
	return profile.Load(ctx, src)
}
