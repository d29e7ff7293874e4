package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joeshaw/envdecode"

	"nutriplan"
	"nutriplan/api"
	"nutriplan/generator"
	"nutriplan/planner"
	"nutriplan/session"
	"nutriplan/slack"
)

func main() {
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

	var serverConfig nutriplan.ServerConfig
	if err := envdecode.Decode(&serverConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	gen, err := generator.New(ctx, modelConfig, providerConfig)
	if err != nil {
		slog.Error("SETUP: Failed to create text generator", "error", err)
		return
	}
	defer gen.Close()

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

	cfg := planner.ConfigFrom(modelConfig, plannerConfig)
	cfg.ModelID = gen.ModelID
	instrumented, err := planner.NewInstrumentedPlanner(
		planner.New(gen, cfg, nutriplan.NewStdoutGenerationLogger()),
		tracerProvider.Tracer(nutriplan.TracerNameServer),
		meterProvider.Meter(nutriplan.TracerNameServer),
	)
	if err != nil {
		slog.Error("SETUP: Failed to instrument planner", "error", err)
		return
	}

	store, closeStore, err := newStore(ctx, serverConfig)
	if err != nil {
		slog.Error("SETUP: Failed to create session store", "error", err)
		return
	}
	defer closeStore()

	var notifier api.Notifier
	if serverConfig.SlackWebhookURL != "" {
		notifier = slack.NewClient(serverConfig.SlackWebhookURL, http.DefaultClient)
	}

	handler := api.NewHandler(session.NewService(instrumented, store), notifier, serverConfig.SlackChannel)
	srv := &http.Server{
		Addr:    serverConfig.HTTPAddr,
		Handler: api.NewRouter(handler, serverConfig.CORSOrigins),
	}

	go func() {
		slog.Info("SETUP: Listening", "addr", serverConfig.HTTPAddr, "store", serverConfig.SessionStore, "provider", gen.Provider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("SETUP: Failed to shut down server", "error", err)
	}
}

func newStore(ctx context.Context, sc nutriplan.ServerConfig) (session.Store, func(), error) {
	switch sc.SessionStore {
	case "redis":
		client, err := session.NewRedisClient(ctx, sc.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedisStore(client, sc.SessionTTL), func() { _ = client.Close() }, nil
	case "memory", "":
		return session.NewMemoryStore(sc.SessionTTL), func() {}, nil
	default:
		return nil, nil, errors.New("unknown session store " + sc.SessionStore)
	}
}
