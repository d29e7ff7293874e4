// Package generator selects the model provider behind nutriplan.TextGenerator.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"nutriplan"
	"nutriplan/generator/bedrock"
	"nutriplan/generator/gemini"
	"nutriplan/generator/mock"
	"nutriplan/generator/ollama"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

const (
	ProviderBedrock = "bedrock"
	ProviderOllama  = "ollama"
	ProviderGemini  = "gemini"
	ProviderMock    = "mock"
)

// Generator is a TextGenerator that owns provider resources.
type Generator struct {
	nutriplan.TextGenerator
	Provider string
	ModelID  string
	close    func() error
}

func (g *Generator) Close() error {
	if g.close == nil {
		return nil
	}
	return g.close()
}

// New builds the provider named by mc.Provider.
func New(ctx context.Context, mc nutriplan.ModelConfig, pc nutriplan.ProviderConfig) (*Generator, error) {
	provider := strings.ToLower(strings.TrimSpace(mc.Provider))
	slog.Info("SETUP: Creating text generator", "provider", provider, "model", mc.ModelID)

	switch provider {
	case ProviderBedrock:
		// Transport errors are surfaced to the caller instead of being retried.
		awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRetryMaxAttempts(1))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		c := bedrock.NewClient(bedrockruntime.NewFromConfig(awsCfg), bedrock.Options{
			ModelID:     mc.ModelID,
			MaxTokens:   mc.PlanMaxTokens,
			Temperature: mc.PlanTemperature,
			TopP:        mc.TopP,
		})
		return &Generator{TextGenerator: c, Provider: provider, ModelID: c.ModelID()}, nil

	case ProviderOllama:
		c, err := ollama.NewClient(ollama.ClientOpts{
			BaseEndpoint: pc.BaseOllamaEndpoint,
			ModelID:      mc.ModelID,
			TopP:         mc.TopP,
			HTTPClient:   http.DefaultClient,
		})
		if err != nil {
			return nil, err
		}
		return &Generator{TextGenerator: c, Provider: provider, ModelID: c.ModelID()}, nil

	case ProviderGemini:
		c, err := gemini.NewClient(ctx, gemini.Options{APIKey: pc.GeminiAPIKey, ModelID: mc.ModelID, TopP: mc.TopP})
		if err != nil {
			return nil, err
		}
		return &Generator{TextGenerator: c, Provider: provider, ModelID: c.ModelID(), close: c.Close}, nil

	case ProviderMock, "":
		c := mock.NewClient()
		return &Generator{TextGenerator: c, Provider: ProviderMock, ModelID: c.ModelID()}, nil

	default:
		return nil, fmt.Errorf("unknown model provider %q", mc.Provider)
	}
}
