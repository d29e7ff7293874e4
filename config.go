package nutriplan

import "time"

type ModelConfig struct {
	Provider        string  `env:"MODEL_PROVIDER,default=mock"`
	ModelID         string  `env:"MODEL_ID"`
	PlanTemperature float32 `env:"PLAN_TEMPERATURE,default=0.3"`
	PlanMaxTokens   int32   `env:"PLAN_MAX_TOKENS,default=3000"`
	ChatTemperature float32 `env:"CHAT_TEMPERATURE,default=0.7"`
	ChatMaxTokens   int32   `env:"CHAT_MAX_TOKENS,default=1000"`
	TopP            float32 `env:"TOP_P,default=0.9"`
}

type ProviderConfig struct {
	BaseOllamaEndpoint string `env:"BASE_OLLAMA_ENDPOINT,default=http://localhost:11434"`
	GeminiAPIKey       string `env:"GEMINI_API_KEY"`
}

type PlannerConfig struct {
	DetailedPlan     bool   `env:"DETAILED_PLAN,default=true"`
	GenerationLogDir string `env:"GENERATION_LOG_DIR,default=./logs"`
}

type ProfileConfig struct {
	Path     string `env:"PROFILE_PATH,default=artifacts/profile.json"`
	S3Bucket string `env:"PROFILE_S3_BUCKET"`
	S3Key    string `env:"PROFILE_S3_KEY"`
}

type ServerConfig struct {
	HTTPAddr        string        `env:"HTTP_ADDR,default=:8080"`
	SessionStore    string        `env:"SESSION_STORE,default=memory"`
	RedisURL        string        `env:"REDIS_URL,default=redis://localhost:6379/0"`
	SessionTTL      time.Duration `env:"SESSION_TTL,default=2h"`
	SlackWebhookURL string        `env:"SLACK_WEBHOOK_URL"`
	SlackChannel    string        `env:"SLACK_CHANNEL,default=#meal-plans"`
	CORSOrigins     []string      `env:"CORS_ORIGINS,default=http://localhost:5173"`
}
