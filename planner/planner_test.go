package planner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"nutriplan"
	"nutriplan/generator/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	attempts []nutriplan.AttemptLog
}

func (l *recordingLogger) LogAttempt(a nutriplan.AttemptLog) error {
	l.attempts = append(l.attempts, a)
	return nil
}

func testProfile() nutriplan.UserProfile {
	return nutriplan.UserProfile{
		Gender:        "Female",
		Age:           34,
		WeightKg:      62.5,
		HeightCm:      168,
		DietType:      "Vegan",
		ActivityLevel: "Moderately Active",
		HealthGoals:   []string{"Weight Loss"},
		Allergies:     "peanuts",
	}
}

func TestPlannerDefaults(t *testing.T) {
	p := New(mock.NewClient(), Config{}, nil)

	req := p.PlanRequest(testProfile())
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "user", req.Messages[0].Role)
	assert.Equal(t, float32(0.3), req.Temperature)
	assert.Equal(t, int32(3000), req.MaxTokens)
	assert.NotNil(t, req.Schema)
}

func TestPlannerGenerate(t *testing.T) {
	longGarbage := "{" + strings.Repeat("not json ", 100) + "}"

	tests := []struct {
		name        string
		client      *mock.Client
		wantState   State
		wantKind    ErrorKind
		wantPlan    bool
		wantWarning bool
	}{
		{
			name:      "fenced plan is well formed",
			client:    mock.NewClient(),
			wantState: StateWellFormed,
			wantPlan:  true,
		},
		{
			name:      "transport failure",
			client:    mock.NewClientWithError(errors.New("connection refused")),
			wantState: StateFailed,
			wantKind:  KindTransport,
		},
		{
			name:      "prose without braces",
			client:    mock.NewClientWithResponses("Sorry, I can't produce a plan right now."),
			wantState: StateFailed,
			wantKind:  KindSchema,
		},
		{
			name:      "empty completion",
			client:    mock.NewClientWithResponses(""),
			wantState: StateFailed,
			wantKind:  KindSchema,
		},
		{
			name:        "malformed object",
			client:      mock.NewClientWithResponses(longGarbage),
			wantState:   StateFallback,
			wantPlan:    true,
			wantWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &recordingLogger{}
			p := New(tt.client, Config{ModelID: "mock"}, logger)

			res := p.Generate(context.Background(), testProfile())

			assert.Equal(t, tt.wantState, res.State)
			assert.Equal(t, tt.wantPlan, res.HasPlan())
			if tt.wantKind != "" {
				require.NotNil(t, res.Error)
				assert.Equal(t, tt.wantKind, res.Error.Kind)
				assert.Nil(t, res.Plan)
			} else {
				assert.Nil(t, res.Error)
			}
			assert.Equal(t, tt.wantWarning, res.Warning != nil)

			require.Len(t, logger.attempts, 1)
			assert.Equal(t, "plan", logger.attempts[0].Kind)
			assert.Equal(t, string(tt.wantState), logger.attempts[0].State)

			require.Len(t, tt.client.Requests(), 1, "no retries")
		})
	}
}

func TestPlannerGenerateTransportMessage(t *testing.T) {
	p := New(mock.NewClientWithError(errors.New("timeout")), Config{}, nil)

	res := p.Generate(context.Background(), testProfile())
	require.NotNil(t, res.Error)
	assert.Equal(t, "Failed to generate meal plan: timeout", res.Error.Message)
}

func TestPlannerGenerateFallbackDiagnostics(t *testing.T) {
	raw := "{" + strings.Repeat("x", 700) + "}"
	p := New(mock.NewClientWithResponses(raw), Config{}, nil)

	res := p.Generate(context.Background(), testProfile())
	require.Equal(t, StateFallback, res.State)
	require.True(t, res.Plan.IsFallback())

	assert.NotEmpty(t, res.Plan.Fallback.OriginalError)
	assert.Equal(t, res.Warning.Message, res.Plan.Fallback.OriginalError)
	assert.Equal(t, KindParse, res.Warning.Kind)
	assert.Len(t, []rune(res.Plan.Fallback.RawResponse), RawPreviewLimit+3)
	assert.True(t, strings.HasSuffix(res.Plan.Fallback.RawResponse, "..."))

	// vegan overrides apply
	assert.Equal(t, "Almond yogurt with berries", res.Plan.Days["Monday"][nutriplan.Snack1].Meal)
}

func TestPlannerInterpretBraceBoundaries(t *testing.T) {
	p := New(mock.NewClient(), Config{}, nil)

	tests := []struct {
		raw  string
		want State
	}{
		{raw: `{"Monday": {"breakfast": {"meal": "Oats", "calories": 3`, want: StateFailed},
		{raw: "{broken", want: StateFailed},
		{raw: "{broken}", want: StateFallback},
		{raw: "}{", want: StateFallback},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			res := p.Interpret(testProfile(), tt.raw)
			assert.Equal(t, tt.want, res.State)
			if tt.want == StateFailed {
				assert.Equal(t, KindSchema, res.Error.Kind)
			}
		})
	}
}

func TestPlannerGenerateTotals(t *testing.T) {
	p := New(mock.NewClient(), Config{}, nil)

	res := p.Generate(context.Background(), testProfile())
	require.Equal(t, StateWellFormed, res.State)

	plan := res.Plan
	assert.Empty(t, plan.MissingDays())
	assert.False(t, plan.IsFallback())

	var sum float64
	for _, d := range plan.Days {
		for _, m := range d {
			sum += m.Calories
		}
	}
	assert.Equal(t, sum, plan.Totals().Calories)
	assert.Equal(t, float64(int(sum)/7), plan.DailyAverage().Calories)
}

func TestPlannerGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := New(mock.NewClient(), Config{}, nil).Generate(ctx, testProfile())
	assert.Equal(t, StateFailed, res.State)
	assert.Equal(t, KindTransport, res.Error.Kind)
}

func TestPlannerInterpretPartialPlan(t *testing.T) {
	raw := `{"Monday": {"breakfast": {"meal": "Oats", "calories": 300}}, "Tuesday": "nothing"}`

	res := New(mock.NewClient(), Config{}, nil).Interpret(testProfile(), raw)
	require.Equal(t, StateWellFormed, res.State)
	assert.Len(t, res.Plan.MissingDays(), 6)
	assert.Equal(t, []nutriplan.MealSlot{nutriplan.Lunch, nutriplan.Dinner, nutriplan.Snack1, nutriplan.Snack2},
		res.Plan.Days["Monday"].MissingSlots())
}

func TestPlannerChat(t *testing.T) {
	client := mock.NewClientWithResponses("Try a lentil soup.")
	p := New(client, Config{}, nil)

	history := []nutriplan.Message{
		{Role: "system", Content: "ignored"},
		{Role: "user", Content: "What should I cook tonight?"},
	}
	reply, err := p.Chat(context.Background(), testProfile(), history)
	require.NoError(t, err)
	assert.Equal(t, "Try a lentil soup.", reply)

	reqs := client.Requests()
	require.Len(t, reqs, 1)
	req := reqs[0]
	assert.Equal(t, float32(0.7), req.Temperature)
	assert.Equal(t, int32(1000), req.MaxTokens)
	assert.Nil(t, req.Schema)

	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "- Diet Type: Vegan")
	assert.Equal(t, "What should I cook tonight?", req.Messages[1].Content)
}

func TestPlannerChatError(t *testing.T) {
	p := New(mock.NewClientWithError(errors.New("throttled")), Config{}, nil)

	_, err := p.Chat(context.Background(), testProfile(), []nutriplan.Message{{Role: "user", Content: "hi"}})
	require.Error(t, err)

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "Failed to get chat reply: throttled", err.Error())
}
