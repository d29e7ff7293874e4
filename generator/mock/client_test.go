package mock

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"nutriplan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCannedPlanIsComplete(t *testing.T) {
	var w nutriplan.WeekPlan
	require.NoError(t, json.Unmarshal([]byte(CannedPlan()), &w))
	assert.Empty(t, w.MissingDays())
	for _, day := range nutriplan.Weekdays {
		d, _ := w.Day(day)
		assert.Empty(t, d.MissingSlots(), day)
	}
}

func TestClient(t *testing.T) {
	req := nutriplan.GenerationRequest{Messages: []nutriplan.Message{{Role: "user", Content: "plan"}}}

	t.Run("queued responses then default", func(t *testing.T) {
		c := NewClientWithResponses("first", "second")
		for _, want := range []string{"first", "second", FencedPlan()} {
			got, err := c.Generate(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
		assert.Len(t, c.Requests(), 3)
	})

	t.Run("error", func(t *testing.T) {
		boom := errors.New("unavailable")
		_, err := NewClientWithError(boom).Generate(context.Background(), req)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewClient().Generate(ctx, req)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
