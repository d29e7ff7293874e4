package nutriplan

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleWeek() WeekPlan {
	w := WeekPlan{Days: map[string]DayPlan{}}
	for i, day := range Weekdays {
		d := DayPlan{}
		for j, slot := range MealSlots {
			d[slot] = MealEntry{
				Meal:        day + " " + string(slot),
				Ingredients: []string{"oats", "banana"},
				PrepNotes:   "",
				Nutrition: Nutrition{
					Calories: float64(100*(j+1) + i),
					Protein:  10,
					Carbs:    20,
					Fat:      5,
					Fiber:    3,
				},
			}
		}
		w.Days[day] = d
	}
	return w
}

func TestWeekPlanRoundTrip(t *testing.T) {
	want := sampleWeek()

	data, err := json.Marshal(want)
	require.NoError(t, err)

	var got WeekPlan
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, want, got)
}

func TestWeekPlanMarshalOrder(t *testing.T) {
	data, err := json.Marshal(sampleWeek())
	require.NoError(t, err)

	s := string(data)
	last := -1
	for _, day := range Weekdays {
		idx := strings.Index(s, `"`+day+`":`)
		require.Greater(t, idx, last, "weekday %s out of order", day)
		last = idx
	}
}

func TestWeekPlanFallbackMarker(t *testing.T) {
	w := sampleWeek()
	w.Fallback = &FallbackInfo{Used: true, OriginalError: "boom", RawResponse: "raw"}

	data, err := json.Marshal(w)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"fallback":{"used":true,"original_error":"boom","raw_response":"raw"}`)

	var got WeekPlan
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, got.IsFallback())
	assert.Equal(t, "boom", got.Fallback.OriginalError)
}

func TestWeekPlanUnmarshalLenient(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantDays     int
		wantMissing  []MealSlot
		wantCalories float64
		wantErr      bool
	}{
		{
			name:         "numeric strings accepted",
			input:        `{"Monday":{"breakfast":{"meal":"Oats","calories":"350","protein":"12.5"}}}`,
			wantDays:     1,
			wantMissing:  []MealSlot{Lunch, Dinner, Snack1, Snack2},
			wantCalories: 350,
		},
		{
			name:         "non-object slot skipped",
			input:        `{"Monday":{"breakfast":"toast","lunch":{"meal":"Soup","calories":400}}}`,
			wantDays:     1,
			wantMissing:  []MealSlot{Breakfast, Dinner, Snack1, Snack2},
			wantCalories: 400,
		},
		{
			name:         "garbage numbers become zero",
			input:        `{"Monday":{"dinner":{"meal":"Stew","calories":"lots","fat":null}}}`,
			wantDays:     1,
			wantMissing:  []MealSlot{Breakfast, Lunch, Snack1, Snack2},
			wantCalories: 0,
		},
		{
			name:     "unknown keys ignored",
			input:    `{"notes":"hello","Funday":{}}`,
			wantDays: 0,
		},
		{
			name:    "array is rejected",
			input:   `[{"Monday":{}}]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w WeekPlan
			err := json.Unmarshal([]byte(tt.input), &w)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, w.Days, tt.wantDays)
			if tt.wantDays > 0 {
				d, ok := w.Day("Monday")
				require.True(t, ok)
				assert.Equal(t, tt.wantMissing, d.MissingSlots())
				assert.Equal(t, tt.wantCalories, d.Totals().Calories)
			}
		})
	}
}

func TestWeekPlanTotals(t *testing.T) {
	w := sampleWeek()

	var want float64
	for _, d := range w.Days {
		for _, m := range d {
			want += m.Calories
		}
	}

	totals := w.Totals()
	assert.Equal(t, want, totals.Calories)
	assert.Equal(t, float64(35*10), totals.Protein)
	assert.Equal(t, float64(int(want)/7), w.DailyAverage().Calories)
	assert.Empty(t, w.MissingDays())
}

func TestDailyAverageWithMissingDays(t *testing.T) {
	w := WeekPlan{Days: map[string]DayPlan{
		"Monday": {Breakfast: {Meal: "Oats", Nutrition: Nutrition{Calories: 700}}},
	}}

	assert.Equal(t, float64(100), w.DailyAverage().Calories)
	assert.Equal(t, Weekdays[1:], w.MissingDays())
}

func TestSlotLabel(t *testing.T) {
	assert.Equal(t, "Breakfast", SlotLabel(Breakfast))
	assert.Equal(t, "Snack 1", SlotLabel(Snack1))
	assert.Equal(t, "Snack 2", SlotLabel(Snack2))
	assert.Equal(t, "brunch", SlotLabel(MealSlot("brunch")))
}

func TestUserProfileIsZero(t *testing.T) {
	assert.True(t, UserProfile{}.IsZero())
	assert.False(t, UserProfile{Age: 30}.IsZero())
	assert.False(t, UserProfile{HealthGoals: []string{"Maintenance"}}.IsZero())
}
