package planner

import (
	"strings"
	"testing"

	"nutriplan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	dairyTerms = []string{"whole milk", "greek yogurt", "cheese", "butter", "cream", "ghee", "paneer", "whey", "kefir"}
	meatTerms  = []string{"chicken", "beef", "pork", "lamb", "turkey", "fish", "salmon", "tuna", "cod", "shrimp", "prawn", "bacon", "ham"}
)

func mentions(m nutriplan.MealEntry, terms []string) string {
	text := strings.ToLower(m.Meal + " " + strings.Join(m.Ingredients, " "))
	for _, term := range terms {
		if strings.Contains(text, term) {
			return term
		}
	}
	return ""
}

func TestBuildFallbackComplete(t *testing.T) {
	for _, diet := range []string{"Non-Vegetarian", "Vegetarian", "Vegan", "Keto", ""} {
		t.Run(diet, func(t *testing.T) {
			plan := BuildFallback(nutriplan.UserProfile{DietType: diet}, "raw", "bad json")

			require.True(t, plan.IsFallback())
			assert.Equal(t, "bad json", plan.Fallback.OriginalError)
			assert.Equal(t, "raw", plan.Fallback.RawResponse)
			assert.Empty(t, plan.MissingDays())

			seen := map[string]string{}
			for _, day := range nutriplan.Weekdays {
				d := plan.Days[day]
				assert.Empty(t, d.MissingSlots(), day)
				for _, slot := range nutriplan.MealSlots {
					m := d[slot]
					assert.NotEmpty(t, m.Meal)
					assert.NotEmpty(t, m.Ingredients)
					assert.Positive(t, m.Calories)
					if prev, dup := seen[m.Meal]; dup {
						t.Errorf("meal %q repeated on %s and %s", m.Meal, prev, day)
					}
					seen[m.Meal] = day
				}
			}
		})
	}
}

func TestBuildFallbackDietRules(t *testing.T) {
	t.Run("vegetarian lunch and dinner are meat free", func(t *testing.T) {
		for _, diet := range []string{"Vegetarian", "Vegan"} {
			plan := BuildFallback(nutriplan.UserProfile{DietType: diet}, "", "x")
			for _, day := range nutriplan.Weekdays {
				for _, slot := range []nutriplan.MealSlot{nutriplan.Lunch, nutriplan.Dinner} {
					m := plan.Days[day][slot]
					assert.Empty(t, mentions(m, meatTerms), "%s %s %s: %q", diet, day, slot, m.Meal)
				}
			}
		}
	})

	t.Run("vegan breakfast and first snack are dairy free", func(t *testing.T) {
		plan := BuildFallback(nutriplan.UserProfile{DietType: "Vegan"}, "", "x")
		for _, day := range nutriplan.Weekdays {
			for _, slot := range []nutriplan.MealSlot{nutriplan.Breakfast, nutriplan.Snack1} {
				m := plan.Days[day][slot]
				assert.Empty(t, mentions(m, dairyTerms), "%s %s: %q %v", day, slot, m.Meal, m.Ingredients)
			}
		}
	})

	t.Run("vegetarian keeps base breakfast", func(t *testing.T) {
		veg := BuildFallback(nutriplan.UserProfile{DietType: "Vegetarian"}, "", "x")
		base := BuildFallback(nutriplan.UserProfile{DietType: "Non-Vegetarian"}, "", "x")
		assert.Equal(t, base.Days["Monday"][nutriplan.Breakfast], veg.Days["Monday"][nutriplan.Breakfast])
		assert.NotEqual(t, base.Days["Monday"][nutriplan.Lunch], veg.Days["Monday"][nutriplan.Lunch])
	})

	t.Run("non vegetarian plan includes meat", func(t *testing.T) {
		plan := BuildFallback(nutriplan.UserProfile{DietType: "Non-Vegetarian"}, "", "x")
		assert.Equal(t, "chicken", mentions(plan.Days["Monday"][nutriplan.Lunch], meatTerms))
	})
}

func TestBuildFallbackTruncatesRaw(t *testing.T) {
	raw := strings.Repeat("x", 800)
	plan := BuildFallback(nutriplan.UserProfile{}, raw, "err")
	assert.Equal(t, strings.Repeat("x", 500)+"...", plan.Fallback.RawResponse)
}

func TestBuildFallbackIsIndependent(t *testing.T) {
	a := BuildFallback(nutriplan.UserProfile{}, "", "x")
	a.Days["Monday"][nutriplan.Breakfast].Ingredients[0] = "changed"

	b := BuildFallback(nutriplan.UserProfile{}, "", "x")
	assert.Equal(t, "rolled oats", b.Days["Monday"][nutriplan.Breakfast].Ingredients[0])
}
