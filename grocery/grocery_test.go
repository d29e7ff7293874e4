package grocery

import (
	"encoding/json"
	"sort"
	"strings"
	"testing"

	"nutriplan"
	"nutriplan/generator/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cannedPlan(t *testing.T) *nutriplan.WeekPlan {
	t.Helper()
	var plan nutriplan.WeekPlan
	require.NoError(t, json.Unmarshal([]byte(mock.CannedPlan()), &plan))
	return &plan
}

func TestClassify(t *testing.T) {
	tests := []struct {
		ingredient string
		want       string
	}{
		{"Chicken Breast", "Proteins"},
		{"  eggs ", "Proteins"},
		{"eggplant", "Vegetables"},
		{"peanut butter", "Proteins"},
		{"butter", "Dairy & Alternatives"},
		{"almond milk", "Dairy & Alternatives"},
		{"almonds", "Pantry Items"},
		{"rolled oats", "Grains & Carbs"},
		{"oat milk", "Dairy & Alternatives"},
		{"sweet potato", "Grains & Carbs"},
		{"bell pepper", "Vegetables"},
		{"black pepper", "Herbs & Spices"},
		{"cherry tomatoes", "Vegetables"},
		{"frozen mixed berries", "Fruits"},
		{"green beans", "Vegetables"},
		{"kidney beans", "Proteins"},
		{"olive oil", "Pantry Items"},
		{"olives", Others},
		{"dragon fruit", Others},
	}

	for _, tt := range tests {
		t.Run(tt.ingredient, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.ingredient))
		})
	}
}

func TestDeriveNilPlan(t *testing.T) {
	list := Derive(nil)
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.Zero(t, list.Count())
	assert.Empty(t, list.Sections())
}

func TestDeriveDedupesAndSorts(t *testing.T) {
	plan := &nutriplan.WeekPlan{Days: map[string]nutriplan.DayPlan{
		"Monday": {
			nutriplan.Breakfast: {Meal: "Oats", Ingredients: []string{"rolled oats", "Banana", "banana", ""}},
			nutriplan.Lunch:     {Meal: "Salad", Ingredients: []string{"spinach", "eggs", "egg"}},
		},
		"Tuesday": {
			nutriplan.Dinner: {Meal: "Curry", Ingredients: []string{"ROLLED OATS", "apple", "cumin"}},
		},
	}}

	list := Derive(plan)

	assert.Equal(t, []string{"Apple", "Banana"}, list["Fruits"])
	assert.Equal(t, []string{"Rolled Oats"}, list["Grains & Carbs"])
	assert.Equal(t, []string{"Eggs"}, list["Proteins"])
	assert.Equal(t, []string{"Egg"}, list[Others])
	assert.Equal(t, []string{"Spinach"}, list["Vegetables"])
	assert.Equal(t, []string{"Cumin"}, list["Herbs & Spices"])
	_, hasDairy := list["Dairy & Alternatives"]
	assert.False(t, hasDairy)
	assert.Equal(t, 7, list.Count())
}

func TestDeriveSkipsBlankIngredients(t *testing.T) {
	plan := &nutriplan.WeekPlan{Days: map[string]nutriplan.DayPlan{
		"Monday": {
			nutriplan.Snack1: {Meal: "Fruit", Ingredients: []string{"", "   ", "\t\n", " apple "}},
		},
	}}

	list := Derive(plan)

	assert.Equal(t, List{"Fruits": {"Apple"}}, list)
	assert.Equal(t, 1, list.Count())
}

func TestDeriveIsIdempotent(t *testing.T) {
	plan := cannedPlan(t)
	assert.Equal(t, Derive(plan), Derive(plan))
}

func TestDeriveCoversEveryIngredientOnce(t *testing.T) {
	plan := cannedPlan(t)
	list := Derive(plan)

	placements := map[string][]string{}
	for cat, items := range list {
		assert.True(t, sort.StringsAreSorted(items), cat)
		for _, item := range items {
			placements[strings.ToLower(item)] = append(placements[strings.ToLower(item)], cat)
		}
	}

	for _, d := range plan.Days {
		for _, m := range d {
			for _, ing := range m.Ingredients {
				cats := placements[strings.ToLower(strings.TrimSpace(ing))]
				assert.Len(t, cats, 1, "ingredient %q placed in %v", ing, cats)
			}
		}
	}
}

func TestSectionsOrder(t *testing.T) {
	list := Derive(cannedPlan(t))
	sections := list.Sections()
	require.NotEmpty(t, sections)

	order := map[string]int{}
	for i, name := range CategoryNames() {
		order[name] = i
	}
	for i := 1; i < len(sections); i++ {
		assert.Less(t, order[sections[i-1].Category], order[sections[i].Category])
	}
	assert.Equal(t, "Proteins", sections[0].Category)
}

func TestItemKey(t *testing.T) {
	assert.Equal(t, "grocery:Fruits:Apple", ItemKey("Fruits", "Apple"))

	list := List{"Fruits": {"Apple"}, "Proteins": {"Tofu"}}
	assert.True(t, list.Has("Fruits", "Apple"))
	assert.False(t, list.Has("Fruits", "Pear"))
	assert.Equal(t, []string{"grocery:Proteins:Tofu", "grocery:Fruits:Apple"}, list.Keys())
}
