package planner

import (
	"fmt"
	"strings"

	"nutriplan"
	"nutriplan/profile"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

// PromptOptions tunes the plan prompt.
type PromptOptions struct {
	// Detailed adds variety and ingredient guidance on top of the output contract.
	Detailed bool
}

const varietyBlock = `Variety requirements:
- Use a different main protein for lunch and dinner on each day of the week.
- Rotate cuisines across the week (for example Mediterranean, Asian, Mexican, Indian, American).
- Vary cooking methods (grilled, baked, stir-fried, raw, slow-cooked) instead of repeating one.
- Never repeat the same meal description within the week.
- List every ingredient by its common grocery name, one item per array element.
- Use prep_notes for anything that must happen in advance (soaking, marinating, thawing, chilling); otherwise use an empty string.`

const mealTemplate = `{"meal": "description", "ingredients": ["ingredient 1", "ingredient 2"], "prep_notes": "", "calories": %d, "protein": %d, "carbs": %d, "fat": %d, "fiber": %d}`

// example nutrition per slot shown in the format block
var slotExamples = map[nutriplan.MealSlot][5]int{
	nutriplan.Breakfast: {350, 15, 45, 12, 6},
	nutriplan.Lunch:     {450, 25, 55, 15, 8},
	nutriplan.Dinner:    {500, 30, 50, 18, 10},
	nutriplan.Snack1:    {150, 8, 15, 6, 3},
	nutriplan.Snack2:    {120, 5, 12, 4, 2},
}

// BuildPlanPrompt renders the single user message that asks for a week plan.
func BuildPlanPrompt(p nutriplan.UserProfile, opts PromptOptions) string {
	var b strings.Builder

	b.WriteString("Create a 7-day meal plan based on this user profile:\n\n")
	b.WriteString(profile.Format(p))
	b.WriteString("\n\nCRITICAL: Respond with ONLY valid JSON. No extra text, no markdown, no explanations.\n\n")

	if opts.Detailed {
		b.WriteString(varietyBlock)
		b.WriteString("\n\n")
	}

	b.WriteString("JSON format:\n{\n")
	b.WriteString(fmt.Sprintf("  %q: {\n", nutriplan.Weekdays[0]))
	for i, slot := range nutriplan.MealSlots {
		ex := slotExamples[slot]
		b.WriteString(fmt.Sprintf("    %q: ", string(slot)))
		b.WriteString(fmt.Sprintf(mealTemplate, ex[0], ex[1], ex[2], ex[3], ex[4]))
		if i < len(nutriplan.MealSlots)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("  }")
	for _, day := range nutriplan.Weekdays[1:] {
		b.WriteString(fmt.Sprintf(",\n  %q: {...same structure...}", day))
	}
	b.WriteString("\n}\n\n")

	b.WriteString("Respect dietary restrictions and preferences. Use realistic nutrition values.")
	return b.String()
}

// OutputSchema describes the plan object the prompt asks for.
func OutputSchema() *jsonschema.Schema {
	zero := 0.0
	number := func(desc string) *jsonschema.Schema {
		return &jsonschema.Schema{Type: "number", Minimum: &zero, Description: desc}
	}

	meal := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"meal":        {Type: "string", Description: "Meal description"},
			"ingredients": {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
			"prep_notes":  {Type: "string", Description: "Advance preparation, empty when none"},
			"calories":    number("kcal"),
			"protein":     number("grams"),
			"carbs":       number("grams"),
			"fat":         number("grams"),
			"fiber":       number("grams"),
		},
		Required: []string{"meal", "ingredients", "prep_notes", "calories", "protein", "carbs", "fat", "fiber"},
	}

	day := &jsonschema.Schema{Type: "object", Properties: map[string]*jsonschema.Schema{}}
	for _, slot := range nutriplan.MealSlots {
		day.Properties[string(slot)] = meal
		day.Required = append(day.Required, string(slot))
	}

	week := &jsonschema.Schema{Type: "object", Properties: map[string]*jsonschema.Schema{}}
	for _, d := range nutriplan.Weekdays {
		week.Properties[d] = day
		week.Required = append(week.Required, d)
	}
	return week
}

const chatSystemTemplate = `You are a helpful AI assistant specializing in meal planning and cooking advice.

User Profile Context:
%s

Use this information to provide personalized recommendations. Always consider the user's dietary restrictions, preferences, and health goals when suggesting meals or recipes.`

// ChatSystemPrompt is the system message for freeform chat.
func ChatSystemPrompt(p nutriplan.UserProfile) string {
	return fmt.Sprintf(chatSystemTemplate, profile.Format(p))
}
