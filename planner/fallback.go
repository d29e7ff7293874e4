package planner

import (
	"log/slog"

	"nutriplan"
)

const (
	dietVegetarian = "Vegetarian"
	dietVegan      = "Vegan"
)

// BuildFallback returns a complete, pre-authored week plan adjusted for the
// profile's diet type. It is marked as a fallback and carries the original
// error plus a truncated copy of the raw completion.
func BuildFallback(p nutriplan.UserProfile, raw, errMsg string) nutriplan.WeekPlan {
	base := baseFallbackWeek()

	switch p.DietType {
	case dietVegetarian, dietVegan:
		alts := vegetarianLunchDinner()
		for i := range base {
			base[i][1] = alts[i][0]
			base[i][2] = alts[i][1]
		}
		if p.DietType == dietVegan {
			breakfasts, snacks := veganBreakfasts(), veganSnacks()
			for i := range base {
				base[i][0] = breakfasts[i]
				base[i][3] = snacks[i]
			}
		}
	}

	plan := nutriplan.WeekPlan{
		Days: make(map[string]nutriplan.DayPlan, len(nutriplan.Weekdays)),
		Fallback: &nutriplan.FallbackInfo{
			Used:          true,
			OriginalError: errMsg,
			RawResponse:   Truncate(raw),
		},
	}
	for i, day := range nutriplan.Weekdays {
		d := make(nutriplan.DayPlan, len(nutriplan.MealSlots))
		for j, slot := range nutriplan.MealSlots {
			d[slot] = base[i][j]
		}
		plan.Days[day] = d
	}

	slog.Warn("PLANNER: Using fallback plan", "diet_type", p.DietType, "error", errMsg)
	return plan
}
