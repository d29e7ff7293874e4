package session

import (
	"fmt"
	"strings"

	"nutriplan"
	"nutriplan/planner"
)

// Digest is a short summary of a session used for notifications and CLI output.
type Digest struct {
	SessionID    string              `json:"session_id"`
	Status       string              `json:"status"`
	State        planner.State       `json:"state"`
	Weekly       nutriplan.Nutrition `json:"weekly"`
	DailyAverage nutriplan.Nutrition `json:"daily_average"`
	MissingDays  []string            `json:"missing_days,omitempty"`
	GroceryItems int                 `json:"grocery_items"`
	PrepTasks    int                 `json:"prep_tasks"`
	PrepDays     []string            `json:"prep_days,omitempty"`
	Message      string              `json:"message,omitempty"`
}

func NewDigest(s Snapshot) Digest {
	d := Digest{
		SessionID:    s.ID,
		Status:       s.Status(),
		State:        s.Result.State,
		GroceryItems: s.Grocery.Count(),
		PrepTasks:    s.Prep.Count(),
		PrepDays:     s.Prep.Days(),
	}
	if s.Result.HasPlan() {
		d.Weekly = s.Result.Plan.Totals()
		d.DailyAverage = s.Result.Plan.DailyAverage()
		d.MissingDays = s.Result.Plan.MissingDays()
	}
	switch {
	case s.Result.Error != nil:
		d.Message = s.Result.Error.Message
	case s.Result.Warning != nil:
		d.Message = "fallback plan used: " + s.Result.Warning.Message
	}
	return d
}

// Text renders the digest as plain lines.
func (d Digest) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Meal plan %s: %s\n", d.SessionID, d.Status)

	if d.Status == StatusError {
		fmt.Fprintf(&b, "Error: %s\n", d.Message)
		return b.String()
	}
	if d.Message != "" {
		fmt.Fprintf(&b, "Warning: %s\n", d.Message)
	}

	fmt.Fprintf(&b, "Weekly calories: %.0f (daily average %.0f)\n", d.Weekly.Calories, d.DailyAverage.Calories)
	fmt.Fprintf(&b, "Daily average: protein %.0fg, carbs %.0fg, fat %.0fg, fiber %.0fg\n",
		d.DailyAverage.Protein, d.DailyAverage.Carbs, d.DailyAverage.Fat, d.DailyAverage.Fiber)
	if len(d.MissingDays) > 0 {
		fmt.Fprintf(&b, "Unavailable days: %s\n", strings.Join(d.MissingDays, ", "))
	}
	fmt.Fprintf(&b, "Grocery items: %d\n", d.GroceryItems)
	if d.PrepTasks > 0 {
		fmt.Fprintf(&b, "Prep tasks: %d on %s\n", d.PrepTasks, strings.Join(d.PrepDays, ", "))
	} else {
		b.WriteString("Prep tasks: none\n")
	}
	return b.String()
}
