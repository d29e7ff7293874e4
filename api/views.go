package api

import (
	"time"

	"nutriplan"
	"nutriplan/grocery"
	"nutriplan/planner"
	"nutriplan/prep"
	"nutriplan/session"
)

type groceryItem struct {
	Name    string `json:"name"`
	Key     string `json:"key"`
	Checked bool   `json:"checked"`
}

type grocerySection struct {
	Category string        `json:"category"`
	Items    []groceryItem `json:"items"`
}

type prepTask struct {
	prep.Task
	Key       string `json:"key"`
	Completed bool   `json:"completed"`
}

type prepDay struct {
	Day   string     `json:"day"`
	Tasks []prepTask `json:"tasks"`
}

type nutritionSummary struct {
	Weekly       nutriplan.Nutrition `json:"weekly"`
	DailyAverage nutriplan.Nutrition `json:"daily_average"`
	MissingDays  []string            `json:"missing_days,omitempty"`
}

type sessionResponse struct {
	ID               string                    `json:"id"`
	Status           string                    `json:"status"`
	State            planner.State             `json:"state"`
	Profile          nutriplan.UserProfile     `json:"profile"`
	Plan             *nutriplan.WeekPlan       `json:"plan,omitempty"`
	Nutrition        *nutritionSummary         `json:"nutrition,omitempty"`
	Grocery          []grocerySection          `json:"grocery"`
	Prep             []prepDay                 `json:"prep"`
	Error            *planner.GenerationError  `json:"error,omitempty"`
	Warning          *planner.GenerationError  `json:"warning,omitempty"`
	DerivationErrors []planner.GenerationError `json:"derivation_errors,omitempty"`
	GeneratedAt      time.Time                 `json:"generated_at"`
}

func newSessionResponse(s session.Snapshot) sessionResponse {
	resp := sessionResponse{
		ID:               s.ID,
		Status:           s.Status(),
		State:            s.Result.State,
		Profile:          s.Profile,
		Error:            s.Result.Error,
		Warning:          s.Result.Warning,
		DerivationErrors: s.DerivationErrors,
		GeneratedAt:      s.GeneratedAt,
		Grocery:          []grocerySection{},
		Prep:             []prepDay{},
	}

	if s.Result.HasPlan() {
		plan := s.Result.Plan
		resp.Plan = plan
		resp.Nutrition = &nutritionSummary{
			Weekly:       plan.Totals(),
			DailyAverage: plan.DailyAverage(),
			MissingDays:  plan.MissingDays(),
		}
	}

	for _, sec := range s.Grocery.Sections() {
		out := grocerySection{Category: sec.Category}
		for _, item := range sec.Items {
			key := grocery.ItemKey(sec.Category, item)
			out.Items = append(out.Items, groceryItem{Name: item, Key: key, Checked: s.Checked[key]})
		}
		resp.Grocery = append(resp.Grocery, out)
	}

	for _, day := range s.Prep.Days() {
		out := prepDay{Day: day}
		for i, task := range s.Prep[day] {
			key := prep.TaskKey(day, i)
			out.Tasks = append(out.Tasks, prepTask{Task: task, Key: key, Completed: s.Completed[key]})
		}
		resp.Prep = append(resp.Prep, out)
	}
	return resp
}
