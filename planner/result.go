package planner

import "nutriplan"

// State is the outcome of one generation attempt.
type State string

const (
	StateWellFormed State = "well_formed"
	StateFallback   State = "fallback"
	StateFailed     State = "failed"
)

// Result is what a generation attempt surfaces to the session. Plan is nil
// exactly when State is StateFailed, in which case Error explains why.
// Fallback results carry the parse diagnostic in Warning.
type Result struct {
	State   State               `json:"state"`
	Plan    *nutriplan.WeekPlan `json:"plan,omitempty"`
	Error   *GenerationError    `json:"error,omitempty"`
	Warning *GenerationError    `json:"warning,omitempty"`
}

// HasPlan reports whether a renderable plan is present.
func (r Result) HasPlan() bool {
	return r.Plan != nil && r.State != StateFailed
}

func failed(kind ErrorKind, msg, raw string) Result {
	return Result{
		State: StateFailed,
		Error: &GenerationError{Kind: kind, Message: msg, RawResponse: Truncate(raw)},
	}
}
