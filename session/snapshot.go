// Package session holds the active planning session as an immutable snapshot.
// Every change produces a new snapshot that the store replaces in one write.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"nutriplan"
	"nutriplan/grocery"
	"nutriplan/planner"
	"nutriplan/prep"
)

var (
	ErrNotFound    = errors.New("session not found")
	ErrUnknownItem = errors.New("unknown item")
)

// Status values tell presentation consumers how to render a result.
const (
	StatusOK      = "ok"
	StatusWarning = "warning"
	StatusError   = "error"
)

type Snapshot struct {
	ID               string                    `json:"id"`
	Profile          nutriplan.UserProfile     `json:"profile"`
	Result           planner.Result            `json:"result"`
	Grocery          grocery.List              `json:"grocery"`
	Prep             prep.Schedule             `json:"prep"`
	Checked          map[string]bool           `json:"checked"`
	Completed        map[string]bool           `json:"completed"`
	DerivationErrors []planner.GenerationError `json:"derivation_errors,omitempty"`
	GeneratedAt      time.Time                 `json:"generated_at"`
}

// Build derives the grocery list and prep schedule from result together.
// A panic in one derivation leaves that artifact empty and is recorded in
// DerivationErrors; the plan and the other artifact are unaffected.
func Build(id string, profile nutriplan.UserProfile, result planner.Result, now time.Time) Snapshot {
	s := Snapshot{
		ID:          id,
		Profile:     profile,
		Result:      result,
		Checked:     map[string]bool{},
		Completed:   map[string]bool{},
		GeneratedAt: now,
	}

	var plan *nutriplan.WeekPlan
	if result.HasPlan() {
		plan = result.Plan
	}

	var derr *planner.GenerationError
	s.Grocery, derr = derive("grocery", func() grocery.List { return grocery.Derive(plan) }, grocery.List{})
	if derr != nil {
		s.DerivationErrors = append(s.DerivationErrors, *derr)
	}
	s.Prep, derr = derive("prep", func() prep.Schedule { return prep.Derive(plan) }, prep.Schedule{})
	if derr != nil {
		s.DerivationErrors = append(s.DerivationErrors, *derr)
	}
	return s
}

func derive[T any](artifact string, fn func() T, empty T) (out T, derr *planner.GenerationError) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("SESSION: Derivation failed", "artifact", artifact, "panic", r)
			out = empty
			derr = &planner.GenerationError{
				Kind:    planner.KindDerivation,
				Message: fmt.Sprintf("%s: %v", artifact, r),
			}
		}
	}()
	return fn(), nil
}

// Status maps the result state onto ok, warning or error.
func (s Snapshot) Status() string {
	switch s.Result.State {
	case planner.StateWellFormed:
		return StatusOK
	case planner.StateFallback:
		return StatusWarning
	default:
		return StatusError
	}
}

// ToggleGrocery flips the checked flag of a grocery item key.
func (s Snapshot) ToggleGrocery(key string) (Snapshot, error) {
	if !contains(s.Grocery.Keys(), key) {
		return s, fmt.Errorf("grocery %q: %w", key, ErrUnknownItem)
	}
	next := s
	next.Checked = maps.Clone(s.Checked)
	if next.Checked == nil {
		next.Checked = map[string]bool{}
	}
	next.Checked[key] = !s.Checked[key]
	return next, nil
}

// ToggleTask flips the completed flag of a prep task key.
func (s Snapshot) ToggleTask(key string) (Snapshot, error) {
	if !contains(s.Prep.Keys(), key) {
		return s, fmt.Errorf("prep task %q: %w", key, ErrUnknownItem)
	}
	next := s
	next.Completed = maps.Clone(s.Completed)
	if next.Completed == nil {
		next.Completed = map[string]bool{}
	}
	next.Completed[key] = !s.Completed[key]
	return next, nil
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
