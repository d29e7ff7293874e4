package planner

import (
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"

	"nutriplan"
)

// RawPreviewLimit bounds the raw completion kept for diagnostics.
const RawPreviewLimit = 500

const fence = "```"

// StripFences removes a leading and trailing code fence. A language tag
// directly after the opening fence is dropped as well.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, fence) {
		s = strings.TrimLeftFunc(s[len(fence):], func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
		})
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, fence)
	return strings.TrimSpace(s)
}

// ExtractJSON returns the span from the first '{' to the last '}' after
// fence stripping. ErrNoJSONObject means either brace is missing. When the
// last '}' comes before the first '{' the span is empty and fails to decode.
func ExtractJSON(raw string) (string, error) {
	s := StripFences(raw)
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < 0 {
		return "", ErrNoJSONObject
	}
	if end < start {
		return "", nil
	}
	return s[start : end+1], nil
}

// NormalizeWhitespace collapses every whitespace run, newlines and tabs
// included, to a single space. This is lossy for string values that contain
// deliberate runs of spaces.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Parse turns a raw completion into a week plan. It returns ErrNoJSONObject
// when no object span exists and a *DecodeError when the span does not
// decode into a plan with at least one weekday.
func Parse(raw string) (nutriplan.WeekPlan, error) {
	obj, err := ExtractJSON(raw)
	if err != nil {
		return nutriplan.WeekPlan{}, err
	}

	var plan nutriplan.WeekPlan
	if err := json.Unmarshal([]byte(NormalizeWhitespace(obj)), &plan); err != nil {
		return nutriplan.WeekPlan{}, &DecodeError{Err: err}
	}
	if len(plan.Days) == 0 {
		return nutriplan.WeekPlan{}, &DecodeError{Err: errNoWeekdays}
	}

	// only fallback construction may set the marker
	plan.Fallback = nil
	return plan, nil
}

// Truncate keeps at most RawPreviewLimit characters, appending "..." when cut.
func Truncate(s string) string {
	if utf8.RuneCountInString(s) <= RawPreviewLimit {
		return s
	}
	runes := []rune(s)
	return string(runes[:RawPreviewLimit]) + "..."
}
