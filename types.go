package nutriplan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type SlackClient interface {
	PostMessage(ctx context.Context, channel string, message string) error
}

// Message is a single chat turn sent to a text generation model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerationRequest carries everything a provider needs for one completion.
type GenerationRequest struct {
	Messages    []Message          `json:"messages"`
	Temperature float32            `json:"temperature"`
	MaxTokens   int32              `json:"max_tokens"`
	Schema      *jsonschema.Schema `json:"-"`
}

// TextGenerator is implemented by every model provider.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

// UserProfile is the record submitted by the intake form.
type UserProfile struct {
	Gender            string   `json:"gender"`
	Age               int      `json:"age"`
	WeightKg          float64  `json:"weight"`
	HeightCm          int      `json:"height"`
	DietType          string   `json:"diet_type"`
	ActivityLevel     string   `json:"activity_level"`
	HealthGoals       []string `json:"health_goals"`
	Allergies         string   `json:"allergies"`
	Dislikes          string   `json:"dislikes"`
	Likes             string   `json:"likes"`
	MedicalConditions string   `json:"medical_conditions"`
}

// IsZero reports whether no profile field has been filled in.
func (p UserProfile) IsZero() bool {
	return p.Gender == "" && p.Age == 0 && p.WeightKg == 0 && p.HeightCm == 0 &&
		p.DietType == "" && p.ActivityLevel == "" && len(p.HealthGoals) == 0 &&
		p.Allergies == "" && p.Dislikes == "" && p.Likes == "" && p.MedicalConditions == ""
}

type MealSlot string

const (
	Breakfast MealSlot = "breakfast"
	Lunch     MealSlot = "lunch"
	Dinner    MealSlot = "dinner"
	Snack1    MealSlot = "snack1"
	Snack2    MealSlot = "snack2"
)

// MealSlots lists the five slots of a day in display order.
var MealSlots = []MealSlot{Breakfast, Lunch, Dinner, Snack1, Snack2}

// Weekdays lists plan days in their fixed order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// SlotLabel returns the display label for a meal slot.
func SlotLabel(slot MealSlot) string {
	switch slot {
	case Breakfast:
		return "Breakfast"
	case Lunch:
		return "Lunch"
	case Dinner:
		return "Dinner"
	case Snack1:
		return "Snack 1"
	case Snack2:
		return "Snack 2"
	default:
		return string(slot)
	}
}

// Nutrition holds the five tracked nutrient values of a meal or an aggregate.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

func (n Nutrition) Add(o Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Carbs:    n.Carbs + o.Carbs,
		Fat:      n.Fat + o.Fat,
		Fiber:    n.Fiber + o.Fiber,
	}
}

// MealEntry is one meal slot of one day.
type MealEntry struct {
	Meal        string   `json:"meal"`
	Ingredients []string `json:"ingredients"`
	PrepNotes   string   `json:"prep_notes"`
	Nutrition
}

// UnmarshalJSON accepts numbers or numeric strings for nutrient fields and
// treats anything else as zero. Non-string ingredients are dropped.
func (m *MealEntry) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = MealEntry{}
	m.Meal = lenientString(raw["meal"])
	m.PrepNotes = lenientString(raw["prep_notes"])

	if v, ok := raw["ingredients"]; ok {
		var items []json.RawMessage
		if err := json.Unmarshal(v, &items); err == nil && items != nil {
			m.Ingredients = make([]string, 0, len(items))
			for _, it := range items {
				var s string
				if json.Unmarshal(it, &s) == nil {
					m.Ingredients = append(m.Ingredients, s)
				}
			}
		}
	}

	m.Calories = lenientNumber(raw["calories"])
	m.Protein = lenientNumber(raw["protein"])
	m.Carbs = lenientNumber(raw["carbs"])
	m.Fat = lenientNumber(raw["fat"])
	m.Fiber = lenientNumber(raw["fiber"])
	return nil
}

func lenientString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func lenientNumber(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if json.Unmarshal(raw, &f) == nil {
		return nonNegative(f)
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return nonNegative(f)
		}
	}
	return 0
}

func nonNegative(f float64) float64 {
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// DayPlan maps meal slots to entries. Missing slots are simply absent.
type DayPlan map[MealSlot]MealEntry

func (d DayPlan) Meal(slot MealSlot) (MealEntry, bool) {
	m, ok := d[slot]
	return m, ok
}

// MissingSlots returns the slots this day has no entry for, in slot order.
func (d DayPlan) MissingSlots() []MealSlot {
	var missing []MealSlot
	for _, slot := range MealSlots {
		if _, ok := d[slot]; !ok {
			missing = append(missing, slot)
		}
	}
	return missing
}

func (d DayPlan) Totals() Nutrition {
	var total Nutrition
	for _, slot := range MealSlots {
		if m, ok := d[slot]; ok {
			total = total.Add(m.Nutrition)
		}
	}
	return total
}

func (d DayPlan) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, slot := range MealSlots {
		m, ok := d[slot]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := writeKeyValue(&buf, string(slot), m); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON keeps known slots whose value is an object and ignores the rest.
func (d *DayPlan) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(DayPlan, len(MealSlots))
	for _, slot := range MealSlots {
		v, ok := raw[string(slot)]
		if !ok || !isObject(v) {
			continue
		}
		var m MealEntry
		if err := json.Unmarshal(v, &m); err != nil {
			return fmt.Errorf("%s: %w", slot, err)
		}
		out[slot] = m
	}
	*d = out
	return nil
}

// FallbackInfo marks a plan that was synthesized instead of generated.
type FallbackInfo struct {
	Used          bool   `json:"used"`
	OriginalError string `json:"original_error"`
	RawResponse   string `json:"raw_response"`
}

// WeekPlan maps weekday names to day plans.
type WeekPlan struct {
	Days     map[string]DayPlan
	Fallback *FallbackInfo
}

func (w WeekPlan) Day(name string) (DayPlan, bool) {
	d, ok := w.Days[name]
	return d, ok
}

// IsFallback reports whether the plan was produced by fallback construction.
func (w WeekPlan) IsFallback() bool {
	return w.Fallback != nil && w.Fallback.Used
}

// MissingDays returns the weekdays absent from the plan, in weekday order.
func (w WeekPlan) MissingDays() []string {
	var missing []string
	for _, day := range Weekdays {
		if _, ok := w.Days[day]; !ok {
			missing = append(missing, day)
		}
	}
	return missing
}

// Totals sums every available meal entry across the week.
func (w WeekPlan) Totals() Nutrition {
	var total Nutrition
	for _, day := range Weekdays {
		if d, ok := w.Days[day]; ok {
			total = total.Add(d.Totals())
		}
	}
	return total
}

// DailyAverage is the weekly total integer-divided by 7 per nutrient.
func (w WeekPlan) DailyAverage() Nutrition {
	t := w.Totals()
	div := func(v float64) float64 { return math.Floor(v / float64(len(Weekdays))) }
	return Nutrition{
		Calories: div(t.Calories),
		Protein:  div(t.Protein),
		Carbs:    div(t.Carbs),
		Fat:      div(t.Fat),
		Fiber:    div(t.Fiber),
	}
}

// MarshalJSON writes weekdays in fixed order followed by the fallback marker.
func (w WeekPlan) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, day := range Weekdays {
		d, ok := w.Days[day]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := writeKeyValue(&buf, day, d); err != nil {
			return nil, err
		}
	}
	if w.Fallback != nil {
		if !first {
			buf.WriteByte(',')
		}
		if err := writeKeyValue(&buf, "fallback", w.Fallback); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON requires a JSON object. Unknown keys are ignored and a
// weekday whose value is not an object is treated as missing.
func (w *WeekPlan) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := WeekPlan{Days: make(map[string]DayPlan, len(Weekdays))}
	for _, day := range Weekdays {
		v, ok := raw[day]
		if !ok || !isObject(v) {
			continue
		}
		var d DayPlan
		if err := json.Unmarshal(v, &d); err != nil {
			return fmt.Errorf("%s: %w", day, err)
		}
		out.Days[day] = d
	}

	if v, ok := raw["fallback"]; ok && isObject(v) {
		var fb FallbackInfo
		if err := json.Unmarshal(v, &fb); err != nil {
			return fmt.Errorf("fallback: %w", err)
		}
		out.Fallback = &fb
	}

	*w = out
	return nil
}

func writeKeyValue(buf *bytes.Buffer, key string, v any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	val, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(val)
	return nil
}
