// Package prep infers advance preparation work from a week plan and files
// each task under the evening before the meal it serves.
package prep

import (
	"fmt"
	"strconv"
	"strings"

	"nutriplan"
)

// SampleLimit caps the ingredients attached to a task for context.
const SampleLimit = 3

// triggerWords in a meal's prep notes promote the note itself to a task.
var triggerWords = []string{"soak", "marinate", "overnight", "freeze", "defrost", "advance", "chill", "prepare"}

type soakable struct {
	keyword     string
	instruction string
}

// soakables are checked in order; only the first hit per meal is used.
var soakables = []soakable{
	{"overnight oat", "Combine oats with milk in a jar and refrigerate overnight"},
	{"chia pudding", "Stir chia seeds into the liquid and refrigerate overnight"},
	{"chickpea", "Soak the chickpeas overnight in plenty of water"},
	{"chana", "Soak the chana (chickpeas) overnight in plenty of water"},
	{"rajma", "Soak the rajma (kidney beans) overnight in plenty of water"},
	{"kidney bean", "Soak the kidney beans overnight in plenty of water"},
	{"black bean", "Soak the black beans overnight in plenty of water"},
}

var marinableProteins = []string{
	"chicken", "beef", "pork", "lamb", "turkey", "salmon", "fish", "shrimp", "prawn", "tofu", "paneer", "tempeh",
}

var marinadeMethods = []string{
	"grilled", "grill", "bbq", "barbecue", "tandoori", "tikka", "kebab", "roasted", "teriyaki", "jerk", "satay",
}

// freshPrep ingredients get washed and chopped ahead for lunch and dinner.
var freshPrep = []string{
	"lettuce", "spinach", "kale", "arugula", "greens", "cabbage", "cucumber", "tomato",
	"cilantro", "parsley", "basil", "mint", "dill", "herbs",
}

const (
	saladInstruction    = "Wash and dry the salad greens and mix the dressing"
	smoothieInstruction = "Portion the smoothie ingredients into a bag and freeze"
	soupInstruction     = "Chop the soup vegetables and refrigerate them in a sealed container"
)

// Task is one piece of advance work for a specific meal.
type Task struct {
	ForDay            string             `json:"for_day"`
	MealSlot          nutriplan.MealSlot `json:"meal_slot"`
	MealSlotLabel     string             `json:"meal_slot_label"`
	MealName          string             `json:"meal_name"`
	Instruction       string             `json:"prep_instruction"`
	SampleIngredients []string           `json:"sample_ingredients"`
}

// Schedule maps the day a task is done on to its tasks. Days with nothing
// to prepare are absent.
type Schedule map[string][]Task

// PreviousDay returns the weekday before day, wrapping Monday to Sunday.
// Unknown names are returned unchanged.
func PreviousDay(day string) string {
	for i, d := range nutriplan.Weekdays {
		if d == day {
			n := len(nutriplan.Weekdays)
			return nutriplan.Weekdays[(i+n-1)%n]
		}
	}
	return day
}

// Derive inspects every meal of plan. A nil plan yields an empty schedule.
func Derive(plan *nutriplan.WeekPlan) Schedule {
	sched := Schedule{}
	if plan == nil {
		return sched
	}

	for _, day := range nutriplan.Weekdays {
		d, ok := plan.Day(day)
		if !ok {
			continue
		}
		on := PreviousDay(day)
		for _, slot := range nutriplan.MealSlots {
			m, ok := d.Meal(slot)
			if !ok {
				continue
			}
			for _, instr := range Instructions(slot, m) {
				sched[on] = append(sched[on], Task{
					ForDay:            day,
					MealSlot:          slot,
					MealSlotLabel:     nutriplan.SlotLabel(slot),
					MealName:          m.Meal,
					Instruction:       instr,
					SampleIngredients: sample(m.Ingredients),
				})
			}
		}
	}
	return sched
}

// Instructions returns the deduplicated prep instructions detected for one meal.
func Instructions(slot nutriplan.MealSlot, m nutriplan.MealEntry) []string {
	var out []string
	seen := map[string]struct{}{}
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	if notes := strings.TrimSpace(m.PrepNotes); notes != "" && containsAny(strings.ToLower(notes), triggerWords) {
		add(notes)
	}

	name := strings.ToLower(m.Meal)
	for _, s := range soakables {
		if strings.Contains(name, s.keyword) {
			add(s.instruction)
			break
		}
	}
	if protein := firstMatch(name, marinableProteins); protein != "" && containsAny(name, marinadeMethods) {
		add(fmt.Sprintf("Marinate the %s overnight in the fridge", protein))
	}

	var fresh []string
	for _, ing := range m.Ingredients {
		lower := strings.ToLower(strings.TrimSpace(ing))
		if strings.Contains(lower, "frozen") {
			add(fmt.Sprintf("Move the %s from the freezer to the fridge to thaw", lower))
			continue
		}
		if (slot == nutriplan.Lunch || slot == nutriplan.Dinner) && containsAny(lower, freshPrep) {
			fresh = append(fresh, lower)
		}
	}
	if len(fresh) > 0 {
		add("Wash and chop the " + strings.Join(fresh, ", "))
	}

	if strings.Contains(name, "salad") {
		add(saladInstruction)
	}
	if strings.Contains(name, "smoothie") {
		add(smoothieInstruction)
	}
	if strings.Contains(name, "soup") || strings.Contains(name, "stew") {
		add(soupInstruction)
	}
	return out
}

func containsAny(s string, words []string) bool {
	return firstMatch(s, words) != ""
}

func firstMatch(s string, words []string) string {
	for _, w := range words {
		if strings.Contains(s, w) {
			return w
		}
	}
	return ""
}

func sample(ingredients []string) []string {
	n := min(len(ingredients), SampleLimit)
	out := make([]string, n)
	copy(out, ingredients[:n])
	return out
}

// Count is the number of tasks across all days.
func (s Schedule) Count() int {
	n := 0
	for _, tasks := range s {
		n += len(tasks)
	}
	return n
}

// Days returns the days that have tasks, in weekday order.
func (s Schedule) Days() []string {
	var days []string
	for _, d := range nutriplan.Weekdays {
		if len(s[d]) > 0 {
			days = append(days, d)
		}
	}
	return days
}

// Keys returns the completion identity of every task in weekday order.
func (s Schedule) Keys() []string {
	var keys []string
	for _, d := range s.Days() {
		for i := range s[d] {
			keys = append(keys, TaskKey(d, i))
		}
	}
	return keys
}

// TaskKey is the completion identity of the index-th task filed under day.
func TaskKey(day string, index int) string {
	return "prep:" + day + ":" + strconv.Itoa(index)
}
