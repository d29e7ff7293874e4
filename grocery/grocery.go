// Package grocery derives a categorized shopping list from a week plan.
package grocery

import (
	"sort"
	"strings"

	"nutriplan"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Others collects ingredients no category keyword matched.
const Others = "Others"

type Category struct {
	Name     string
	Keywords []string
}

// Categories are checked in order and the first keyword hit wins, so an
// ingredient matching two buckets lands in the earlier one. Keywords are
// matched as substrings of the lower-cased ingredient, which is why "egg"
// is spelled out ("eggs", "egg white") to keep eggplant out of Proteins.
var Categories = []Category{
	{
		Name: "Proteins",
		Keywords: []string{
			"chicken", "beef", "pork", "lamb", "turkey", "salmon", "tuna", "cod", "fish",
			"shrimp", "prawn", "sardine", "mackerel", "tilapia", "steak", "sausage", "bacon",
			"eggs", "egg white", "poached egg", "boiled egg", "fried egg",
			"tofu", "tempeh", "seitan", "paneer", "lentil", "chickpea", "black bean", "kidney bean",
			"white bean", "pinto bean", "navy bean", "cannellini", "edamame", "falafel",
			"peanut butter", "almond butter", "protein",
		},
	},
	{
		Name: "Grains & Carbs",
		Keywords: []string{
			"rice", "quinoa", "oats", "oatmeal", "bread", "pasta", "spaghetti", "noodle",
			"tortilla", "pita", "naan", "bagel", "barley", "couscous", "bulgur", "farro",
			"millet", "buckwheat", "polenta", "flour", "potato", "granola", "cracker", "cereal",
		},
	},
	{
		Name: "Vegetables",
		Keywords: []string{
			"spinach", "kale", "lettuce", "arugula", "greens", "cabbage", "broccoli",
			"cauliflower", "carrot", "celery", "cucumber", "tomato", "onion", "garlic", "shallot",
			"leek", "bell pepper", "red pepper", "green pepper", "jalapeno", "zucchini",
			"eggplant", "mushroom", "asparagus", "green bean", "peas", "corn", "squash",
			"pumpkin", "beet", "radish", "bok choy", "chard", "okra", "sprouts",
		},
	},
	{
		Name: "Fruits",
		Keywords: []string{
			"apple", "banana", "berry", "berries", "orange", "lemon", "lime", "mango",
			"peach", "pear", "grape", "kiwi", "melon", "cherry", "cherries", "apricot",
			"dates", "fig", "pomegranate", "avocado", "raisin", "plum", "papaya", "dried fruit",
		},
	},
	{
		Name: "Dairy & Alternatives",
		Keywords: []string{
			"milk", "yogurt", "yoghurt", "cheese", "butter", "cream", "kefir", "ghee",
			"feta", "mozzarella", "parmesan", "ricotta", "tzatziki",
		},
	},
	{
		Name: "Herbs & Spices",
		Keywords: []string{
			"basil", "parsley", "cilantro", "coriander", "mint", "dill", "rosemary", "thyme",
			"oregano", "sage", "cumin", "turmeric", "paprika", "cinnamon", "ginger", "masala",
			"curry", "chili", "chilli", "pepper", "salt", "nutmeg", "cardamom", "bay leaf",
			"vanilla", "seasoning", "spice", "herbs",
		},
	},
	{
		Name: "Pantry Items",
		Keywords: []string{
			"oil", "vinegar", "sauce", "honey", "syrup", "sugar", "stock", "broth", "nuts",
			"almond", "walnut", "cashew", "pecan", "pistachio", "seed", "tahini", "hummus",
			"mustard", "ketchup", "mayo", "salsa", "jam", "chocolate", "cocoa", "coconut",
			"baking", "yeast", "paste", "canned",
		},
	},
}

// Classify returns the category name for one ingredient.
func Classify(ingredient string) string {
	name := strings.ToLower(strings.TrimSpace(ingredient))
	for _, c := range Categories {
		for _, kw := range c.Keywords {
			if strings.Contains(name, kw) {
				return c.Name
			}
		}
	}
	return Others
}

// CategoryNames returns every category in display order, Others last.
func CategoryNames() []string {
	names := make([]string, 0, len(Categories)+1)
	for _, c := range Categories {
		names = append(names, c.Name)
	}
	return append(names, Others)
}

// List maps a category name to its sorted, deduplicated display items.
// Categories with no items are absent.
type List map[string][]string

// Derive walks every meal of plan. A nil plan yields an empty list.
// Blank or whitespace-only ingredient strings name nothing to buy and are
// skipped; every other ingredient lands in exactly one category.
func Derive(plan *nutriplan.WeekPlan) List {
	list := List{}
	if plan == nil {
		return list
	}

	title := cases.Title(language.English)
	seen := map[string]map[string]struct{}{}

	for _, day := range nutriplan.Weekdays {
		d, ok := plan.Day(day)
		if !ok {
			continue
		}
		for _, slot := range nutriplan.MealSlots {
			m, ok := d.Meal(slot)
			if !ok {
				continue
			}
			for _, ing := range m.Ingredients {
				trimmed := strings.TrimSpace(ing)
				if trimmed == "" {
					continue
				}
				cat := Classify(trimmed)
				display := title.String(trimmed)
				if seen[cat] == nil {
					seen[cat] = map[string]struct{}{}
				}
				if _, dup := seen[cat][display]; dup {
					continue
				}
				seen[cat][display] = struct{}{}
				list[cat] = append(list[cat], display)
			}
		}
	}

	for cat := range list {
		sort.Strings(list[cat])
	}
	return list
}

// Count is the number of items across all categories.
func (l List) Count() int {
	n := 0
	for _, items := range l {
		n += len(items)
	}
	return n
}

type Section struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// Sections returns the non-empty categories in display order.
func (l List) Sections() []Section {
	var out []Section
	for _, name := range CategoryNames() {
		if items := l[name]; len(items) > 0 {
			out = append(out, Section{Category: name, Items: items})
		}
	}
	return out
}

// Has reports whether item is listed under category.
func (l List) Has(category, item string) bool {
	for _, it := range l[category] {
		if it == item {
			return true
		}
	}
	return false
}

// Keys returns the checkbox identity of every item in display order.
func (l List) Keys() []string {
	var keys []string
	for _, sec := range l.Sections() {
		for _, item := range sec.Items {
			keys = append(keys, ItemKey(sec.Category, item))
		}
	}
	return keys
}

// ItemKey is the checkbox identity of one list item.
func ItemKey(category, item string) string {
	return "grocery:" + category + ":" + item
}
