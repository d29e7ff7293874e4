package planner

import "nutriplan"

func meal(name string, ingredients []string, notes string, cal, protein, carbs, fat, fiber float64) nutriplan.MealEntry {
	return nutriplan.MealEntry{
		Meal:        name,
		Ingredients: ingredients,
		PrepNotes:   notes,
		Nutrition: nutriplan.Nutrition{
			Calories: cal,
			Protein:  protein,
			Carbs:    carbs,
			Fat:      fat,
			Fiber:    fiber,
		},
	}
}

// baseFallbackWeek is indexed like nutriplan.Weekdays and nutriplan.MealSlots.
func baseFallbackWeek() [7][5]nutriplan.MealEntry {
	return [7][5]nutriplan.MealEntry{
		{ // Monday
			meal("Oatmeal with berries and walnuts", []string{"rolled oats", "whole milk", "blueberries", "walnuts", "cinnamon"}, "", 350, 12, 45, 10, 8),
			meal("Grilled chicken salad with vegetables", []string{"chicken breast", "mixed greens", "cherry tomatoes", "cucumber", "olive oil"}, "Marinate the chicken overnight with lemon and herbs", 450, 30, 25, 15, 6),
			meal("Baked salmon with quinoa and asparagus", []string{"salmon fillet", "quinoa", "asparagus", "lemon", "garlic"}, "", 500, 35, 40, 18, 7),
			meal("Greek yogurt with berries", []string{"greek yogurt", "strawberries", "honey"}, "", 150, 10, 15, 5, 3),
			meal("Mixed nuts and dried fruits", []string{"almonds", "cashews", "dried apricots"}, "", 180, 5, 14, 12, 3),
		},
		{ // Tuesday
			meal("Scrambled eggs on whole grain toast", []string{"eggs", "whole grain bread", "butter", "spinach"}, "", 360, 20, 28, 18, 4),
			meal("Turkey and hummus wrap", []string{"whole wheat tortilla", "turkey breast", "hummus", "lettuce", "tomato"}, "", 460, 32, 40, 16, 7),
			meal("Beef and broccoli stir-fry with brown rice", []string{"beef sirloin", "broccoli", "brown rice", "soy sauce", "ginger"}, "", 540, 36, 52, 18, 6),
			meal("Cottage cheese with pineapple", []string{"cottage cheese", "pineapple"}, "", 160, 14, 16, 3, 1),
			meal("Apple slices with almond butter", []string{"apple", "almond butter"}, "", 190, 4, 22, 10, 5),
		},
		{ // Wednesday
			meal("Banana walnut smoothie bowl", []string{"banana", "greek yogurt", "whole milk", "walnuts", "granola"}, "", 380, 16, 52, 12, 6),
			meal("Tuna nicoise salad", []string{"canned tuna", "green beans", "potatoes", "eggs", "olives"}, "", 470, 34, 30, 20, 6),
			meal("Herb roasted chicken thighs with sweet potato", []string{"chicken thighs", "sweet potato", "rosemary", "olive oil", "green beans"}, "", 560, 38, 44, 22, 7),
			meal("Cheddar and whole grain crackers", []string{"cheddar cheese", "whole grain crackers"}, "", 180, 8, 16, 9, 2),
			meal("Carrot sticks with hummus", []string{"carrot", "hummus"}, "", 120, 4, 14, 5, 4),
		},
		{ // Thursday
			meal("Whole grain pancakes with banana", []string{"whole wheat flour", "whole milk", "eggs", "banana", "maple syrup"}, "", 390, 13, 62, 9, 5),
			meal("Chicken and barley soup", []string{"chicken breast", "carrot", "celery", "onion", "chicken broth", "barley"}, "", 420, 30, 40, 10, 8),
			meal("Grilled shrimp tacos with slaw", []string{"shrimp", "corn tortillas", "cabbage", "lime", "avocado"}, "", 510, 32, 48, 18, 9),
			meal("Kefir with honey", []string{"kefir", "honey"}, "", 140, 8, 18, 3, 0),
			meal("Roasted chickpeas", []string{"canned chickpeas", "paprika", "olive oil"}, "", 150, 7, 20, 5, 6),
		},
		{ // Friday
			meal("Spinach and mushroom omelette", []string{"eggs", "spinach", "mushrooms", "feta cheese", "whole grain bread"}, "", 370, 24, 18, 22, 3),
			meal("Mediterranean lamb pita", []string{"lamb mince", "pita bread", "cucumber", "tomato", "tzatziki"}, "", 520, 30, 44, 24, 5),
			meal("Baked cod with roasted vegetables", []string{"cod fillet", "zucchini", "bell pepper", "red onion", "olive oil"}, "", 450, 36, 20, 18, 6),
			meal("Greek yogurt with granola", []string{"greek yogurt", "granola"}, "", 180, 12, 22, 5, 2),
			meal("Pear and pumpkin seeds", []string{"pear", "pumpkin seeds"}, "", 160, 6, 20, 8, 5),
		},
		{ // Saturday
			meal("Avocado toast with poached eggs", []string{"sourdough bread", "avocado", "eggs", "chili flakes"}, "", 370, 16, 30, 20, 8),
			meal("BBQ chicken quinoa bowl", []string{"chicken breast", "bbq sauce", "quinoa", "corn", "canned black beans"}, "", 520, 38, 58, 12, 10),
			meal("Pork tenderloin with roasted potatoes", []string{"pork tenderloin", "potatoes", "green beans", "garlic", "thyme"}, "", 560, 40, 46, 18, 6),
			meal("Mozzarella and grapes", []string{"mozzarella cheese", "grapes"}, "", 150, 8, 16, 6, 1),
			meal("Orange and almonds", []string{"orange", "almonds"}, "", 170, 5, 18, 9, 4),
		},
		{ // Sunday
			meal("Overnight oats with chia and mango", []string{"rolled oats", "whole milk", "chia seeds", "mango"}, "Soak oats and chia overnight in milk", 360, 13, 50, 11, 9),
			meal("Salmon poke bowl", []string{"salmon", "sushi rice", "frozen edamame", "cucumber", "seaweed"}, "", 540, 32, 60, 16, 5),
			meal("Tandoori chicken with brown rice", []string{"chicken thighs", "greek yogurt", "tandoori masala", "brown rice", "cucumber"}, "", 580, 42, 50, 18, 5),
			meal("Cottage cheese with peach", []string{"cottage cheese", "peach"}, "", 150, 13, 12, 4, 1),
			meal("Dark chocolate and walnuts", []string{"dark chocolate", "walnuts"}, "", 190, 4, 12, 15, 3),
		},
	}
}

// vegetarianLunchDinner holds meat-free lunch and dinner replacements per day.
// They carry no dairy or eggs so they also serve vegan profiles.
func vegetarianLunchDinner() [7][2]nutriplan.MealEntry {
	return [7][2]nutriplan.MealEntry{
		{
			meal("Vegetarian protein bowl with legumes", []string{"canned chickpeas", "quinoa", "roasted red pepper", "spinach", "tahini"}, "", 470, 20, 58, 16, 12),
			meal("Tofu stir-fry with brown rice and vegetables", []string{"firm tofu", "brown rice", "broccoli", "bell pepper", "soy sauce"}, "", 500, 26, 56, 16, 8),
		},
		{
			meal("Black bean and corn burrito bowl", []string{"dried black beans", "brown rice", "corn", "salsa", "avocado"}, "Soak black beans overnight if using dried", 520, 18, 78, 14, 16),
			meal("Red lentil dal with basmati rice", []string{"red lentils", "basmati rice", "onion", "garlic", "turmeric", "cumin"}, "", 520, 22, 86, 8, 14),
		},
		{
			meal("Mediterranean chickpea salad", []string{"canned chickpeas", "cucumber", "cherry tomatoes", "red onion", "parsley", "olive oil"}, "", 430, 16, 50, 18, 12),
			meal("Grilled tempeh with roasted vegetables", []string{"tempeh", "zucchini", "bell pepper", "red onion", "olive oil"}, "", 510, 30, 34, 26, 9),
		},
		{
			meal("Lentil and vegetable soup", []string{"green lentils", "carrot", "celery", "onion", "vegetable broth"}, "", 400, 20, 58, 6, 16),
			meal("Chana masala with brown rice", []string{"dried chickpeas", "tomato", "onion", "ginger", "garam masala", "brown rice"}, "", 540, 20, 84, 12, 16),
		},
		{
			meal("Falafel wrap with tahini", []string{"falafel", "whole wheat tortilla", "lettuce", "tomato", "tahini"}, "", 500, 18, 58, 22, 10),
			meal("Vegetable and tofu green curry", []string{"firm tofu", "coconut milk", "green curry paste", "eggplant", "jasmine rice"}, "", 560, 22, 60, 26, 6),
		},
		{
			meal("Quinoa stuffed bell peppers", []string{"quinoa", "bell pepper", "canned black beans", "tomato", "cumin"}, "", 460, 18, 70, 10, 14),
			meal("Whole wheat pasta primavera", []string{"whole wheat pasta", "zucchini", "cherry tomatoes", "spinach", "garlic", "olive oil"}, "", 530, 18, 82, 14, 12),
		},
		{
			meal("Hummus and roasted vegetable sandwich", []string{"whole grain bread", "hummus", "zucchini", "roasted red pepper", "arugula"}, "", 460, 16, 60, 16, 11),
			meal("Rajma with steamed rice", []string{"dried kidney beans", "basmati rice", "tomato", "onion", "garam masala"}, "", 540, 20, 90, 8, 18),
		},
	}
}

// veganBreakfasts replace the dairy-based breakfasts.
func veganBreakfasts() [7]nutriplan.MealEntry {
	return [7]nutriplan.MealEntry{
		meal("Oatmeal with berries and walnuts", []string{"rolled oats", "oat milk", "blueberries", "walnuts", "cinnamon"}, "", 340, 10, 48, 11, 9),
		meal("Tofu scramble on whole grain toast", []string{"firm tofu", "whole grain bread", "spinach", "turmeric", "olive oil"}, "", 350, 20, 28, 16, 6),
		meal("Banana walnut smoothie bowl", []string{"banana", "soy yogurt", "almond milk", "walnuts", "granola"}, "", 370, 12, 54, 12, 7),
		meal("Whole grain pancakes with banana", []string{"whole wheat flour", "oat milk", "ground flaxseed", "banana", "maple syrup"}, "", 380, 10, 64, 9, 7),
		meal("Chickpea flour omelette with mushrooms", []string{"chickpea flour", "spinach", "mushrooms", "nutritional yeast", "whole grain bread"}, "", 360, 18, 44, 10, 8),
		meal("Avocado toast with white beans", []string{"sourdough bread", "avocado", "canned white beans", "chili flakes"}, "", 380, 14, 42, 16, 12),
		meal("Overnight oats with chia and mango", []string{"rolled oats", "soy milk", "chia seeds", "mango"}, "Soak oats and chia overnight in soy milk", 350, 13, 52, 10, 10),
	}
}

// veganSnacks replace the dairy-based first snack.
func veganSnacks() [7]nutriplan.MealEntry {
	return [7]nutriplan.MealEntry{
		meal("Almond yogurt with berries", []string{"almond yogurt", "strawberries", "maple syrup"}, "", 150, 4, 20, 6, 3),
		meal("Pineapple with coconut flakes", []string{"pineapple", "coconut flakes"}, "", 140, 1, 20, 6, 3),
		meal("Whole grain crackers with hummus", []string{"whole grain crackers", "hummus"}, "", 170, 5, 22, 7, 4),
		meal("Apple with pecans", []string{"apple", "pecans", "cinnamon"}, "", 180, 2, 22, 10, 5),
		meal("Soy yogurt with granola", []string{"soy yogurt", "granola"}, "", 180, 8, 24, 6, 3),
		meal("Grapes and roasted edamame", []string{"grapes", "roasted edamame"}, "", 160, 9, 18, 5, 4),
		meal("Peach with almonds", []string{"peach", "almonds"}, "", 160, 5, 14, 9, 4),
	}
}
