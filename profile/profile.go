// Package profile validates user profiles, renders them into prompt context
// and loads them from local files or S3.
package profile

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"nutriplan"
)

var (
	Genders = []string{"Male", "Female", "Other", "Prefer not to say"}

	DietTypes = []string{
		"Vegetarian", "Non-Vegetarian", "Vegan", "Pescatarian",
		"Keto", "Paleo", "Mediterranean", "Other",
	}

	ActivityLevels = []string{
		"Sedentary", "Lightly Active", "Moderately Active", "Very Active", "Extremely Active",
	}

	HealthGoals = []string{
		"Weight Loss", "Weight Gain", "Muscle Building", "Maintenance",
		"Better Nutrition", "Improved Energy", "Heart Health", "Diabetes Management",
	}
)

const noProfile = "No user profile available."

// ValidationError names the offending profile field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks ranges and enum membership. All violations are joined.
func Validate(p nutriplan.UserProfile) error {
	var errs []error
	if p.Gender != "" && !slices.Contains(Genders, p.Gender) {
		errs = append(errs, &ValidationError{"gender", fmt.Sprintf("unknown value %q", p.Gender)})
	}
	if p.Age < 1 || p.Age > 120 {
		errs = append(errs, &ValidationError{"age", "must be between 1 and 120"})
	}
	if !(p.WeightKg > 0) {
		errs = append(errs, &ValidationError{"weight", "must be greater than 0"})
	}
	if p.HeightCm < 50 || p.HeightCm > 250 {
		errs = append(errs, &ValidationError{"height", "must be between 50 and 250"})
	}
	if !slices.Contains(DietTypes, p.DietType) {
		errs = append(errs, &ValidationError{"diet_type", fmt.Sprintf("unknown value %q", p.DietType)})
	}
	if !slices.Contains(ActivityLevels, p.ActivityLevel) {
		errs = append(errs, &ValidationError{"activity_level", fmt.Sprintf("unknown value %q", p.ActivityLevel)})
	}
	for _, g := range p.HealthGoals {
		if !slices.Contains(HealthGoals, g) {
			errs = append(errs, &ValidationError{"health_goals", fmt.Sprintf("unknown value %q", g)})
		}
	}
	return errors.Join(errs...)
}

// Format renders the profile as the context block embedded in prompts.
func Format(p nutriplan.UserProfile) string {
	if p.IsZero() {
		return noProfile
	}

	lines := []string{
		"- Gender: " + or(p.Gender, "Not specified"),
		"- Age: " + orInt(p.Age, "Not specified"),
		"- Weight: " + orFloat(p.WeightKg, "Not specified") + " kg",
		"- Height: " + orInt(p.HeightCm, "Not specified") + " cm",
		"- Diet Type: " + or(p.DietType, "Not specified"),
		"- Activity Level: " + or(p.ActivityLevel, "Not specified"),
		"- Health Goals: " + or(strings.Join(p.HealthGoals, ", "), "Not specified"),
		"- Food Allergies: " + or(p.Allergies, "None"),
		"- Food Dislikes: " + or(p.Dislikes, "None"),
		"- Food Preferences: " + or(p.Likes, "Not specified"),
		"- Medical Conditions: " + or(p.MedicalConditions, "None"),
	}
	return strings.Join(lines, "\n")
}

func or(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

func orInt(v int, def string) string {
	if v == 0 {
		return def
	}
	return strconv.Itoa(v)
}

func orFloat(v float64, def string) string {
	if v == 0 {
		return def
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
