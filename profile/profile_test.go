package profile

import (
	"errors"
	"strings"
	"testing"

	"nutriplan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func veganProfile() nutriplan.UserProfile {
	return nutriplan.UserProfile{
		Gender:        "Female",
		Age:           25,
		WeightKg:      70,
		HeightCm:      170,
		DietType:      "Vegan",
		ActivityLevel: "Moderately Active",
		HealthGoals:   []string{"Weight Loss"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p *nutriplan.UserProfile)
		wantField string
	}{
		{name: "valid profile", mutate: func(p *nutriplan.UserProfile) {}},
		{name: "age too low", mutate: func(p *nutriplan.UserProfile) { p.Age = 0 }, wantField: "age"},
		{name: "age too high", mutate: func(p *nutriplan.UserProfile) { p.Age = 121 }, wantField: "age"},
		{name: "zero weight", mutate: func(p *nutriplan.UserProfile) { p.WeightKg = 0 }, wantField: "weight"},
		{name: "height too short", mutate: func(p *nutriplan.UserProfile) { p.HeightCm = 49 }, wantField: "height"},
		{name: "height too tall", mutate: func(p *nutriplan.UserProfile) { p.HeightCm = 251 }, wantField: "height"},
		{name: "unknown diet", mutate: func(p *nutriplan.UserProfile) { p.DietType = "Carnivore" }, wantField: "diet_type"},
		{name: "unknown activity", mutate: func(p *nutriplan.UserProfile) { p.ActivityLevel = "Busy" }, wantField: "activity_level"},
		{name: "unknown goal", mutate: func(p *nutriplan.UserProfile) { p.HealthGoals = []string{"Fly"} }, wantField: "health_goals"},
		{name: "unknown gender", mutate: func(p *nutriplan.UserProfile) { p.Gender = "robot" }, wantField: "gender"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := veganProfile()
			tt.mutate(&p)

			err := Validate(p)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	err := Validate(nutriplan.UserProfile{})
	require.Error(t, err)
	for _, field := range []string{"age", "weight", "height", "diet_type", "activity_level"} {
		assert.Contains(t, err.Error(), "invalid "+field)
	}
}

func TestFormat(t *testing.T) {
	t.Run("empty profile", func(t *testing.T) {
		assert.Equal(t, "No user profile available.", Format(nutriplan.UserProfile{}))
	})

	t.Run("filled profile", func(t *testing.T) {
		p := veganProfile()
		p.HealthGoals = []string{"Weight Loss", "Heart Health"}
		p.WeightKg = 70.5
		p.Allergies = "peanuts"

		got := Format(p)
		lines := strings.Split(got, "\n")
		require.Len(t, lines, 11)
		assert.Equal(t, "- Gender: Female", lines[0])
		assert.Equal(t, "- Age: 25", lines[1])
		assert.Equal(t, "- Weight: 70.5 kg", lines[2])
		assert.Equal(t, "- Height: 170 cm", lines[3])
		assert.Equal(t, "- Diet Type: Vegan", lines[4])
		assert.Equal(t, "- Activity Level: Moderately Active", lines[5])
		assert.Equal(t, "- Health Goals: Weight Loss, Heart Health", lines[6])
		assert.Equal(t, "- Food Allergies: peanuts", lines[7])
		assert.Equal(t, "- Food Dislikes: None", lines[8])
		assert.Equal(t, "- Food Preferences: Not specified", lines[9])
		assert.Equal(t, "- Medical Conditions: None", lines[10])
	})

	t.Run("partial profile uses defaults", func(t *testing.T) {
		got := Format(nutriplan.UserProfile{DietType: "Keto"})
		assert.Contains(t, got, "- Age: Not specified")
		assert.Contains(t, got, "- Weight: Not specified kg")
		assert.Contains(t, got, "- Diet Type: Keto")
	})
}
