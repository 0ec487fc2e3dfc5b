package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	mealWith := func(id string, foods ...FoodItem) Meal {
		return Meal{ID: id, Foods: foods}
	}

	t.Run("empty meals yield zero totals", func(t *testing.T) {
		assert.Equal(t, Macros{}, Aggregate(nil))
		assert.Equal(t, Macros{}, Aggregate([]Meal{{ID: MealLunch, Foods: []FoodItem{}}}))
	})

	t.Run("sums across meals", func(t *testing.T) {
		meals := []Meal{
			mealWith(MealBreakfast,
				FoodItem{Name: "Egg", Macros: Macros{Calories: 72, Protein: 6.3, Carbs: 0.6, Fat: 4.8}},
				FoodItem{Name: "Milk", Macros: Macros{Calories: 130, Protein: 8, Carbs: 12, Fat: 5}},
			),
			mealWith(MealLunch,
				FoodItem{Name: "Rice", Macros: Macros{Calories: 260, Protein: 5, Carbs: 58, Fat: 0.6}},
			),
		}

		total := Aggregate(meals)
		assert.InDelta(t, 462, total.Calories, 1e-9)
		assert.InDelta(t, 19.3, total.Protein, 1e-9)
		assert.InDelta(t, 70.6, total.Carbs, 1e-9)
		assert.InDelta(t, 10.4, total.Fat, 1e-9)
	})

	t.Run("splitting foods across meals does not change the total", func(t *testing.T) {
		a := FoodItem{Macros: Macros{Calories: 100, Protein: 10, Carbs: 5, Fat: 3}}
		b := FoodItem{Macros: Macros{Calories: 200, Protein: 1, Carbs: 40, Fat: 2}}

		together := Aggregate([]Meal{mealWith(MealLunch, a, b)})
		apart := Aggregate([]Meal{mealWith(MealLunch, a), mealWith(MealDinner, b)})
		assert.Equal(t, together, apart)
	})
}

func TestRemaining(t *testing.T) {
	t.Run("subtracts field-wise", func(t *testing.T) {
		rem := Remaining(Macros{Calories: 350, Protein: 20, Carbs: 75, Fat: 11}, TargetMacros)
		assert.Equal(t, Macros{Calories: 1000, Protein: 50, Carbs: 100, Fat: 30}, rem)
	})

	t.Run("clamps overshoot to zero", func(t *testing.T) {
		rem := Remaining(Macros{Calories: 2000, Protein: 90, Carbs: 100, Fat: 60}, TargetMacros)
		assert.Equal(t, 0.0, rem.Calories)
		assert.Equal(t, 0.0, rem.Protein)
		assert.Equal(t, 75.0, rem.Carbs)
		assert.Equal(t, 0.0, rem.Fat)
	})

	t.Run("zero intake leaves the full target", func(t *testing.T) {
		assert.Equal(t, TargetMacros, Remaining(Macros{}, TargetMacros))
	})
}

func TestCarbEnergyShare(t *testing.T) {
	t.Run("zero calories reports zero share", func(t *testing.T) {
		assert.Equal(t, 0, CarbEnergyShare(Macros{}))
		assert.False(t, CarbTargetMet(Macros{}))
	})

	t.Run("carbs at four kcal per gram", func(t *testing.T) {
		// 100g carbs = 400 kcal out of 800 = 50%
		share := CarbEnergyShare(Macros{Calories: 800, Carbs: 100})
		assert.Equal(t, 50, share)
		assert.True(t, CarbTargetMet(Macros{Calories: 800, Carbs: 100}))
	})

	t.Run("rounds to nearest integer", func(t *testing.T) {
		// 58*4/462*100 = 50.21 -> 50
		assert.Equal(t, 50, CarbEnergyShare(Macros{Calories: 462, Carbs: 58}))
		// 55*4/462*100 = 47.6 -> 48
		assert.Equal(t, 48, CarbEnergyShare(Macros{Calories: 462, Carbs: 55}))
	})

	t.Run("just under half misses the target", func(t *testing.T) {
		assert.False(t, CarbTargetMet(Macros{Calories: 810, Carbs: 100}))
	})
}

func TestProteinOverLimit(t *testing.T) {
	assert.False(t, ProteinOverLimit(Macros{Protein: 70}))
	assert.False(t, ProteinOverLimit(Macros{Protein: 80}))
	assert.True(t, ProteinOverLimit(Macros{Protein: 80.1}))
}
