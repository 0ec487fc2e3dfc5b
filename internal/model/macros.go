package model

import "math"

// Macros represents the four tracked nutritional quantities.
// Calories are kcal; protein, carbs and fat are grams.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// TargetMacros is the fixed daily budget. 70g protein * 4 = 280kcal,
// 175g carbs * 4 = 700kcal, 41g fat * 9 = 369kcal, total ~1350kcal.
var TargetMacros = Macros{
	Calories: 1350,
	Protein:  70,
	Carbs:    175,
	Fat:      41,
}

const (
	// ProteinHardLimit is the warning ceiling in grams. The 70g target is
	// soft; crossing 80g triggers a user-facing warning.
	ProteinHardLimit = 80.0

	// CarbShareTarget is the minimum percentage of daily energy that
	// should come from carbohydrates.
	CarbShareTarget = 50
)

// Add returns the field-wise sum of two Macros values.
func (m Macros) Add(o Macros) Macros {
	return Macros{
		Calories: m.Calories + o.Calories,
		Protein:  m.Protein + o.Protein,
		Carbs:    m.Carbs + o.Carbs,
		Fat:      m.Fat + o.Fat,
	}
}

// Aggregate sums the macros of every food item across the given meals.
// An empty input yields all-zero Macros.
func Aggregate(meals []Meal) Macros {
	var total Macros
	for _, meal := range meals {
		for _, food := range meal.Foods {
			total = total.Add(food.Macros)
		}
	}
	return total
}

// Remaining returns the per-field budget left against the target, clamped
// at zero so an overshoot never produces a negative quota.
func Remaining(current, target Macros) Macros {
	return Macros{
		Calories: math.Max(0, target.Calories-current.Calories),
		Protein:  math.Max(0, target.Protein-current.Protein),
		Carbs:    math.Max(0, target.Carbs-current.Carbs),
		Fat:      math.Max(0, target.Fat-current.Fat),
	}
}

// CarbEnergyShare returns the percentage of logged calories attributable to
// carbohydrates (4 kcal per gram), rounded to the nearest integer. The
// denominator is clamped to 1 so an empty day returns 0 instead of faulting.
func CarbEnergyShare(current Macros) int {
	totalCals := math.Max(current.Calories, 1)
	return int(math.Round(current.Carbs * 4 / totalCals * 100))
}

// CarbTargetMet reports whether carbohydrates supply at least half of the
// logged energy.
func CarbTargetMet(current Macros) bool {
	return CarbEnergyShare(current) >= CarbShareTarget
}

// ProteinOverLimit reports whether protein intake crossed the hard ceiling.
// This is derived for display, never stored.
func ProteinOverLimit(current Macros) bool {
	return current.Protein > ProteinHardLimit
}
