package model

import "math"

// RecommendationType selects between the two ask-the-AI flows.
type RecommendationType string

const (
	// RecommendationOpen asks "what should I eat?" with no candidates.
	RecommendationOpen RecommendationType = "OPEN"
	// RecommendationDecision asks the AI to choose among user options.
	RecommendationDecision RecommendationType = "DECISION"
)

// RecommendationRequest describes one meal-recommendation query.
type RecommendationRequest struct {
	Type            RecommendationType `json:"type"`
	RemainingMacros Macros             `json:"remainingMacros"`
	UserOptions     []string           `json:"userOptions,omitempty"`
	TargetMealName  string             `json:"targetMealName"`
}

// IngredientRecommendation is one ingredient of an AI-suggested meal, with
// its own macros so items stay individually editable after acceptance.
type IngredientRecommendation struct {
	Name        string  `json:"name"`
	Grams       float64 `json:"grams"`
	Reason      string  `json:"reason,omitempty"`
	Macros      Macros  `json:"macros"`
	CookingNote string  `json:"cookingNote,omitempty"`
}

// AiResponse is the structured answer to a recommendation query. It is
// transient: consumed once to materialize food items into a meal, never
// persisted.
type AiResponse struct {
	SelectedOption  string                     `json:"selectedOption"`
	Reason          string                     `json:"reason"`
	Ingredients     []IngredientRecommendation `json:"ingredients"`
	EstimatedMacros Macros                     `json:"estimatedMacros"`
}

// FoodItems converts the ingredient list 1:1 into food items, dropping the
// per-ingredient reason, which has no place in the persisted shape.
func (a AiResponse) FoodItems() []FoodItem {
	items := make([]FoodItem, 0, len(a.Ingredients))
	for _, ing := range a.Ingredients {
		items = append(items, FoodItem{
			Name:        ing.Name,
			Weight:      ing.Grams,
			Macros:      ing.Macros,
			CookingNote: ing.CookingNote,
		})
	}
	return items
}

// RescaleToWeight returns a copy of original with the new weight and macros
// scaled by the original per-gram ratios, rounded to one decimal. The ratio
// is anchored to the snapshot captured when the edit session opened, not to
// live values, so repeated edits within one session do not compound rounding
// error. A zero original weight is treated as 1 to avoid division by zero.
func RescaleToWeight(original FoodItem, newWeight float64) FoodItem {
	base := original.Weight
	if base == 0 {
		base = 1
	}
	ratio := newWeight / base

	out := original
	out.Weight = newWeight
	out.Macros = Macros{
		Calories: round1(original.Macros.Calories * ratio),
		Protein:  round1(original.Macros.Protein * ratio),
		Carbs:    round1(original.Macros.Carbs * ratio),
		Fat:      round1(original.Macros.Fat * ratio),
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
