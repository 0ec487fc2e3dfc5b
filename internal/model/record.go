package model

// Fixed meal identifiers. Every daily record carries exactly these four
// meals; meals are never added or removed, only their contents change.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// MealIDs lists the fixed meal identifiers in display order.
var MealIDs = []string{MealBreakfast, MealLunch, MealDinner, MealSnack}

// FoodItem is a single logged food. Weight follows the cooked-weight
// convention: all recorded weights are post-cooking grams.
type FoodItem struct {
	Name        string  `json:"name"`
	Weight      float64 `json:"weight"`
	Macros      Macros  `json:"macros"`
	CookingNote string  `json:"cookingNote,omitempty"`
}

// Meal is one of the four fixed slots of a day. IsLocked means the user has
// committed to this meal's contents, either by accepting an AI result or by
// adding foods manually.
type Meal struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Foods    []FoodItem `json:"foods"`
	IsLocked bool       `json:"isLocked"`
}

// BodyMetrics holds the optional daily body measurements. A nil field means
// "not recorded today", not zero.
type BodyMetrics struct {
	Weight *float64 `json:"weight,omitempty"`
	Waist  *float64 `json:"waist,omitempty"`
	Thigh  *float64 `json:"thigh,omitempty"`
	Calf   *float64 `json:"calf,omitempty"`
}

// DailyRecord is the full persisted state for one calendar date.
type DailyRecord struct {
	Date    string      `json:"date"`
	Meals   []Meal      `json:"meals"`
	Metrics BodyMetrics `json:"metrics"`
}

// defaultBreakfast returns the two fixed items every new day starts with.
func defaultBreakfast() []FoodItem {
	return []FoodItem{
		{Name: "Boiled egg", Weight: 50, Macros: Macros{Calories: 72, Protein: 6.3, Carbs: 0.6, Fat: 4.8}},
		{Name: "Milk (250ml)", Weight: 250, Macros: Macros{Calories: 130, Protein: 8, Carbs: 12, Fat: 5}},
	}
}

// NewDailyRecord builds the default skeleton for a date: breakfast
// pre-populated and locked, the other three meals empty and unlocked.
func NewDailyRecord(date string) DailyRecord {
	return DailyRecord{
		Date: date,
		Meals: []Meal{
			{ID: MealBreakfast, Name: "Breakfast", Foods: defaultBreakfast(), IsLocked: true},
			{ID: MealLunch, Name: "Lunch", Foods: []FoodItem{}, IsLocked: false},
			{ID: MealDinner, Name: "Dinner", Foods: []FoodItem{}, IsLocked: false},
			{ID: MealSnack, Name: "Snack", Foods: []FoodItem{}, IsLocked: false},
		},
		Metrics: BodyMetrics{},
	}
}

// ValidMealID reports whether id is one of the four fixed meal identifiers.
func ValidMealID(id string) bool {
	for _, m := range MealIDs {
		if m == id {
			return true
		}
	}
	return false
}

// Meal returns the meal with the given id, if present.
func (r DailyRecord) Meal(id string) (Meal, bool) {
	for _, m := range r.Meals {
		if m.ID == id {
			return m, true
		}
	}
	return Meal{}, false
}

// HasFoods reports whether any meal contains at least one food item. An
// all-empty record is never persisted, so browsing to an unvisited date does
// not create storage entries.
func (r DailyRecord) HasFoods() bool {
	for _, m := range r.Meals {
		if len(m.Foods) > 0 {
			return true
		}
	}
	return false
}

// Totals returns the aggregated macros across all four meals. Totals are
// always re-derived from current foods, never stored.
func (r DailyRecord) Totals() Macros {
	return Aggregate(r.Meals)
}

// clone deep-copies the record so mutations never alias the caller's slices.
func (r DailyRecord) clone() DailyRecord {
	out := r
	out.Meals = make([]Meal, len(r.Meals))
	for i, m := range r.Meals {
		cm := m
		cm.Foods = make([]FoodItem, len(m.Foods))
		copy(cm.Foods, m.Foods)
		out.Meals[i] = cm
	}
	return out
}

// AcceptAIResult replaces the meal's foods wholesale with the AI's
// ingredient list and locks the meal. Any prior foods are discarded: an AI
// decision is an authoritative commitment, not an incremental addition.
// Unknown meal ids are a no-op.
func (r DailyRecord) AcceptAIResult(mealID string, res AiResponse) DailyRecord {
	out := r.clone()
	for i := range out.Meals {
		if out.Meals[i].ID == mealID {
			out.Meals[i].Foods = res.FoodItems()
			out.Meals[i].IsLocked = true
		}
	}
	return out
}

// AppendFoods concatenates new items onto the meal's existing foods,
// preserving entry order, and locks the meal. Supports logging a meal in
// multiple passes.
func (r DailyRecord) AppendFoods(mealID string, foods []FoodItem) DailyRecord {
	out := r.clone()
	for i := range out.Meals {
		if out.Meals[i].ID == mealID {
			out.Meals[i].Foods = append(out.Meals[i].Foods, foods...)
			out.Meals[i].IsLocked = true
		}
	}
	return out
}

// EditFood replaces the item at index in place without touching the lock.
// Out-of-range indexes and unknown meal ids are silent no-ops; callers edit
// from an already-open context with a captured index.
func (r DailyRecord) EditFood(mealID string, index int, updated FoodItem) DailyRecord {
	out := r.clone()
	for i := range out.Meals {
		if out.Meals[i].ID == mealID && index >= 0 && index < len(out.Meals[i].Foods) {
			out.Meals[i].Foods[index] = updated
		}
	}
	return out
}

// DeleteFood removes the item at index, shifting later items down. The lock
// is left untouched: a meal may stay locked with zero foods after its only
// item is deleted. Out-of-range indexes are silent no-ops.
func (r DailyRecord) DeleteFood(mealID string, index int) DailyRecord {
	out := r.clone()
	for i := range out.Meals {
		if out.Meals[i].ID == mealID && index >= 0 && index < len(out.Meals[i].Foods) {
			out.Meals[i].Foods = append(out.Meals[i].Foods[:index], out.Meals[i].Foods[index+1:]...)
		}
	}
	return out
}

// ClearMeal empties the meal's foods and unlocks it. Full reset, used to
// undo a committed meal.
func (r DailyRecord) ClearMeal(mealID string) DailyRecord {
	out := r.clone()
	for i := range out.Meals {
		if out.Meals[i].ID == mealID {
			out.Meals[i].Foods = []FoodItem{}
			out.Meals[i].IsLocked = false
		}
	}
	return out
}

// WithMetrics replaces the record's body metrics block.
func (r DailyRecord) WithMetrics(m BodyMetrics) DailyRecord {
	out := r.clone()
	out.Metrics = m
	return out
}
