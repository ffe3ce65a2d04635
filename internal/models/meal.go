package models

import "time"

// DateLayout is the calendar-date format used everywhere a Meal or
// GroceryItem carries a date. No time component.
const DateLayout = "2006-01-02"

// MealType is the slot a meal occupies within a day.
type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
	MealSnack     MealType = "Snack"
)

// MealTypes lists the slots in display order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// Meal schedules a recipe (or a freeform note) onto one calendar date and
// one slot. RecipeName is a display projection cached at scheduling time;
// it is stale-tolerant and refreshed whenever the backend returns an
// embedded Recipe. Multiple meals may occupy the same (date, slot).
type Meal struct {
	ID         string   `json:"id"`
	Date       string   `json:"date"` // YYYY-MM-DD
	MealType   MealType `json:"mealType"`
	RecipeID   string   `json:"recipeId,omitempty"`
	RecipeName string   `json:"recipeName,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	CreatedAt  string   `json:"createdAt"`
	Recipe     *Recipe  `json:"recipe,omitempty"`
}

// NextDateFor returns the next calendar date falling on the given
// weekday, strictly after today. Asking for today's weekday yields the
// same day next week. The week is Monday-first.
func NextDateFor(today time.Time, weekday time.Weekday) time.Time {
	current := mondayFirst(today.Weekday())
	target := mondayFirst(weekday)
	days := target - current
	if days <= 0 {
		days += 7
	}
	return today.AddDate(0, 0, days)
}

// WeekStart returns the Monday of the week containing the given date.
func WeekStart(day time.Time) time.Time {
	return day.AddDate(0, 0, 1-mondayFirst(day.Weekday()))
}

func mondayFirst(w time.Weekday) int {
	if w == time.Sunday {
		return 7
	}
	return int(w)
}

// MealsOn filters meals scheduled on the given weekday and slot,
// preserving order. Meals with unparseable dates are skipped.
func MealsOn(meals []Meal, weekday time.Weekday, slot MealType) []Meal {
	var out []Meal
	for _, m := range meals {
		d, err := time.Parse(DateLayout, m.Date)
		if err != nil {
			continue
		}
		if d.Weekday() == weekday && m.MealType == slot {
			out = append(out, m)
		}
	}
	return out
}
