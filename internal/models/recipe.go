package models

import "strings"

// Difficulty is the subjective effort rating of a recipe.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// NormalizeDifficulty maps a backend difficulty value (lowercase on the
// wire) to its canonical capitalized form. Unknown or empty values
// default to Easy.
func NormalizeDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "medium":
		return DifficultyMedium
	case "hard":
		return DifficultyHard
	default:
		return DifficultyEasy
	}
}

// NutritionalInfo holds optional macros for a recipe. All fields are
// pass-through values; nothing in the client computes nutrition.
type NutritionalInfo struct {
	Calories *float64 `json:"calories,omitempty"`
	Protein  *float64 `json:"protein,omitempty"`
	Carbs    *float64 `json:"carbs,omitempty"`
	Fat      *float64 `json:"fat,omitempty"`
}

// Recipe represents a recipe in a user's library.
type Recipe struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Ingredients     []string         `json:"ingredients"`
	Instructions    string           `json:"instructions"`
	PrepTime        int              `json:"prepTime"` // minutes
	CookTime        int              `json:"cookTime"` // minutes
	Servings        int              `json:"servings"`
	Difficulty      Difficulty       `json:"difficulty"`
	Tags            []string         `json:"tags"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	NutritionalInfo *NutritionalInfo `json:"nutritionalInfo,omitempty"`
	CreatedAt       string           `json:"createdAt"`
}
