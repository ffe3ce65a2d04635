package api

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/reciperadar/reciperadar/internal/models"
)

// The backend uses numeric ids and snake_case fields; the store uses
// opaque string ids and camelCase. Everything in this file is the
// bidirectional mapping between the two.

// ingredientWire is the backend's structured ingredient. Some endpoints
// historically returned bare name strings, so decoding accepts both.
type ingredientWire struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

func (i *ingredientWire) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		i.Name = name
		return nil
	}
	type plain ingredientWire
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*i = ingredientWire(p)
	return nil
}

type nutritionWire struct {
	Calories *float64 `json:"calories,omitempty"`
	Protein  *float64 `json:"protein,omitempty"`
	Carbs    *float64 `json:"carbs,omitempty"`
	Fat      *float64 `json:"fat,omitempty"`
}

type recipeWire struct {
	ID              json.Number      `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Instructions    string           `json:"instructions"`
	PrepTime        int              `json:"prep_time"`
	CookTime        int              `json:"cook_time"`
	Servings        int              `json:"servings"`
	Difficulty      string           `json:"difficulty"`
	Tags            []string         `json:"tags"`
	Ingredients     []ingredientWire `json:"ingredients"`
	ImageURL        string           `json:"image_url"`
	NutritionalInfo *nutritionWire   `json:"nutritional_info"`
	CreatedAt       string           `json:"created_at"`
}

// recipePayload is the create/update body: no id, no created_at.
type recipePayload struct {
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Instructions    string           `json:"instructions"`
	PrepTime        int              `json:"prep_time"`
	CookTime        int              `json:"cook_time"`
	Servings        int              `json:"servings"`
	Difficulty      string           `json:"difficulty"`
	Tags            []string         `json:"tags"`
	Ingredients     []ingredientWire `json:"ingredients"`
	NutritionalInfo *nutritionWire   `json:"nutritional_info"`
}

func recipeFromWire(w recipeWire) models.Recipe {
	recipe := models.Recipe{
		ID:           w.ID.String(),
		Title:        w.Title,
		Description:  w.Description,
		Instructions: w.Instructions,
		PrepTime:     w.PrepTime,
		CookTime:     w.CookTime,
		Servings:     w.Servings,
		Difficulty:   models.NormalizeDifficulty(w.Difficulty),
		Tags:         w.Tags,
		ImageURL:     w.ImageURL,
		CreatedAt:    w.CreatedAt,
	}
	if recipe.Servings == 0 {
		recipe.Servings = 1
	}
	if recipe.Tags == nil {
		recipe.Tags = []string{}
	}

	// Structured ingredients are flattened to plain names.
	recipe.Ingredients = make([]string, 0, len(w.Ingredients))
	for _, ing := range w.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, ing.Name)
	}

	if w.NutritionalInfo != nil {
		ni := w.NutritionalInfo
		if ni.Calories != nil || ni.Protein != nil || ni.Carbs != nil || ni.Fat != nil {
			recipe.NutritionalInfo = &models.NutritionalInfo{
				Calories: ni.Calories,
				Protein:  ni.Protein,
				Carbs:    ni.Carbs,
				Fat:      ni.Fat,
			}
		}
	}
	return recipe
}

func recipeToPayload(r *models.Recipe) recipePayload {
	// Plain names are re-expanded to structured ingredients with default
	// quantity 1 and empty unit. The round trip is lossy; see DESIGN.md.
	ingredients := make([]ingredientWire, 0, len(r.Ingredients))
	for _, name := range r.Ingredients {
		ingredients = append(ingredients, ingredientWire{Name: name, Quantity: 1, Unit: ""})
	}

	nutrition := &nutritionWire{}
	if r.NutritionalInfo != nil {
		nutrition.Calories = r.NutritionalInfo.Calories
		nutrition.Protein = r.NutritionalInfo.Protein
		nutrition.Carbs = r.NutritionalInfo.Carbs
		nutrition.Fat = r.NutritionalInfo.Fat
	}

	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}

	return recipePayload{
		Title:           r.Title,
		Description:     r.Description,
		Instructions:    r.Instructions,
		PrepTime:        r.PrepTime,
		CookTime:        r.CookTime,
		Servings:        r.Servings,
		Difficulty:      strings.ToLower(string(r.Difficulty)),
		Tags:            tags,
		Ingredients:     ingredients,
		NutritionalInfo: nutrition,
	}
}

type mealWire struct {
	ID        json.Number `json:"id"`
	Date      string      `json:"date"`
	MealType  string      `json:"meal_type"`
	RecipeID  json.Number `json:"recipe_id"`
	Notes     string      `json:"notes"`
	Planned   bool        `json:"planned"`
	CreatedAt string      `json:"created_at"`
	Recipe    *recipeWire `json:"recipe"`
}

type mealPayload struct {
	Date     string `json:"date"`
	MealType string `json:"meal_type"`
	RecipeID *int64 `json:"recipe_id"`
	Notes    string `json:"notes"`
	Planned  bool   `json:"planned"`
}

// mealFromWire maps a backend meal. fallbackName preserves the caller's
// cached recipe name when the backend returns no embedded recipe.
func mealFromWire(w mealWire, fallbackName string) models.Meal {
	meal := models.Meal{
		ID:        w.ID.String(),
		Date:      w.Date,
		MealType:  models.MealType(w.MealType),
		Notes:     w.Notes,
		CreatedAt: w.CreatedAt,
	}
	if w.RecipeID.String() != "" {
		meal.RecipeID = w.RecipeID.String()
	}
	switch {
	case w.Recipe != nil:
		recipe := recipeFromWire(*w.Recipe)
		meal.Recipe = &recipe
		meal.RecipeName = recipe.Title
	case fallbackName != "":
		meal.RecipeName = fallbackName
	default:
		meal.RecipeName = "Unknown Recipe"
	}
	return meal
}

func mealToPayload(m *models.Meal) mealPayload {
	payload := mealPayload{
		Date:     m.Date,
		MealType: string(m.MealType),
		Notes:    m.Notes,
		Planned:  true,
	}
	// Local ids are not numeric; they cannot reference server recipes and
	// are dropped rather than sent.
	if id, err := strconv.ParseInt(m.RecipeID, 10, 64); err == nil {
		payload.RecipeID = &id
	}
	return payload
}

type groceryWire struct {
	ID             json.Number `json:"id"`
	Name           string      `json:"name"`
	Quantity       float64     `json:"quantity"`
	Unit           string      `json:"unit"`
	Category       string      `json:"category"`
	ExpirationDate string      `json:"expiration_date"`
	CreatedAt      string      `json:"created_at"`
}

type groceryPayload struct {
	Name           string  `json:"name"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	Category       string  `json:"category"`
	ExpirationDate *string `json:"expiration_date,omitempty"`
}

func groceryFromWire(w groceryWire) models.GroceryItem {
	return models.GroceryItem{
		ID:             w.ID.String(),
		Name:           w.Name,
		Quantity:       w.Quantity,
		Unit:           w.Unit,
		Category:       w.Category,
		ExpirationDate: w.ExpirationDate,
		CreatedAt:      w.CreatedAt,
	}
}

func groceryToPayload(g *models.GroceryItem) groceryPayload {
	payload := groceryPayload{
		Name:     g.Name,
		Quantity: g.Quantity,
		Unit:     g.Unit,
		Category: g.Category,
	}
	if g.ExpirationDate != "" {
		date := g.ExpirationDate
		payload.ExpirationDate = &date
	}
	return payload
}

type userWire struct {
	ID                  json.Number    `json:"id"`
	Email               string         `json:"email"`
	Username            string         `json:"username"`
	FullName            string         `json:"full_name"`
	Role                string         `json:"role"`
	ClientCode          string         `json:"client_code"`
	DietaryRestrictions []string       `json:"dietary_restrictions"`
	Preferences         map[string]any `json:"preferences"`
}

func userFromWire(w userWire) *models.User {
	return &models.User{
		ID:                  w.ID.String(),
		Email:               w.Email,
		Username:            w.Username,
		FullName:            w.FullName,
		Role:                models.Role(w.Role),
		ClientCode:          w.ClientCode,
		DietaryRestrictions: w.DietaryRestrictions,
		Preferences:         w.Preferences,
	}
}
