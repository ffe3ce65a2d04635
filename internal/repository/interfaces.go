package repository

import (
	"context"

	"github.com/reciperadar/reciperadar/internal/models"
)

// RecipeRepository defines the interface for recipe persistence. Create
// and Update return the stored projection, which may differ from the
// input (server-assigned ids, enriched fields).
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
	GetAll(ctx context.Context) ([]models.Recipe, error)
	Update(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
	Delete(ctx context.Context, id string) error
}

// MealRepository defines the interface for meal-plan persistence.
type MealRepository interface {
	Create(ctx context.Context, meal *models.Meal) (*models.Meal, error)
	GetAll(ctx context.Context) ([]models.Meal, error)
	Update(ctx context.Context, meal *models.Meal) (*models.Meal, error)
	Delete(ctx context.Context, id string) error
}

// GroceryRepository defines the interface for grocery-item persistence.
type GroceryRepository interface {
	Create(ctx context.Context, item *models.GroceryItem) (*models.GroceryItem, error)
	GetAll(ctx context.Context) ([]models.GroceryItem, error)
	Update(ctx context.Context, item *models.GroceryItem) (*models.GroceryItem, error)
	Delete(ctx context.Context, id string) error
}

// Set bundles one repository per entity kind. The application store holds
// two sets, local and remote, and selects one per operation based on
// session state.
type Set struct {
	Recipes   RecipeRepository
	Meals     MealRepository
	Groceries GroceryRepository
}
