// Package remote implements the repository interfaces against the cloud
// backend. Each repository is a stateless translator over the api client.
package remote

import (
	"context"

	"github.com/reciperadar/reciperadar/internal/api"
	"github.com/reciperadar/reciperadar/internal/models"
	"github.com/reciperadar/reciperadar/internal/repository"
)

// NewSet returns the authenticated repository set backed by the backend.
func NewSet(client *api.Client) repository.Set {
	return repository.Set{
		Recipes:   &recipeRepository{client: client},
		Meals:     &mealRepository{client: client},
		Groceries: &groceryRepository{client: client},
	}
}

type recipeRepository struct {
	client *api.Client
}

func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	return r.client.CreateRecipe(ctx, recipe)
}

func (r *recipeRepository) GetAll(ctx context.Context) ([]models.Recipe, error) {
	return r.client.GetRecipes(ctx)
}

func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	return r.client.UpdateRecipe(ctx, recipe)
}

func (r *recipeRepository) Delete(ctx context.Context, id string) error {
	return r.client.DeleteRecipe(ctx, id)
}

type mealRepository struct {
	client *api.Client
}

func (r *mealRepository) Create(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	return r.client.CreateMeal(ctx, meal)
}

func (r *mealRepository) GetAll(ctx context.Context) ([]models.Meal, error) {
	return r.client.GetMeals(ctx)
}

func (r *mealRepository) Update(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	return r.client.UpdateMeal(ctx, meal)
}

func (r *mealRepository) Delete(ctx context.Context, id string) error {
	return r.client.DeleteMeal(ctx, id)
}

type groceryRepository struct {
	client *api.Client
}

func (r *groceryRepository) Create(ctx context.Context, item *models.GroceryItem) (*models.GroceryItem, error) {
	return r.client.CreateGroceryItem(ctx, item)
}

func (r *groceryRepository) GetAll(ctx context.Context) ([]models.GroceryItem, error) {
	return r.client.GetGroceryItems(ctx)
}

func (r *groceryRepository) Update(ctx context.Context, item *models.GroceryItem) (*models.GroceryItem, error) {
	return r.client.UpdateGroceryItem(ctx, item)
}

func (r *groceryRepository) Delete(ctx context.Context, id string) error {
	return r.client.DeleteGroceryItem(ctx, id)
}
