package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/reciperadar/reciperadar/internal/models"
)

// GetMeals fetches the caller's full meal plan.
func (c *Client) GetMeals(ctx context.Context) ([]models.Meal, error) {
	var resp []mealWire
	if err := c.do(ctx, http.MethodGet, "/api/meals/", nil, &resp); err != nil {
		return nil, err
	}

	meals := make([]models.Meal, 0, len(resp))
	for _, w := range resp {
		meals = append(meals, mealFromWire(w, ""))
	}
	return meals, nil
}

// GetWeekMeals fetches the meals of the week starting at weekStart
// (Monday). A zero weekStart lets the backend default to the current
// week.
func (c *Client) GetWeekMeals(ctx context.Context, weekStart time.Time) ([]models.Meal, error) {
	path := "/api/meals/week"
	if !weekStart.IsZero() {
		params := url.Values{}
		params.Set("week_start", weekStart.Format(models.DateLayout))
		path += "?" + params.Encode()
	}

	var resp []mealWire
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	meals := make([]models.Meal, 0, len(resp))
	for _, w := range resp {
		meals = append(meals, mealFromWire(w, ""))
	}
	return meals, nil
}

// CreateMeal schedules a meal and returns the server projection. The
// caller's cached recipe name is kept when the backend returns no
// embedded recipe.
func (c *Client) CreateMeal(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	var resp mealWire
	if err := c.do(ctx, http.MethodPost, "/api/meals/", mealToPayload(meal), &resp); err != nil {
		return nil, err
	}
	saved := mealFromWire(resp, meal.RecipeName)
	return &saved, nil
}

// UpdateMeal sends the full meal to the backend and returns the server
// projection.
func (c *Client) UpdateMeal(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	var resp mealWire
	if err := c.do(ctx, http.MethodPut, "/api/meals/"+meal.ID, mealToPayload(meal), &resp); err != nil {
		return nil, err
	}
	updated := mealFromWire(resp, meal.RecipeName)
	return &updated, nil
}

// DeleteMeal removes a meal by id.
func (c *Client) DeleteMeal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/meals/"+id, nil, nil)
}
