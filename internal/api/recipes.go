package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/reciperadar/reciperadar/internal/models"
)

// GetRecipes fetches the caller's recipe library.
func (c *Client) GetRecipes(ctx context.Context) ([]models.Recipe, error) {
	var resp []recipeWire
	if err := c.do(ctx, http.MethodGet, "/api/recipes/", nil, &resp); err != nil {
		return nil, err
	}

	recipes := make([]models.Recipe, 0, len(resp))
	for _, w := range resp {
		recipes = append(recipes, recipeFromWire(w))
	}
	return recipes, nil
}

// CreateRecipe stores a recipe and returns the server projection, which
// carries the server-assigned id.
func (c *Client) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	var resp recipeWire
	if err := c.do(ctx, http.MethodPost, "/api/recipes/", recipeToPayload(recipe), &resp); err != nil {
		return nil, err
	}
	saved := recipeFromWire(resp)
	return &saved, nil
}

// UpdateRecipe sends the full recipe to the backend and returns the
// server projection.
func (c *Client) UpdateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	var resp recipeWire
	if err := c.do(ctx, http.MethodPut, "/api/recipes/"+recipe.ID, recipeToPayload(recipe), &resp); err != nil {
		return nil, err
	}
	updated := recipeFromWire(resp)
	return &updated, nil
}

// DeleteRecipe removes a recipe by id.
func (c *Client) DeleteRecipe(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/recipes/"+id, nil, nil)
}

// GenerateRecipe asks the backend's AI endpoint for a recipe matching the
// prompt. The result is not saved; it has no id or creation timestamp.
func (c *Client) GenerateRecipe(ctx context.Context, prompt, dietaryRestrictions string) (*models.Recipe, error) {
	params := url.Values{}
	params.Set("prompt", prompt)
	if dietaryRestrictions != "" {
		params.Set("dietary_restrictions", dietaryRestrictions)
	}

	var resp recipeWire
	if err := c.do(ctx, http.MethodPost, "/api/recipes/ai/generate?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	generated := recipeFromWire(resp)
	generated.ID = ""
	generated.CreatedAt = ""
	return &generated, nil
}
