package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/reciperadar/reciperadar/internal/models"
)

// GetGroceryItems fetches the caller's grocery inventory.
func (c *Client) GetGroceryItems(ctx context.Context) ([]models.GroceryItem, error) {
	var resp []groceryWire
	if err := c.do(ctx, http.MethodGet, "/api/groceries/", nil, &resp); err != nil {
		return nil, err
	}

	items := make([]models.GroceryItem, 0, len(resp))
	for _, w := range resp {
		items = append(items, groceryFromWire(w))
	}
	return items, nil
}

// GetExpiringSoon fetches unexpired items whose expiration date falls
// within the given number of days.
func (c *Client) GetExpiringSoon(ctx context.Context, days int) ([]models.GroceryItem, error) {
	params := url.Values{}
	params.Set("days", strconv.Itoa(days))

	var resp []groceryWire
	if err := c.do(ctx, http.MethodGet, "/api/groceries/expiring-soon?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	items := make([]models.GroceryItem, 0, len(resp))
	for _, w := range resp {
		items = append(items, groceryFromWire(w))
	}
	return items, nil
}

// CreateGroceryItem stores an item and returns the server projection.
func (c *Client) CreateGroceryItem(ctx context.Context, item *models.GroceryItem) (*models.GroceryItem, error) {
	var resp groceryWire
	if err := c.do(ctx, http.MethodPost, "/api/groceries/", groceryToPayload(item), &resp); err != nil {
		return nil, err
	}
	saved := groceryFromWire(resp)
	return &saved, nil
}

// UpdateGroceryItem sends the full item to the backend and returns the
// server projection.
func (c *Client) UpdateGroceryItem(ctx context.Context, item *models.GroceryItem) (*models.GroceryItem, error) {
	var resp groceryWire
	if err := c.do(ctx, http.MethodPut, "/api/groceries/"+item.ID, groceryToPayload(item), &resp); err != nil {
		return nil, err
	}
	updated := groceryFromWire(resp)
	return &updated, nil
}

// DeleteGroceryItem removes an item by id.
func (c *Client) DeleteGroceryItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/groceries/"+id, nil, nil)
}
