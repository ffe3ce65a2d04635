package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/reciperadar/reciperadar/internal/models"
)

type linkPayload struct {
	ClientEmail string `json:"client_email"`
	ClientCode  string `json:"client_code"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// LinkClient links a client to the calling coach using the client's email
// and coach-issued linkage code.
func (c *Client) LinkClient(ctx context.Context, clientEmail, clientCode string) (string, error) {
	var resp messageResponse
	err := c.do(ctx, http.MethodPost, "/api/coach/link/",
		linkPayload{ClientEmail: clientEmail, ClientCode: clientCode}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// UnlinkClient removes the coach/client relationship.
func (c *Client) UnlinkClient(ctx context.Context, clientID int64) (string, error) {
	var resp messageResponse
	err := c.do(ctx, http.MethodDelete, "/api/coach/unlink/"+strconv.FormatInt(clientID, 10), nil, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Clients lists the caller's linked clients.
func (c *Client) Clients(ctx context.Context) ([]models.ClientSummary, error) {
	var clients []models.ClientSummary
	if err := c.do(ctx, http.MethodGet, "/api/coach/clients/", nil, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// ClientMeals fetches a linked client's meal plan.
func (c *Client) ClientMeals(ctx context.Context, clientID int64) ([]models.Meal, error) {
	var resp []mealWire
	path := "/api/coach/clients/" + strconv.FormatInt(clientID, 10) + "/meals"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	meals := make([]models.Meal, 0, len(resp))
	for _, w := range resp {
		meals = append(meals, mealFromWire(w, ""))
	}
	return meals, nil
}

// ClientRecipes fetches a linked client's recipe library.
func (c *Client) ClientRecipes(ctx context.Context, clientID int64) ([]models.Recipe, error) {
	var resp []recipeWire
	path := "/api/coach/clients/" + strconv.FormatInt(clientID, 10) + "/recipes"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	recipes := make([]models.Recipe, 0, len(resp))
	for _, w := range resp {
		recipes = append(recipes, recipeFromWire(w))
	}
	return recipes, nil
}

// MyCoach fetches the caller's coach.
func (c *Client) MyCoach(ctx context.Context) (*models.CoachSummary, error) {
	var coach models.CoachSummary
	if err := c.do(ctx, http.MethodGet, "/api/coach/my-coach/", nil, &coach); err != nil {
		return nil, err
	}
	return &coach, nil
}
