package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/reciperadar/reciperadar/internal/models"
)

// RegisterInput is the account-creation request.
type RegisterInput struct {
	Email               string
	Username            string
	Password            string
	FullName            string
	Role                models.Role
	DietaryRestrictions []string
	Preferences         map[string]any
}

type registerPayload struct {
	Email               string         `json:"email"`
	Username            string         `json:"username"`
	Password            string         `json:"password"`
	FullName            string         `json:"full_name,omitempty"`
	Role                string         `json:"role"`
	DietaryRestrictions []string       `json:"dietary_restrictions,omitempty"`
	Preferences         map[string]any `json:"preferences,omitempty"`
}

// Register creates an account. The role defaults to client.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	role := in.Role
	if role == "" {
		role = models.RoleClient
	}

	payload := registerPayload{
		Email:               in.Email,
		Username:            in.Username,
		Password:            in.Password,
		FullName:            in.FullName,
		Role:                string(role),
		DietaryRestrictions: in.DietaryRestrictions,
		Preferences:         in.Preferences,
	}

	var resp userWire
	if err := c.do(ctx, http.MethodPost, "/api/auth/register/", payload, &resp); err != nil {
		return nil, err
	}
	return userFromWire(resp), nil
}

// Login exchanges credentials for a bearer token and stores it. The
// backend's token endpoint follows the OAuth2 password-flow convention:
// form-encoded body with the email passed in the username field. Every
// other endpoint speaks JSON.
func (c *Client) Login(ctx context.Context, email, password string) error {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/auth/login/", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.errorFromResponse(resp, "Login failed")
	}

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}
	if err := c.tokens.SetToken(token.AccessToken); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// Me fetches the current user profile.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var resp userWire
	if err := c.do(ctx, http.MethodGet, "/api/auth/me/", nil, &resp); err != nil {
		return nil, err
	}
	return userFromWire(resp), nil
}
