package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/reciperadar/reciperadar/internal/api"
	"github.com/reciperadar/reciperadar/internal/models"
)

// memTokenStore is an in-memory TokenStore for tests.
type memTokenStore struct {
	token string
}

func (m *memTokenStore) Token() (string, error)      { return m.token, nil }
func (m *memTokenStore) SetToken(token string) error { m.token = token; return nil }
func (m *memTokenStore) ClearToken() error           { m.token = ""; return nil }

func newTestClient(t *testing.T, handler http.Handler) (*api.Client, *memTokenStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	tokens := &memTokenStore{}
	return api.NewClient(server.URL, tokens, logger), tokens
}

func TestLoginSendsFormEncodedCredentials(t *testing.T) {
	var gotContentType string
	var gotForm url.Values
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotForm, _ = url.ParseQuery(string(body))
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1", "token_type": "bearer"})
	}))

	if err := client.Login(context.Background(), "user@example.com", "hunter22"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("content type = %q", gotContentType)
	}
	// The token endpoint takes the email in the username field.
	if gotForm.Get("username") != "user@example.com" {
		t.Errorf("username field = %q", gotForm.Get("username"))
	}
	if gotForm.Get("password") != "hunter22" {
		t.Errorf("password field = %q", gotForm.Get("password"))
	}
	if tokens.token != "tok-1" {
		t.Errorf("stored token = %q, want tok-1", tokens.token)
	}
}

func TestLoginFailureSurfacesDetail(t *testing.T) {
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect email or password"})
	}))

	err := client.Login(context.Background(), "user@example.com", "wrong")
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %v", err)
	}
	if apiErr.Detail != "Incorrect email or password" {
		t.Errorf("detail = %q", apiErr.Detail)
	}
	if tokens.token != "" {
		t.Errorf("no token should be stored on failure, got %q", tokens.token)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("[]"))
	}))
	tokens.token = "tok-2"

	if _, err := client.GetRecipes(context.Background()); err != nil {
		t.Fatalf("get recipes: %v", err)
	}
	if gotAuth != "Bearer tok-2" {
		t.Errorf("authorization header = %q", gotAuth)
	}
}

func TestUnauthorizedPurgesTokenAndNotifies(t *testing.T) {
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	tokens.token = "stale"

	notified := false
	client.OnSessionExpired(func() { notified = true })

	_, err := client.GetRecipes(context.Background())
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if tokens.token != "" {
		t.Errorf("token should be purged, got %q", tokens.token)
	}
	if !notified {
		t.Error("session-expired handler was not invoked")
	}
}

func TestErrorFallbackWhenBodyUnparseable(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>gateway error</html>"))
	}))

	_, err := client.GetRecipes(context.Background())
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %v", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if apiErr.Detail != "Request failed" {
		t.Errorf("detail = %q, want fallback", apiErr.Detail)
	}
}

func TestGetRecipesMapsWireFormat(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{
			"id": 7,
			"title": "Protein Pancakes",
			"description": "High protein breakfast",
			"prep_time": 15,
			"cook_time": 20,
			"servings": 0,
			"difficulty": "easy",
			"tags": null,
			"ingredients": [
				{"name": "oats", "quantity": 100, "unit": "g"},
				"banana"
			],
			"nutritional_info": {"calories": 450, "protein": 32},
			"created_at": "2024-01-01T00:00:00Z"
		}]`))
	}))

	recipes, err := client.GetRecipes(context.Background())
	if err != nil {
		t.Fatalf("get recipes: %v", err)
	}
	if len(recipes) != 1 {
		t.Fatalf("expected 1 recipe, got %d", len(recipes))
	}

	r := recipes[0]
	if r.ID != "7" {
		t.Errorf("id = %q, want 7", r.ID)
	}
	if r.PrepTime != 15 || r.CookTime != 20 {
		t.Errorf("times = %d/%d, want 15/20", r.PrepTime, r.CookTime)
	}
	if r.Difficulty != models.DifficultyEasy {
		t.Errorf("difficulty = %s, want Easy", r.Difficulty)
	}
	if r.Servings != 1 {
		t.Errorf("servings = %d, want default 1", r.Servings)
	}
	if r.Tags == nil {
		t.Error("tags should never be nil")
	}
	if len(r.Ingredients) != 2 || r.Ingredients[0] != "oats" || r.Ingredients[1] != "banana" {
		t.Errorf("ingredients = %v, want flattened names", r.Ingredients)
	}
	if r.NutritionalInfo == nil || r.NutritionalInfo.Calories == nil || *r.NutritionalInfo.Calories != 450 {
		t.Errorf("nutritional info not mapped: %+v", r.NutritionalInfo)
	}
}

func TestCreateRecipeSendsSnakeCasePayload(t *testing.T) {
	var gotBody map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/recipes/" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"id": 42, "title": "Chili", "difficulty": "medium", "servings": 4}`))
	}))

	created, err := client.CreateRecipe(context.Background(), &models.Recipe{
		ID:          "1700000000000-abcdefghi",
		Title:       "Chili",
		Ingredients: []string{"beans", "tomatoes"},
		Difficulty:  models.DifficultyMedium,
		Servings:    4,
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	if created.ID != "42" {
		t.Errorf("created id = %q, want server-assigned 42", created.ID)
	}

	if _, hasID := gotBody["id"]; hasID {
		t.Error("payload must not carry the local id")
	}
	if gotBody["difficulty"] != "medium" {
		t.Errorf("difficulty sent as %v, want lowercase", gotBody["difficulty"])
	}
	ingredients, ok := gotBody["ingredients"].([]any)
	if !ok || len(ingredients) != 2 {
		t.Fatalf("ingredients = %v", gotBody["ingredients"])
	}
	first, ok := ingredients[0].(map[string]any)
	if !ok {
		t.Fatalf("ingredient not expanded to an object: %v", ingredients[0])
	}
	if first["name"] != "beans" || first["quantity"] != float64(1) {
		t.Errorf("ingredient = %v, want name beans quantity 1", first)
	}
}

func TestCreateMealDropsLocalRecipeID(t *testing.T) {
	var gotBody map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"id": 9, "date": "2024-01-15", "meal_type": "Dinner"}`))
	}))

	meal, err := client.CreateMeal(context.Background(), &models.Meal{
		Date:       "2024-01-15",
		MealType:   models.MealDinner,
		RecipeID:   "1700000000000-abcdefghi",
		RecipeName: "Chili",
	})
	if err != nil {
		t.Fatalf("create meal: %v", err)
	}

	// Local ids cannot reference server recipes; recipe_id goes out null.
	if gotBody["recipe_id"] != nil {
		t.Errorf("recipe_id = %v, want null", gotBody["recipe_id"])
	}
	if gotBody["planned"] != true {
		t.Errorf("planned = %v, want true", gotBody["planned"])
	}
	// The cached display name survives when no recipe comes back.
	if meal.RecipeName != "Chili" {
		t.Errorf("recipe name = %q, want cached Chili", meal.RecipeName)
	}
}

func TestGetWeekMealsPassesWeekStart(t *testing.T) {
	var gotQuery url.Values
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[{"id": 1, "date": "2024-01-08", "meal_type": "Lunch",
			"recipe": {"id": 3, "title": "Salad", "difficulty": "easy", "servings": 2}}]`))
	}))

	weekStart, err := time.Parse(models.DateLayout, "2024-01-08")
	if err != nil {
		t.Fatalf("parsing week start: %v", err)
	}
	meals, err := client.GetWeekMeals(context.Background(), weekStart)
	if err != nil {
		t.Fatalf("get week meals: %v", err)
	}
	if gotQuery.Get("week_start") != "2024-01-08" {
		t.Errorf("week_start = %q", gotQuery.Get("week_start"))
	}
	if len(meals) != 1 {
		t.Fatalf("expected 1 meal, got %d", len(meals))
	}
	// An embedded recipe wins over any cached name.
	if meals[0].RecipeName != "Salad" {
		t.Errorf("recipe name = %q, want Salad", meals[0].RecipeName)
	}
	if meals[0].Recipe == nil || meals[0].Recipe.ID != "3" {
		t.Errorf("embedded recipe not mapped: %+v", meals[0].Recipe)
	}
}

func TestGenerateRecipeClearsServerFields(t *testing.T) {
	var gotQuery url.Values
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"id": 99, "title": "AI Curry", "difficulty": "hard",
			"servings": 2, "created_at": "2024-01-01T00:00:00Z"}`))
	}))

	recipe, err := client.GenerateRecipe(context.Background(), "spicy curry", "vegetarian")
	if err != nil {
		t.Fatalf("generate recipe: %v", err)
	}
	if gotQuery.Get("prompt") != "spicy curry" {
		t.Errorf("prompt = %q", gotQuery.Get("prompt"))
	}
	if gotQuery.Get("dietary_restrictions") != "vegetarian" {
		t.Errorf("dietary_restrictions = %q", gotQuery.Get("dietary_restrictions"))
	}
	if recipe.ID != "" || recipe.CreatedAt != "" {
		t.Errorf("generated recipe must carry no id or timestamp: %q %q", recipe.ID, recipe.CreatedAt)
	}
	if recipe.Title != "AI Curry" {
		t.Errorf("title = %q", recipe.Title)
	}
}
