package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/reciperadar/reciperadar/internal/api"
	"github.com/reciperadar/reciperadar/internal/models"
	"github.com/reciperadar/reciperadar/internal/repository/local"
	"github.com/reciperadar/reciperadar/internal/repository/remote"
	"github.com/reciperadar/reciperadar/internal/store"
)

// fakeBackend is a minimal in-process stand-in for the cloud API.
type fakeBackend struct {
	mu sync.Mutex

	unauthorized     bool // reject every authenticated call with 401
	failRecipes      bool // fail GET /api/recipes/
	failCreateRecipe bool // fail POST /api/recipes/

	createdRecipes   int
	createdGroceries int
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	// Go 1.21's ServeMux has no method patterns or {wildcards}, so each
	// route dispatches on r.Method (and extracts ids from the path) by hand.
	mux.HandleFunc("/api/auth/register/", requireMethod(http.MethodPost, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"id": 1, "email": "lifter@example.com", "username": "lifter",
			"role": "client", "client_code": "ABC123",
		})
	}))
	mux.HandleFunc("/api/auth/login/", requireMethod(http.MethodPost, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"access_token": "tok", "token_type": "bearer"})
	}))
	mux.HandleFunc("/api/auth/me/", requireMethod(http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
		if b.reject(w) {
			return
		}
		writeJSON(w, map[string]any{
			"id": 1, "email": "lifter@example.com", "username": "lifter",
			"role": "client", "client_code": "ABC123",
		})
	}))

	mux.HandleFunc("/api/recipes/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if b.reject(w) {
				return
			}
			b.mu.Lock()
			fail := b.failRecipes
			b.mu.Unlock()
			if fail {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			writeJSON(w, []map[string]any{
				{"id": 1, "title": "Cloud Oats", "difficulty": "easy", "servings": 2},
			})
		case http.MethodPost:
			if b.reject(w) {
				return
			}
			b.mu.Lock()
			fail := b.failCreateRecipe
			if !fail {
				b.createdRecipes++
			}
			n := 100 + b.createdRecipes
			b.mu.Unlock()
			if fail {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			var payload struct {
				Title string `json:"title"`
			}
			json.NewDecoder(r.Body).Decode(&payload)
			writeJSON(w, map[string]any{"id": n, "title": payload.Title, "difficulty": "easy", "servings": 1})
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/meals/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/meals/")
		switch {
		case r.Method == http.MethodGet:
			if b.reject(w) {
				return
			}
			writeJSON(w, []map[string]any{
				{"id": 10, "date": "2024-01-08", "meal_type": "Dinner",
					"recipe": map[string]any{"id": 1, "title": "Cloud Oats", "difficulty": "easy", "servings": 2}},
			})
		case r.Method == http.MethodPut && id != "":
			if b.reject(w) {
				return
			}
			var payload struct {
				Date     string `json:"date"`
				MealType string `json:"meal_type"`
				Notes    string `json:"notes"`
			}
			json.NewDecoder(r.Body).Decode(&payload)
			writeJSON(w, map[string]any{
				"id": json.RawMessage(id), "date": payload.Date,
				"meal_type": payload.MealType, "notes": payload.Notes,
			})
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/groceries/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/groceries/")
		switch {
		case r.Method == http.MethodGet:
			if b.reject(w) {
				return
			}
			writeJSON(w, []map[string]any{
				{"id": 5, "name": "Milk", "quantity": 1, "unit": "L", "category": "Dairy"},
			})
		case r.Method == http.MethodPut && id != "":
			if b.reject(w) {
				return
			}
			var payload struct {
				Name string `json:"name"`
			}
			json.NewDecoder(r.Body).Decode(&payload)
			writeJSON(w, map[string]any{"id": json.RawMessage(id), "name": payload.Name})
		case r.Method == http.MethodPost:
			if b.reject(w) {
				return
			}
			b.mu.Lock()
			b.createdGroceries++
			n := 200 + b.createdGroceries
			b.mu.Unlock()
			var payload struct {
				Name string `json:"name"`
			}
			json.NewDecoder(r.Body).Decode(&payload)
			writeJSON(w, map[string]any{"id": n, "name": payload.Name})
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})

	return mux
}

func requireMethod(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

func (b *fakeBackend) reject(w http.ResponseWriter) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.unauthorized {
		w.WriteHeader(http.StatusUnauthorized)
		return true
	}
	return false
}

func (b *fakeBackend) set(fn func(*fakeBackend)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(b)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func newTestStore(t *testing.T) (*store.Store, *local.Store, *fakeBackend) {
	t.Helper()

	backend := &fakeBackend{}
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	ls, err := local.Open(filepath.Join(t.TempDir(), "app.db"), logger)
	if err != nil {
		t.Fatalf("opening local store: %v", err)
	}
	t.Cleanup(func() { ls.Close() })

	client := api.NewClient(server.URL, ls, logger)
	st := store.New(client, ls, local.NewSet(ls), remote.NewSet(client), logger)
	return st, ls, backend
}

func TestGuestAddRecipePersistsLocally(t *testing.T) {
	st, ls, _ := newTestStore(t)
	ctx := context.Background()

	recipe := &models.Recipe{ID: local.GenerateID(), Title: "Tuna Wrap"}
	saved, err := st.AddRecipe(ctx, recipe)
	if err != nil {
		t.Fatalf("adding recipe: %v", err)
	}
	if saved.ID != recipe.ID {
		t.Errorf("guest mode must keep the local id, got %q", saved.ID)
	}

	recipes := st.Recipes()
	if len(recipes) != 1 || recipes[0].Title != "Tuna Wrap" {
		t.Fatalf("in-memory collection = %+v", recipes)
	}

	persisted, err := local.NewRecipeRepository(ls).GetAll(ctx)
	if err != nil {
		t.Fatalf("reading local storage: %v", err)
	}
	if len(persisted) != 1 || persisted[0].ID != recipe.ID {
		t.Fatalf("recipe not persisted locally: %+v", persisted)
	}
}

func TestLoginLoadsCloudCollections(t *testing.T) {
	st, _, _ := newTestStore(t)
	ctx := context.Background()

	if err := st.Login(ctx, "lifter@example.com", "hunter22"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !st.IsAuthenticated() {
		t.Fatal("expected authenticated state")
	}

	user := st.User()
	if user == nil || user.Username != "lifter" {
		t.Fatalf("user = %+v", user)
	}
	if user.ClientCode != "ABC123" {
		t.Errorf("client code = %q", user.ClientCode)
	}

	if got := st.Recipes(); len(got) != 1 || got[0].Title != "Cloud Oats" {
		t.Errorf("recipes = %+v", got)
	}
	if got := st.Meals(); len(got) != 1 || got[0].RecipeName != "Cloud Oats" {
		t.Errorf("meals = %+v", got)
	}
	if got := st.GroceryItems(); len(got) != 1 || got[0].Name != "Milk" {
		t.Errorf("groceries = %+v", got)
	}
}

func TestLoginFailureLeavesStoreUntouched(t *testing.T) {
	st, _, backend := newTestStore(t)
	ctx := context.Background()

	if _, err := st.AddRecipe(ctx, &models.Recipe{ID: "local-1", Title: "Guest Salad"}); err != nil {
		t.Fatalf("adding guest recipe: %v", err)
	}

	// One collection failing must fail the whole login.
	backend.set(func(b *fakeBackend) { b.failRecipes = true })

	if err := st.Login(ctx, "lifter@example.com", "hunter22"); err == nil {
		t.Fatal("expected login to fail")
	}
	if st.IsAuthenticated() {
		t.Error("store must remain signed out")
	}
	if st.User() != nil {
		t.Error("no user should be committed")
	}
	if got := st.Recipes(); len(got) != 1 || got[0].Title != "Guest Salad" {
		t.Errorf("guest collection must survive, got %+v", got)
	}
}

func TestAuthedAddFailureLeavesCollectionUnchanged(t *testing.T) {
	st, _, backend := newTestStore(t)
	ctx := context.Background()

	if err := st.Login(ctx, "lifter@example.com", "hunter22"); err != nil {
		t.Fatalf("login: %v", err)
	}
	before := st.Recipes()

	backend.set(func(b *fakeBackend) { b.failCreateRecipe = true })
	if _, err := st.AddRecipe(ctx, &models.Recipe{Title: "Doomed"}); err == nil {
		t.Fatal("expected add to fail")
	}

	after := st.Recipes()
	if len(after) != len(before) {
		t.Fatalf("collection changed on failure: %d -> %d", len(before), len(after))
	}
}

func TestAuthedUpdateCommitsServerProjection(t *testing.T) {
	st, _, _ := newTestStore(t)
	ctx := context.Background()

	if err := st.Login(ctx, "lifter@example.com", "hunter22"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := st.UpdateGroceryItem(ctx, &models.GroceryItem{ID: "5", Name: "Oat Milk"}); err != nil {
		t.Fatalf("updating grocery item: %v", err)
	}
	groceries := st.GroceryItems()
	if len(groceries) != 1 || groceries[0].ID != "5" || groceries[0].Name != "Oat Milk" {
		t.Fatalf("server projection not committed in place: %+v", groceries)
	}

	if _, err := st.UpdateMeal(ctx, &models.Meal{ID: "10", Date: "2024-01-09", MealType: models.MealLunch}); err != nil {
		t.Fatalf("updating meal: %v", err)
	}
	meals := st.Meals()
	if len(meals) != 1 || meals[0].ID != "10" || meals[0].Date != "2024-01-09" {
		t.Fatalf("server projection not committed in place: %+v", meals)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	st, ls, _ := newTestStore(t)
	ctx := context.Background()

	if err := st.Login(ctx, "lifter@example.com", "hunter22"); err != nil {
		t.Fatalf("login: %v", err)
	}

	st.Logout()

	if st.IsAuthenticated() {
		t.Error("expected signed-out state")
	}
	if st.User() != nil {
		t.Error("user should be cleared")
	}
	if got := st.Recipes(); len(got) != 0 {
		t.Errorf("recipes should be cleared, got %d", len(got))
	}
	token, err := ls.Token()
	if err != nil {
		t.Fatalf("reading token: %v", err)
	}
	if token != "" {
		t.Errorf("token should be cleared, got %q", token)
	}
}

func TestSessionExpiredSignsOut(t *testing.T) {
	st, ls, backend := newTestStore(t)
	ctx := context.Background()

	if err := st.Login(ctx, "lifter@example.com", "hunter22"); err != nil {
		t.Fatalf("login: %v", err)
	}

	backend.set(func(b *fakeBackend) { b.unauthorized = true })

	_, err := st.AddRecipe(ctx, &models.Recipe{Title: "Rejected"})
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	if st.IsAuthenticated() {
		t.Error("session expiry must sign the store out")
	}
	if st.User() != nil {
		t.Error("user should be cleared")
	}
	token, _ := ls.Token()
	if token != "" {
		t.Errorf("token should be purged, got %q", token)
	}
}

func TestRestoreSessionWithoutToken(t *testing.T) {
	st, _, _ := newTestStore(t)

	restored, err := st.RestoreSession(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored {
		t.Error("nothing to restore without a stored token")
	}
	if st.IsAuthenticated() {
		t.Error("expected signed-out state")
	}
}

func TestRestoreSessionWithStoredToken(t *testing.T) {
	st, ls, _ := newTestStore(t)

	if err := ls.SetToken("tok"); err != nil {
		t.Fatalf("storing token: %v", err)
	}

	restored, err := st.RestoreSession(context.Background())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !restored || !st.IsAuthenticated() {
		t.Fatal("expected restored session")
	}
	if got := st.Recipes(); len(got) != 1 {
		t.Errorf("expected cloud recipes after restore, got %d", len(got))
	}
}

func TestRestoreSessionWithRejectedToken(t *testing.T) {
	st, ls, backend := newTestStore(t)

	if err := ls.SetToken("stale"); err != nil {
		t.Fatalf("storing token: %v", err)
	}
	backend.set(func(b *fakeBackend) { b.unauthorized = true })

	restored, err := st.RestoreSession(context.Background())
	if err == nil {
		t.Fatal("expected restore to fail")
	}
	if restored || st.IsAuthenticated() {
		t.Fatal("store must remain signed out")
	}
	token, _ := ls.Token()
	if token != "" {
		t.Errorf("rejected token should be purged, got %q", token)
	}
}

func TestRegisterMigratesGuestData(t *testing.T) {
	st, _, backend := newTestStore(t)
	ctx := context.Background()

	if _, err := st.AddRecipe(ctx, &models.Recipe{ID: "local-r", Title: "Guest Curry"}); err != nil {
		t.Fatalf("adding guest recipe: %v", err)
	}
	if _, err := st.AddGroceryItem(ctx, &models.GroceryItem{ID: "local-g", Name: "Rice"}); err != nil {
		t.Fatalf("adding guest grocery: %v", err)
	}
	if _, err := st.AddMeal(ctx, &models.Meal{ID: "local-m", Date: "2024-01-08", MealType: models.MealDinner}); err != nil {
		t.Fatalf("adding guest meal: %v", err)
	}

	user, err := st.Register(ctx, api.RegisterInput{
		Email: "lifter@example.com", Username: "lifter", Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Username != "lifter" {
		t.Errorf("user = %+v", user)
	}
	if !st.IsAuthenticated() {
		t.Fatal("expected authenticated state after register")
	}

	backend.mu.Lock()
	defer backend.mu.Unlock()
	if backend.createdRecipes != 1 {
		t.Errorf("migrated recipes = %d, want 1", backend.createdRecipes)
	}
	if backend.createdGroceries != 1 {
		t.Errorf("migrated groceries = %d, want 1", backend.createdGroceries)
	}
}

func TestGuestWeekMeals(t *testing.T) {
	st, _, _ := newTestStore(t)
	ctx := context.Background()

	start := models.WeekStart(time.Now())
	monday := start.Format(models.DateLayout)
	midweek := start.AddDate(0, 0, 2).Format(models.DateLayout)
	sunday := start.AddDate(0, 0, 6).Format(models.DateLayout)
	lastWeek := start.AddDate(0, 0, -1).Format(models.DateLayout)
	nextWeek := start.AddDate(0, 0, 7).Format(models.DateLayout)

	for i, date := range []string{monday, midweek, sunday, lastWeek, nextWeek} {
		meal := &models.Meal{ID: fmt.Sprintf("m%d", i), Date: date, MealType: models.MealDinner}
		if _, err := st.AddMeal(ctx, meal); err != nil {
			t.Fatalf("adding meal: %v", err)
		}
	}

	meals, err := st.WeekMeals(ctx, time.Now())
	if err != nil {
		t.Fatalf("week meals: %v", err)
	}
	if len(meals) != 3 {
		t.Fatalf("expected 3 meals inside the week, got %+v", meals)
	}
	// Both boundary days belong to the week, whatever the time of day.
	if meals[0].Date != monday || meals[2].Date != sunday {
		t.Errorf("boundary days missing: got %s..%s, want %s..%s",
			meals[0].Date, meals[2].Date, monday, sunday)
	}
}

func TestGuestExpiringItems(t *testing.T) {
	st, _, _ := newTestStore(t)
	ctx := context.Background()

	today := time.Now()
	items := []models.GroceryItem{
		{ID: "g1", Name: "Yogurt", ExpirationDate: today.AddDate(0, 0, 2).Format(models.DateLayout)},
		{ID: "g2", Name: "Frozen Peas", ExpirationDate: today.AddDate(0, 0, 30).Format(models.DateLayout)},
		{ID: "g3", Name: "Old Cheese", ExpirationDate: today.AddDate(0, 0, -2).Format(models.DateLayout)},
		{ID: "g4", Name: "Salt"},
	}
	for i := range items {
		if _, err := st.AddGroceryItem(ctx, &items[i]); err != nil {
			t.Fatalf("adding item: %v", err)
		}
	}

	expiring, err := st.ExpiringItems(ctx, 7)
	if err != nil {
		t.Fatalf("expiring items: %v", err)
	}
	if len(expiring) != 1 || expiring[0].Name != "Yogurt" {
		t.Fatalf("expected only Yogurt, got %+v", expiring)
	}
}

func TestGenerateRecipeRequiresSignIn(t *testing.T) {
	st, _, _ := newTestStore(t)

	if _, err := st.GenerateRecipe(context.Background(), "high protein dinner", ""); !errors.Is(err, store.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}
