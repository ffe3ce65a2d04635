package local

import (
	"context"
	"encoding/json"

	"github.com/reciperadar/reciperadar/internal/models"
	"github.com/reciperadar/reciperadar/internal/repository"
)

type mealRepository struct {
	store *Store
}

// NewMealRepository creates the guest-mode meal repository.
func NewMealRepository(store *Store) repository.MealRepository {
	return &mealRepository{store: store}
}

func (r *mealRepository) GetAll(ctx context.Context) ([]models.Meal, error) {
	raw, ok, err := r.store.get(ctx, mealsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Meal{}, nil
	}

	var meals []models.Meal
	if err := json.Unmarshal([]byte(raw), &meals); err != nil {
		r.store.logger.Warnf("Discarding unparseable local data for %q: %v", mealsKey, err)
		return []models.Meal{}, nil
	}
	return meals, nil
}

func (r *mealRepository) Create(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	if err := r.save(ctx, meal); err != nil {
		return nil, err
	}
	return meal, nil
}

func (r *mealRepository) Update(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	if err := r.save(ctx, meal); err != nil {
		return nil, err
	}
	return meal, nil
}

func (r *mealRepository) save(ctx context.Context, meal *models.Meal) error {
	meals, err := r.GetAll(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range meals {
		if meals[i].ID == meal.ID {
			meals[i] = *meal
			replaced = true
			break
		}
	}
	if !replaced {
		meals = append(meals, *meal)
	}

	return r.store.put(ctx, mealsKey, meals)
}

func (r *mealRepository) Delete(ctx context.Context, id string) error {
	meals, err := r.GetAll(ctx)
	if err != nil {
		return err
	}

	kept := meals[:0]
	for _, meal := range meals {
		if meal.ID != id {
			kept = append(kept, meal)
		}
	}

	return r.store.put(ctx, mealsKey, kept)
}
