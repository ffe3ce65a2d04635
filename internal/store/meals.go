package store

import (
	"context"
	"fmt"
	"time"

	"github.com/reciperadar/reciperadar/internal/models"
)

// AddMeal schedules a meal and appends the stored projection to the
// in-memory collection.
func (s *Store) AddMeal(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	saved, err := s.repos().Meals.Create(ctx, meal)
	if err != nil {
		return nil, fmt.Errorf("failed to save meal: %w", err)
	}

	s.mu.Lock()
	s.meals = append(s.meals, *saved)
	s.mu.Unlock()
	return saved, nil
}

// UpdateMeal persists the full meal and commits the stored projection in
// place of the entry with the same id.
func (s *Store) UpdateMeal(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	updated, err := s.repos().Meals.Update(ctx, meal)
	if err != nil {
		return nil, fmt.Errorf("failed to update meal: %w", err)
	}

	s.mu.Lock()
	for i := range s.meals {
		if s.meals[i].ID == updated.ID {
			s.meals[i] = *updated
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// DeleteMeal removes the meal from persistence, then from memory.
func (s *Store) DeleteMeal(ctx context.Context, id string) error {
	if err := s.repos().Meals.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}

	s.mu.Lock()
	kept := s.meals[:0]
	for _, meal := range s.meals {
		if meal.ID != id {
			kept = append(kept, meal)
		}
	}
	s.meals = kept
	s.mu.Unlock()
	return nil
}

// WeekMeals returns the meals of the week containing day. When signed in
// the backend's week endpoint is used; guest mode filters the in-memory
// collection.
func (s *Store) WeekMeals(ctx context.Context, day time.Time) ([]models.Meal, error) {
	if s.authenticated.Load() {
		return s.client.GetWeekMeals(ctx, models.WeekStart(day))
	}

	// Compare formatted dates so the caller's time of day cannot push a
	// Monday meal out of its own week.
	start := models.WeekStart(day)
	first := start.Format(models.DateLayout)
	last := start.AddDate(0, 0, 6).Format(models.DateLayout)
	var out []models.Meal
	for _, meal := range s.Meals() {
		if _, err := time.Parse(models.DateLayout, meal.Date); err != nil {
			continue
		}
		if meal.Date >= first && meal.Date <= last {
			out = append(out, meal)
		}
	}
	return out, nil
}
