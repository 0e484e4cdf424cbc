package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/aggregate"
	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/domain"
)

type NutritionService struct {
	meals domain.MealRepository
	goals domain.MacroGoals

	mu sync.Mutex
}

func NewNutritionService(meals domain.MealRepository) *NutritionService {
	return &NutritionService{
		meals: meals,
		goals: domain.DefaultMacroGoals(),
	}
}

type LogMealInput struct {
	Owner    string
	Name     string
	Category string
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

type NutritionSummary struct {
	MealCount  int                       `json:"meal_count"`
	Totals     map[string]float64        `json:"totals"`
	Goals      domain.MacroGoals         `json:"goals"`
	Progress   map[string]int            `json:"progress"`
	ByCategory []aggregate.CategoryCount `json:"by_category"`
	Feedback   string                    `json:"feedback"`
}

func (s *NutritionService) Meals(ctx context.Context, owner string) ([]domain.Meal, error) {
	meals, err := s.meals.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if meals == nil {
		meals = []domain.Meal{}
	}
	return meals, nil
}

func (s *NutritionService) LogMeal(ctx context.Context, input LogMealInput) (*domain.Meal, error) {
	meal, err := domain.NewMeal(input.Name, input.Category, input.Calories, input.Protein, input.Carbs, input.Fat)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	meals, err := s.meals.Load(ctx, input.Owner)
	if err != nil {
		return nil, err
	}

	meals = append(meals, *meal)
	if err := s.meals.Save(ctx, input.Owner, meals); err != nil {
		return nil, fmt.Errorf("nutrition service: failed to save meals: %w", err)
	}

	return meal, nil
}

func (s *NutritionService) DeleteMeal(ctx context.Context, owner, mealID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meals, err := s.meals.Load(ctx, owner)
	if err != nil {
		return err
	}

	for i := range meals {
		if meals[i].ID == mealID {
			meals = append(meals[:i], meals[i+1:]...)
			if err := s.meals.Save(ctx, owner, meals); err != nil {
				return fmt.Errorf("nutrition service: failed to save meals: %w", err)
			}
			return nil
		}
	}

	return domain.ErrMealNotFound
}

func (s *NutritionService) Summary(ctx context.Context, owner string) (*NutritionSummary, error) {
	meals, err := s.Meals(ctx, owner)
	if err != nil {
		return nil, err
	}

	totals := aggregate.Totals(meals, domain.MacroFields)

	goals := s.goals.ByName()
	progress := make(map[string]int, len(goals))
	for name, goal := range goals {
		progress[name] = aggregate.ProgressPercent(totals[name], goal)
	}

	return &NutritionSummary{
		MealCount:  len(meals),
		Totals:     totals,
		Goals:      s.goals,
		Progress:   progress,
		ByCategory: aggregate.CategoryHistogram(meals, func(m domain.Meal) string { return m.Category }, domain.MealCategories),
		Feedback:   domain.CalorieFeedback(totals[domain.MacroCalories]),
	}, nil
}
