package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMealNameEmpty       = errors.New("meal name cannot be empty")
	ErrInvalidMealCategory = errors.New("invalid meal category (must be breakfast, lunch, dinner, or snack)")
	ErrMealNotFound        = errors.New("meal not found")
)

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

var MealCategories = []string{MealBreakfast, MealLunch, MealDinner, MealSnack}

// Macro field names, shared by totals, goals and progress.
const (
	MacroCalories = "calories"
	MacroProtein  = "protein"
	MacroCarbs    = "carbs"
	MacroFat      = "fat"
)

type Meal struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Calories float64   `json:"calories"`
	Protein  float64   `json:"protein"`
	Carbs    float64   `json:"carbs"`
	Fat      float64   `json:"fat"`
	LoggedAt time.Time `json:"logged_at"`
}

func NewMeal(name, category string, calories, protein, carbs, fat float64) (*Meal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMealNameEmpty
	}

	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = MealBreakfast
	}
	if !isMealCategory(category) {
		return nil, ErrInvalidMealCategory
	}

	if calories < 0 || protein < 0 || carbs < 0 || fat < 0 {
		return nil, ErrNegativeValue
	}

	return &Meal{
		ID:       uuid.NewString(),
		Name:     name,
		Category: category,
		Calories: calories,
		Protein:  protein,
		Carbs:    carbs,
		Fat:      fat,
		LoggedAt: time.Now().UTC(),
	}, nil
}

func isMealCategory(c string) bool {
	for _, known := range MealCategories {
		if c == known {
			return true
		}
	}
	return false
}

// MacroFields exposes each macro of a Meal by name.
var MacroFields = map[string]func(Meal) float64{
	MacroCalories: func(m Meal) float64 { return m.Calories },
	MacroProtein:  func(m Meal) float64 { return m.Protein },
	MacroCarbs:    func(m Meal) float64 { return m.Carbs },
	MacroFat:      func(m Meal) float64 { return m.Fat },
}

type MacroGoals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func DefaultMacroGoals() MacroGoals {
	return MacroGoals{Calories: 2000, Protein: 100, Carbs: 250, Fat: 70}
}

func (g MacroGoals) ByName() map[string]float64 {
	return map[string]float64{
		MacroCalories: g.Calories,
		MacroProtein:  g.Protein,
		MacroCarbs:    g.Carbs,
		MacroFat:      g.Fat,
	}
}

// Calorie bands for the daily intake feedback.
const (
	CalorieFloor   = 1500
	CalorieCeiling = 2200

	FeedbackBelow    = "below"
	FeedbackOver     = "over"
	FeedbackBalanced = "balanced"
)

// CalorieFeedback classifies a day's total calories.
func CalorieFeedback(calories float64) string {
	switch {
	case calories < CalorieFloor:
		return FeedbackBelow
	case calories > CalorieCeiling:
		return FeedbackOver
	default:
		return FeedbackBalanced
	}
}
