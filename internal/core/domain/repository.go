package domain

import (
	"context"
	"errors"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
)

// SharedOwner scopes collections that belong to the whole portal rather
// than to one student (programs, consultations, users).
const SharedOwner = "shared"

// Collection keys, one per independently stored collection.
const (
	KeyFitnessGoals       = "fitness_goals"
	KeyFitnessLog         = "fitness_log"
	KeyFitnessChecklist   = "fitness_checklist"
	KeyFitnessStreak      = "fitness_streak"
	KeyNutritionMeals     = "nutrition_meals"
	KeyWellnessLogs       = "wellness_logs"
	KeyCheckinStreak      = "user_streak"
	KeyConsultations      = "consultations"
	KeyPrograms           = "programs"
	KeyProgramPreferences = "program_preferences"
	KeyUsers              = "users"
)

// DocumentStore keeps one opaque JSON document per (owner, key).
type DocumentStore interface {
	// Get returns ErrDocumentNotFound when nothing was stored yet.
	Get(ctx context.Context, owner, key string) ([]byte, error)

	// Put creates or replaces the document.
	Put(ctx context.Context, owner, key string, data []byte) error

	Delete(ctx context.Context, owner, key string) error
}

// CollectionRepository loads and saves one whole collection for an owner.
// Loading a collection that was never saved yields its zero value.
type CollectionRepository[T any] interface {
	Load(ctx context.Context, owner string) (T, error)
	Save(ctx context.Context, owner string, value T) error
}

type (
	FitnessGoalsRepository = CollectionRepository[FitnessGoals]
	FitnessLogRepository   = CollectionRepository[FitnessLog]
	ChecklistRepository    = CollectionRepository[Checklist]
	StreakRepository       = CollectionRepository[Streak]
	MealRepository         = CollectionRepository[[]Meal]
	MoodLogRepository      = CollectionRepository[[]MoodEntry]
	BookingRepository      = CollectionRepository[[]Booking]
	ProgramRepository      = CollectionRepository[[]Program]
	PreferencesRepository  = CollectionRepository[ProgramPreferences]
)

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
}
