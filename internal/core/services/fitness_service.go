package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/aggregate"
	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/domain"
)

type FitnessService struct {
	goals     domain.FitnessGoalsRepository
	log       domain.FitnessLogRepository
	checklist domain.ChecklistRepository
	streak    domain.StreakRepository

	mu sync.Mutex
}

func NewFitnessService(
	goals domain.FitnessGoalsRepository,
	log domain.FitnessLogRepository,
	checklist domain.ChecklistRepository,
	streak domain.StreakRepository,
) *FitnessService {
	return &FitnessService{
		goals:     goals,
		log:       log,
		checklist: checklist,
		streak:    streak,
	}
}

type FitnessProgress struct {
	Steps    int `json:"steps"`
	Calories int `json:"calories"`
	Workout  int `json:"workout"`
	Water    int `json:"water"`
}

// FitnessDay is everything the fitness tracker shows for one day.
type FitnessDay struct {
	Date      string                `json:"date"`
	Record    domain.DailyRecord    `json:"record"`
	Checklist domain.ChecklistEntry `json:"checklist"`
	Goals     domain.FitnessGoals   `json:"goals"`
	Streak    domain.Streak         `json:"streak"`
	Progress  FitnessProgress       `json:"progress"`
	Qualified bool                  `json:"qualified"`
}

type QuickUpdateInput struct {
	Owner    string
	Day      time.Time
	Steps    int
	Calories int
	Minutes  int
}

type AddWorkoutInput struct {
	Owner     string
	Day       time.Time
	Type      string
	Minutes   int
	Intensity string
}

// fitnessState is one owner's loaded fitness collections.
type fitnessState struct {
	goals     domain.FitnessGoals
	log       domain.FitnessLog
	checklist domain.Checklist
	streak    domain.Streak
}

func (s *FitnessService) load(ctx context.Context, owner string) (*fitnessState, error) {
	goals, err := s.goals.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if goals.IsZero() {
		goals = domain.DefaultFitnessGoals()
	}

	log, err := s.log.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = domain.FitnessLog{}
	}

	checklist, err := s.checklist.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if checklist == nil {
		checklist = domain.Checklist{}
	}

	streak, err := s.streak.Load(ctx, owner)
	if err != nil {
		return nil, err
	}

	return &fitnessState{goals: goals, log: log, checklist: checklist, streak: streak}, nil
}

// settle re-evaluates the streak for day and persists it if it moved.
func (s *FitnessService) settle(ctx context.Context, owner string, day time.Time, st *fitnessState) (*FitnessDay, error) {
	rec := st.log.Day(day)
	check := st.checklist.Day(day)
	qualified := st.goals.Qualifies(rec, check)

	next := aggregate.UpdateStreak(st.streak, qualified, day)
	if next != st.streak {
		if err := s.streak.Save(ctx, owner, next); err != nil {
			return nil, fmt.Errorf("fitness service: failed to save streak: %w", err)
		}
		st.streak = next
	}

	return &FitnessDay{
		Date:      aggregate.DayKey(day),
		Record:    rec,
		Checklist: check,
		Goals:     st.goals,
		Streak:    st.streak,
		Progress: FitnessProgress{
			Steps:    aggregate.ProgressPercent(float64(rec.Steps), float64(st.goals.Steps)),
			Calories: aggregate.ProgressPercent(float64(rec.Calories), float64(st.goals.Calories)),
			Workout:  aggregate.ProgressPercent(float64(rec.WorkoutMinutes), float64(st.goals.WorkoutMinutes)),
			Water:    aggregate.ProgressPercent(float64(check.Water), float64(st.goals.WaterGlasses)),
		},
		Qualified: qualified,
	}, nil
}

func (s *FitnessService) Today(ctx context.Context, owner string, day time.Time) (*FitnessDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	return s.settle(ctx, owner, day, st)
}

// updateRecord applies fn to the day's record and saves the log.
func (s *FitnessService) updateRecord(ctx context.Context, owner string, day time.Time, fn func(*domain.DailyRecord) error) (*FitnessDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}

	rec := st.log.Day(day)
	if err := fn(&rec); err != nil {
		return nil, err
	}
	st.log[rec.Date] = rec

	if err := s.log.Save(ctx, owner, st.log); err != nil {
		return nil, fmt.Errorf("fitness service: failed to save log: %w", err)
	}

	return s.settle(ctx, owner, day, st)
}

func (s *FitnessService) updateChecklist(ctx context.Context, owner string, day time.Time, fn func(*domain.ChecklistEntry, domain.FitnessGoals) error) (*FitnessDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}

	entry := st.checklist.Day(day)
	if err := fn(&entry, st.goals); err != nil {
		return nil, err
	}
	st.checklist[entry.Date] = entry

	if err := s.checklist.Save(ctx, owner, st.checklist); err != nil {
		return nil, fmt.Errorf("fitness service: failed to save checklist: %w", err)
	}

	return s.settle(ctx, owner, day, st)
}

func (s *FitnessService) QuickUpdate(ctx context.Context, input QuickUpdateInput) (*FitnessDay, error) {
	return s.updateRecord(ctx, input.Owner, input.Day, func(rec *domain.DailyRecord) error {
		return rec.QuickUpdate(input.Steps, input.Calories, input.Minutes)
	})
}

func (s *FitnessService) AddWorkout(ctx context.Context, input AddWorkoutInput) (*FitnessDay, error) {
	workout, err := domain.NewWorkoutEntry(input.Type, input.Minutes, input.Intensity)
	if err != nil {
		return nil, err
	}

	return s.updateRecord(ctx, input.Owner, input.Day, func(rec *domain.DailyRecord) error {
		rec.AddWorkout(*workout)
		return nil
	})
}

func (s *FitnessService) RemoveWorkout(ctx context.Context, owner string, day time.Time, workoutID string) (*FitnessDay, error) {
	return s.updateRecord(ctx, owner, day, func(rec *domain.DailyRecord) error {
		return rec.RemoveWorkout(workoutID)
	})
}

func (s *FitnessService) AddWater(ctx context.Context, owner string, day time.Time) (*FitnessDay, error) {
	return s.updateChecklist(ctx, owner, day, func(entry *domain.ChecklistEntry, goals domain.FitnessGoals) error {
		entry.AddWater(goals.WaterGlasses)
		return nil
	})
}

func (s *FitnessService) ToggleChecklist(ctx context.Context, owner string, day time.Time, item string) (*FitnessDay, error) {
	return s.updateChecklist(ctx, owner, day, func(entry *domain.ChecklistEntry, _ domain.FitnessGoals) error {
		return entry.Toggle(item)
	})
}

// SetGoals replaces the targets and re-evaluates today's streak against them.
func (s *FitnessService) SetGoals(ctx context.Context, owner string, day time.Time, goals domain.FitnessGoals) (*FitnessDay, error) {
	if err := goals.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.goals.Save(ctx, owner, goals); err != nil {
		return nil, fmt.Errorf("fitness service: failed to save goals: %w", err)
	}

	st, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	return s.settle(ctx, owner, day, st)
}

// RebuildStreak recomputes the streak from the whole log against the
// current goals, replacing the stored one.
func (s *FitnessService) RebuildStreak(ctx context.Context, owner string, day time.Time) (domain.Streak, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx, owner)
	if err != nil {
		return domain.Streak{}, err
	}

	dates := make([]string, 0, len(st.log))
	for date, rec := range st.log {
		if date > aggregate.DayKey(day) {
			continue
		}
		if st.goals.Qualifies(rec, st.checklist[date]) {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)

	rebuilt := aggregate.ReplayStreak(dates, day)
	if err := s.streak.Save(ctx, owner, rebuilt); err != nil {
		return domain.Streak{}, fmt.Errorf("fitness service: failed to save streak: %w", err)
	}

	return rebuilt, nil
}

func (s *FitnessService) BMI(heightCm, weightKg float64) (aggregate.BMIResult, error) {
	res, ok := aggregate.BMI(heightCm, weightKg)
	if !ok {
		return aggregate.BMIResult{}, domain.ErrInvalidMeasures
	}
	return res, nil
}
