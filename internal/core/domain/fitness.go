package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/aggregate"
)

var (
	ErrInvalidGoal        = errors.New("goal targets must be positive")
	ErrNegativeValue      = errors.New("value cannot be negative")
	ErrWorkoutTypeEmpty   = errors.New("workout type cannot be empty")
	ErrInvalidIntensity   = errors.New("invalid intensity (must be Low, Moderate, or High)")
	ErrWorkoutNotFound    = errors.New("workout not found")
	ErrInvalidChecklistID = errors.New("invalid checklist item (must be meditation or slept8)")
	ErrInvalidMeasures    = errors.New("height and weight must be positive")
)

const (
	IntensityLow      = "Low"
	IntensityModerate = "Moderate"
	IntensityHigh     = "High"

	ChecklistMeditation = "meditation"
	ChecklistSlept8     = "slept8"
)

// FitnessGoals are the daily targets used as divisors and thresholds.
type FitnessGoals struct {
	Steps          int `json:"steps"`
	Calories       int `json:"calories"`
	WorkoutMinutes int `json:"workout_minutes"`
	WaterGlasses   int `json:"water_glasses"`
}

func DefaultFitnessGoals() FitnessGoals {
	return FitnessGoals{
		Steps:          8000,
		Calories:       350,
		WorkoutMinutes: 30,
		WaterGlasses:   8,
	}
}

func (g FitnessGoals) Validate() error {
	if g.Steps <= 0 || g.Calories <= 0 || g.WorkoutMinutes <= 0 || g.WaterGlasses <= 0 {
		return ErrInvalidGoal
	}
	return nil
}

// IsZero reports whether the goals were never configured.
func (g FitnessGoals) IsZero() bool {
	return g == FitnessGoals{}
}

// Qualifies is the daily streak condition: steps, workout minutes and water
// all at or above their goal.
func (g FitnessGoals) Qualifies(day DailyRecord, check ChecklistEntry) bool {
	return day.Steps >= g.Steps &&
		day.WorkoutMinutes >= g.WorkoutMinutes &&
		check.Water >= g.WaterGlasses
}

type WorkoutEntry struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Minutes   int    `json:"minutes"`
	Intensity string `json:"intensity"`
}

func NewWorkoutEntry(wType string, minutes int, intensity string) (*WorkoutEntry, error) {
	wType = strings.TrimSpace(wType)
	if wType == "" {
		return nil, ErrWorkoutTypeEmpty
	}
	if minutes < 0 {
		return nil, ErrNegativeValue
	}

	if intensity == "" {
		intensity = IntensityModerate
	}
	switch intensity {
	case IntensityLow, IntensityModerate, IntensityHigh:
	default:
		return nil, ErrInvalidIntensity
	}

	return &WorkoutEntry{
		ID:        uuid.NewString(),
		Type:      wType,
		Minutes:   minutes,
		Intensity: intensity,
	}, nil
}

// DailyRecord holds one calendar day of activity counters.
type DailyRecord struct {
	Date           string         `json:"date"`
	Steps          int            `json:"steps"`
	Calories       int            `json:"calories"`
	WorkoutMinutes int            `json:"workout_minutes"`
	Workouts       []WorkoutEntry `json:"workouts"`
}

func NewDailyRecord(day time.Time) DailyRecord {
	return DailyRecord{
		Date:     aggregate.DayKey(day),
		Workouts: []WorkoutEntry{},
	}
}

// QuickUpdate adds to the day's counters.
func (d *DailyRecord) QuickUpdate(steps, calories, minutes int) error {
	if steps < 0 || calories < 0 || minutes < 0 {
		return ErrNegativeValue
	}

	d.Steps += steps
	d.Calories += calories
	d.WorkoutMinutes += minutes
	return nil
}

// AddWorkout appends w and credits its minutes to the day.
func (d *DailyRecord) AddWorkout(w WorkoutEntry) {
	d.Workouts = append(d.Workouts, w)
	d.WorkoutMinutes += w.Minutes
}

// RemoveWorkout drops the entry only; minutes already credited stay on the day.
func (d *DailyRecord) RemoveWorkout(id string) error {
	for i, w := range d.Workouts {
		if w.ID == id {
			d.Workouts = append(d.Workouts[:i], d.Workouts[i+1:]...)
			return nil
		}
	}
	return ErrWorkoutNotFound
}

// FitnessLog is the per-date record map persisted under one key.
type FitnessLog map[string]DailyRecord

// Day returns the record for day, creating an empty one when absent.
func (l FitnessLog) Day(day time.Time) DailyRecord {
	if rec, ok := l[aggregate.DayKey(day)]; ok {
		if rec.Workouts == nil {
			rec.Workouts = []WorkoutEntry{}
		}
		return rec
	}
	return NewDailyRecord(day)
}

type ChecklistEntry struct {
	Date      string `json:"date"`
	Water     int    `json:"water"`
	Meditated bool   `json:"meditation"`
	Slept8    bool   `json:"slept8"`
}

// AddWater adds one glass, capped at goal.
func (c *ChecklistEntry) AddWater(goal int) {
	c.Water = min(goal, c.Water+1)
}

func (c *ChecklistEntry) Toggle(item string) error {
	switch item {
	case ChecklistMeditation:
		c.Meditated = !c.Meditated
	case ChecklistSlept8:
		c.Slept8 = !c.Slept8
	default:
		return ErrInvalidChecklistID
	}
	return nil
}

// Checklist is the per-date checklist map persisted under one key.
type Checklist map[string]ChecklistEntry

func (c Checklist) Day(day time.Time) ChecklistEntry {
	key := aggregate.DayKey(day)
	if entry, ok := c[key]; ok {
		return entry
	}
	return ChecklistEntry{Date: key}
}
