package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/aggregate"
)

var (
	ErrMoodOutOfRange = errors.New("mood must be between 1 and 10")
	ErrEntryDateEmpty = errors.New("entry date cannot be empty")
)

const (
	MinMood = 1
	MaxMood = 10

	// MoodWindow is how many recent mood entries are kept and averaged.
	MoodWindow = 7
)

type MoodEntry struct {
	ID                string  `json:"id"`
	Day               string  `json:"day"`
	Date              string  `json:"date"`
	Mood              int     `json:"mood"`
	SleepHours        float64 `json:"sleep_hours"`
	MeditationMinutes float64 `json:"meditation_minutes"`
	Note              string  `json:"note,omitempty"`
}

func NewMoodEntry(dayLabel, date string, mood int, sleepHours, meditationMinutes float64, note string) (*MoodEntry, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, ErrEntryDateEmpty
	}
	if mood < MinMood || mood > MaxMood {
		return nil, ErrMoodOutOfRange
	}
	if sleepHours < 0 || meditationMinutes < 0 {
		return nil, ErrNegativeValue
	}

	return &MoodEntry{
		ID:                uuid.NewString(),
		Day:               strings.TrimSpace(dayLabel),
		Date:              date,
		Mood:              mood,
		SleepHours:        sleepHours,
		MeditationMinutes: meditationMinutes,
		Note:              strings.TrimSpace(note),
	}, nil
}

// AppendMood adds e and keeps only the most recent MoodWindow entries.
func AppendMood(entries []MoodEntry, e MoodEntry) []MoodEntry {
	out := append(entries, e)
	if len(out) > MoodWindow {
		out = out[len(out)-MoodWindow:]
	}
	return out
}

// Insight returns the coaching message for an average mood.
func Insight(avgMood int) string {
	switch aggregate.MoodBucket(avgMood) {
	case aggregate.MoodHappy:
		return "You're glowing with positivity, keep shining your light!"
	case aggregate.MoodGood:
		return "You're doing amazing, remember to stay consistent with meditation."
	case aggregate.MoodOkay:
		return "Some ups and downs, try deep breathing or a walk outdoors."
	default:
		return "Tough week? Journaling or gratitude can bring calm energy."
	}
}
