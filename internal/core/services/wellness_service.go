package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/aggregate"
	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/domain"
)

// RecentNotesLimit is how many journal notes the summary returns.
const RecentNotesLimit = 5

type WellnessService struct {
	logs domain.MoodLogRepository

	mu sync.Mutex
}

func NewWellnessService(logs domain.MoodLogRepository) *WellnessService {
	return &WellnessService{logs: logs}
}

type AddMoodInput struct {
	Owner             string
	Day               string
	Date              string
	Mood              int
	SleepHours        float64
	MeditationMinutes float64
	Note              string
}

type WellnessSummary struct {
	Count         int                       `json:"count"`
	AvgMood       int                       `json:"avg_mood"`
	AvgSleep      int                       `json:"avg_sleep"`
	AvgMeditation int                       `json:"avg_meditation"`
	Distribution  []aggregate.CategoryCount `json:"distribution"`
	Insight       string                    `json:"insight"`
	RecentNotes   []domain.MoodEntry        `json:"recent_notes"`
}

func (s *WellnessService) Entries(ctx context.Context, owner string) ([]domain.MoodEntry, error) {
	entries, err := s.logs.Load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.MoodEntry{}
	}
	return entries, nil
}

func (s *WellnessService) AddEntry(ctx context.Context, input AddMoodInput) (*domain.MoodEntry, error) {
	entry, err := domain.NewMoodEntry(input.Day, input.Date, input.Mood, input.SleepHours, input.MeditationMinutes, input.Note)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.logs.Load(ctx, input.Owner)
	if err != nil {
		return nil, err
	}

	entries = domain.AppendMood(entries, *entry)
	if err := s.logs.Save(ctx, input.Owner, entries); err != nil {
		return nil, fmt.Errorf("wellness service: failed to save entries: %w", err)
	}

	return entry, nil
}

func (s *WellnessService) Summary(ctx context.Context, owner string) (*WellnessSummary, error) {
	entries, err := s.Entries(ctx, owner)
	if err != nil {
		return nil, err
	}

	avgMood := aggregate.AverageOverWindow(entries, func(e domain.MoodEntry) float64 { return float64(e.Mood) }, domain.MoodWindow)

	return &WellnessSummary{
		Count:         len(entries),
		AvgMood:       avgMood,
		AvgSleep:      aggregate.AverageOverWindow(entries, func(e domain.MoodEntry) float64 { return e.SleepHours }, domain.MoodWindow),
		AvgMeditation: aggregate.AverageOverWindow(entries, func(e domain.MoodEntry) float64 { return e.MeditationMinutes }, domain.MoodWindow),
		Distribution: aggregate.CategoryHistogram(entries, func(e domain.MoodEntry) string {
			return aggregate.MoodBucket(e.Mood)
		}, aggregate.MoodBuckets),
		Insight:     domain.Insight(avgMood),
		RecentNotes: recentNotes(entries, RecentNotesLimit),
	}, nil
}

// recentNotes returns up to limit entries that carry a note, newest first.
func recentNotes(entries []domain.MoodEntry, limit int) []domain.MoodEntry {
	out := make([]domain.MoodEntry, 0, limit)
	for i := len(entries) - 1; i >= 0 && len(out) < limit; i-- {
		if entries[i].Note != "" {
			out = append(out, entries[i])
		}
	}
	return out
}
