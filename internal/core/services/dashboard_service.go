package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/aggregate"
	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/domain"
)

// SleepGoalHours is the nightly sleep target shown on the student dashboard.
const SleepGoalHours = 8

type DashboardService struct {
	users     domain.UserRepository
	wellness  domain.MoodLogRepository
	goals     domain.FitnessGoalsRepository
	fitness   domain.FitnessLogRepository
	checklist domain.ChecklistRepository
	checkins  domain.StreakRepository
	programs  domain.ProgramRepository
	bookings  domain.BookingRepository
}

type DashboardDeps struct {
	Users     domain.UserRepository
	Wellness  domain.MoodLogRepository
	Goals     domain.FitnessGoalsRepository
	Fitness   domain.FitnessLogRepository
	Checklist domain.ChecklistRepository
	Checkins  domain.StreakRepository
	Programs  domain.ProgramRepository
	Bookings  domain.BookingRepository
}

func NewDashboardService(deps DashboardDeps) *DashboardService {
	return &DashboardService{
		users:     deps.Users,
		wellness:  deps.Wellness,
		goals:     deps.Goals,
		fitness:   deps.Fitness,
		checklist: deps.Checklist,
		checkins:  deps.Checkins,
		programs:  deps.Programs,
		bookings:  deps.Bookings,
	}
}

type DashboardProgress struct {
	Steps   int `json:"steps"`
	Sleep   int `json:"sleep"`
	Water   int `json:"water"`
	Overall int `json:"overall"`
}

type StudentDashboard struct {
	Name          string            `json:"name"`
	Date          string            `json:"date"`
	AvgMood       int               `json:"avg_mood"`
	AvgSleep      int               `json:"avg_sleep"`
	AvgMeditation int               `json:"avg_meditation"`
	Progress      DashboardProgress `json:"progress"`
	Badge         string            `json:"badge"`
	Motivation    string            `json:"motivation"`
	Streak        domain.Streak     `json:"streak"`
}

type AdminOverview struct {
	Students                int                       `json:"students"`
	Admins                  int                       `json:"admins"`
	Programs                int                       `json:"programs"`
	Consultations           int                       `json:"consultations"`
	PendingConsultations    int                       `json:"pending_consultations"`
	ProgramsByCategory      []aggregate.CategoryCount `json:"programs_by_category"`
	ConsultationsByCategory []aggregate.CategoryCount `json:"consultations_by_category"`
}

// Student builds the landing page for session on day and records the day's
// check-in on the visit streak.
func (s *DashboardService) Student(ctx context.Context, session domain.Session, day time.Time) (*StudentDashboard, error) {
	owner := session.UserID

	var (
		logs      []domain.MoodEntry
		goals     domain.FitnessGoals
		fitLog    domain.FitnessLog
		checklist domain.Checklist
		streak    domain.Streak
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		logs, err = s.wellness.Load(gctx, owner)
		return err
	})
	g.Go(func() (err error) {
		goals, err = s.goals.Load(gctx, owner)
		return err
	})
	g.Go(func() (err error) {
		fitLog, err = s.fitness.Load(gctx, owner)
		return err
	})
	g.Go(func() (err error) {
		checklist, err = s.checklist.Load(gctx, owner)
		return err
	})
	g.Go(func() (err error) {
		streak, err = s.checkins.Load(gctx, owner)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard service: failed to load student data: %w", err)
	}

	if goals.IsZero() {
		goals = domain.DefaultFitnessGoals()
	}

	next := aggregate.UpdateStreak(streak, true, day)
	if next != streak {
		if err := s.checkins.Save(ctx, owner, next); err != nil {
			return nil, fmt.Errorf("dashboard service: failed to save check-in: %w", err)
		}
	}

	rec := fitLog.Day(day)
	check := checklist.Day(day)

	avgSleep := aggregate.AverageOverWindow(logs, func(e domain.MoodEntry) float64 { return e.SleepHours }, domain.MoodWindow)

	progress := DashboardProgress{
		Steps: aggregate.ProgressPercent(float64(rec.Steps), float64(goals.Steps)),
		Sleep: aggregate.ProgressPercent(float64(avgSleep), SleepGoalHours),
		Water: aggregate.ProgressPercent(float64(check.Water), float64(goals.WaterGlasses)),
	}
	progress.Overall = aggregate.AverageOverWindow(
		[]int{progress.Steps, progress.Sleep, progress.Water},
		func(v int) float64 { return float64(v) }, 0,
	)

	badge, motivation := Badge(progress.Overall)

	return &StudentDashboard{
		Name:          session.Name,
		Date:          aggregate.DayKey(day),
		AvgMood:       aggregate.AverageOverWindow(logs, func(e domain.MoodEntry) float64 { return float64(e.Mood) }, domain.MoodWindow),
		AvgSleep:      avgSleep,
		AvgMeditation: aggregate.AverageOverWindow(logs, func(e domain.MoodEntry) float64 { return e.MeditationMinutes }, domain.MoodWindow),
		Progress:      progress,
		Badge:         badge,
		Motivation:    motivation,
		Streak:        next,
	}, nil
}

// Badge maps overall progress to the dashboard badge and its message.
func Badge(overall int) (string, string) {
	switch {
	case overall >= 90:
		return "Gold Champion", "Incredible! You're smashing your health goals!"
	case overall >= 70:
		return "Silver Achiever", "You're on fire! Just a little more effort!"
	case overall >= 50:
		return "Bronze Starter", "Great consistency! Keep building momentum!"
	default:
		return "Keep Going!", "Every small step matters. Let's pick up the pace!"
	}
}

func (s *DashboardService) Admin(ctx context.Context) (*AdminOverview, error) {
	var (
		users    []*domain.User
		programs []domain.Program
		bookings []domain.Booking
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.users.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		programs, err = s.programs.Load(gctx, domain.SharedOwner)
		return err
	})
	g.Go(func() (err error) {
		bookings, err = s.bookings.Load(gctx, domain.SharedOwner)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard service: failed to load overview: %w", err)
	}

	overview := &AdminOverview{
		Programs:                len(programs),
		Consultations:           len(bookings),
		PendingConsultations:    countStatus(bookings, domain.StatusPending),
		ProgramsByCategory:      aggregate.CategoryHistogram(programs, func(p domain.Program) string { return p.Category }, domain.ProgramCategories),
		ConsultationsByCategory: byConsultationCategory(bookings),
	}
	for _, u := range users {
		if u.Role == domain.RoleAdmin {
			overview.Admins++
		} else {
			overview.Students++
		}
	}

	return overview, nil
}
