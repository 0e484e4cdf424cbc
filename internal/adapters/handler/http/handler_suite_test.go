package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/services"
)

var (
	studentSession = domain.Session{UserID: "stu-1", Name: "Sam", Email: "sam@campus.edu", Role: domain.RoleStudent}
	otherSession   = domain.Session{UserID: "stu-2", Name: "Kim", Email: "kim@campus.edu", Role: domain.RoleStudent}
	adminSession   = domain.Session{UserID: "adm-1", Name: "Ada", Email: "ada@campus.edu", Role: domain.RoleAdmin}
)

// tokenResolver accepts the user id as the bearer token.
type tokenResolver map[string]domain.Session

func (r tokenResolver) Resolve(_ context.Context, token string) (domain.Session, error) {
	s, ok := r[token]
	if !ok {
		return domain.Session{}, errors.New("unknown token")
	}
	return s, nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type spyQueue struct {
	owners []string
}

func (q *spyQueue) Enqueue(owner string, _ time.Time) bool {
	q.owners = append(q.owners, owner)
	return true
}

func setupPortal(t *testing.T) *gin.Engine {
	t.Helper()
	return setupPortalWith(t, repository.NewInMemoryStore(), nil, nil)
}

func setupPortalWith(t *testing.T, store domain.DocumentStore, pinger Pinger, queue StreakQueue) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := func() time.Time { return fixedNow }

	users := repository.NewUserDirectory(store)
	goals := repository.NewCollection[domain.FitnessGoals](store, domain.KeyFitnessGoals)
	fitLog := repository.NewCollection[domain.FitnessLog](store, domain.KeyFitnessLog)
	checklist := repository.NewCollection[domain.Checklist](store, domain.KeyFitnessChecklist)
	streak := repository.NewCollection[domain.Streak](store, domain.KeyFitnessStreak)
	checkins := repository.NewCollection[domain.Streak](store, domain.KeyCheckinStreak)
	moods := repository.NewCollection[[]domain.MoodEntry](store, domain.KeyWellnessLogs)
	bookings := repository.NewCollection[[]domain.Booking](store, domain.KeyConsultations)
	programs := repository.NewCollection[[]domain.Program](store, domain.KeyPrograms)
	prefs := repository.NewCollection[domain.ProgramPreferences](store, domain.KeyProgramPreferences)

	meals := repository.NewCollection[[]domain.Meal](store, domain.KeyNutritionMeals)
	sessions := services.NewSessionService("handler-test-secret-handler-test-secret", "test", time.Hour, users)
	dashboard := services.NewDashboardService(services.DashboardDeps{
		Users:     users,
		Wellness:  moods,
		Goals:     goals,
		Fitness:   fitLog,
		Checklist: checklist,
		Checkins:  checkins,
		Programs:  programs,
		Bookings:  bookings,
	})

	return NewRouter(RouterDependencies{
		AuthHandler:         NewAuthHandler(services.NewAuthService(users), sessions),
		FitnessHandler:      NewFitnessHandler(services.NewFitnessService(goals, fitLog, checklist, streak), queue, clock),
		NutritionHandler:    NewNutritionHandler(services.NewNutritionService(meals)),
		WellnessHandler:     NewWellnessHandler(services.NewWellnessService(moods), clock),
		ConsultationHandler: NewConsultationHandler(services.NewConsultationService(bookings, users, programs), clock),
		ProgramHandler:      NewProgramHandler(services.NewProgramService(programs, prefs)),
		DashboardHandler:    NewDashboardHandler(dashboard, clock),
		Sessions: tokenResolver{
			studentSession.UserID: studentSession,
			otherSession.UserID:   otherSession,
			adminSession.UserID:   adminSession,
		},
		Store:     pinger,
		StartTime: fixedNow,
	})
}

func request(t *testing.T, router *gin.Engine, method, path string, session domain.Session, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if session.Valid() {
		req.Header.Set("Authorization", "Bearer "+session.UserID)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
