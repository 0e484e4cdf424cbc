package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/services"
)

func TestRouter_Health(t *testing.T) {
	tests := []struct {
		name       string
		pinger     Pinger
		wantStatus int
		wantDB     string
	}{
		{"memory store", nil, http.StatusOK, `"database":"disabled"`},
		{"database up", fakePinger{}, http.StatusOK, `"database":"connected"`},
		{"database down", fakePinger{err: errors.New("refused")}, http.StatusServiceUnavailable, `"database":"unreachable"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupPortalWith(t, repository.NewInMemoryStore(), tt.pinger, nil)

			w := request(t, router, http.MethodGet, "/health", domain.Session{}, nil)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantDB)
			assert.Contains(t, w.Body.String(), `"redis":"disabled"`)
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := setupPortal(t)

	w := request(t, router, http.MethodOptions, "/api/v1/dashboard", domain.Session{}, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestDashboardHandler(t *testing.T) {
	router := setupPortal(t)

	t.Run("Student dashboard", func(t *testing.T) {
		w := request(t, router, http.MethodPost, "/api/v1/wellness/entries", studentSession, map[string]any{"mood": 9, "sleep_hours": 8})
		require.Equal(t, http.StatusCreated, w.Code)

		w = request(t, router, http.MethodGet, "/api/v1/dashboard", studentSession, nil)
		require.Equal(t, http.StatusOK, w.Code)

		dash := decode[services.StudentDashboard](t, w)
		assert.Equal(t, "Sam", dash.Name)
		assert.Equal(t, "2025-03-10", dash.Date)
		assert.Equal(t, 9, dash.AvgMood)
		assert.Equal(t, 100, dash.Progress.Sleep)
		assert.Equal(t, 1, dash.Streak.Current)
		assert.NotEmpty(t, dash.Badge)
	})

	t.Run("Admin overview", func(t *testing.T) {
		w := request(t, router, http.MethodGet, "/api/v1/admin/overview", studentSession, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = request(t, router, http.MethodGet, "/api/v1/admin/overview", adminSession, nil)
		require.Equal(t, http.StatusOK, w.Code)

		overview := decode[services.AdminOverview](t, w)
		assert.Equal(t, 0, overview.Consultations)
		assert.Len(t, overview.ProgramsByCategory, len(domain.ProgramCategories))
	})

	t.Run("Unknown token", func(t *testing.T) {
		w := request(t, router, http.MethodGet, "/api/v1/dashboard", domain.Session{UserID: "nobody"}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
