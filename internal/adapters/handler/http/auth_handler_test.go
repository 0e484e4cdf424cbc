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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/services"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func setupAuthHandler() (*gin.Engine, *MockUserRepository) {
	gin.SetMode(gin.TestMode)

	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo)
	sessions := services.NewSessionService("auth-handler-secret-auth-handler-secret", "test", time.Hour, mockRepo)
	authHandler := NewAuthHandler(authService, sessions)

	router := gin.New()
	authHandler.RegisterRoutes(router.Group(""))
	authHandler.RegisterAdminRoutes(router.Group("/admin"))

	return router, mockRepo
}

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("Success: Should return 201 and created user (No Password)", func(t *testing.T) {
		router, mockRepo := setupAuthHandler()

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

		w := postJSON(router, "/auth/register", map[string]string{
			"name":     "Sam",
			"email":    "sam@campus.edu",
			"password": "PasswordSuperSegreta1!",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var response userResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "sam@campus.edu", response.Email)
		assert.Equal(t, domain.RoleStudent, response.Role)
		assert.NotEmpty(t, response.ID)
		assert.NotContains(t, w.Body.String(), "password")
		mockRepo.AssertExpectations(t)
	})

	tests := []struct {
		name       string
		payload    map[string]string
		repoErr    error
		wantStatus int
	}{
		{"missing name", map[string]string{"email": "a@b.co", "password": "password123"}, nil, http.StatusBadRequest},
		{"bad email", map[string]string{"name": "A", "email": "nope", "password": "password123"}, nil, http.StatusBadRequest},
		{"short password", map[string]string{"name": "A", "email": "a@b.co", "password": "short"}, nil, http.StatusBadRequest},
		{"unknown role", map[string]string{"name": "A", "email": "a@b.co", "password": "password123", "role": "dean"}, nil, http.StatusBadRequest},
		{"duplicate email", map[string]string{"name": "A", "email": "a@b.co", "password": "password123"}, domain.ErrEmailAlreadyExists, http.StatusConflict},
		{"store failure", map[string]string{"name": "A", "email": "a@b.co", "password": "password123"}, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockRepo := setupAuthHandler()
			mockRepo.On("Create", mock.Anything, mock.Anything).Return(tt.repoErr).Maybe()

			w := postJSON(router, "/auth/register", tt.payload)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	user, err := domain.NewUser("stu-1", "Sam", "sam@campus.edu", domain.RoleStudent)
	require.NoError(t, err)
	require.NoError(t, user.SetPassword("password123"))

	t.Run("Success returns a token and the session", func(t *testing.T) {
		router, mockRepo := setupAuthHandler()
		mockRepo.On("GetByEmail", mock.Anything, "sam@campus.edu").Return(user, nil)

		w := postJSON(router, "/auth/login", map[string]string{"email": "sam@campus.edu", "password": "password123", "role": "student"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp loginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "stu-1", resp.Session.UserID)
		assert.Equal(t, domain.RoleStudent, resp.Session.Role)
	})

	t.Run("Wrong password, role mismatch and unknown email all return 401", func(t *testing.T) {
		router, mockRepo := setupAuthHandler()
		mockRepo.On("GetByEmail", mock.Anything, "sam@campus.edu").Return(user, nil)
		mockRepo.On("GetByEmail", mock.Anything, "ghost@campus.edu").Return(nil, domain.ErrUserNotFound)

		for _, payload := range []map[string]string{
			{"email": "sam@campus.edu", "password": "wrong-password"},
			{"email": "sam@campus.edu", "password": "password123", "role": "admin"},
			{"email": "ghost@campus.edu", "password": "password123"},
		} {
			w := postJSON(router, "/auth/login", payload)
			assert.Equal(t, http.StatusUnauthorized, w.Code, payload)
			assert.Contains(t, w.Body.String(), "invalid credentials")
		}
	})

	t.Run("Missing fields", func(t *testing.T) {
		router, _ := setupAuthHandler()
		w := postJSON(router, "/auth/login", map[string]string{"email": "sam@campus.edu"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Users(t *testing.T) {
	router, mockRepo := setupAuthHandler()

	user, _ := domain.NewUser("stu-1", "Sam", "sam@campus.edu", domain.RoleStudent)
	_ = user.SetPassword("password123")
	mockRepo.On("List", mock.Anything).Return([]*domain.User{user}, nil)

	req, _ := http.NewRequest(http.MethodGet, "/admin/users", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sam@campus.edu")
	assert.NotContains(t, w.Body.String(), "$2a$")
}
