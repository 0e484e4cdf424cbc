package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/domain"
)

// memCollection keeps JSON copies so tests see the same aliasing rules as
// a real store.
type memCollection[T any] struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func newMemCollection[T any]() *memCollection[T] {
	return &memCollection[T]{docs: make(map[string][]byte)}
}

func (c *memCollection[T]) Load(ctx context.Context, owner string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var v T
	if data, ok := c.docs[owner]; ok {
		if err := json.Unmarshal(data, &v); err != nil {
			return v, err
		}
	}
	return v, nil
}

func (c *memCollection[T]) Save(ctx context.Context, owner string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[owner] = data
	return nil
}

type MockCollection[T any] struct {
	mock.Mock
}

func (m *MockCollection[T]) Load(ctx context.Context, owner string) (T, error) {
	args := m.Called(ctx, owner)
	var zero T
	if v, ok := args.Get(0).(T); ok {
		return v, args.Error(1)
	}
	return zero, args.Error(1)
}

func (m *MockCollection[T]) Save(ctx context.Context, owner string, value T) error {
	return m.Called(ctx, owner, value).Error(0)
}

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

// memUsers is a map-backed UserRepository for tests that need real lookups.
type memUsers struct {
	mu    sync.Mutex
	users []*domain.User
}

func (r *memUsers) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.users = append(r.users, user)
	return nil
}

func (r *memUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUsers) List(ctx context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.User(nil), r.users...), nil
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
