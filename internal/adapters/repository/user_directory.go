package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/domain"
)

var _ domain.UserRepository = (*UserDirectory)(nil)

// UserDirectory keeps every registered account in the shared users collection.
type UserDirectory struct {
	users *Collection[[]domain.User]

	mu sync.Mutex
}

func NewUserDirectory(store domain.DocumentStore) *UserDirectory {
	return &UserDirectory{
		users: NewCollection[[]domain.User](store, domain.KeyUsers),
	}
}

func (d *UserDirectory) Create(ctx context.Context, user *domain.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.users.Load(ctx, domain.SharedOwner)
	if err != nil {
		return err
	}

	for _, u := range users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}

	users = append(users, *user)
	return d.users.Save(ctx, domain.SharedOwner, users)
}

func (d *UserDirectory) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := d.users.Load(ctx, domain.SharedOwner)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if strings.EqualFold(users[i].Email, strings.TrimSpace(email)) {
			return &users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (d *UserDirectory) GetByID(ctx context.Context, id string) (*domain.User, error) {
	users, err := d.users.Load(ctx, domain.SharedOwner)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (d *UserDirectory) List(ctx context.Context) ([]*domain.User, error) {
	users, err := d.users.Load(ctx, domain.SharedOwner)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.User, 0, len(users))
	for i := range users {
		out = append(out, &users[i])
	}
	return out, nil
}
