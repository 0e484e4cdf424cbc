package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/domain"
)

type AuthService struct {
	repo domain.UserRepository
}

func NewAuthService(repo domain.UserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type LoginInput struct {
	Email    string
	Password string
	Role     string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	user, err := domain.NewUser(uuid.NewString(), input.Name, input.Email, input.Role)
	if err != nil {
		return nil, err
	}

	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth service: failed to create user: %w", err)
	}

	return user, nil
}

// Login checks the credentials and, when a role is given, that the account
// holds it. Every mismatch reports ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (domain.Session, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Session{}, domain.ErrInvalidCredentials
		}
		return domain.Session{}, fmt.Errorf("auth service: failed to load user: %w", err)
	}

	if err := user.CheckPassword(input.Password); err != nil {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	if input.Role != "" && input.Role != user.Role {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	return user.Session(), nil
}

// Users lists every account, without password hashes.
func (s *AuthService) Users(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth service: failed to list users: %w", err)
	}

	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		clean := *u
		clean.PasswordHash = ""
		out = append(out, clean)
	}
	return out, nil
}
