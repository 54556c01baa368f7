package service

import (
	"context"
	"fmt"

	"github.com/masstest/masstest-backend/internal/model"
	"github.com/masstest/masstest-backend/internal/store"
)

// UserService handles user profile reads and updates.
type UserService struct {
	users store.Store[model.User]
}

// NewUserService creates a new UserService.
func NewUserService(users store.Store[model.User]) *UserService {
	return &UserService{users: users}
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	user, ok, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: user %q", ErrNotFound, id)
	}
	return &user, nil
}

// UpdateFullName sets a user's full name.
func (s *UserService) UpdateFullName(ctx context.Context, id, fullName string) (*model.User, error) {
	user, ok, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: user %q", ErrNotFound, id)
	}

	user.FullName = fullName
	if _, err := s.users.Update(ctx, id, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &user, nil
}
