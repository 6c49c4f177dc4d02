package service

import (
	"context"
	"errors"

	"github.com/doughlab/authd/internal/authd/domain"
	"github.com/doughlab/authd/internal/authd/store"
	"github.com/doughlab/authd/pkg/cryptox"
)

// ErrInvalidRole is returned when a caller supplies a role we don't know.
var ErrInvalidRole = errors.New("invalid_role")

// UserService is the admin-facing user management surface. Self-registration
// goes through SessionService instead.
type UserService struct {
	Store store.Store
}

type CreateUserParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
	TenantID  *int64
}

type UpdateUserParams struct {
	FirstName string
	LastName  string
	Email     string
	Role      string
	TenantID  *int64
}

func (s *UserService) CreateUser(ctx context.Context, p CreateUserParams) (domain.User, error) {
	if !domain.ValidRole(p.Role) {
		return domain.User{}, ErrInvalidRole
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.Store.Users().CreateUser(ctx, domain.User{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		PasswordHash: hash,
		Role:         p.Role,
		TenantID:     p.TenantID,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, f store.UserFilter) ([]domain.User, int, error) {
	return s.Store.Users().ListUsers(ctx, f)
}

// UpdateUser replaces the mutable profile fields. The password hash is left
// untouched; password changes are not part of this surface.
func (s *UserService) UpdateUser(ctx context.Context, id int64, p UpdateUserParams) (domain.User, error) {
	if !domain.ValidRole(p.Role) {
		return domain.User{}, ErrInvalidRole
	}

	user, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	user.FirstName = p.FirstName
	user.LastName = p.LastName
	user.Email = p.Email
	user.Role = p.Role
	user.TenantID = p.TenantID

	if err := s.Store.Users().UpdateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}
	return user, nil
}

// DeleteUser removes the account. Refresh records go with it via the schema's
// cascade, so every session dies immediately too.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	return s.Store.Users().DeleteUser(ctx, id)
}
