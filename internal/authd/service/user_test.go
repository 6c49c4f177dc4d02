package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/doughlab/authd/internal/authd/domain"
	"github.com/doughlab/authd/internal/authd/service"
	"github.com/doughlab/authd/internal/authd/store"
	"github.com/doughlab/authd/internal/authd/store/drivers/sqlite"
	"github.com/doughlab/authd/pkg/cryptox"
)

func newUserService(t *testing.T) (*service.UserService, *sqlite.Store) {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	return &service.UserService{Store: s}, s
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc, s := newUserService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, service.CreateUserParams{
		FirstName: "Mandy",
		LastName:  "Manager",
		Email:     "mandy@example.com",
		Password:  "plain password",
		Role:      domain.RoleManager,
	})
	require.NoError(t, err)
	require.Positive(t, user.ID)

	stored, err := s.Users().GetUserByEmail(ctx, "mandy@example.com")
	require.NoError(t, err)
	require.NotEqual(t, "plain password", stored.PasswordHash)
	require.NoError(t, cryptox.VerifyPassword("plain password", stored.PasswordHash))
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.CreateUser(context.Background(), service.CreateUserParams{
		FirstName: "Bad",
		LastName:  "Role",
		Email:     "bad@example.com",
		Password:  "password",
		Role:      "superuser",
	})
	require.ErrorIs(t, err, service.ErrInvalidRole)
}

func TestUpdateUserKeepsPassword(t *testing.T) {
	svc, s := newUserService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, service.CreateUserParams{
		FirstName: "Mandy",
		LastName:  "Manager",
		Email:     "mandy@example.com",
		Password:  "plain password",
		Role:      domain.RoleManager,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateUser(ctx, user.ID, service.UpdateUserParams{
		FirstName: "Amanda",
		LastName:  "Manager",
		Email:     "amanda@example.com",
		Role:      domain.RoleAdmin,
	})
	require.NoError(t, err)
	require.Equal(t, "Amanda", updated.FirstName)
	require.Equal(t, domain.RoleAdmin, updated.Role)

	stored, err := s.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NoError(t, cryptox.VerifyPassword("plain password", stored.PasswordHash))
}

func TestUpdateUserDuplicateEmail(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, service.CreateUserParams{
		FirstName: "First", LastName: "User", Email: "first@example.com",
		Password: "password", Role: domain.RoleCustomer,
	})
	require.NoError(t, err)

	second, err := svc.CreateUser(ctx, service.CreateUserParams{
		FirstName: "Second", LastName: "User", Email: "second@example.com",
		Password: "password", Role: domain.RoleCustomer,
	})
	require.NoError(t, err)

	_, err = svc.UpdateUser(ctx, second.ID, service.UpdateUserParams{
		FirstName: "Second", LastName: "User", Email: "first@example.com",
		Role: domain.RoleCustomer,
	})
	require.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestDeleteUserKillsSessions(t *testing.T) {
	svc, s := newUserService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, service.CreateUserParams{
		FirstName: "Mandy", LastName: "Manager", Email: "mandy@example.com",
		Password: "password", Role: domain.RoleManager,
	})
	require.NoError(t, err)

	record, err := s.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshToken{
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, user.ID))

	_, err = s.RefreshTokens().GetRefreshTokenByID(ctx, record.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteUserNotFound(t *testing.T) {
	svc, _ := newUserService(t)

	err := svc.DeleteUser(context.Background(), 404)
	require.ErrorIs(t, err, store.ErrNotFound)
}
