package store

import (
	"context"
	"errors"

	"github.com/doughlab/authd/internal/authd/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Tenants() Tenants
	RefreshTokens() RefreshTokens

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// UserFilter narrows ListUsers. Zero values mean "no filter"; Page is
// 1-based and PerPage falls back to a driver default when 0.
type UserFilter struct {
	Query   string // matches first name, last name or email
	Role    string
	Page    int
	PerPage int
}

// TenantFilter narrows ListTenants the same way.
type TenantFilter struct {
	Query   string // matches name or address
	Page    int
	PerPage int
}

type Users interface {
	// CreateUser inserts a new user and returns it with the generated id.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByEmail is used during login; it includes the password hash.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ListUsers returns a page of users plus the unpaginated total.
	ListUsers(ctx context.Context, f UserFilter) ([]domain.User, int, error)

	// UpdateUser mutates the mutable fields and bumps updated_at.
	UpdateUser(ctx context.Context, u domain.User) error

	// DeleteUser cascades to refresh_tokens (per schema).
	DeleteUser(ctx context.Context, id int64) error
}

type Tenants interface {
	// CreateTenant inserts a new tenant and returns it with the generated id.
	CreateTenant(ctx context.Context, t domain.Tenant) (domain.Tenant, error)

	// GetTenantByID returns a tenant by id.
	GetTenantByID(ctx context.Context, id int64) (domain.Tenant, error)

	// ListTenants returns a page of tenants plus the unpaginated total.
	ListTenants(ctx context.Context, f TenantFilter) ([]domain.Tenant, int, error)

	// UpdateTenant mutates name and address and bumps updated_at.
	UpdateTenant(ctx context.Context, t domain.Tenant) error

	// DeleteTenant removes the tenant; users keep a dangling tenant id of NULL.
	DeleteTenant(ctx context.Context, id int64) error
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new record and returns it with the
	// generated id, which the refresh JWT embeds.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) (domain.RefreshToken, error)

	// GetRefreshTokenByID returns the record by primary key.
	GetRefreshTokenByID(ctx context.Context, id int64) (domain.RefreshToken, error)

	// DeleteRefreshToken removes a record. Deleting an id that does not
	// exist is not an error.
	DeleteRefreshToken(ctx context.Context, id int64) error

	// DeleteUserRefreshTokens bulk delete for a user (e.g., account removal).
	DeleteUserRefreshTokens(ctx context.Context, userID int64) error

	// DeleteExpiredRefreshTokens is housekeeping for records past expiry.
	DeleteExpiredRefreshTokens(ctx context.Context) (int64, error)
}
