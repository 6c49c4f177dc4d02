package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/doughlab/authd/internal/authd/domain"
	"github.com/doughlab/authd/internal/authd/service"
	"github.com/doughlab/authd/pkg/httpx"
)

// seedAdmin creates an admin account and returns its access cookie via login.
func seedAdmin(t *testing.T, f *routerFixture) *http.Cookie {
	t.Helper()

	_, err := f.users.CreateUser(context.Background(), service.CreateUserParams{
		FirstName: "Root",
		LastName:  "Admin",
		Email:     "admin@example.com",
		Password:  "admin password",
		Role:      domain.RoleAdmin,
	})
	require.NoError(t, err)

	rec := f.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "admin password",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	access := cookieByName(rec.Result().Cookies(), httpx.AccessTokenCookie)
	require.NotNil(t, access)
	return access
}

func TestUsersEndpointsRequireAdmin(t *testing.T) {
	f := newRouterFixture(t)
	_, cookies := f.register(t, "customer@example.com")
	customerAccess := cookieByName(cookies, httpx.AccessTokenCookie)

	// No credential at all.
	rec := f.do(t, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Authenticated customer is forbidden.
	rec = f.do(t, http.MethodGet, "/users", nil, customerAccess)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminUserCRUD(t *testing.T) {
	f := newRouterFixture(t)
	admin := seedAdmin(t, f)

	// Create a manager.
	rec := f.do(t, http.MethodPost, "/users", map[string]any{
		"firstName": "Mandy",
		"lastName":  "Manager",
		"email":     "mandy@example.com",
		"password":  "manager password",
		"role":      domain.RoleManager,
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Positive(t, created.ID)

	// Fetch it back.
	rec = f.do(t, http.MethodGet, "/users/"+itoa(created.ID), nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "mandy@example.com")
	require.NotContains(t, rec.Body.String(), "password")

	// Update the profile.
	rec = f.do(t, http.MethodPatch, "/users/"+itoa(created.ID), map[string]any{
		"firstName": "Amanda",
		"lastName":  "Manager",
		"email":     "amanda@example.com",
		"role":      domain.RoleManager,
	}, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Amanda")

	// List filters by role.
	rec = f.do(t, http.MethodGet, "/users?role=manager", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	var list struct {
		Data  []map[string]any `json:"data"`
		Total int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Equal(t, 1, list.Total)
	require.Len(t, list.Data, 1)

	// Delete.
	rec = f.do(t, http.MethodDelete, "/users/"+itoa(created.ID), nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/users/"+itoa(created.ID), nil, admin)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminCreateUserRejectsBadRole(t *testing.T) {
	f := newRouterFixture(t)
	admin := seedAdmin(t, f)

	rec := f.do(t, http.MethodPost, "/users", map[string]any{
		"firstName": "Bad",
		"lastName":  "Role",
		"email":     "bad@example.com",
		"password":  "some password",
		"role":      "superuser",
	}, admin)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTenantListIsPublic(t *testing.T) {
	f := newRouterFixture(t)
	admin := seedAdmin(t, f)

	rec := f.do(t, http.MethodPost, "/tenants", map[string]string{
		"name":    "Main St",
		"address": "1 Main St",
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Listing needs no credential.
	rec = f.do(t, http.MethodGet, "/tenants", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Main St")
}

func TestTenantCRUDRequiresAdmin(t *testing.T) {
	f := newRouterFixture(t)
	_, cookies := f.register(t, "customer@example.com")
	customerAccess := cookieByName(cookies, httpx.AccessTokenCookie)

	rec := f.do(t, http.MethodPost, "/tenants", map[string]string{
		"name":    "Main St",
		"address": "1 Main St",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodPost, "/tenants", map[string]string{
		"name":    "Main St",
		"address": "1 Main St",
	}, customerAccess)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTenantUpdateAndDelete(t *testing.T) {
	f := newRouterFixture(t)
	admin := seedAdmin(t, f)

	rec := f.do(t, http.MethodPost, "/tenants", map[string]string{
		"name":    "Main St",
		"address": "1 Main St",
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = f.do(t, http.MethodPatch, "/tenants/"+itoa(created.ID), map[string]string{
		"name":    "High St",
		"address": "2 High St",
	}, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "High St")

	rec = f.do(t, http.MethodDelete, "/tenants/"+itoa(created.ID), nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/tenants/"+itoa(created.ID), nil, admin)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPathIDValidation(t *testing.T) {
	f := newRouterFixture(t)
	admin := seedAdmin(t, f)

	rec := f.do(t, http.MethodGet, "/users/abc", nil, admin)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
