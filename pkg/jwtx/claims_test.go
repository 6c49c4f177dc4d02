package jwtx_test

import (
	"testing"
	"time"

	"github.com/doughlab/authd/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestNewAccessClaims(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	claims := jwtx.NewAccessClaims("42", "admin", "", exampleIssuer, time.Hour, now)

	require.Equal(t, "42", claims.Subject)
	require.Equal(t, "admin", claims.Role)
	require.Empty(t, claims.TenantID)
	require.Empty(t, claims.RefreshTokenID)
	require.Equal(t, now, claims.IssuedAt.Time)
	require.Equal(t, now.Add(time.Hour), claims.ExpiresAt.Time)
}

func TestNewRefreshClaimsCarriesRowID(t *testing.T) {
	now := time.Now().UTC()
	claims := jwtx.NewRefreshClaims("42", "customer", "7", "101", exampleIssuer, time.Hour, now)

	require.Equal(t, "101", claims.RefreshTokenID)
	require.Equal(t, "7", claims.TenantID)
}

func TestHasRole(t *testing.T) {
	claims := jwtx.NewAccessClaims("42", "manager", "", exampleIssuer, time.Hour, time.Now().UTC())

	require.True(t, claims.HasRole("manager"))
	require.True(t, claims.HasRole("admin", "manager"))
	require.False(t, claims.HasRole("admin"))
	require.False(t, claims.HasRole())
}

func TestValidateExpiry(t *testing.T) {
	fresh := jwtx.NewAccessClaims("42", "customer", "", exampleIssuer, time.Hour, time.Now().UTC())
	require.NoError(t, fresh.ValidateExpiry())

	stale := jwtx.NewAccessClaims("42", "customer", "", exampleIssuer, time.Hour, time.Now().UTC().Add(-2*time.Hour))
	require.ErrorIs(t, stale.ValidateExpiry(), jwtx.ErrExpired)
}
