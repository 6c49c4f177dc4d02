package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs. Access tokens are short-lived; refresh tokens live as
// long as the persisted row that backs them.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = time.Hour

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	// Matches the expiry of the backing store row.
	DefaultRefreshTokenTTL = 365 * 24 * time.Hour
)

// Claims is the payload embedded in both token kinds. Subject and Role are
// always present; TenantID is set only for users that belong to a tenant and
// RefreshTokenID only on refresh tokens, where it names the store row that
// authorizes rotation.
type Claims struct {
	jwt.RegisteredClaims

	// Role of the subject ("customer", "admin", "manager").
	Role string `json:"role"`

	// TenantID the subject belongs to, stringified numeric id.
	TenantID string `json:"tenant,omitempty"`

	// RefreshTokenID is the stringified numeric id of the refresh_tokens row
	// backing this token. Wire name "id" is part of the cookie contract.
	RefreshTokenID string `json:"id,omitempty"`
}

// NewAccessClaims builds the claim set for an access token. Time is passed
// in rather than read from the clock so issuance stays deterministic in tests.
func NewAccessClaims(subject, role, tenantID, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role:     role,
		TenantID: tenantID,
	}
}

// NewRefreshClaims builds the claim set for a refresh token. It carries the
// same identity fields as the access claims plus the backing row id.
func NewRefreshClaims(subject, role, tenantID, refreshTokenID, issuer string, ttl time.Duration, now time.Time) Claims {
	c := NewAccessClaims(subject, role, tenantID, issuer, ttl, now)
	c.RefreshTokenID = refreshTokenID
	return c
}

// HasRole reports whether the claims' role is in the allow-list. It is a pure
// predicate over decoded claims so authorization can be checked anywhere a
// Claims value exists, not just inside HTTP middleware.
func (c *Claims) HasRole(allowed ...string) bool {
	for _, role := range allowed {
		if c.Role == role {
			return true
		}
	}
	return false
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp).
func (c *Claims) ValidateExpiry() error {
	if c.ExpiresAt != nil && time.Now().UTC().After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}
