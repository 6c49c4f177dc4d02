package domain

import "time"

// TokenPair bundles the two JWTs a session hands back: the short-lived RS256
// access token and the long-lived HS256 refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RefreshToken models the stored refresh token record in the DB. The row id
// is embedded in the refresh JWT so rotation can find and retire the record.
type RefreshToken struct {
	ID        int64
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}
