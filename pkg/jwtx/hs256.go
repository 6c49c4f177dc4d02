package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// HS256Codec signs and verifies refresh tokens with a symmetric secret known
// only to the issuing service. Refresh tokens are deliberately not publishable
// via the JWKS: the asymmetric/symmetric split keeps access tokens verifiable
// by third parties while refresh tokens stay internal.
type HS256Codec struct {
	secret []byte
	issuer string
}

// NewHS256Codec creates a refresh-token codec. The secret must be non-empty;
// a service started without one cannot mint refresh tokens safely.
func NewHS256Codec(secret []byte, issuer string) (*HS256Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwtx: empty HS256 secret")
	}
	return &HS256Codec{secret: secret, issuer: issuer}, nil
}

func (c *HS256Codec) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign produces a compact refresh token. The claims must name the store row
// that backs the token; a refresh token without one is unusable for rotation.
func (c *HS256Codec) Sign(claims Claims) (string, error) {
	if claims.RefreshTokenID == "" {
		return "", ErrInvalidClaim
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify validates a refresh token. The algorithm is pinned to HS256: an
// RS256 token presented here fails with ErrInvalidSig, same as any other
// algorithm substitution.
func (c *HS256Codec) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidClaim
	}

	if err := validateClaims(claims, c.issuer); err != nil {
		return Claims{}, err
	}
	if claims.RefreshTokenID == "" {
		return Claims{}, ErrInvalidClaim
	}

	return *claims, nil
}
