package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrUnknownKID = errors.New("jwtx: unknown kid")

	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// mapParseError translates golang-jwt parse failures into our sentinel
// errors so callers never have to depend on the library's taxonomy.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		// Also covers tokens signed with a non-pinned algorithm: the parser
		// rejects any method outside the valid set before touching the key.
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, ErrNoKey):
		return ErrUnknownKID
	default:
		return ErrMalformed
	}
}

// validateClaims applies the checks shared by both token kinds after the
// signature has been verified.
func validateClaims(c *Claims, issuer string) error {
	if err := c.ValidateIssuer(issuer); err != nil {
		return err
	}
	if c.Subject == "" || c.Role == "" {
		return ErrInvalidClaim
	}
	return nil
}
