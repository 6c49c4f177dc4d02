package jwtx_test

import (
	"testing"
	"time"

	"github.com/doughlab/authd/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestHS256SignAndVerify(t *testing.T) {
	codec, err := jwtx.NewHS256Codec([]byte("refresh-secret"), exampleIssuer)
	require.NoError(t, err)

	now := time.Now().UTC()
	claims := jwtx.NewRefreshClaims("42", "manager", "3", "17", exampleIssuer, 365*24*time.Hour, now)

	token, err := codec.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := codec.Verify(token)
	require.NoError(t, err)

	require.Equal(t, "42", parsed.Subject)
	require.Equal(t, "manager", parsed.Role)
	require.Equal(t, "3", parsed.TenantID)
	require.Equal(t, "17", parsed.RefreshTokenID)
}

func TestHS256RequiresSecret(t *testing.T) {
	_, err := jwtx.NewHS256Codec(nil, exampleIssuer)
	require.Error(t, err)
}

func TestHS256SignRequiresRowID(t *testing.T) {
	codec, err := jwtx.NewHS256Codec([]byte("refresh-secret"), exampleIssuer)
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims("42", "customer", "", exampleIssuer, time.Hour, time.Now().UTC())
	_, err = codec.Sign(claims)
	require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
}

func TestHS256VerifyFailsForWrongSecret(t *testing.T) {
	signing, err := jwtx.NewHS256Codec([]byte("the-real-secret"), exampleIssuer)
	require.NoError(t, err)
	other, err := jwtx.NewHS256Codec([]byte("a-different-secret"), exampleIssuer)
	require.NoError(t, err)

	claims := jwtx.NewRefreshClaims("42", "customer", "", "5", exampleIssuer, time.Hour, time.Now().UTC())
	token, err := signing.Sign(claims)
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestHS256VerifyFailsForExpiredToken(t *testing.T) {
	codec, err := jwtx.NewHS256Codec([]byte("refresh-secret"), exampleIssuer)
	require.NoError(t, err)

	issued := time.Now().UTC().Add(-48 * time.Hour)
	claims := jwtx.NewRefreshClaims("42", "customer", "", "5", exampleIssuer, time.Hour, issued)

	token, err := codec.Sign(claims)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestHS256VerifyRejectsAsymmetricToken(t *testing.T) {
	codec, err := jwtx.NewHS256Codec([]byte("refresh-secret"), exampleIssuer)
	require.NoError(t, err)

	signer := newTestSigner(t, "key1")
	claims := jwtx.NewAccessClaims("42", "customer", "", exampleIssuer, time.Hour, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}
