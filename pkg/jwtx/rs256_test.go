package jwtx_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"
	"time"

	"github.com/doughlab/authd/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "authd"

func newTestSigner(t *testing.T, kid string) jwtx.Signer {
	t.Helper()

	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privKey),
	})

	signer, err := jwtx.NewSignerRS256(kid, privPEM)
	require.NoError(t, err)
	require.NoError(t, signer.Validate())
	return signer
}

func newTestVerifier(t *testing.T, signer jwtx.Signer) *jwtx.RS256Verifier {
	t.Helper()

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer))
	return jwtx.NewVerifierRS256(keyset, exampleIssuer)
}

func TestRS256SignAndVerify(t *testing.T) {
	signer := newTestSigner(t, "test-key")
	verifier := newTestVerifier(t, signer)

	now := time.Now().UTC()
	claims := jwtx.NewAccessClaims("42", "customer", "7", exampleIssuer, 2*time.Minute, now)

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := verifier.Verify(token)
	require.NoError(t, err)

	require.Equal(t, "42", parsed.Subject)
	require.Equal(t, "customer", parsed.Role)
	require.Equal(t, "7", parsed.TenantID)
	require.Empty(t, parsed.RefreshTokenID)
	require.Equal(t, exampleIssuer, parsed.Issuer)
}

func TestRS256VerifyFailsForExpiredToken(t *testing.T) {
	signer := newTestSigner(t, "test-key")
	verifier := newTestVerifier(t, signer)

	// Signed in the past so exp is already behind us.
	issued := time.Now().UTC().Add(-2 * time.Hour)
	claims := jwtx.NewAccessClaims("42", "customer", "", exampleIssuer, time.Hour, issued)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestRS256VerifyFailsForTamperedSignature(t *testing.T) {
	signer := newTestSigner(t, "test-key")
	verifier := newTestVerifier(t, signer)

	claims := jwtx.NewAccessClaims("42", "admin", "", exampleIssuer, time.Hour, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Flip one character of the signature segment.
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = verifier.Verify(tampered)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestRS256VerifyFailsForWrongIssuer(t *testing.T) {
	signer := newTestSigner(t, "k1")

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer))
	verifier := jwtx.NewVerifierRS256(keyset, "someone-else")

	claims := jwtx.NewAccessClaims("42", "customer", "", exampleIssuer, time.Minute, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestRS256VerifyFailsForUnknownKey(t *testing.T) {
	signer1 := newTestSigner(t, "key1")
	signer2 := newTestSigner(t, "key2")

	claims := jwtx.NewAccessClaims("42", "customer", "", exampleIssuer, time.Minute, time.Now().UTC())
	token, err := signer1.Sign(claims)
	require.NoError(t, err)

	// Keyset only contains key2.
	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer2))
	verifier := jwtx.NewVerifierRS256(keyset, exampleIssuer)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrUnknownKID)
}

func TestRS256VerifyRejectsSymmetricToken(t *testing.T) {
	// A token signed HS256 must never verify against the access-token
	// verifier, even if an attacker knew some shared secret.
	codec, err := jwtx.NewHS256Codec([]byte("super-secret"), exampleIssuer)
	require.NoError(t, err)

	claims := jwtx.NewRefreshClaims("42", "customer", "", "9", exampleIssuer, time.Hour, time.Now().UTC())
	token, err := codec.Sign(claims)
	require.NoError(t, err)

	signer := newTestSigner(t, "key1")
	verifier := newTestVerifier(t, signer)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestRS256VerifyFailsForGarbage(t *testing.T) {
	signer := newTestSigner(t, "key1")
	verifier := newTestVerifier(t, signer)

	_, err := verifier.Verify("not-a-token")
	require.ErrorIs(t, err, jwtx.ErrMalformed)
}
