package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/doughlab/authd/pkg/cryptox"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestInitKeysLoadsPEM(t *testing.T) {
	pemKey, err := cryptox.GenerateRSAKey(2048)
	require.NoError(t, err)

	keyFile := filepath.Join(t.TempDir(), "private.pem")
	require.NoError(t, os.WriteFile(keyFile, pemKey, 0o600))

	keys, err := InitKeys(Config{
		Issuer:         "authd",
		KeyID:          "authd-1",
		PrivateKeyFile: keyFile,
		RefreshSecret:  "refresh-secret",
	}, testLogger())
	require.NoError(t, err)

	require.Equal(t, "RS256", keys.Signer.Alg())
	require.Equal(t, "authd-1", keys.Signer.KID())
	require.True(t, keys.KeySet.IsReady())

	// The published JWKS carries the signer's public key.
	jwks := keys.KeySet.PublicJWKS()
	require.Len(t, jwks.Keys, 1)
	require.Equal(t, "authd-1", jwks.Keys[0].Kid)
}
