package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	require.Equal(t, "authd", cfg.Issuer)
	require.Equal(t, "authd-1", cfg.KeyID)
	require.Equal(t, "localhost", cfg.CookieDomain)
	require.Equal(t, "authd.db", cfg.DatabaseFile)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("AUTHD_ISSUER", "auth.example.com")
	t.Setenv("AUTHD_COOKIE_DOMAIN", "example.com")
	t.Setenv("PORT", "9000")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "30s")
	t.Setenv("HOUSEKEEPING_INTERVAL", "15")

	cfg := LoadConfig()

	require.Equal(t, "auth.example.com", cfg.Issuer)
	require.Equal(t, "example.com", cfg.CookieDomain)
	require.Equal(t, 9000, cfg.Port)
	require.Equal(t, 30*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, 15*time.Minute, cfg.HousekeepingInterval)
}

func TestLoadConfigBadValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "soon")

	cfg := LoadConfig()

	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
}

func TestInitKeysRequiresMaterial(t *testing.T) {
	logger := testLogger()

	_, err := InitKeys(Config{RefreshSecret: "secret"}, logger)
	require.Error(t, err)

	_, err = InitKeys(Config{PrivateKeyFile: "/tmp/nope.pem"}, logger)
	require.Error(t, err)

	_, err = InitKeys(Config{
		PrivateKeyFile: "/tmp/definitely-does-not-exist.pem",
		RefreshSecret:  "secret",
		Issuer:         "authd",
		KeyID:          "authd-1",
	}, logger)
	require.Error(t, err)
}
