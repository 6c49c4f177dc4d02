package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/doughlab/authd/pkg/jwtx"
)

// Keys bundles the token crypto material the service runs on.
type Keys struct {
	Signer       jwtx.Signer      // RS256, access tokens
	KeySet       *jwtx.KeySet     // public side, served as JWKS
	Verifier     jwtx.Verifier    // access token verification
	RefreshCodec *jwtx.HS256Codec // HS256, refresh tokens
}

// InitKeys loads the RSA private key and refresh secret from configuration.
// A missing or unreadable private key is fatal: the service must never come
// up unable to sign access tokens.
func InitKeys(cfg Config, logger *slog.Logger) (*Keys, error) {
	if cfg.PrivateKeyFile == "" {
		return nil, errors.New("AUTHD_PRIVATE_KEY_FILE is required")
	}
	if cfg.RefreshSecret == "" {
		return nil, errors.New("AUTHD_REFRESH_SECRET is required")
	}

	pemKey, err := os.ReadFile(cfg.PrivateKeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key %s: %w", cfg.PrivateKeyFile, err)
	}

	signer, err := jwtx.NewSignerRS256(cfg.KeyID, pemKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load RS256 signer: %w", err)
	}

	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, fmt.Errorf("failed to build key set: %w", err)
	}

	codec, err := jwtx.NewHS256Codec([]byte(cfg.RefreshSecret), cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to build refresh codec: %w", err)
	}

	logger.Info("signing keys loaded", "kid", cfg.KeyID, "algorithm", signer.Alg(), "issuer", cfg.Issuer)

	return &Keys{
		Signer:       signer,
		KeySet:       keys,
		Verifier:     jwtx.NewVerifierRS256(keys, cfg.Issuer),
		RefreshCodec: codec,
	}, nil
}
