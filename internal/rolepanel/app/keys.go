package app

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aussiebroadwan/rolepanel/pkg/jwtx"
)

// LoadTokenSecret reads the HS256 secret from path.
//
// Without a path a random secret is generated. Such a secret lives only as
// long as the process, so no token minted elsewhere will verify against it.
func LoadTokenSecret(path string, logger *slog.Logger) ([]byte, error) {
	if path == "" {
		secret := make([]byte, jwtx.MinKeySize)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate token secret: %w", err)
		}
		logger.Warn("TOKEN_SECRET_FILE not set, using an ephemeral token secret")
		return secret, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read token secret: %w", err)
	}
	secret := bytes.TrimSpace(raw)
	if len(secret) < jwtx.MinKeySize {
		return nil, fmt.Errorf("token secret in %s: %w", path, jwtx.ErrWeakKey)
	}
	return secret, nil
}

// InitTokenVerifier builds the verifier used to authenticate API callers.
func InitTokenVerifier(cfg Config, logger *slog.Logger) (*jwtx.HS256Verifier, error) {
	secret, err := LoadTokenSecret(cfg.TokenSecretFile, logger)
	if err != nil {
		return nil, err
	}
	return jwtx.NewVerifierHS256(secret, cfg.TokenIssuer)
}

// InitTokenSigner builds a signer for minting operator tokens. It needs a
// persistent secret.
func InitTokenSigner(cfg Config) (*jwtx.HS256Signer, error) {
	if cfg.TokenSecretFile == "" {
		return nil, errors.New("minting tokens requires TOKEN_SECRET_FILE")
	}
	secret, err := LoadTokenSecret(cfg.TokenSecretFile, slog.Default())
	if err != nil {
		return nil, err
	}
	return jwtx.NewSignerHS256(secret)
}

// DefaultTokenTTL is the lifetime of operator tokens minted by the CLI.
const DefaultTokenTTL = time.Hour

// MintToken signs an access token for subject carrying capabilities. A zero
// ttl uses DefaultTokenTTL.
func MintToken(signer jwtx.Signer, cfg Config, subject string, capabilities []string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	claims := jwtx.NewAccessClaims(subject, subject, capabilities, ttl, cfg.TokenIssuer, time.Now())
	return signer.Sign(claims)
}
